package admin

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/bgsport/backoffice/internal/http/response"
	"github.com/bgsport/backoffice/internal/i18n"

	"github.com/gin-gonic/gin"
)

type multipartFile struct {
	multipart.File
	name string
}

// openImportFile 读取 multipart 中的 file 字段，超过上传上限时拒绝
func (h *Handler) openImportFile(c *gin.Context) (*multipartFile, bool) {
	maxSize := h.Config.Import.MaxUploadSize
	if maxSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
	}
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, response.CodeBadRequest, "error.import_file_too_large", nil)
			return nil, false
		}
		respondError(c, response.CodeBadRequest, "error.import_file_required", nil)
		return nil, false
	}
	if maxSize > 0 && header.Size > maxSize {
		respondError(c, response.CodeBadRequest, "error.import_file_too_large", nil)
		return nil, false
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.import_file_invalid", err)
		return nil, false
	}
	return &multipartFile{File: file, name: header.Filename}, true
}

// GetImportTemplate 下载导入模板
func (h *Handler) GetImportTemplate(c *gin.Context) {
	export, err := h.ImportService.Template()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	writeSheetExport(c, export)
}

// PreviewImport 解析并校验导入文件
func (h *Handler) PreviewImport(c *gin.Context) {
	file, ok := h.openImportFile(c)
	if !ok {
		return
	}
	defer file.Close()

	preview, err := h.ImportService.Preview(file, i18n.ResolveLocale(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, preview)
}

// ApplyImport 执行导入
func (h *Handler) ApplyImport(c *gin.Context) {
	file, ok := h.openImportFile(c)
	if !ok {
		return
	}
	defer file.Close()

	mode := strings.TrimSpace(c.PostForm("mode"))
	if mode == "" {
		mode = strings.TrimSpace(c.Query("mode"))
	}
	result, err := h.ImportService.Apply(c.Request.Context(), file, mode, i18n.ResolveLocale(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("import_applied",
		"file", file.name,
		"mode", result.Mode,
		"inserted", result.Inserted,
		"updated", result.Updated,
	)
	response.Success(c, result)
}
