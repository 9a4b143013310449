package admin

import (
	"fmt"

	"github.com/bgsport/backoffice/internal/service"
	"github.com/bgsport/backoffice/internal/spreadsheet"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// writeSheetExport 以附件形式输出 xlsx
func writeSheetExport(c *gin.Context, export *service.SheetExport) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	if err := spreadsheet.Write(c.Writer, export.Table); err != nil {
		requestLog(c).Errorw("xlsx_export_failed", "filename", export.Filename, "error", err)
		c.Status(500)
	}
}
