package shared

import (
	"strconv"
	"strings"

	"github.com/bgsport/backoffice/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ParseParamUint 解析路径中的 uint 参数并统一处理错误响应。
func ParseParamUint(c *gin.Context, name, invalidKey string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		RespondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return uint(value), true
}

// QueryInt 读取整数查询参数，非法时返回默认值。
func QueryInt(c *gin.Context, name string, fallback int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
