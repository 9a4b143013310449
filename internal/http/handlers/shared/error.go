package shared

import (
	"github.com/bgsport/backoffice/internal/http/response"
	"github.com/bgsport/backoffice/internal/i18n"
	"github.com/bgsport/backoffice/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应；有原始错误时按响应码分级记录日志。
// 内部错误在 data.detail 中原样附带存储层错误文本。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	appErr := response.WrapError(code, msg, err)
	if err == nil {
		response.Error(c, appErr.Code, appErr.Message)
		return
	}
	log := RequestLog(c)
	if appErr.Code >= response.CodeInternal {
		log.Errorw("handler_error",
			"code", appErr.Code,
			"message_key", key,
			"error", err,
		)
		response.ErrorWithData(c, appErr.Code, appErr.Message, gin.H{"detail": err.Error()})
		return
	}
	log.Warnw("handler_rejected",
		"code", appErr.Code,
		"message_key", key,
		"error", err,
	)
	response.Error(c, appErr.Code, appErr.Message)
}
