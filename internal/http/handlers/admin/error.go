package admin

import (
	"errors"

	handlershared "github.com/bgsport/backoffice/internal/http/handlers/shared"
	"github.com/bgsport/backoffice/internal/http/response"
	"github.com/bgsport/backoffice/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type serviceErrorMapping struct {
	target error
	code   int
	key    string
}

// serviceErrorMappings 业务错误到响应码与文案 key 的映射
var serviceErrorMappings = []serviceErrorMapping{
	{service.ErrFabricNotFound, response.CodeNotFound, "error.fabric_not_found"},
	{service.ErrUserNotFound, response.CodeNotFound, "error.user_not_found"},
	{service.ErrOrderNotFound, response.CodeNotFound, "error.order_not_found"},

	{service.ErrFabricInvalid, response.CodeBadRequest, "error.fabric_invalid"},
	{service.ErrFabricNameRequired, response.CodeBadRequest, "error.fabric_name_required"},
	{service.ErrUserInvalid, response.CodeBadRequest, "error.user_invalid"},
	{service.ErrUserRoleInvalid, response.CodeBadRequest, "error.user_role_invalid"},
	{service.ErrOrderInvalid, response.CodeBadRequest, "error.order_invalid"},
	{service.ErrOrderCodeRequired, response.CodeBadRequest, "error.order_code_required"},
	{service.ErrOrderDateRequired, response.CodeBadRequest, "error.order_date_required"},
	{service.ErrOrderFabricRequired, response.CodeBadRequest, "error.order_fabric_required"},
	{service.ErrOrderAdminRequired, response.CodeBadRequest, "error.order_admin_required"},
	{service.ErrOrderGraphicRequired, response.CodeBadRequest, "error.order_graphic_required"},
	{service.ErrBulkDeleteEmpty, response.CodeBadRequest, "error.bulk_delete_empty"},
	{service.ErrPaymentAmountInvalid, response.CodeBadRequest, "error.payment_amount_invalid"},
	{service.ErrPaymentDateInvalid, response.CodeBadRequest, "error.payment_date_invalid"},
	{service.ErrPaymentSideInvalid, response.CodeBadRequest, "error.bad_request"},
	{service.ErrDateInvalid, response.CodeBadRequest, "error.date_invalid"},
	{service.ErrImportFileInvalid, response.CodeBadRequest, "error.import_file_invalid"},
	{service.ErrImportTooManyRows, response.CodeBadRequest, "error.import_too_many_rows"},
	{service.ErrImportModeInvalid, response.CodeBadRequest, "error.import_mode_invalid"},
	{service.ErrReportTypeInvalid, response.CodeBadRequest, "error.report_type_invalid"},
	{service.ErrReportPeriodInvalid, response.CodeBadRequest, "error.report_period_invalid"},
	{service.ErrReportPrefixInvalid, response.CodeBadRequest, "error.report_prefix_invalid"},
	{service.ErrDashboardRangeInvalid, response.CodeBadRequest, "error.dashboard_range_invalid"},

	{service.ErrOrderCodeExists, response.CodeConflict, "error.order_code_exists"},
	{service.ErrFabricInUse, response.CodeConflict, "error.fabric_in_use"},
	{service.ErrOrderAlreadyCompleted, response.CodeConflict, "error.order_already_completed"},
	{service.ErrOrderCustomerOutstanding, response.CodeConflict, "error.order_customer_balance"},
	{service.ErrOrderFactoryOutstanding, response.CodeConflict, "error.order_factory_balance"},
	{service.ErrPaymentExceedsOutstanding, response.CodeConflict, "error.payment_amount_exceeds"},
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// respondServiceError 已知业务错误按映射返回，其余按内部错误记录
func respondServiceError(c *gin.Context, err error) {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			respondError(c, mapping.code, mapping.key, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, "error.internal", err)
}
