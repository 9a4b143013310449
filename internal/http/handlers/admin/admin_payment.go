package admin

import (
	"context"
	"time"

	handlershared "github.com/bgsport/backoffice/internal/http/handlers/shared"
	"github.com/bgsport/backoffice/internal/http/response"
	"github.com/bgsport/backoffice/internal/i18n"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type recordPaymentRequest struct {
	Amount models.Money `json:"amount"`
	PaidAt string       `json:"paid_at"`
	Note   string       `json:"note"`
}

// RecordCustomerPayment 记录客户收款
func (h *Handler) RecordCustomerPayment(c *gin.Context) {
	h.recordPayment(c, h.PaymentService.RecordCustomerPayment)
}

// RecordFactoryPayment 记录工厂付款
func (h *Handler) RecordFactoryPayment(c *gin.Context) {
	h.recordPayment(c, h.PaymentService.RecordFactoryPayment)
}

type paymentRecorder func(ctx context.Context, input service.RecordPaymentInput) (*service.RecordPaymentResult, error)

func (h *Handler) recordPayment(c *gin.Context, record paymentRecorder) {
	id, ok := handlershared.ParseParamUint(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.payment_amount_invalid", nil)
		return
	}
	var paidAt time.Time
	if req.PaidAt != "" {
		parsed, err := service.ParseDate(req.PaidAt)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.payment_date_invalid", nil)
			return
		}
		paidAt = parsed
	}
	result, err := record(c.Request.Context(), service.RecordPaymentInput{
		OrderID: id,
		Amount:  req.Amount.Int64(),
		PaidAt:  paidAt,
		Note:    req.Note,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "payment.recorded"), result)
}

// ListPayments 收款页：订单与汇总
func (h *Handler) ListPayments(c *gin.Context) {
	input := parseOrderListQuery(c)
	result, err := h.PaymentService.List(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	items, err := h.decorateOrderViews(result.Orders)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"orders":     items,
		"summary":    result.Summary,
		"pagination": pagination(input.Page, input.PageSize, result.Total),
	})
}
