package admin

import (
	"strconv"
	"strings"

	"github.com/bgsport/backoffice/internal/http/response"
	"github.com/bgsport/backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

func parseReportQuery(c *gin.Context) (service.ReportQueryInput, bool) {
	input := service.ReportQueryInput{
		Month:         strings.TrimSpace(c.Query("month")),
		Prefix:        strings.TrimSpace(c.Query("prefix")),
		Status:        strings.TrimSpace(c.Query("status")),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.report_period_invalid", nil)
			return input, false
		}
		input.Year = year
	}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return input, false
		}
		input.UserID = uint(userID)
	}
	return input, true
}

// GetReport 报表查询：sales-profit / admin-sales / graphic-work / orders
func (h *Handler) GetReport(c *gin.Context) {
	input, ok := parseReportQuery(c)
	if !ok {
		return
	}
	var (
		data interface{}
		err  error
	)
	switch c.Param("kind") {
	case service.ReportSalesProfit:
		data, err = h.ReportService.SalesProfit(input)
	case service.ReportAdminSales:
		data, err = h.ReportService.AdminSales(input)
	case service.ReportGraphicWork:
		data, err = h.ReportService.GraphicWork(input)
	case service.ReportOrders:
		data, err = h.ReportService.Orders(input)
	default:
		err = service.ErrReportTypeInvalid
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, data)
}

// ExportReport 导出报表 xlsx
func (h *Handler) ExportReport(c *gin.Context) {
	input, ok := parseReportQuery(c)
	if !ok {
		return
	}
	export, err := h.ReportService.BuildExport(c.Param("kind"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	writeSheetExport(c, export)
}
