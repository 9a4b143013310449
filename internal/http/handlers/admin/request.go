package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/bgsport/backoffice/internal/http/handlers/shared"
	"github.com/bgsport/backoffice/internal/http/response"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

// orderChargesRequest 数量与费用；金额支持数字或带千分位的字符串
type orderChargesRequest struct {
	ShortQty      int          `json:"short_qty"`
	LongQty       int          `json:"long_qty"`
	FreeQty       int          `json:"free_qty"`
	Qty3XL        int          `json:"qty_3xl"`
	Qty4XL        int          `json:"qty_4xl"`
	Qty5XL        int          `json:"qty_5xl"`
	SizeUpcharge  models.Money `json:"size_upcharge"`
	ExtraCharge   models.Money `json:"extra_charge"`
	DesignDeposit models.Money `json:"design_deposit"`
	FactoryCost   models.Money `json:"factory_cost"`
}

func (r orderChargesRequest) toInput() service.OrderChargesInput {
	return service.OrderChargesInput{
		ShortQty:      r.ShortQty,
		LongQty:       r.LongQty,
		FreeQty:       r.FreeQty,
		Qty3XL:        r.Qty3XL,
		Qty4XL:        r.Qty4XL,
		Qty5XL:        r.Qty5XL,
		SizeUpcharge:  r.SizeUpcharge.Int64(),
		ExtraCharge:   r.ExtraCharge.Int64(),
		DesignDeposit: r.DesignDeposit.Int64(),
		FactoryCost:   r.FactoryCost.Int64(),
	}
}

func parsePageQuery(c *gin.Context) (int, int) {
	return handlershared.NormalizePagination(
		handlershared.QueryInt(c, "page", 1),
		handlershared.QueryInt(c, "page_size", handlershared.DefaultPageSize),
	)
}

func parseOrderListQuery(c *gin.Context) service.ListOrdersInput {
	page, pageSize := parsePageQuery(c)
	return service.ListOrdersInput{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Prefix:   strings.TrimSpace(c.Query("prefix")),
		Search:   strings.TrimSpace(c.Query("search")),
		DateFrom: strings.TrimSpace(c.Query("date_from")),
		DateTo:   strings.TrimSpace(c.Query("date_to")),
		Payment:  strings.TrimSpace(c.Query("payment")),
	}
}

// parseRequiredDate 空值返回零值，由业务层给出具体的必填错误
func parseRequiredDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return service.ParseDate(raw)
}

func queryBool(c *gin.Context, name string) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(c.Query(name)))
	return err == nil && parsed
}

func pagination(page, pageSize int, total int64) response.Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
