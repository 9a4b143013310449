package admin

import (
	"strings"

	handlershared "github.com/bgsport/backoffice/internal/http/handlers/shared"
	"github.com/bgsport/backoffice/internal/http/response"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type fabricRequest struct {
	Name       string       `json:"name"`
	ShortPrice models.Money `json:"short_price"`
	LongAdd    models.Money `json:"long_add"`
	IsActive   *bool        `json:"is_active"`
}

func (r fabricRequest) toInput() service.FabricInput {
	return service.FabricInput{
		Name:       r.Name,
		ShortPrice: r.ShortPrice.Int64(),
		LongAdd:    r.LongAdd.Int64(),
		IsActive:   r.IsActive,
	}
}

type activeRequest struct {
	IsActive bool `json:"is_active"`
}

// ListFabrics 面料列表
func (h *Handler) ListFabrics(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	fabrics, total, err := h.FabricService.List(service.ListFabricsInput{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Active:   strings.TrimSpace(c.Query("active")),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, fabrics, pagination(page, pageSize, total))
}

// ListActiveFabrics 下单可选面料
func (h *Handler) ListActiveFabrics(c *gin.Context) {
	fabrics, err := h.FabricService.ListActive()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, fabrics)
}

// CreateFabric 创建面料
func (h *Handler) CreateFabric(c *gin.Context) {
	var req fabricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.fabric_invalid", nil)
		return
	}
	fabric, err := h.FabricService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, fabric)
}

// UpdateFabric 更新面料（已有订单的价格快照不受影响）
func (h *Handler) UpdateFabric(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req fabricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.fabric_invalid", nil)
		return
	}
	fabric, err := h.FabricService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, fabric)
}

// SetFabricActive 启用/停用面料
func (h *Handler) SetFabricActive(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.FabricService.SetActive(id, req.IsActive); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "is_active": req.IsActive})
}

// DeleteFabric 删除面料
func (h *Handler) DeleteFabric(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id", "error.bad_request")
	if !ok {
		return
	}
	if err := h.FabricService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
