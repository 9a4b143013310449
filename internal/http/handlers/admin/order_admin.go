package admin

import (
	"strings"

	handlershared "github.com/bgsport/backoffice/internal/http/handlers/shared"
	"github.com/bgsport/backoffice/internal/http/response"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminOrderListItem 管理端订单列表返回
type AdminOrderListItem struct {
	service.OrderView
	AdminName   string `json:"admin_name,omitempty"`
	GraphicName string `json:"graphic_name,omitempty"`
}

type createOrderRequest struct {
	OrderCode              string              `json:"order_code"`
	OrderDate              string              `json:"order_date"`
	CustomerPhone          string              `json:"customer_phone"`
	FactoryBillCode        string              `json:"factory_bill_code"`
	FabricID               uint                `json:"fabric_id"`
	AdminUserID            uint                `json:"admin_user_id"`
	GraphicUserID          uint                `json:"graphic_user_id"`
	InitialDeposit         models.Money        `json:"initial_deposit"`
	CustomerRemainingDueAt string              `json:"customer_remaining_due_at"`
	FactoryPaymentDueAt    string              `json:"factory_payment_due_at"`
	Charges                orderChargesRequest `json:"charges"`
}

type updateOrderRequest struct {
	OrderCode              string              `json:"order_code"`
	OrderDate              string              `json:"order_date"`
	CustomerPhone          string              `json:"customer_phone"`
	FactoryBillCode        string              `json:"factory_bill_code"`
	AdminUserID            uint                `json:"admin_user_id"`
	GraphicUserID          uint                `json:"graphic_user_id"`
	CustomerRemainingDueAt string              `json:"customer_remaining_due_at"`
	FactoryPaymentDueAt    string              `json:"factory_payment_due_at"`
	Charges                orderChargesRequest `json:"charges"`
}

type previewOrderRequest struct {
	OrderID        uint                `json:"order_id"`
	FabricID       uint                `json:"fabric_id"`
	InitialDeposit models.Money        `json:"initial_deposit"`
	Charges        orderChargesRequest `json:"charges"`
}

type productionCompleteRequest struct {
	Date string `json:"date"`
}

type bulkDeleteRequest struct {
	IDs []uint `json:"ids"`
}

// ListOrders 订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	input := parseOrderListQuery(c)
	views, total, err := h.OrderService.List(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	items, err := h.decorateOrderViews(views)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, pagination(input.Page, input.PageSize, total))
}

// SearchOrders 搜索页（不分页，最多 500 条）
func (h *Handler) SearchOrders(c *gin.Context) {
	views, err := h.OrderService.Search(service.SearchOrdersInput{
		Prefix: strings.TrimSpace(c.Query("prefix")),
		Query:  strings.TrimSpace(c.Query("query")),
		Mode:   strings.TrimSpace(c.Query("mode")),
		Value:  strings.TrimSpace(c.Query("value")),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	items, err := h.decorateOrderViews(views)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id", "error.bad_request")
	if !ok {
		return
	}
	detail, err := h.OrderService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, detail)
}

// PreviewOrder 计算器预览，不落库
func (h *Handler) PreviewOrder(c *gin.Context) {
	var req previewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	result, err := h.OrderService.Preview(service.PreviewOrderInput{
		OrderID:        req.OrderID,
		FabricID:       req.FabricID,
		Charges:        req.Charges.toInput(),
		InitialDeposit: req.InitialDeposit.Int64(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	orderDate, err := parseRequiredDate(req.OrderDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	customerDue, err := service.ParseOptionalDate(req.CustomerRemainingDueAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	factoryDue, err := service.ParseOptionalDate(req.FactoryPaymentDueAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view, err := h.OrderService.Create(c.Request.Context(), service.CreateOrderInput{
		OrderCode:              req.OrderCode,
		OrderDate:              orderDate,
		CustomerPhone:          req.CustomerPhone,
		FactoryBillCode:        req.FactoryBillCode,
		FabricID:               req.FabricID,
		AdminUserID:            req.AdminUserID,
		GraphicUserID:          req.GraphicUserID,
		Charges:                req.Charges.toInput(),
		InitialDeposit:         req.InitialDeposit.Int64(),
		CustomerRemainingDueAt: customerDue,
		FactoryPaymentDueAt:    factoryDue,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateOrder 编辑订单
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	orderDate, err := parseRequiredDate(req.OrderDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	customerDue, err := service.ParseOptionalDate(req.CustomerRemainingDueAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	factoryDue, err := service.ParseOptionalDate(req.FactoryPaymentDueAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view, err := h.OrderService.Update(c.Request.Context(), id, service.UpdateOrderInput{
		OrderCode:              req.OrderCode,
		OrderDate:              orderDate,
		CustomerPhone:          req.CustomerPhone,
		FactoryBillCode:        req.FactoryBillCode,
		AdminUserID:            req.AdminUserID,
		GraphicUserID:          req.GraphicUserID,
		Charges:                req.Charges.toInput(),
		CustomerRemainingDueAt: customerDue,
		FactoryPaymentDueAt:    factoryDue,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// MarkProductionCompleted 标记生产完成
func (h *Handler) MarkProductionCompleted(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req productionCompleteRequest
	// 请求体可为空，默认当天
	_ = c.ShouldBindJSON(&req)
	date, err := parseRequiredDate(req.Date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	order, err := h.OrderService.MarkProductionCompleted(c.Request.Context(), id, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// CloseOrder 结单
func (h *Handler) CloseOrder(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id", "error.bad_request")
	if !ok {
		return
	}
	view, err := h.OrderService.Close(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// DeleteOrder 删除订单
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id", "error.bad_request")
	if !ok {
		return
	}
	if err := h.OrderService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": 1})
}

// BulkDeleteOrders 批量删除订单
func (h *Handler) BulkDeleteOrders(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	deleted, err := h.OrderService.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}

// decorateOrderViews 补充销售与设计姓名
func (h *Handler) decorateOrderViews(views []service.OrderView) ([]AdminOrderListItem, error) {
	userIDs := make([]uint, 0, len(views)*2)
	seen := map[uint]struct{}{}
	for _, view := range views {
		for _, id := range []*uint{view.Order.AdminUserID, view.Order.GraphicUserID} {
			if id == nil || *id == 0 {
				continue
			}
			if _, ok := seen[*id]; ok {
				continue
			}
			seen[*id] = struct{}{}
			userIDs = append(userIDs, *id)
		}
	}
	names := map[uint]string{}
	if len(userIDs) > 0 {
		users, err := h.UserRepo.ListByIDs(userIDs)
		if err != nil {
			return nil, err
		}
		for _, user := range users {
			names[user.ID] = user.FullName
		}
	}

	items := make([]AdminOrderListItem, 0, len(views))
	for _, view := range views {
		item := AdminOrderListItem{OrderView: view}
		if view.Order.AdminUserID != nil {
			item.AdminName = names[*view.Order.AdminUserID]
		}
		if view.Order.GraphicUserID != nil {
			item.GraphicName = names[*view.Order.GraphicUserID]
		}
		items = append(items, item)
	}
	return items, nil
}
