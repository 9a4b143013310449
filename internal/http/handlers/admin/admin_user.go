package admin

import (
	"strings"

	handlershared "github.com/bgsport/backoffice/internal/http/handlers/shared"
	"github.com/bgsport/backoffice/internal/http/response"
	"github.com/bgsport/backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type userRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
	Notes    string `json:"notes"`
}

func (r userRequest) toInput() service.UserInput {
	return service.UserInput{
		FullName: r.FullName,
		Phone:    r.Phone,
		Email:    r.Email,
		Role:     r.Role,
		IsActive: r.IsActive,
		Notes:    r.Notes,
	}
}

// ListUsers 员工列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	users, total, err := h.UserService.List(service.ListUsersInput{
		Page:     page,
		PageSize: pageSize,
		Role:     strings.TrimSpace(c.Query("role")),
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, users, pagination(page, pageSize, total))
}

// ListUserOptions 下单时的员工选项（仅启用）
func (h *Handler) ListUserOptions(c *gin.Context) {
	users, err := h.UserService.Options(c.Query("role"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, users)
}

// CreateUser 创建员工
func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.user_invalid", nil)
		return
	}
	user, err := h.UserService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateUser 更新员工
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.user_invalid", nil)
		return
	}
	user, err := h.UserService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// SetUserActive 启用/停用员工
func (h *Handler) SetUserActive(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.UserService.SetActive(id, req.IsActive); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "is_active": req.IsActive})
}

// DeleteUser 删除员工
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := handlershared.ParseParamUint(c, "id", "error.bad_request")
	if !ok {
		return
	}
	if err := h.UserService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
