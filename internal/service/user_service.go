package service

import (
	"strings"
	"time"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/logger"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/repository"
)

var validUserRoles = map[string]bool{
	constants.UserRoleAdmin:      true,
	constants.UserRoleManager:    true,
	constants.UserRoleStaff:      true,
	constants.UserRoleGraphic:    true,
	constants.UserRoleAccountant: true,
}

var userRoleAliases = map[string]string{
	"sale-admin": constants.UserRoleAdmin,
	"sale_admin": constants.UserRoleAdmin,
	"saleadmin":  constants.UserRoleAdmin,
	"graphics":   constants.UserRoleGraphic,
	"designer":   constants.UserRoleGraphic,
}

// NormalizeUserRole 角色归一（支持别名），未知角色返回 false
func NormalizeUserRole(raw string) (string, bool) {
	role := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := userRoleAliases[role]; ok {
		role = alias
	}
	if !validUserRoles[role] {
		return "", false
	}
	return role, true
}

// UserService 员工管理服务
type UserService struct {
	repo repository.UserRepository
}

// NewUserService 创建员工服务
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// UserInput 创建/更新员工输入
type UserInput struct {
	FullName string
	Phone    string
	Email    string
	Role     string
	IsActive *bool
	Notes    string
}

// ListUsersInput 员工列表查询
type ListUsersInput struct {
	Page     int
	PageSize int
	Role     string
	Status   string
	Search   string
}

// List 员工列表
func (s *UserService) List(input ListUsersInput) ([]models.User, int64, error) {
	filter := repository.UserListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Search:   input.Search,
	}
	if strings.TrimSpace(input.Role) != "" {
		role, ok := NormalizeUserRole(input.Role)
		if !ok {
			return nil, 0, ErrUserRoleInvalid
		}
		filter.Role = role
	}
	switch strings.ToLower(strings.TrimSpace(input.Status)) {
	case "active":
		active := true
		filter.IsActive = &active
	case "inactive":
		inactive := false
		filter.IsActive = &inactive
	}
	return s.repo.List(filter)
}

// Options 下单页的员工选项（仅启用）
func (s *UserService) Options(rawRole string) ([]models.User, error) {
	role, ok := NormalizeUserRole(rawRole)
	if !ok {
		return nil, ErrUserRoleInvalid
	}
	return s.repo.ListByRole(role, true)
}

// Get 获取员工
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Create 创建员工
func (s *UserService) Create(input UserInput) (*models.User, error) {
	user := &models.User{IsActive: true}
	if err := applyUserInput(user, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	logger.Infow("user_created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Update 更新员工
func (s *UserService) Update(id uint, input UserInput) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyUserInput(user, input); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now()
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive 启用/停用员工
func (s *UserService) SetActive(id uint, active bool) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.SetActive(id, active)
}

// Delete 删除员工（订单上的引用保留，报表中显示为 Unknown）
func (s *UserService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// RequireRole 校验员工存在且角色匹配
func (s *UserService) RequireRole(id uint, role string) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != role {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func applyUserInput(user *models.User, input UserInput) error {
	name := strings.TrimSpace(input.FullName)
	if name == "" {
		return ErrUserInvalid
	}
	role, ok := NormalizeUserRole(input.Role)
	if !ok {
		return ErrUserRoleInvalid
	}
	user.FullName = name
	user.Phone = strings.TrimSpace(input.Phone)
	user.Email = strings.TrimSpace(input.Email)
	user.Role = role
	user.Notes = strings.TrimSpace(input.Notes)
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	return nil
}
