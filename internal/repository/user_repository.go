package repository

import (
	"errors"
	"strings"

	"github.com/bgsport/backoffice/internal/models"

	"gorm.io/gorm"
)

// UserRepository 员工数据访问接口
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	ListByIDs(ids []uint) ([]models.User, error)
	ListByRole(role string, onlyActive bool) ([]models.User, error)
	FindByRoleAndName(role, fullName string) (*models.User, error)
	List(filter UserListFilter) ([]models.User, int64, error)
	Create(user *models.User) error
	Update(user *models.User) error
	SetActive(id uint, active bool) error
	Delete(id uint) error
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListByIDs 批量获取用户
func (r *GormUserRepository) ListByIDs(ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListByRole 按角色获取用户
func (r *GormUserRepository) ListByRole(role string, onlyActive bool) ([]models.User, error) {
	query := r.db.Where("role = ?", role)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var users []models.User
	if err := query.Order("full_name asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByRoleAndName 按角色与姓名查找用户（姓名不区分大小写）
func (r *GormUserRepository) FindByRoleAndName(role, fullName string) (*models.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(fullName))
	if normalized == "" {
		return nil, nil
	}
	var user models.User
	if err := r.db.Where("role = ? AND LOWER(full_name) = ?", role, normalized).
		Order("is_active desc").Order("id asc").
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// List 用户列表
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	if role := strings.TrimSpace(filter.Role); role != "" {
		query = query.Where("role = ?", role)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, count := buildContainsCondition(r.db, []string{"full_name", "phone", "email"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(search), count)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var users []models.User
	if err := query.Order("full_name asc").Order("id asc").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// SetActive 切换启用状态
func (r *GormUserRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", active).Error
}

// Delete 删除用户
func (r *GormUserRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}
