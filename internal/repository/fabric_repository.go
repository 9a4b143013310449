package repository

import (
	"errors"
	"strings"

	"github.com/bgsport/backoffice/internal/models"

	"gorm.io/gorm"
)

// FabricRepository 面料数据访问接口
type FabricRepository interface {
	GetByID(id uint) (*models.Fabric, error)
	GetByName(name string) (*models.Fabric, error)
	List(filter FabricListFilter) ([]models.Fabric, int64, error)
	ListActive() ([]models.Fabric, error)
	ListAll() ([]models.Fabric, error)
	Create(fabric *models.Fabric) error
	Update(fabric *models.Fabric) error
	SetActive(id uint, active bool) error
	Delete(id uint) error
	CountOrders(id uint) (int64, error)
}

// GormFabricRepository GORM 实现
type GormFabricRepository struct {
	db *gorm.DB
}

// NewFabricRepository 创建面料仓库
func NewFabricRepository(db *gorm.DB) *GormFabricRepository {
	return &GormFabricRepository{db: db}
}

// GetByID 根据 ID 获取面料
func (r *GormFabricRepository) GetByID(id uint) (*models.Fabric, error) {
	var fabric models.Fabric
	if err := r.db.First(&fabric, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fabric, nil
}

// GetByName 按名称获取面料（不区分大小写）
func (r *GormFabricRepository) GetByName(name string) (*models.Fabric, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil, nil
	}
	var fabric models.Fabric
	if err := r.db.Where("LOWER(name) = ?", normalized).Order("id asc").First(&fabric).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fabric, nil
}

// List 面料列表
func (r *GormFabricRepository) List(filter FabricListFilter) ([]models.Fabric, int64, error) {
	query := r.db.Model(&models.Fabric{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, count := buildContainsCondition(r.db, []string{"name"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(search), count)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var fabrics []models.Fabric
	if err := query.Order("name asc").Order("id asc").Find(&fabrics).Error; err != nil {
		return nil, 0, err
	}
	return fabrics, total, nil
}

// ListActive 启用的面料（下单选项）
func (r *GormFabricRepository) ListActive() ([]models.Fabric, error) {
	var fabrics []models.Fabric
	if err := r.db.Where("is_active = ?", true).Order("name asc").Find(&fabrics).Error; err != nil {
		return nil, err
	}
	return fabrics, nil
}

// ListAll 全部面料（导入解析使用）
func (r *GormFabricRepository) ListAll() ([]models.Fabric, error) {
	var fabrics []models.Fabric
	if err := r.db.Order("name asc").Order("id asc").Find(&fabrics).Error; err != nil {
		return nil, err
	}
	return fabrics, nil
}

// Create 创建面料
func (r *GormFabricRepository) Create(fabric *models.Fabric) error {
	return r.db.Create(fabric).Error
}

// Update 更新面料
func (r *GormFabricRepository) Update(fabric *models.Fabric) error {
	return r.db.Save(fabric).Error
}

// SetActive 切换启用状态
func (r *GormFabricRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.Fabric{}).Where("id = ?", id).Update("is_active", active).Error
}

// Delete 删除面料
func (r *GormFabricRepository) Delete(id uint) error {
	return r.db.Delete(&models.Fabric{}, id).Error
}

// CountOrders 统计引用该面料的订单数
func (r *GormFabricRepository) CountOrders(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("fabric_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
