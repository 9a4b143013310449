package service

import (
	"strings"
	"time"

	"github.com/bgsport/backoffice/internal/logger"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/repository"
)

// FabricService 面料价格服务
// 说明：价格修改只影响之后创建的订单，已有订单使用快照。
type FabricService struct {
	repo repository.FabricRepository
}

// NewFabricService 创建面料服务
func NewFabricService(repo repository.FabricRepository) *FabricService {
	return &FabricService{repo: repo}
}

// FabricInput 面料输入
type FabricInput struct {
	Name       string
	ShortPrice int64
	LongAdd    int64
	IsActive   *bool
}

// ListFabricsInput 面料列表查询
type ListFabricsInput struct {
	Page     int
	PageSize int
	Search   string
	Active   string
}

// List 面料列表
func (s *FabricService) List(input ListFabricsInput) ([]models.Fabric, int64, error) {
	filter := repository.FabricListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Search:   input.Search,
	}
	switch strings.ToLower(strings.TrimSpace(input.Active)) {
	case "true", "1", "active":
		active := true
		filter.IsActive = &active
	case "false", "0", "inactive":
		inactive := false
		filter.IsActive = &inactive
	}
	return s.repo.List(filter)
}

// ListActive 启用面料
func (s *FabricService) ListActive() ([]models.Fabric, error) {
	return s.repo.ListActive()
}

// Get 获取面料
func (s *FabricService) Get(id uint) (*models.Fabric, error) {
	fabric, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if fabric == nil {
		return nil, ErrFabricNotFound
	}
	return fabric, nil
}

// Create 创建面料
func (s *FabricService) Create(input FabricInput) (*models.Fabric, error) {
	fabric := &models.Fabric{IsActive: true}
	if err := applyFabricInput(fabric, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(fabric); err != nil {
		return nil, err
	}
	logger.Infow("fabric_created", "fabric_id", fabric.ID, "name", fabric.Name)
	return fabric, nil
}

// Update 更新面料并重算长袖价
func (s *FabricService) Update(id uint, input FabricInput) (*models.Fabric, error) {
	fabric, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyFabricInput(fabric, input); err != nil {
		return nil, err
	}
	fabric.UpdatedAt = time.Now()
	if err := s.repo.Update(fabric); err != nil {
		return nil, err
	}
	return fabric, nil
}

// SetActive 启用/停用
func (s *FabricService) SetActive(id uint, active bool) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.SetActive(id, active)
}

// Delete 删除面料，已被订单引用时拒绝
func (s *FabricService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	count, err := s.repo.CountOrders(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrFabricInUse
	}
	return s.repo.Delete(id)
}

func applyFabricInput(fabric *models.Fabric, input FabricInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrFabricNameRequired
	}
	if input.ShortPrice < 0 || input.LongAdd < 0 {
		return ErrFabricInvalid
	}
	fabric.Name = name
	fabric.ShortPrice = models.NewMoney(input.ShortPrice)
	fabric.LongAdd = models.NewMoney(input.LongAdd)
	fabric.RecomputeLongPrice()
	if input.IsActive != nil {
		fabric.IsActive = *input.IsActive
	}
	return nil
}
