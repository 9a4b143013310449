package worker

import (
	"context"
	"errors"
	"time"

	"github.com/bgsport/backoffice/internal/config"
	"github.com/bgsport/backoffice/internal/logger"
)

const defaultReminderInterval = time.Hour

// OverdueScanner 逾期扫描入口
type OverdueScanner interface {
	Scan(now time.Time) (int, error)
}

// ReminderService 定时扫描逾期订单
type ReminderService struct {
	name     string
	scanner  OverdueScanner
	interval time.Duration
	now      func() time.Time
}

// NewReminderService 创建逾期提醒服务
func NewReminderService(cfg *config.ReminderConfig, scanner OverdueScanner) (*ReminderService, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("reminder disabled")
	}
	if scanner == nil {
		return nil, errors.New("overdue scanner is nil")
	}
	interval := time.Duration(cfg.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultReminderInterval
	}
	return &ReminderService{
		name:     "reminder",
		scanner:  scanner,
		interval: interval,
		now:      time.Now,
	}, nil
}

// Name 服务名称
func (s *ReminderService) Name() string {
	if s == nil || s.name == "" {
		return "reminder"
	}
	return s.name
}

// Start 启动时先扫描一次，之后按间隔扫描，直到 ctx 结束
func (s *ReminderService) Start(ctx context.Context) error {
	if s == nil || s.scanner == nil {
		return errors.New("reminder not initialized")
	}
	s.runOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.runOnce()
		}
	}
}

// Stop 停止服务（由 ctx 取消驱动）
func (s *ReminderService) Stop(ctx context.Context) error {
	_ = ctx
	return nil
}

func (s *ReminderService) runOnce() {
	handled, err := s.scanner.Scan(s.now())
	if err != nil {
		logger.Warnw("worker_overdue_scan_failed", "error", err)
		return
	}
	if handled > 0 {
		logger.Infow("worker_overdue_scan_done", "handled", handled)
	}
}
