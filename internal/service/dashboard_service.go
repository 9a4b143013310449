package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bgsport/backoffice/internal/cache"
	"github.com/bgsport/backoffice/internal/logger"
	"github.com/bgsport/backoffice/internal/repository"
)

const (
	dashboardCacheNamespace = "dashboard"
	dashboardCustomMaxDays  = 366
)

// DashboardService 仪表盘服务
// 说明：按下单日期聚合经营数据，结果缓存并在写操作后失效。
type DashboardService struct {
	repo        repository.DashboardRepository
	cacheTTL    time.Duration
	recentLimit int
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, cacheTTL time.Duration, recentLimit int) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 45 * time.Second
	}
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &DashboardService{repo: repo, cacheTTL: cacheTTL, recentLimit: recentLimit}
}

// DashboardQueryInput 仪表盘查询输入
type DashboardQueryInput struct {
	Range        string
	From         string
	To           string
	ForceRefresh bool
}

// DashboardOverviewResponse 仪表盘总览
type DashboardOverviewResponse struct {
	Range            string                 `json:"range"`
	From             string                 `json:"from"`
	To               string                 `json:"to"`
	TotalProfit      int64                  `json:"total_profit"`
	CustomerBalance  int64                  `json:"customer_balance"`
	FactoryBalance   int64                  `json:"factory_balance"`
	InProgressOrders int64                  `json:"in_progress_orders"`
	CompletedOrders  int64                  `json:"completed_orders"`
	TotalOrders      int64                  `json:"total_orders"`
	TotalShirts      int64                  `json:"total_shirts"`
	ShortSleeves     int64                  `json:"short_sleeves"`
	LongSleeves      int64                  `json:"long_sleeves"`
	GiveawayShirts   int64                  `json:"giveaway_shirts"`
	RecentOrders     []DashboardRecentOrder `json:"recent_orders"`
}

// DashboardRecentOrder 最近订单
type DashboardRecentOrder struct {
	ID         uint   `json:"id"`
	OrderCode  string `json:"order_code"`
	OrderDate  string `json:"order_date"`
	FabricName string `json:"fabric_name"`
	NetTotal   int64  `json:"net_total"`
	Balance    int64  `json:"balance"`
	Status     string `json:"status"`
}

type dashboardWindow struct {
	rangeKey string
	startAt  time.Time
	endAt    time.Time
}

// GetOverview 获取仪表盘总览
func (s *DashboardService) GetOverview(ctx context.Context, input DashboardQueryInput) (*DashboardOverviewResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardOverviewResponse{}, nil
	}
	window, err := resolveDashboardWindow(input, time.Now())
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:overview:%d:%s:%d:%d",
		cache.Version(ctx, dashboardCacheNamespace),
		window.rangeKey,
		window.startAt.Unix(),
		window.endAt.Unix(),
	)
	if !input.ForceRefresh {
		var cached DashboardOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview(window.startAt, window.endAt)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.GetRecentOrders(window.startAt, window.endAt, s.recentLimit)
	if err != nil {
		return nil, err
	}
	recentOrders := make([]DashboardRecentOrder, 0, len(recent))
	for _, order := range recent {
		recentOrders = append(recentOrders, DashboardRecentOrder{
			ID:         order.ID,
			OrderCode:  order.OrderCode,
			OrderDate:  order.OrderDate.UTC().Format(dateLayout),
			FabricName: order.FabricName,
			NetTotal:   order.NetTotal.Int64(),
			Balance:    order.Balance.Int64(),
			Status:     order.Status,
		})
	}

	response := &DashboardOverviewResponse{
		Range:            window.rangeKey,
		From:             window.startAt.Format(dateLayout),
		To:               window.endAt.AddDate(0, 0, -1).Format(dateLayout),
		TotalProfit:      overview.TotalProfit,
		CustomerBalance:  overview.CustomerBalance,
		FactoryBalance:   overview.FactoryBalance,
		InProgressOrders: overview.InProgressOrders,
		CompletedOrders:  overview.CompletedOrders,
		TotalOrders:      overview.TotalOrders,
		TotalShirts:      overview.ShortSleeves + overview.LongSleeves + overview.GiveawayShirts,
		ShortSleeves:     overview.ShortSleeves,
		LongSleeves:      overview.LongSleeves,
		GiveawayShirts:   overview.GiveawayShirts,
		RecentOrders:     recentOrders,
	}

	_ = cache.SetJSON(ctx, cacheKey, response, s.cacheTTL)
	return response, nil
}

// resolveDashboardWindow 解析日期范围，区间为 [startAt, endAt)，均为 UTC 零点
func resolveDashboardWindow(input DashboardQueryInput, now time.Time) (dashboardWindow, error) {
	rangeKey := strings.ToLower(strings.TrimSpace(input.Range))
	if rangeKey == "" {
		rangeKey = "1month"
	}
	todayStart := dayStart(now)
	tomorrow := todayStart.AddDate(0, 0, 1)
	window := dashboardWindow{rangeKey: rangeKey, endAt: tomorrow}

	switch rangeKey {
	case "today":
		window.startAt = todayStart
	case "7days":
		window.startAt = todayStart.AddDate(0, 0, -7)
	case "1month":
		window.startAt = monthsAgo(todayStart, 1)
	case "custom":
		from, err := ParseDate(input.From)
		if err != nil {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		to, err := ParseDate(input.To)
		if err != nil {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		if to.Before(from) {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		if to.Sub(from) > time.Hour*24*dashboardCustomMaxDays {
			return dashboardWindow{}, ErrDashboardRangeInvalid
		}
		window.startAt = dayStart(from)
		window.endAt = dayStart(to).AddDate(0, 0, 1)
	default:
		return dashboardWindow{}, ErrDashboardRangeInvalid
	}
	return window, nil
}

// invalidateDashboardCache 递增缓存版本，仪表盘与收款汇总随之失效
func invalidateDashboardCache(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cache.BumpVersion(ctx, dashboardCacheNamespace); err != nil {
		logger.Warnw("dashboard_cache_invalidate_failed", "error", err)
	}
}

func formatPercentValue(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
