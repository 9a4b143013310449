// Package metrics 定义后台服务的 Prometheus 指标。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests HTTP 请求计数
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bgsport",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	// HTTPLatency HTTP 请求耗时
	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bgsport",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// PaymentsRecorded 已记录付款笔数（按账本方向）
	PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bgsport",
		Name:      "payments_recorded_total",
		Help:      "Payments recorded by ledger side.",
	}, []string{"side"})

	// PaymentsRejected 被拒绝的付款
	PaymentsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bgsport",
		Name:      "payments_rejected_total",
		Help:      "Payments rejected by ledger side and reason.",
	}, []string{"side", "reason"})

	// ImportRows 导入行数（inserted / updated / skipped / rejected）
	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bgsport",
		Name:      "import_rows_total",
		Help:      "Imported order rows by outcome.",
	}, []string{"outcome"})

	// OrdersClosed 结单数量
	OrdersClosed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bgsport",
		Name:      "orders_closed_total",
		Help:      "Orders moved to completed.",
	})

	// OverdueReminders 逾期提醒数量
	OverdueReminders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bgsport",
		Name:      "overdue_reminders_total",
		Help:      "Overdue payment reminders recorded by side.",
	}, []string{"side"})
)

// ObserveHTTP 记录一次 HTTP 请求
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Handler 返回 /metrics 处理器
func Handler() http.Handler {
	return promhttp.Handler()
}
