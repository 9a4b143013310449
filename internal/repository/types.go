package repository

import "time"

// FabricListFilter 查询面料列表的过滤条件
type FabricListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Role     string
	IsActive *bool
	Search   string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	Status   string
	Prefix   string
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Payment  string
}

// OrderSearchFilter 搜索页过滤条件（不分页，按 Limit 截断）
type OrderSearchFilter struct {
	Prefix string
	Query  string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// OrderPeriodFilter 报表统计周期过滤条件，区间为 [From, To)
type OrderPeriodFilter struct {
	From    time.Time
	To      time.Time
	Prefix  string
	Status  string
	Payment string
}

// OverdueOrderRow 逾期订单扫描结果
type OverdueOrderRow struct {
	OrderID   uint
	OrderCode string
	DueAt     time.Time
}
