package constants

// 订单状态常量
const (
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
)

// 用户角色常量
const (
	UserRoleAdmin      = "admin"
	UserRoleManager    = "manager"
	UserRoleStaff      = "staff"
	UserRoleGraphic    = "graphic"
	UserRoleAccountant = "accountant"
)

// 订单历史动作常量
const (
	HistoryActionCreateOrder          = "create_order"
	HistoryActionUpdateOrder          = "update_order"
	HistoryActionReceiveCustomerPay   = "receive_customer_payment"
	HistoryActionPayFactory           = "pay_factory"
	HistoryActionProductionCompleted  = "production_completed"
	HistoryActionCloseOrder           = "close_order"
	HistoryActionPaymentOverdue       = "payment_overdue"
	HistoryActionImportOrder          = "import_order"
	HistoryDetailCloseOrder           = "Closed order after customer/factory settled"
	HistoryDetailUpdateOrder          = "Updated order details and recalculated totals"
	HistoryDetailProductionCompleted  = "Marked production completed"
	HistoryDetailLegacyDepositOpening = "legacy initial deposit"
)

// 账本方向常量
const (
	LedgerSideCustomer = "customer"
	LedgerSideFactory  = "factory"
)

// 订单编码前缀常量（按产品线）
const (
	OrderPrefixAll   = "ALL"
	OrderPrefixOther = "OTHER"
)

// OrderCodePrefixes 报表与列表可选的订单前缀
var OrderCodePrefixes = []string{
	"PKF26",
	"PKLF26",
	"MKF26",
	"MKLF26",
	"PMF26",
	"PMLF26",
	"MMF26",
	"MMLF26",
}

// 付款筛选常量
const (
	PaymentFilterAll    = "all"
	PaymentFilterPaid   = "paid"
	PaymentFilterUnpaid = "unpaid"
)

// 导入模式常量
const (
	ImportModeInsertOnly = "insert_only"
	ImportModeUpsert     = "upsert"
)

// 结算默认值
const (
	DefaultSizeUpcharge int64 = 20000
)

// 异步任务常量
const (
	QueueDefault             = "default"
	TaskOrderHistoryAppend   = "order:history_append"
	TaskOrderOverdueReminder = "order:overdue_reminder"
)
