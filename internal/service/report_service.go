package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/repository"
	"github.com/bgsport/backoffice/internal/spreadsheet"
)

// 报表类型
const (
	ReportSalesProfit = "sales-profit"
	ReportAdminSales  = "admin-sales"
	ReportGraphicWork = "graphic-work"
	ReportOrders      = "orders"
)

const (
	unknownAdminName      = "Unknown"
	unassignedGraphicName = "Unassigned"
)

// ReportService 报表服务
type ReportService struct {
	repo     repository.ReportRepository
	userRepo repository.UserRepository
}

// NewReportService 创建报表服务
func NewReportService(repo repository.ReportRepository, userRepo repository.UserRepository) *ReportService {
	return &ReportService{repo: repo, userRepo: userRepo}
}

// ReportQueryInput 报表查询输入
type ReportQueryInput struct {
	Year          int
	Month         string
	Prefix        string
	Status        string
	PaymentStatus string
	UserID        uint
}

// ReportPeriod 报表周期
type ReportPeriod struct {
	Label  string `json:"label"`
	From   string `json:"from"`
	To     string `json:"to"`
	Prefix string `json:"prefix"`
}

// SalesProfitSummary 销售利润汇总
type SalesProfitSummary struct {
	TotalSales   int64 `json:"total_sales"`
	TotalShirts  int64 `json:"total_shirts"`
	TotalOrders  int64 `json:"total_orders"`
	TotalProfit  int64 `json:"total_profit"`
	ProfitOrders int64 `json:"profit_orders"`
}

// SalesProfitRow 销售利润明细
type SalesProfitRow struct {
	OrderID               uint   `json:"order_id"`
	OrderCode             string `json:"order_code"`
	OrderDate             string `json:"order_date"`
	ProductionCompletedAt string `json:"production_completed_at"`
	Shirts                int    `json:"shirts"`
	ShortQty              int    `json:"short_qty"`
	LongQty               int    `json:"long_qty"`
	NetTotal              int64  `json:"net_total"`
	FactoryCost           int64  `json:"factory_cost"`
	Profit                int64  `json:"profit"`
	Status                string `json:"status"`
}

// SalesProfitReport 销售利润报表
type SalesProfitReport struct {
	Period  ReportPeriod       `json:"period"`
	Status  string             `json:"status"`
	Summary SalesProfitSummary `json:"summary"`
	Rows    []SalesProfitRow   `json:"rows"`
}

// UserWorkSummary 员工业绩行
type UserWorkSummary struct {
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	ShirtsTotal int64  `json:"shirts_total"`
	OrdersTotal int64  `json:"orders_total"`
	ValueTotal  int64  `json:"value_total"`
}

// UserWorkReport 销售/设计业绩报表
type UserWorkReport struct {
	Period ReportPeriod      `json:"period"`
	Rows   []UserWorkSummary `json:"rows"`
	Totals UserWorkSummary   `json:"totals"`
}

// OrdersReportRow 订单报表明细
type OrdersReportRow struct {
	OrderID                 uint   `json:"order_id"`
	OrderCode               string `json:"order_code"`
	CustomerPhone           string `json:"customer_phone"`
	OrderDate               string `json:"order_date"`
	ProductionCompletedDate string `json:"production_completed_date"`
	NetTotal                int64  `json:"net_total"`
	PaidAmount              int64  `json:"paid_amount"`
	OutstandingAmount       int64  `json:"outstanding_amount"`
	PaymentStatus           string `json:"payment_status"`
	Status                  string `json:"status"`
}

// OrdersReportSummary 订单报表汇总
type OrdersReportSummary struct {
	TotalOrders       int64 `json:"total_orders"`
	NetTotal          int64 `json:"net_total"`
	PaidAmount        int64 `json:"paid_amount"`
	OutstandingAmount int64 `json:"outstanding_amount"`
	PaidOrders        int64 `json:"paid_orders"`
	UnpaidOrders      int64 `json:"unpaid_orders"`
}

// OrdersReport 订单报表
type OrdersReport struct {
	Period        ReportPeriod        `json:"period"`
	PaymentStatus string              `json:"payment_status"`
	Status        string              `json:"status"`
	Summary       OrdersReportSummary `json:"summary"`
	Rows          []OrdersReportRow   `json:"rows"`
}

// SheetExport 单工作表导出内容
type SheetExport struct {
	Filename string
	Table    spreadsheet.Table
}

// SalesProfit 销售与利润：销售按下单日期，利润按生产完成日期
func (s *ReportService) SalesProfit(input ReportQueryInput) (*SalesProfitReport, error) {
	filter, period, err := buildReportFilter(input)
	if err != nil {
		return nil, err
	}
	filter.Status = normalizeStatusFilter(input.Status)

	totals, err := s.repo.GetSalesTotals(filter)
	if err != nil {
		return nil, err
	}
	profit, err := s.repo.GetCompletedProfit(filter)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.ListOrders(filter)
	if err != nil {
		return nil, err
	}
	rows := make([]SalesProfitRow, 0, len(orders))
	for _, order := range orders {
		net := order.NetTotal.Int64()
		cost := order.FactoryCost.Int64()
		rows = append(rows, SalesProfitRow{
			OrderID:               order.ID,
			OrderCode:             order.OrderCode,
			OrderDate:             order.OrderDate.UTC().Format(dateLayout),
			ProductionCompletedAt: formatDate(order.ProductionCompletedAt),
			Shirts:                order.ShortQty + order.LongQty,
			ShortQty:              order.ShortQty,
			LongQty:               order.LongQty,
			NetTotal:              net,
			FactoryCost:           cost,
			Profit:                net - cost,
			Status:                order.Status,
		})
	}
	return &SalesProfitReport{
		Period: period,
		Status: statusLabel(filter.Status),
		Summary: SalesProfitSummary{
			TotalSales:   totals.TotalSales,
			TotalShirts:  totals.TotalShirts,
			TotalOrders:  totals.TotalOrders,
			TotalProfit:  profit.TotalProfit,
			ProfitOrders: profit.OrderCount,
		},
		Rows: rows,
	}, nil
}

// AdminSales 按销售管理员统计，按销售额倒序
func (s *ReportService) AdminSales(input ReportQueryInput) (*UserWorkReport, error) {
	filter, period, err := buildReportFilter(input)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.GroupByAdmin(filter, input.UserID)
	if err != nil {
		return nil, err
	}
	names, err := s.userNames(constants.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	report := buildUserWorkReport(period, rows, names, unknownAdminName)
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].ValueTotal > report.Rows[j].ValueTotal
	})
	return report, nil
}

// GraphicWork 按设计师统计，按订单数倒序
func (s *ReportService) GraphicWork(input ReportQueryInput) (*UserWorkReport, error) {
	filter, period, err := buildReportFilter(input)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.GroupByGraphic(filter, input.UserID)
	if err != nil {
		return nil, err
	}
	names, err := s.userNames(constants.UserRoleGraphic)
	if err != nil {
		return nil, err
	}
	report := buildUserWorkReport(period, rows, names, unassignedGraphicName)
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].OrdersTotal > report.Rows[j].OrdersTotal
	})
	return report, nil
}

// Orders 订单报表：可按付款状态与生产状态过滤
func (s *ReportService) Orders(input ReportQueryInput) (*OrdersReport, error) {
	filter, period, err := buildReportFilter(input)
	if err != nil {
		return nil, err
	}
	filter.Status = normalizeStatusFilter(input.Status)
	filter.Payment = normalizePaymentFilter(input.PaymentStatus)

	orders, err := s.repo.ListOrders(filter)
	if err != nil {
		return nil, err
	}
	report := &OrdersReport{
		Period:        period,
		PaymentStatus: filter.Payment,
		Status:        statusLabel(filter.Status),
		Rows:          make([]OrdersReportRow, 0, len(orders)),
	}
	for _, order := range orders {
		balance := order.Balance.Int64()
		paid := order.InitialDeposit.Int64()
		paymentStatus := constants.PaymentFilterUnpaid
		if balance == 0 {
			paymentStatus = constants.PaymentFilterPaid
			report.Summary.PaidOrders++
		} else {
			report.Summary.UnpaidOrders++
		}
		report.Summary.TotalOrders++
		report.Summary.NetTotal += order.NetTotal.Int64()
		report.Summary.PaidAmount += paid
		report.Summary.OutstandingAmount += balance
		report.Rows = append(report.Rows, OrdersReportRow{
			OrderID:                 order.ID,
			OrderCode:               order.OrderCode,
			CustomerPhone:           order.CustomerPhone,
			OrderDate:               order.OrderDate.UTC().Format(dateLayout),
			ProductionCompletedDate: formatDate(order.ProductionCompletedAt),
			NetTotal:                order.NetTotal.Int64(),
			PaidAmount:              paid,
			OutstandingAmount:       balance,
			PaymentStatus:           paymentStatus,
			Status:                  order.Status,
		})
	}
	return report, nil
}

// BuildExport 生成报表 xlsx 内容（末尾追加汇总行）
func (s *ReportService) BuildExport(kind string, input ReportQueryInput) (*SheetExport, error) {
	switch kind {
	case ReportSalesProfit:
		report, err := s.SalesProfit(input)
		if err != nil {
			return nil, err
		}
		return salesProfitExport(report), nil
	case ReportAdminSales:
		report, err := s.AdminSales(input)
		if err != nil {
			return nil, err
		}
		return userWorkExport(report, "admin-sales-summary", "admin_sales_summary", []string{"ຊື່ແອັດມິນ", "ຈຳນວນເສື້ອທັງໝົດ", "ຈຳນວນອໍເດີ້", "ຍອດຂາຍລວມ"}), nil
	case ReportGraphicWork:
		report, err := s.GraphicWork(input)
		if err != nil {
			return nil, err
		}
		return userWorkExport(report, "graphic-work-summary", "graphic_work_summary", []string{"ຊື່ Graphic", "ຈຳນວນເສື້ອລວມ", "ຈຳນວນອໍເດີ້ລວມ", "ມູນຄ່າອໍເດີ້ລວມ"}), nil
	case ReportOrders:
		report, err := s.Orders(input)
		if err != nil {
			return nil, err
		}
		return ordersExport(report), nil
	default:
		return nil, ErrReportTypeInvalid
	}
}

func (s *ReportService) userNames(role string) (map[uint]string, error) {
	names := map[uint]string{}
	if s.userRepo == nil {
		return names, nil
	}
	users, err := s.userRepo.ListByRole(role, false)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		names[user.ID] = user.FullName
	}
	return names, nil
}

func buildUserWorkReport(period ReportPeriod, rows []repository.UserWorkRow, names map[uint]string, fallbackName string) *UserWorkReport {
	report := &UserWorkReport{
		Period: period,
		Rows:   make([]UserWorkSummary, 0, len(rows)),
		Totals: UserWorkSummary{Name: "ລວມທັງໝົດ"},
	}
	for _, row := range rows {
		name, ok := names[row.UserID]
		if !ok || strings.TrimSpace(name) == "" {
			name = fallbackName
		}
		report.Rows = append(report.Rows, UserWorkSummary{
			UserID:      row.UserID,
			Name:        name,
			ShirtsTotal: row.ShirtsTotal,
			OrdersTotal: row.OrdersTotal,
			ValueTotal:  row.SalesTotal,
		})
		report.Totals.ShirtsTotal += row.ShirtsTotal
		report.Totals.OrdersTotal += row.OrdersTotal
		report.Totals.ValueTotal += row.SalesTotal
	}
	return report
}

// buildReportFilter 年 + 月（1-12 或 ALL）转为 UTC [from, to)
func buildReportFilter(input ReportQueryInput) (repository.OrderPeriodFilter, ReportPeriod, error) {
	year := input.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	if year < 2000 || year > 2100 {
		return repository.OrderPeriodFilter{}, ReportPeriod{}, ErrReportPeriodInvalid
	}
	prefix, err := normalizeReportPrefix(input.Prefix)
	if err != nil {
		return repository.OrderPeriodFilter{}, ReportPeriod{}, err
	}

	month := strings.ToUpper(strings.TrimSpace(input.Month))
	var from, to time.Time
	var label string
	if month == "" || month == constants.OrderPrefixAll {
		from = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(1, 0, 0)
		label = fmt.Sprintf("%d-ALL", year)
	} else {
		m, err := strconv.Atoi(month)
		if err != nil || m < 1 || m > 12 {
			return repository.OrderPeriodFilter{}, ReportPeriod{}, ErrReportPeriodInvalid
		}
		from = time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0)
		label = fmt.Sprintf("%d-%02d", year, m)
	}
	filter := repository.OrderPeriodFilter{From: from, To: to, Prefix: prefix}
	period := ReportPeriod{
		Label:  label,
		From:   from.Format(dateLayout),
		To:     to.AddDate(0, 0, -1).Format(dateLayout),
		Prefix: prefix,
	}
	return filter, period, nil
}

func normalizeReportPrefix(raw string) (string, error) {
	prefix := strings.ToUpper(strings.TrimSpace(raw))
	if prefix == "" || prefix == constants.OrderPrefixAll {
		return constants.OrderPrefixAll, nil
	}
	if prefix == constants.OrderPrefixOther {
		return prefix, nil
	}
	for _, known := range constants.OrderCodePrefixes {
		if prefix == known {
			return prefix, nil
		}
	}
	return "", ErrReportPrefixInvalid
}

func normalizeStatusFilter(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.OrderStatusInProgress:
		return constants.OrderStatusInProgress
	case constants.OrderStatusCompleted:
		return constants.OrderStatusCompleted
	default:
		return ""
	}
}

func normalizePaymentFilter(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.PaymentFilterPaid:
		return constants.PaymentFilterPaid
	case constants.PaymentFilterUnpaid:
		return constants.PaymentFilterUnpaid
	default:
		return constants.PaymentFilterAll
	}
}

func statusLabel(status string) string {
	if status == "" {
		return "all"
	}
	return status
}

func orderStatusLabel(status string) string {
	if status == constants.OrderStatusCompleted {
		return "ສຳເລັດ"
	}
	return "ກຳລັງດຳເນີນ"
}

func salesProfitExport(report *SalesProfitReport) *SheetExport {
	rows := make([][]interface{}, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []interface{}{
			r.OrderDate, r.ProductionCompletedAt, r.OrderCode, r.Shirts, r.ShortQty, r.LongQty,
			r.NetTotal, r.FactoryCost, r.Profit, orderStatusLabel(r.Status),
		})
	}
	return &SheetExport{
		Filename: fmt.Sprintf("sales-profit-%s.xlsx", report.Period.Label),
		Table: spreadsheet.Table{
			Sheet:   "sales_profit_report",
			Headers: []string{"ວັນທີສັ່ງ", "ວັນທີຜະລິດສຳເລັດ", "ລະຫັດອໍເດີ", "ຈຳນວນເສື້ອ", "ແຂນສັ້ນ", "ແຂນຍາວ", "ຍອດຂາຍສຸດທິ", "ຕົ້ນທຶນໂຮງງານ", "ກຳໄລ", "ສະຖານະ"},
			Rows:    rows,
			Summary: []interface{}{
				"ສະຫຼຸບລວມ",
				report.Period.Label,
				fmt.Sprintf("prefix=%s status=%s", report.Period.Prefix, report.Status),
				report.Summary.TotalShirts, 0, 0,
				report.Summary.TotalSales, 0,
				report.Summary.TotalProfit,
				fmt.Sprintf("ລວມ %d ອໍເດີ", report.Summary.TotalOrders),
			},
		},
	}
}

func userWorkExport(report *UserWorkReport, filePrefix, sheet string, headers []string) *SheetExport {
	rows := make([][]interface{}, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, []interface{}{r.Name, r.ShirtsTotal, r.OrdersTotal, r.ValueTotal})
	}
	return &SheetExport{
		Filename: fmt.Sprintf("%s-%s.xlsx", filePrefix, report.Period.Label),
		Table: spreadsheet.Table{
			Sheet:   sheet,
			Headers: headers,
			Rows:    rows,
			Summary: []interface{}{report.Totals.Name, report.Totals.ShirtsTotal, report.Totals.OrdersTotal, report.Totals.ValueTotal},
		},
	}
}

func ordersExport(report *OrdersReport) *SheetExport {
	rows := make([][]interface{}, 0, len(report.Rows))
	for _, r := range report.Rows {
		paymentLabel := "ຄ້າງຈ່າຍ"
		if r.PaymentStatus == constants.PaymentFilterPaid {
			paymentLabel = "ຈ່າຍແລ້ວ"
		}
		rows = append(rows, []interface{}{
			r.OrderCode, r.CustomerPhone, r.OrderDate, r.ProductionCompletedDate,
			r.NetTotal, r.PaidAmount, r.OutstandingAmount, paymentLabel, r.Status,
		})
	}
	return &SheetExport{
		Filename: fmt.Sprintf("orders-report-%s.xlsx", report.Period.Label),
		Table: spreadsheet.Table{
			Sheet:   "orders_report",
			Headers: []string{"order_code", "customer_phone", "order_date", "production_completed_date", "net_total", "paid_amount", "outstanding_amount", "payment_status", "production_status"},
			Rows:    rows,
			Summary: []interface{}{
				"ສະຫຼຸບລວມ",
				report.Period.Label,
				fmt.Sprintf("prefix=%s", report.Period.Prefix),
				fmt.Sprintf("payment=%s production=%s", report.PaymentStatus, report.Status),
				report.Summary.NetTotal,
				report.Summary.PaidAmount,
				report.Summary.OutstandingAmount,
				fmt.Sprintf("ຈ່າຍແລ້ວ=%d ອໍເດີ", report.Summary.PaidOrders),
				fmt.Sprintf("ຄ້າງຈ່າຍ=%d ອໍເດີ", report.Summary.UnpaidOrders),
			},
		},
	}
}
