package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bgsport/backoffice/internal/config"
	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/i18n"
	"github.com/bgsport/backoffice/internal/logger"
	"github.com/bgsport/backoffice/internal/metrics"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/repository"
	"github.com/bgsport/backoffice/internal/settlement"
	"github.com/bgsport/backoffice/internal/spreadsheet"

	"gorm.io/gorm"
)

const (
	importTemplateSheet    = "orders_template"
	importTemplateFilename = "orders-import-template.xlsx"
)

// importTemplateHeaders 导入模板表头（与解析器识别的列名一致）
var importTemplateHeaders = []string{
	"order_date",
	"order_code",
	"customer_phone",
	"factory_bill_code",
	"fabric_name",
	"short_qty",
	"long_qty",
	"free_qty",
	"qty_3xl",
	"qty_4xl",
	"qty_5xl",
	"extra_charge",
	"design_deposit",
	"initial_deposit",
	"factory_cost",
	"admin_name",
	"graphic_name",
	"production_completed_at",
	"customer_remaining_due_at",
	"factory_payment_due_at",
	"status",
}

// ImportService 订单批量导入
type ImportService struct {
	orderRepo      repository.OrderRepository
	paymentRepo    repository.PaymentRepository
	fabricRepo     repository.FabricRepository
	userRepo       repository.UserRepository
	historyService *OrderHistoryService
	rules          importRules
	maxRows        int
}

// NewImportService 创建导入服务
func NewImportService(orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository, fabricRepo repository.FabricRepository, userRepo repository.UserRepository, historyService *OrderHistoryService, cfg config.SettlementConfig, maxRows int) *ImportService {
	defaultUpcharge := cfg.DefaultSizeUpcharge
	if defaultUpcharge <= 0 {
		defaultUpcharge = constants.DefaultSizeUpcharge
	}
	return &ImportService{
		orderRepo:      orderRepo,
		paymentRepo:    paymentRepo,
		fabricRepo:     fabricRepo,
		userRepo:       userRepo,
		historyService: historyService,
		rules: importRules{
			defaultUpcharge:       defaultUpcharge,
			requireFactorySettled: cfg.RequireFactorySettled,
		},
		maxRows: maxRows,
	}
}

// ImportPreview 预览结果
type ImportPreview struct {
	TotalRows int               `json:"total_rows"`
	Accepted  []ImportPayload   `json:"accepted"`
	Rejected  []ImportRejection `json:"rejected"`
}

// ImportResult 导入结果
type ImportResult struct {
	Mode     string            `json:"mode"`
	Inserted int               `json:"inserted"`
	Updated  int               `json:"updated"`
	Skipped  int               `json:"skipped"`
	Rejected int               `json:"rejected"`
	Rows     []ImportRejection `json:"rejected_rows"`
	Existing []ImportRejection `json:"skipped_rows"`
}

// Preview 解析并校验工作簿，不落库
func (s *ImportService) Preview(r io.Reader, locale string) (*ImportPreview, error) {
	rows, err := s.readRows(r)
	if err != nil {
		return nil, err
	}
	accepted, rejected, err := s.parse(rows, locale)
	if err != nil {
		return nil, err
	}
	return &ImportPreview{
		TotalRows: len(rows),
		Accepted:  accepted,
		Rejected:  rejected,
	}, nil
}

// Apply 导入工作簿：insert_only 跳过已存在编码，upsert 覆盖并按流水重算
func (s *ImportService) Apply(ctx context.Context, r io.Reader, mode, locale string) (*ImportResult, error) {
	mode = strings.TrimSpace(mode)
	if mode == "" {
		mode = constants.ImportModeInsertOnly
	}
	if mode != constants.ImportModeInsertOnly && mode != constants.ImportModeUpsert {
		return nil, ErrImportModeInvalid
	}
	rows, err := s.readRows(r)
	if err != nil {
		return nil, err
	}
	accepted, rejected, err := s.parse(rows, locale)
	if err != nil {
		return nil, err
	}
	payloads := dedupImportPayloads(accepted)

	result := &ImportResult{
		Mode:     mode,
		Rejected: len(rejected),
		Rows:     rejected,
		Existing: []ImportRejection{},
	}
	if len(payloads) == 0 {
		s.observe(result)
		return result, nil
	}

	codes := make([]string, 0, len(payloads))
	for _, payload := range payloads {
		codes = append(codes, payload.OrderCode)
	}
	existingOrders, err := s.orderRepo.ListByCodes(codes)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]uint, len(existingOrders))
	for _, order := range existingOrders {
		existing[order.OrderCode] = order.ID
	}
	skip := func(payload ImportPayload, key string) {
		result.Skipped++
		result.Existing = append(result.Existing, ImportRejection{
			Row:       payload.Row,
			OrderCode: payload.OrderCode,
			Reason:    i18n.T(locale, key),
		})
	}

	type written struct {
		orderID uint
		detail  string
	}
	writes := make([]written, 0, len(payloads))
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)
		for i := range payloads {
			payload := payloads[i]
			if id, ok := existing[payload.OrderCode]; ok {
				if mode == constants.ImportModeInsertOnly {
					skip(payload, "import.reason.exists")
					continue
				}
				err := s.overwrite(orderRepo, paymentRepo, id, payload)
				if errors.Is(err, ErrOrderAlreadyCompleted) {
					skip(payload, "import.reason.completed")
					continue
				}
				if err != nil {
					return err
				}
				result.Updated++
				writes = append(writes, written{orderID: id, detail: fmt.Sprintf("Import upsert row %d", payload.Row)})
				continue
			}
			orderID, err := s.insert(orderRepo, paymentRepo, payload)
			if err != nil {
				return err
			}
			result.Inserted++
			writes = append(writes, written{orderID: orderID, detail: fmt.Sprintf("Import insert row %d", payload.Row)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, w := range writes {
		s.historyService.Record(w.orderID, constants.HistoryActionImportOrder, w.detail, now)
	}
	if len(writes) > 0 {
		invalidateDashboardCache(ctx)
	}
	s.observe(result)
	logger.Infow("orders_imported",
		"mode", mode,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"rejected", result.Rejected,
	)
	return result, nil
}

// Template 生成导入模板工作簿内容
func (s *ImportService) Template() (*SheetExport, error) {
	fabricName := "Cotton"
	if fabrics, err := s.fabricRepo.ListActive(); err == nil && len(fabrics) > 0 {
		fabricName = fabrics[0].Name
	}
	adminName := s.firstUserName(constants.UserRoleAdmin, "Admin")
	graphicName := s.firstUserName(constants.UserRoleGraphic, "Graphic")
	today := time.Now().UTC().Format(dateLayout)
	example := []interface{}{
		today,
		constants.OrderCodePrefixes[0] + "-0001",
		"02055555555",
		"",
		fabricName,
		10, 5, 0, 0, 0, 0,
		0, 0, 500000, 700000,
		adminName,
		graphicName,
		"", "", "",
		constants.OrderStatusInProgress,
	}
	return &SheetExport{
		Filename: importTemplateFilename,
		Table: spreadsheet.Table{
			Sheet:   importTemplateSheet,
			Headers: importTemplateHeaders,
			Rows:    [][]interface{}{example},
		},
	}, nil
}

func (s *ImportService) firstUserName(role, fallback string) string {
	users, err := s.userRepo.ListByRole(role, true)
	if err != nil || len(users) == 0 {
		return fallback
	}
	return users[0].FullName
}

func (s *ImportService) readRows(r io.Reader) ([]spreadsheet.Row, error) {
	rows, err := spreadsheet.ReadFirstSheet(r, s.maxRows)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrTooManyRows) {
			return nil, ErrImportTooManyRows
		}
		logger.Warnw("import_workbook_read_failed", "error", err)
		return nil, ErrImportFileInvalid
	}
	return rows, nil
}

func (s *ImportService) parse(rows []spreadsheet.Row, locale string) ([]ImportPayload, []ImportRejection, error) {
	fabrics, err := s.fabricRepo.ListAll()
	if err != nil {
		return nil, nil, err
	}
	admins, err := s.userRepo.ListByRole(constants.UserRoleAdmin, false)
	if err != nil {
		return nil, nil, err
	}
	graphics, err := s.userRepo.ListByRole(constants.UserRoleGraphic, false)
	if err != nil {
		return nil, nil, err
	}
	dir := NewImportDirectory(fabrics, append(admins, graphics...))
	accepted, rejected := parseImportRows(rows, dir, s.rules, locale)
	return accepted, rejected, nil
}

func (s *ImportService) insert(orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository, payload ImportPayload) (uint, error) {
	order := payload.Order
	now := time.Now().UTC()
	stampImportedPaidFull(&order, payload.Settlement, now)
	if err := orderRepo.Create(&order); err != nil {
		return 0, err
	}
	if payload.InitialDeposit > 0 {
		if err := paymentRepo.CreateCustomer(&models.CustomerPayment{
			OrderID: order.ID,
			Amount:  models.NewMoney(payload.InitialDeposit),
			PaidAt:  order.OrderDate,
			Note:    initialDepositNote,
		}); err != nil {
			return 0, err
		}
	}
	return order.ID, nil
}

// overwrite 覆盖订单字段；已有客户流水时以流水为准，导入的订金只在流水为空时写入开账行。
// 已完成订单不可覆盖；面料未变时沿用原快照价格。
func (s *ImportService) overwrite(orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository, id uint, payload ImportPayload) error {
	current, err := orderRepo.GetByIDForUpdate(id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrOrderNotFound
	}
	if current.Status == constants.OrderStatusCompleted {
		return ErrOrderAlreadyCompleted
	}
	customer, err := paymentRepo.SumCustomer(id)
	if err != nil {
		return err
	}
	factory, err := paymentRepo.SumFactory(id)
	if err != nil {
		return err
	}

	order := payload.Order
	order.ID = current.ID
	order.CreatedAt = current.CreatedAt
	order.CustomerPaidFullAt = current.CustomerPaidFullAt
	order.FactoryPaidFullAt = current.FactoryPaidFullAt
	order.InitialDeposit = models.Money{}
	if sameFabric(current.FabricID, order.FabricID) {
		keepFabricSnapshot(&order, current)
	}

	if customer.Entries == 0 && payload.InitialDeposit > 0 {
		if err := paymentRepo.CreateCustomer(&models.CustomerPayment{
			OrderID: id,
			Amount:  models.NewMoney(payload.InitialDeposit),
			PaidAt:  order.OrderDate,
			Note:    initialDepositNote,
		}); err != nil {
			return err
		}
		customer = repository.LedgerTotal{Total: payload.InitialDeposit, Entries: 1}
	}

	result := computeOrderSettlement(&order, customer, factory)
	applySettlementCache(&order, result)
	order.Status = constants.OrderStatusInProgress
	order.CompletedAt = nil
	order.ClosedAt = nil
	if payload.wantCompleted && settlement.CheckClose(result, s.rules.requireFactorySettled) == nil {
		order.Status = constants.OrderStatusCompleted
	}
	if result.CustomerBalance != 0 {
		order.CustomerPaidFullAt = nil
	}
	if result.FactoryBalance != 0 {
		order.FactoryPaidFullAt = nil
	}
	now := time.Now().UTC()
	stampImportedPaidFull(&order, result, now)
	order.UpdatedAt = now
	return orderRepo.Update(&order)
}

func sameFabric(a, b *uint) bool {
	return a != nil && b != nil && *a == *b
}

// stampImportedPaidFull 补齐付清与完成时间
func stampImportedPaidFull(order *models.Order, r settlement.Result, now time.Time) {
	if r.CustomerBalance == 0 && r.CustomerPaid > 0 && order.CustomerPaidFullAt == nil {
		order.CustomerPaidFullAt = &now
	}
	if r.FactoryBalance == 0 && r.FactoryPaid > 0 && order.FactoryPaidFullAt == nil {
		order.FactoryPaidFullAt = &now
	}
	if order.Status == constants.OrderStatusCompleted && order.CompletedAt == nil {
		order.CompletedAt = &now
		order.ClosedAt = &now
	}
}

func (s *ImportService) observe(result *ImportResult) {
	metrics.ImportRows.WithLabelValues("inserted").Add(float64(result.Inserted))
	metrics.ImportRows.WithLabelValues("updated").Add(float64(result.Updated))
	metrics.ImportRows.WithLabelValues("skipped").Add(float64(result.Skipped))
	metrics.ImportRows.WithLabelValues("rejected").Add(float64(result.Rejected))
}
