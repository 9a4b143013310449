package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/i18n"
	"github.com/bgsport/backoffice/internal/models"
	"github.com/bgsport/backoffice/internal/settlement"
	"github.com/bgsport/backoffice/internal/spreadsheet"
)

// ImportDirectory 导入解析使用的面料与员工目录（纯内存，可脱离数据库测试）
type ImportDirectory struct {
	fabricsByID   map[uint]models.Fabric
	fabricsByName map[string]models.Fabric
	usersByID     map[uint]models.User
	usersByName   map[string]map[string]models.User
}

// NewImportDirectory 构建目录；同名时保留先出现的记录
func NewImportDirectory(fabrics []models.Fabric, users []models.User) *ImportDirectory {
	dir := &ImportDirectory{
		fabricsByID:   make(map[uint]models.Fabric, len(fabrics)),
		fabricsByName: make(map[string]models.Fabric, len(fabrics)),
		usersByID:     make(map[uint]models.User, len(users)),
		usersByName:   make(map[string]map[string]models.User),
	}
	for _, fabric := range fabrics {
		dir.fabricsByID[fabric.ID] = fabric
		key := strings.ToLower(strings.TrimSpace(fabric.Name))
		if _, ok := dir.fabricsByName[key]; !ok && key != "" {
			dir.fabricsByName[key] = fabric
		}
	}
	for _, user := range users {
		dir.usersByID[user.ID] = user
		byName, ok := dir.usersByName[user.Role]
		if !ok {
			byName = map[string]models.User{}
			dir.usersByName[user.Role] = byName
		}
		key := strings.ToLower(strings.TrimSpace(user.FullName))
		if _, exists := byName[key]; !exists && key != "" {
			byName[key] = user
		}
	}
	return dir
}

// ResolveFabric 先按 ID，再按名称（不区分大小写）
func (d *ImportDirectory) ResolveFabric(rawID, name string) (*models.Fabric, bool) {
	if id, ok := parseImportID(rawID); ok {
		if fabric, found := d.fabricsByID[id]; found {
			return &fabric, true
		}
	}
	if key := strings.ToLower(strings.TrimSpace(name)); key != "" {
		if fabric, found := d.fabricsByName[key]; found {
			return &fabric, true
		}
	}
	return nil, false
}

// Resolve 按角色解析员工：ID 命中即采用（角色不符视为未找到），否则在该角色内按姓名查找
func (d *ImportDirectory) Resolve(role, rawID, name string) (*models.User, bool) {
	var picked *models.User
	if id, ok := parseImportID(rawID); ok {
		if user, found := d.usersByID[id]; found {
			picked = &user
		}
	}
	if picked == nil {
		if key := strings.ToLower(strings.TrimSpace(name)); key != "" {
			if user, found := d.usersByName[role][key]; found {
				picked = &user
			}
		}
	}
	if picked == nil || picked.Role != role {
		return nil, false
	}
	return picked, true
}

// ImportPayload 通过校验的导入行
type ImportPayload struct {
	Row            int               `json:"row"`
	OrderCode      string            `json:"order_code"`
	OrderDate      string            `json:"order_date"`
	FabricName     string            `json:"fabric_name"`
	AdminName      string            `json:"admin_name"`
	GraphicName    string            `json:"graphic_name"`
	Status         string            `json:"status"`
	InitialDeposit int64             `json:"initial_deposit"`
	Settlement     settlement.Result `json:"settlement"`
	Order          models.Order      `json:"-"`

	wantCompleted bool
}

// ImportRejection 被拒绝的导入行
type ImportRejection struct {
	Row       int    `json:"row"`
	OrderCode string `json:"order_code"`
	Reason    string `json:"reason"`
}

// importRules 导入解析时套用的结算规则
type importRules struct {
	defaultUpcharge       int64
	requireFactorySettled bool
}

// importQtyColumns 数量列；importAmountColumns 金额列
var (
	importQtyColumns    = []string{"short_qty", "long_qty", "free_qty", "qty_3xl", "qty_4xl", "qty_5xl"}
	importAmountColumns = []string{"extra_charge", "design_deposit", "factory_cost", "initial_deposit"}
)

// parseImportRows 逐行校验，单行失败不影响其他行
func parseImportRows(rows []spreadsheet.Row, dir *ImportDirectory, rules importRules, locale string) ([]ImportPayload, []ImportRejection) {
	accepted := make([]ImportPayload, 0, len(rows))
	rejected := make([]ImportRejection, 0)
	for _, row := range rows {
		payload, reason := parseImportRow(row, dir, rules, locale)
		if reason != "" {
			rejected = append(rejected, ImportRejection{
				Row:       row.Number,
				OrderCode: strings.TrimSpace(row.Get("order_code")),
				Reason:    reason,
			})
			continue
		}
		accepted = append(accepted, payload)
	}
	return accepted, rejected
}

func parseImportRow(row spreadsheet.Row, dir *ImportDirectory, rules importRules, locale string) (ImportPayload, string) {
	orderDate, ok := ParseImportDate(row.Get("order_date", "date"))
	if !ok {
		return ImportPayload{}, i18n.T(locale, "import.reason.missing_date")
	}
	code := strings.TrimSpace(row.Get("order_code"))
	if code == "" {
		return ImportPayload{}, i18n.T(locale, "import.reason.missing_code")
	}
	fabricName := row.Get("fabric_name")
	fabric, ok := dir.ResolveFabric(row.Get("fabric_id"), fabricName)
	if !ok {
		return ImportPayload{}, i18n.Sprintf(locale, "import.reason.fabric_not_found", firstNonEmpty(fabricName, row.Get("fabric_id")))
	}
	adminName := row.Get("admin_name")
	admin, ok := dir.Resolve(constants.UserRoleAdmin, row.Get("admin_user_id"), adminName)
	if !ok {
		return ImportPayload{}, i18n.Sprintf(locale, "import.reason.admin_not_found", firstNonEmpty(adminName, row.Get("admin_user_id")))
	}
	graphicName := row.Get("graphic_name")
	graphic, ok := dir.Resolve(constants.UserRoleGraphic, row.Get("graphic_user_id"), graphicName)
	if !ok {
		return ImportPayload{}, i18n.Sprintf(locale, "import.reason.graphic_not_found", firstNonEmpty(graphicName, row.Get("graphic_user_id")))
	}

	numbers := make(map[string]int64, len(importQtyColumns)+len(importAmountColumns))
	for _, column := range importAmountColumns {
		value, ok := parseImportNumber(row.Get(column), maxOrderAmount)
		if !ok {
			return ImportPayload{}, i18n.Sprintf(locale, "import.reason.number_invalid", column)
		}
		numbers[column] = value
	}
	for _, column := range importQtyColumns {
		value, ok := parseImportNumber(row.Get(column), maxOrderQty)
		if !ok {
			return ImportPayload{}, i18n.Sprintf(locale, "import.reason.number_invalid", column)
		}
		numbers[column] = value
	}
	charges := OrderChargesInput{
		ShortQty:      int(numbers["short_qty"]),
		LongQty:       int(numbers["long_qty"]),
		FreeQty:       int(numbers["free_qty"]),
		Qty3XL:        int(numbers["qty_3xl"]),
		Qty4XL:        int(numbers["qty_4xl"]),
		Qty5XL:        int(numbers["qty_5xl"]),
		SizeUpcharge:  rules.defaultUpcharge,
		ExtraCharge:   numbers["extra_charge"],
		DesignDeposit: numbers["design_deposit"],
		FactoryCost:   numbers["factory_cost"],
	}
	if err := charges.validate(); err != nil {
		return ImportPayload{}, i18n.T(locale, "import.reason.charges_invalid")
	}
	adminID := admin.ID
	graphicID := graphic.ID
	order := models.Order{
		OrderCode:              code,
		OrderDate:              orderDate,
		CustomerPhone:          strings.TrimSpace(row.Get("customer_phone", "phone")),
		FactoryBillCode:        strings.TrimSpace(row.Get("factory_bill_code")),
		AdminUserID:            &adminID,
		GraphicUserID:          &graphicID,
		ProductionCompletedAt:  parseOptionalImportDate(row.Get("production_completed_at")),
		CustomerRemainingDueAt: parseOptionalImportDate(row.Get("customer_remaining_due_at")),
		FactoryPaymentDueAt:    parseOptionalImportDate(row.Get("factory_payment_due_at")),
		Status:                 constants.OrderStatusInProgress,
	}
	snapshotFabric(&order, fabric)
	charges.applyTo(&order, rules.defaultUpcharge)

	deposit := numbers["initial_deposit"]
	result := settlement.Compute(settlementInput(&order, deposit, 0))
	if deposit > result.NetTotal {
		deposit = result.NetTotal
		result = settlement.Compute(settlementInput(&order, deposit, 0))
	}
	applySettlementCache(&order, result)
	// completed 与结单使用同一规则，不满足时按进行中导入
	wantCompleted := strings.EqualFold(strings.TrimSpace(row.Get("status")), constants.OrderStatusCompleted)
	if wantCompleted && settlement.CheckClose(result, rules.requireFactorySettled) == nil {
		order.Status = constants.OrderStatusCompleted
	}

	return ImportPayload{
		Row:            row.Number,
		OrderCode:      code,
		OrderDate:      orderDate.Format(dateLayout),
		FabricName:     fabric.Name,
		AdminName:      admin.FullName,
		GraphicName:    graphic.FullName,
		Status:         order.Status,
		InitialDeposit: deposit,
		Settlement:     result,
		Order:          order,
		wantCompleted:  wantCompleted,
	}, ""
}

// dedupImportPayloads 按订单编码去重：保留首次出现的位置，内容取最后一行
func dedupImportPayloads(payloads []ImportPayload) []ImportPayload {
	index := make(map[string]int, len(payloads))
	out := make([]ImportPayload, 0, len(payloads))
	for _, payload := range payloads {
		if pos, ok := index[payload.OrderCode]; ok {
			out[pos] = payload
			continue
		}
		index[payload.OrderCode] = len(out)
		out = append(out, payload)
	}
	return out
}

var freeFormDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseImportDate 依次尝试 YYYY-MM-DD、表格日期序列号、常见自由格式
func ParseImportDate(raw string) (time.Time, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(dateLayout, text); err == nil {
		return dateOnly(parsed), true
	}
	if serial, err := strconv.ParseFloat(text, 64); err == nil {
		if serial < 1 || math.IsNaN(serial) || math.IsInf(serial, 0) {
			return time.Time{}, false
		}
		// 序列号以 1899-12-30 为基准，25569 对应 1970-01-01
		ms := int64(math.Round((serial - 25569) * 86400 * 1000))
		return dateOnly(time.UnixMilli(ms)), true
	}
	for _, layout := range freeFormDateLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return dateOnly(parsed), true
		}
	}
	return time.Time{}, false
}

func parseOptionalImportDate(raw string) *time.Time {
	parsed, ok := ParseImportDate(raw)
	if !ok {
		return nil
	}
	return &parsed
}

// parseImportNumber 去除千分位逗号；空值、非数字或负数按 0 处理，超过上限返回 false
func parseImportNumber(raw string, limit int64) (int64, bool) {
	text := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if text == "" {
		return 0, true
	}
	value, err := strconv.ParseFloat(text, 64)
	if math.IsInf(value, 1) || value > float64(limit) {
		return 0, false
	}
	if err != nil || math.IsNaN(value) || value < 0 {
		return 0, true
	}
	return int64(value), true
}

func parseImportID(raw string) (uint, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || value < 1 || value != math.Trunc(value) {
		return 0, false
	}
	return uint(value), true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
