package repository

import (
	"fmt"
	"strings"

	"github.com/bgsport/backoffice/internal/constants"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// buildContainsCondition 构建多列不区分大小写的 OR 包含条件，并返回参数数量。
func buildContainsCondition(db *gorm.DB, columns []string) (string, int) {
	return buildContainsConditionByDialect(dbDialectName(db), columns)
}

func buildContainsConditionByDialect(dialect string, columns []string) (string, int) {
	operator := likeOperatorByDialect(dialect)
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ? ESCAPE '\\'", trimmed, operator))
	}
	return strings.Join(parts, " OR "), len(parts)
}

// escapeLike 转义 LIKE 通配符，用户输入按字面匹配。
func escapeLike(raw string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(raw)
}

// containsPattern 生成 %keyword% 形式的匹配参数。
func containsPattern(raw string) string {
	return "%" + escapeLike(strings.TrimSpace(raw)) + "%"
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}

// applyOrderPrefix 按订单编码前缀过滤：ALL 不过滤，OTHER 表示以数字开头。
func applyOrderPrefix(query *gorm.DB, prefix string) *gorm.DB {
	p := strings.ToUpper(strings.TrimSpace(prefix))
	switch p {
	case "", constants.OrderPrefixAll:
		return query
	case constants.OrderPrefixOther:
		return query.Where("substr(order_code, 1, 1) BETWEEN '0' AND '9'")
	default:
		return query.Where("order_code LIKE ? ESCAPE '\\'", escapeLike(p)+"%")
	}
}

// applyPaymentFilter 按客户付款状态过滤（依赖缓存的 balance 列）。
func applyPaymentFilter(query *gorm.DB, payment string) *gorm.DB {
	switch strings.ToLower(strings.TrimSpace(payment)) {
	case constants.PaymentFilterPaid:
		return query.Where("balance = 0")
	case constants.PaymentFilterUnpaid:
		return query.Where("balance > 0")
	default:
		return query
	}
}
