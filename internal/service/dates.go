package service

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// dateOnly 把日期归一为 UTC 当天 12:00，避免时区偏移跨日
func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 12, 0, 0, 0, time.UTC)
}

// ParseDate 解析 YYYY-MM-DD，返回当天 12:00 UTC
func ParseDate(raw string) (time.Time, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, ErrDateInvalid
	}
	if len(text) > len(dateLayout) {
		if parsed, err := time.Parse(time.RFC3339, text); err == nil {
			return dateOnly(parsed), nil
		}
		text = text[:len(dateLayout)]
	}
	parsed, err := time.Parse(dateLayout, text)
	if err != nil {
		return time.Time{}, ErrDateInvalid
	}
	return dateOnly(parsed), nil
}

// ParseOptionalDate 空字符串返回 nil
func ParseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// dayStart 当天 00:00 UTC
func dayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// monthsAgo 回退 n 个月的同一天零点；目标月份没有该日时取该月最后一天
func monthsAgo(t time.Time, n int) time.Time {
	u := t.UTC()
	firstOfTarget := time.Date(u.Year(), u.Month()-time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := u.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func normalizeTimePtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	normalized := dateOnly(*t)
	return &normalized
}
