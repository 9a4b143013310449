// Package spreadsheet 封装 xlsx 工作簿的读取与导出。
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyWorkbook 工作簿没有任何数据行
var ErrEmptyWorkbook = errors.New("workbook has no data rows")

// Row 工作簿中的一行数据，Values 以规范化后的表头为 key
type Row struct {
	Number int
	Values map[string]string
}

// Get 按候选 key 顺序返回第一个非空值
func (r Row) Get(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(r.Values[NormalizeHeader(key)]); value != "" {
			return value
		}
	}
	return ""
}

// ReadFirstSheet 读取第一个工作表：首行为表头，其余为数据行（跳过空行）
func ReadFirstSheet(r io.Reader, maxRows int) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	// 日期单元格读取原始序列号，由调用方统一解析
	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(raw) < 2 {
		return nil, ErrEmptyWorkbook
	}

	headers := make([]string, len(raw[0]))
	for i, cell := range raw[0] {
		headers[i] = NormalizeHeader(cell)
	}

	rows := make([]Row, 0, len(raw)-1)
	for idx, cells := range raw[1:] {
		values := make(map[string]string, len(headers))
		blank := true
		for i, header := range headers {
			if header == "" || i >= len(cells) {
				continue
			}
			value := strings.TrimSpace(cells[i])
			if value != "" {
				blank = false
			}
			values[header] = value
		}
		if blank {
			continue
		}
		if maxRows > 0 && len(rows) >= maxRows {
			return nil, ErrTooManyRows
		}
		rows = append(rows, Row{Number: idx + 2, Values: values})
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return rows, nil
}

// ErrTooManyRows 数据行超过上限
var ErrTooManyRows = errors.New("workbook exceeds row limit")

// NormalizeHeader 表头规范化：小写、去空白、空格与连字符转下划线
func NormalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}
