package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Table 单个工作表导出内容
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]interface{}
	// Summary 追加在末尾的汇总行，可为空
	Summary []interface{}
}

// Write 将表格写为单工作表 xlsx
func Write(w io.Writer, table Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := table.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, toCells(table.Headers)); err != nil {
		return err
	}
	if len(table.Headers) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(table.Headers), 1)
		if err := f.SetCellStyle(sheet, "A1", end, headerStyle); err != nil {
			return err
		}
	}

	rowNum := 2
	for _, row := range table.Rows {
		if err := writeRow(f, sheet, rowNum, row); err != nil {
			return err
		}
		rowNum++
	}
	if len(table.Summary) > 0 {
		if err := writeRow(f, sheet, rowNum, table.Summary); err != nil {
			return err
		}
		end, _ := excelize.CoordinatesToCellName(len(table.Summary), rowNum)
		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetCellStyle(sheet, start, end, headerStyle); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []interface{}) error {
	if len(cells) == 0 {
		return nil
	}
	start, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, start, &cells)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
