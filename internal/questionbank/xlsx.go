package questionbank

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSXFile reads a bank from a workbook on disk. An empty sheet name
// selects the first worksheet.
func ReadXLSXFile(path, sheet string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, sheet)
}

func readWorkbook(f *excelize.File, sheet string) ([]Row, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyBank
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyBank
	}

	return rowsFromTable(records[0], records[1:], 2)
}
