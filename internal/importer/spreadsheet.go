package importer

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ParseXLS — старый бинарный формат Excel, тоже только первый лист.
// Библиотека паникует на битых файлах, поэтому recover.
func ParseXLS(data []byte) (rows [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = fmt.Errorf("%w: %v", ErrSpreadsheet, r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpreadsheet, err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrSpreadsheet)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrSpreadsheet)
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			continue
		}
		last := row.LastCol()
		if last <= 0 {
			// строка без записи ROW: ширина неизвестна
			last = maxXLSCols
		}
		cells := make([]string, 0, last)
		for j := 0; j < last; j++ {
			cells = append(cells, row.Col(j))
		}
		rows = append(rows, trimTrailing(cells))
	}
	return dropBlank(rows), nil
}

// в BIFF8 не больше 256 колонок
const maxXLSCols = 256

// xlsRow: у пропущенной строки Row паникует, считаем её пустой
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func trimTrailing(cells []string) []string {
	n := len(cells)
	for n > 0 && cells[n-1] == "" {
		n--
	}
	return cells[:n]
}
