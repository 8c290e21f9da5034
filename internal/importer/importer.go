// Package importer разбирает инвентаризацию активов из CSV/XLSX/XLS
// в записи models.Asset.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, use .csv, .xlsx or .xls")
	ErrSpreadsheet       = errors.New("failed to read spreadsheet")
	ErrNoValidAssets     = errors.New("no valid assets found")
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// DetectFormat смотрит только на расширение, содержимое не угадываем
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	}
	return "", fmt.Errorf("%s: %w", filepath.Base(filename), ErrUnsupportedFormat)
}

// Parse превращает файл в строки/ячейки без предположений о заголовке
func Parse(filename string, data []byte) ([][]string, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return ParseXLSX(data)
	case FormatXLS:
		return ParseXLS(data)
	default:
		return ParseCSV(string(data))
	}
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func dropBlank(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		if !blankRow(r) {
			out = append(out, r)
		}
	}
	return out
}
