package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseCSV: кавычки с запятыми и переводами строк внутри, "" -> ", \n и \r\n.
// Пустые строки выбрасываются.
func ParseCSV(text string) ([][]string, error) {
	text = strings.TrimPrefix(text, "\ufeff")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		if blankRow(record) {
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}
