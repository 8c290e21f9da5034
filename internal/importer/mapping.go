package importer

import (
	"strings"

	"ot-grc/internal/models"
)

type Column string

const (
	ColName        Column = "name"
	ColType        Column = "type"
	ColLocation    Column = "location"
	ColVendor      Column = "vendor"
	ColOSVersion   Column = "osVersion"
	ColNetwork     Column = "network"
	ColCriticality Column = "criticality"
)

// DefaultColumns — порядок колонок, если заголовка нет
var DefaultColumns = []Column{ColName, ColType, ColLocation, ColVendor, ColOSVersion, ColNetwork, ColCriticality}

var headerNames = map[string]Column{
	"name":        ColName,
	"type":        ColType,
	"location":    ColLocation,
	"vendor":      ColVendor,
	"osversion":   ColOSVersion,
	"os version":  ColOSVersion,
	"os_version":  ColOSVersion,
	"network":     ColNetwork,
	"criticality": ColCriticality,
}

// DetectHeader: если в первой строке есть хоть одно известное имя колонки,
// строка считается заголовком и колонки берутся по именам.
func DetectHeader(first []string) (map[Column]int, bool) {
	cols := map[Column]int{}
	for i, cell := range first {
		c, ok := headerNames[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		if _, seen := cols[c]; !seen {
			cols[c] = i
		}
	}
	if len(cols) > 0 {
		return cols, true
	}

	for i, c := range DefaultColumns {
		cols[c] = i
	}
	return cols, false
}

// ToAssets строит активы из строк. newID выдаёт уникальный id для каждого актива.
func ToAssets(rows [][]string, newID func() string) ([]models.Asset, error) {
	if len(rows) == 0 {
		return nil, ErrNoValidAssets
	}

	cols, hasHeader := DetectHeader(rows[0])
	data := rows
	if hasHeader {
		data = rows[1:]
	}

	assets := make([]models.Asset, 0, len(data))
	for _, row := range data {
		if blankRow(row) {
			continue
		}
		get := func(c Column) string {
			i, ok := cols[c]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		assets = append(assets, models.Asset{
			ID:          newID(),
			Name:        get(ColName),
			Type:        models.AssetType(strings.ToLower(get(ColType))),
			Location:    get(ColLocation),
			Vendor:      get(ColVendor),
			OSVersion:   get(ColOSVersion),
			Network:     get(ColNetwork),
			Criticality: models.ParseCriticality(get(ColCriticality)),
		})
	}

	if len(assets) == 0 {
		return nil, ErrNoValidAssets
	}
	return assets, nil
}
