// Package export выгружает оценку для скачивания: JSON, сводный CSV, YAML.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ot-grc/internal/models"
	"ot-grc/internal/risk"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/json"
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Filename — имя файла для скачивания, по названию оценки
func Filename(a *models.Assessment, f Format) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(a.Metadata.Name), "-"), "-")
	if slug == "" {
		slug = "assessment"
	}
	return "iec62443-" + slug + "." + string(f)
}

func Write(w io.Writer, f Format, a *models.Assessment) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, a)
	case FormatYAML:
		return WriteYAML(w, a)
	case FormatJSON:
		return WriteJSON(w, a)
	}
	return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
}

func WriteJSON(w io.Writer, a *models.Assessment) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(a)
}

func WriteYAML(w io.Writer, a *models.Assessment) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(a); err != nil {
		return err
	}
	return encoder.Close()
}

// WriteCSV — плоская сводка: поля заголовка оценки, пустая строка, таблица активов
func WriteCSV(w io.Writer, a *models.Assessment) (retErr error) {
	csvWriter := csv.NewWriter(w)
	defer func() {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil && retErr == nil {
			retErr = fmt.Errorf("csv writer flush error: %w", err)
		}
	}()

	header := [][]string{
		{"Field", "Value"},
		{"Name", a.Metadata.Name},
		{"Assessor", a.Metadata.Assessor},
		{"Date", a.Metadata.Date},
		{"Facility Type", a.Metadata.FacilityType},
		{"Criticality Level", a.Metadata.CriticalityLevel},
		{"Assessment Type", string(a.AssessmentType)},
		{"Tolerable Risk Threshold", strconv.Itoa(a.TolerableRiskThreshold)},
		{"Decision", string(a.Decision)},
		{"Overall Risk Score", risk.FormatScore(risk.OverallScore(a))},
		{"High Risk Zones", strconv.Itoa(risk.HighRiskZones(a.Zones))},
		{"Approved", strconv.FormatBool(a.Approval.Approved)},
	}
	if err := csvWriter.WriteAll(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := csvWriter.Write([]string{}); err != nil {
		return err
	}

	if err := csvWriter.Write([]string{"ID", "Name", "Type", "Location", "Vendor", "OS Version", "Network", "Criticality"}); err != nil {
		return fmt.Errorf("failed to write asset header: %w", err)
	}
	for _, as := range a.Assets {
		record := []string{
			as.ID,
			as.Name,
			string(as.Type),
			as.Location,
			as.Vendor,
			as.OSVersion,
			as.Network,
			string(as.Criticality),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write asset %s: %w", as.ID, err)
		}
	}
	return nil
}
