package inspection

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// csvColumns maps the canonical record fields to the header names accepted
// for them. Matching is case-insensitive and ignores surrounding whitespace.
var csvColumns = map[string][]string{
	"date":      {"inspection date", "date"},
	"shift":     {"shift"},
	"material":  {"material"},
	"operation": {"operation"},
	"gauge":     {"gauge"},
	"actual":    {"actual specification", "actual spec", "actual"},
}

// ParseCSV reads an exported inspection sheet and returns the records plus
// the measurement sequence parsed from the actual-specification column.
// A missing actual-specification column is fatal; individual bad rows are
// collected as warnings in ParseErrors.
func ParseCSV(filepath string) (*ParsedData, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file %s is empty", filepath)
	}

	colIndex := indexColumns(allRows[0])
	actualIdx, ok := colIndex["actual"]
	if !ok {
		return nil, fmt.Errorf("CSV file %s has no actual-specification column", filepath)
	}

	records := make([]Record, 0, len(allRows)-1)
	for rowIdx, row := range allRows[1:] {
		if len(row) == 0 || allEmpty(row) {
			continue
		}
		if actualIdx >= len(row) {
			continue
		}
		records = append(records, Record{
			ID:                  fmt.Sprintf("row-%d", rowIdx+2),
			InspectionDate:      fieldAt(row, colIndex, "date"),
			Shift:               fieldAt(row, colIndex, "shift"),
			Material:            fieldAt(row, colIndex, "material"),
			Operation:           fieldAt(row, colIndex, "operation"),
			Gauge:               fieldAt(row, colIndex, "gauge"),
			ActualSpecification: strings.TrimSpace(row[actualIdx]),
		})
	}

	parsed := ExtractMeasurements(records)
	if len(records) == 0 {
		parsed.ParseErrors = append(parsed.ParseErrors, "no data rows found after header")
	}
	return parsed, nil
}

func indexColumns(header []string) map[string]int {
	index := make(map[string]int)
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for field, aliases := range csvColumns {
			if _, seen := index[field]; seen {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					index[field] = i
					break
				}
			}
		}
	}
	return index
}

func fieldAt(row []string, colIndex map[string]int, field string) string {
	idx, ok := colIndex[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func allEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
