package inspection

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is a single inspection record as exported by the inspection service
// or an inspection sheet CSV. The measured value arrives as the textual
// "actual specification" field and is parsed into a float64 downstream.
type Record struct {
	ID                  string `json:"id"`
	InspectionDate      string `json:"inspection_date"`
	Shift               string `json:"shift"`
	Material            string `json:"material"`
	Operation           string `json:"operation"`
	Gauge               string `json:"gauge"`
	ActualSpecification string `json:"actual_specification"`
}

// ParsedData bundles the records, the measurements successfully parsed from
// them (in record order), and any non-fatal errors collected along the way.
// Parse failures are warnings to surface to the user, not reasons to abort
// the whole analysis.
type ParsedData struct {
	Records      []Record
	Measurements []float64
	ParseErrors  []string
}

func NewParsedData() *ParsedData {
	return &ParsedData{
		Records:      make([]Record, 0),
		Measurements: make([]float64, 0),
		ParseErrors:  make([]string, 0),
	}
}

// ExtractMeasurements parses the actual-specification field of every record.
// Records whose value does not parse are kept but contribute no measurement;
// each failure is recorded as a warning.
func ExtractMeasurements(records []Record) *ParsedData {
	parsed := NewParsedData()
	parsed.Records = records
	for i, rec := range records {
		raw := strings.TrimSpace(rec.ActualSpecification)
		if raw == "" {
			parsed.ParseErrors = append(parsed.ParseErrors,
				fmt.Sprintf("record %d: empty actual specification, skipped", i+1))
			continue
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			parsed.ParseErrors = append(parsed.ParseErrors,
				fmt.Sprintf("record %d: cannot parse actual specification '%s', skipped: %v", i+1, raw, err))
			continue
		}
		parsed.Measurements = append(parsed.Measurements, val)
	}
	return parsed
}
