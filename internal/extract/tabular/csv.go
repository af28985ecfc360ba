package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/model"
)

// CSVExtractor decodes delimited text with a header row.
type CSVExtractor struct{}

func NewCSVExtractor() *CSVExtractor {
	return &CSVExtractor{}
}

func (e *CSVExtractor) Extract(_ context.Context, data []byte) ([]model.RawRecord, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // ragged rows are common in bank exports
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	if len(records) < 2 {
		return nil, common.WrapError(common.ErrEmptyInput, "csv has no data rows")
	}

	header := records[0]
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		values := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				values[col] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, Row{Columns: columns, Values: values})
	}
	return ExtractRows(rows, "csv")
}
