package tabular

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/model"
)

// XLSXExtractor decodes the first worksheet of a workbook. Only the OOXML
// container is supported; legacy binary workbooks surface a decode error.
type XLSXExtractor struct{}

func NewXLSXExtractor() *XLSXExtractor {
	return &XLSXExtractor{}
}

func (e *XLSXExtractor) Extract(_ context.Context, data []byte) ([]model.RawRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.WrapError(common.ErrEmptyInput, "workbook has no sheets")
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(cells) < 2 {
		return nil, common.WrapError(common.ErrEmptyInput, "sheet has no data rows")
	}

	header := cells[0]
	columns := make([]string, 0, len(header))
	for _, h := range header {
		columns = append(columns, strings.TrimSpace(h))
	}

	rows := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		values := make(map[string]string, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if i < len(line) {
				values[col] = strings.TrimSpace(line[i])
			}
		}
		rows = append(rows, Row{Columns: columns, Values: values})
	}
	return ExtractRows(rows, "excel")
}
