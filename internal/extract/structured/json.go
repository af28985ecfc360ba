package structured

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/model"
)

// JSONExtractor handles object-notation exports.
type JSONExtractor struct{}

func NewJSONExtractor() *JSONExtractor {
	return &JSONExtractor{}
}

func (e *JSONExtractor) Extract(_ context.Context, data []byte) ([]model.RawRecord, error) {
	if len(data) == 0 {
		return nil, common.WrapError(common.ErrEmptyInput, "empty json document")
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if tree == nil {
		return nil, common.WrapError(common.ErrEmptyInput, "json document is null")
	}

	elems, ok := locate(tree)
	if !ok {
		return nil, common.WrapError(common.ErrNoTransactions, "json")
	}
	return mapRecords(elems, "json")
}
