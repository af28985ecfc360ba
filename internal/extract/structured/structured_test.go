package structured

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitcalc/profitcalc/internal/common"
)

func TestJSONTopLevelArray(t *testing.T) {
	data := []byte(`[
		{"date": "2024-01-05", "description": "Invoice #12", "amount": 3500, "type": "income"},
		{"date": "2024-01-06", "description": "Hosting", "amount": -30}
	]`)
	recs, err := NewJSONExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "revenue", recs[0]["type"])
	assert.Equal(t, "Invoice #12", recs[0]["description"])
	// no explicit type: the negative amount decides
	assert.Equal(t, "expense", recs[1]["type"])
}

func TestJSONKnownPaths(t *testing.T) {
	cases := map[string]string{
		"transactions":          `{"transactions": [{"description": "Sale", "amount": 500}]}`,
		"data":                  `{"data": [{"description": "Sale", "amount": 500}]}`,
		"nested transaction":    `{"transactions": {"transaction": [{"description": "Sale", "amount": 500}]}}`,
		"financialData entries": `{"financialData": {"entries": {"entry": [{"description": "Sale", "amount": 500}]}}}`,
	}
	for name, doc := range cases {
		recs, err := NewJSONExtractor().Extract(context.Background(), []byte(doc))
		require.NoError(t, err, name)
		require.Len(t, recs, 1, name)
		assert.Equal(t, "Sale", recs[0]["description"], name)
		assert.Equal(t, "revenue", recs[0]["type"], name)
	}
}

func TestJSONDeepSearch(t *testing.T) {
	data := []byte(`{
		"meta": {"generated": "2024-01-01"},
		"report": {"details": {"items": [
			{"date": "2024-02-01", "amount": 100.5, "description": "Widget"}
		]}}
	}`)
	recs, err := NewJSONExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Widget", recs[0]["description"])
}

func TestJSONSingleTransaction(t *testing.T) {
	data := []byte(`{"date": "2024-02-01", "amount": 100, "description": "One-off"}`)
	recs, err := NewJSONExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestJSONExplicitTypeWinsOverSign(t *testing.T) {
	data := []byte(`[{"description": "Correction", "amount": -200, "type": "income"}]`)
	recs, err := NewJSONExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "revenue", recs[0]["type"])
}

func TestJSONDescriptionFallbackKeys(t *testing.T) {
	data := []byte(`[
		{"name": "From name", "amount": 1},
		{"title": "From title", "amount": 2},
		{"description": "From description", "name": "ignored", "amount": 3}
	]`)
	recs, err := NewJSONExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "From name", recs[0]["description"])
	assert.Equal(t, "From title", recs[1]["description"])
	assert.Equal(t, "From description", recs[2]["description"])
}

func TestJSONKeepsSourceIDs(t *testing.T) {
	data := []byte(`[
		{"id": "bank-77", "amount": 10},
		{"amount": 20}
	]`)
	recs, err := NewJSONExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "bank-77", recs[0]["id"])
	assert.Equal(t, "json-1", recs[1]["id"])
}

func TestJSONErrors(t *testing.T) {
	_, err := NewJSONExtractor().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrEmptyInput)

	_, err = NewJSONExtractor().Extract(context.Background(), []byte("null"))
	assert.ErrorIs(t, err, common.ErrEmptyInput)

	_, err = NewJSONExtractor().Extract(context.Background(), []byte("{invalid"))
	require.Error(t, err)

	_, err = NewJSONExtractor().Extract(context.Background(), []byte(`{"settings": {"theme": "dark"}}`))
	assert.ErrorIs(t, err, common.ErrNoTransactions)
}
