// Package extract defines the contract all per-format extractors share:
// raw file bytes in, raw candidate records out. One implementation exists
// per input shape (tabular rows, nested tree, line-oriented text); the
// pipeline coordinator dispatches on file format without knowing any
// per-format internals.
package extract

import (
	"context"
	"fmt"

	"github.com/profitcalc/profitcalc/internal/model"
)

// Extractor turns one uploaded file's bytes into raw candidate records.
// Implementations fail with common.ErrEmptyInput when the file decodes to
// nothing, and common.ErrNoTransactions when decoding succeeded but no
// heuristic matched.
type Extractor interface {
	Extract(ctx context.Context, data []byte) ([]model.RawRecord, error)
}

// IDSeq mints candidate ids from a per-batch monotonic counter and a
// source-format tag. Batches are processed sequentially, so a plain
// counter is enough; no wall-clock entropy involved.
type IDSeq struct {
	tag string
	n   int
}

func NewIDSeq(tag string) *IDSeq {
	return &IDSeq{tag: tag}
}

func (s *IDSeq) Next() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.tag, s.n)
}
