// Package pipeline coordinates per-format extraction, normalization, and
// categorization for one uploaded file. Stages run strictly in sequence;
// the coordinator holds no mutable state across invocations, so
// concurrent uploads need no locking here.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/profitcalc/profitcalc/constants"
	"github.com/profitcalc/profitcalc/internal/categorize"
	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/extract"
	"github.com/profitcalc/profitcalc/internal/extract/freetext"
	"github.com/profitcalc/profitcalc/internal/extract/structured"
	"github.com/profitcalc/profitcalc/internal/extract/tabular"
	"github.com/profitcalc/profitcalc/internal/model"
	"github.com/profitcalc/profitcalc/internal/normalize"
	"github.com/profitcalc/profitcalc/internal/ocr"
)

// Coordinator dispatches an uploaded file to the right extractor by
// extension, then normalizes and categorizes the result. Extraction is
// all-or-nothing per file: callers get either the full record list or a
// single stage-prefixed error, never both.
type Coordinator struct {
	logger      *slog.Logger
	extractors  map[constants.SourceFormat]extract.Extractor
	normalizer  *normalize.Normalizer
	categorizer *categorize.Categorizer
}

// Option tweaks coordinator construction.
type Option func(*Coordinator)

// WithClock injects the time source used for date fallbacks.
func WithClock(clock func() time.Time) Option {
	return func(c *Coordinator) {
		c.normalizer = normalize.NewNormalizer(clock)
	}
}

// WithTaxonomy overrides the default category list.
func WithTaxonomy(taxonomy []string) Option {
	return func(c *Coordinator) {
		c.categorizer = categorize.NewCategorizer(taxonomy)
	}
}

// WithExtractor replaces the extractor for one source format (tests stub
// the OCR-backed ones this way).
func WithExtractor(format constants.SourceFormat, e extract.Extractor) Option {
	return func(c *Coordinator) {
		c.extractors[format] = e
	}
}

func NewCoordinator(logger *slog.Logger, ocrExt *ocr.Extractor, opts ...Option) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		logger: logger,
		extractors: map[constants.SourceFormat]extract.Extractor{
			constants.Spreadsheet: tabular.NewXLSXExtractor(),
			constants.Delimited:   tabular.NewCSVExtractor(),
			constants.JSON:        structured.NewJSONExtractor(),
			constants.XML:         structured.NewXMLExtractor(),
			constants.Document:    freetext.NewDocumentExtractor(ocrExt),
			constants.Image:       freetext.NewImageExtractor(ocrExt),
		},
		normalizer:  normalize.NewNormalizer(nil),
		categorizer: categorize.NewCategorizer(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Process runs the full pipeline for one file: dispatch -> extract ->
// normalize -> categorize. Normalization must precede categorization;
// the rules assume the canonical type/amount shape.
func (c *Coordinator) Process(ctx context.Context, data []byte, ext string) ([]model.Transaction, error) {
	format := constants.MapExtToFormat(ext)
	if format == "" {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, constants.NormalizeExt(ext))
	}

	start := time.Now()
	extractor := c.extractors[format]

	raw, err := extractor.Extract(ctx, data)
	if err != nil {
		c.logger.Error("pipeline.extract.failed", "format", format, "err", err)
		return nil, fmt.Errorf("extract %s: %w", format, err)
	}

	txs := c.normalizer.Records(raw)
	txs = c.categorizer.Apply(txs)

	c.logger.Info("pipeline.process.ok",
		"format", format,
		"candidates", len(raw),
		"transactions", len(txs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return txs, nil
}
