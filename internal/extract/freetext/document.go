package freetext

import (
	"context"
	"fmt"

	"github.com/profitcalc/profitcalc/internal/model"
	"github.com/profitcalc/profitcalc/internal/ocr"
)

// DocumentExtractor decodes a PDF's text layer and runs the cascade in
// document mode (table tier enabled).
type DocumentExtractor struct {
	ocr *ocr.Extractor
}

func NewDocumentExtractor(o *ocr.Extractor) *DocumentExtractor {
	return &DocumentExtractor{ocr: o}
}

func (e *DocumentExtractor) Extract(ctx context.Context, data []byte) ([]model.RawRecord, error) {
	text, err := e.ocr.DocumentText(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("decode document text: %w", err)
	}
	return Extract(text, Variant{Tag: "pdf", Document: true})
}

// ImageExtractor OCRs an image and runs the cascade in plain mode.
type ImageExtractor struct {
	ocr *ocr.Extractor
}

func NewImageExtractor(o *ocr.Extractor) *ImageExtractor {
	return &ImageExtractor{ocr: o}
}

func (e *ImageExtractor) Extract(ctx context.Context, data []byte) ([]model.RawRecord, error) {
	text, err := e.ocr.ImageText(ctx, data, "jpg")
	if err != nil {
		return nil, fmt.Errorf("recognize image text: %w", err)
	}
	return Extract(text, Variant{Tag: "image"})
}
