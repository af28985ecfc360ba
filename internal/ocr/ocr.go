// Package ocr turns document and image bytes into plain text by driving
// the external pdftotext and tesseract binaries. Both calls are
// long-running single suspend points: temp artifacts are acquired and
// released inside the call, on failure paths included, so no worker
// state ever outlives an extraction.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	PSM           int    // page segmentation mode; 3 = fully automatic, no OSD
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.PSM <= 0 {
		cfg.PSM = 3
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// DocumentText extracts the text layer of a PDF. Layout mode is kept on
// so column-aligned statements keep their spacing for the table-aware
// extraction tier downstream.
func (e *Extractor) DocumentText(ctx context.Context, data []byte) (string, error) {
	start := time.Now()
	path, cleanup, err := e.stage(data, "in.pdf")
	if err != nil {
		return "", err
	}
	defer cleanup()

	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w (%s)", err, truncate(string(errb), 512))
	}
	e.logger.Debug("ocr.pdf.ok", "bytes", len(out), "elapsed_ms", time.Since(start).Milliseconds())
	return NormalizeLayout(string(out)), nil
}

// ImageText runs OCR over an image. The recognizer lifecycle (spawn,
// recognize, terminate) lives entirely inside the external process; the
// temp artifact is released even when recognition fails.
func (e *Extractor) ImageText(ctx context.Context, data []byte, ext string) (string, error) {
	start := time.Now()
	if ext == "" {
		ext = "jpg"
	}
	path, cleanup, err := e.stage(data, "in."+ext)
	if err != nil {
		return "", err
	}
	defer cleanup()

	args := []string{path, "stdout", "-l", e.cfg.TesseractLang, "--psm", fmt.Sprintf("%d", e.cfg.PSM)}
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}
	e.logger.Debug("ocr.image.ok", "bytes", len(out), "elapsed_ms", time.Since(start).Milliseconds())
	return Normalize(string(out)), nil
}

// stage writes the upload into a scratch dir and returns its path plus a
// release func. Callers must defer the release.
func (e *Extractor) stage(data []byte, name string) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "pc-ocr-*")
	if err != nil {
		return "", nil, fmt.Errorf("stage input: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	path := filepath.Join(tmpDir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("stage input: %w", err)
	}
	return path, cleanup, nil
}
