// profitcalcd is the HTTP daemon: file upload and extraction, user
// accounts, saved data, currency rates, and exports.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/profitcalc/profitcalc/internal/auth"
	"github.com/profitcalc/profitcalc/internal/categorize"
	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/ocr"
	"github.com/profitcalc/profitcalc/internal/pipeline"
	"github.com/profitcalc/profitcalc/internal/rates"
	"github.com/profitcalc/profitcalc/internal/repository"
	"github.com/profitcalc/profitcalc/internal/server"
)

func main() {
	// Missing .env is fine; the environment may be set by the deployment.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, repository.Config{
		Path:        cfg.Store.Path,
		DialTimeout: 3 * time.Second,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "err", err, "path", cfg.Store.Path)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	ocrExt := ocr.NewExtractor(ocr.Config{
		Pdftotext:     cfg.OCR.Pdftotext,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
	}, logger)

	var opts []pipeline.Option
	if cfg.Store.TaxonomyPath != "" {
		taxonomy, err := categorize.LoadTaxonomy(cfg.Store.TaxonomyPath)
		if err != nil {
			logger.Error("failed to load taxonomy", "err", err, "path", cfg.Store.TaxonomyPath)
			os.Exit(1)
		}
		opts = append(opts, pipeline.WithTaxonomy(taxonomy))
	}
	coord := pipeline.NewCoordinator(logger, ocrExt, opts...)

	ratesCache := rates.NewCache(rates.Config{
		URL: cfg.Rates.URL,
		TTL: cfg.Rates.TTL,
	}, logger)

	srv := server.New(
		cfg,
		coord,
		repository.NewUserRepository(db),
		repository.NewUserDataRepository(db),
		auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		ratesCache,
		logger,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
			os.Exit(1)
		}
	}
}
