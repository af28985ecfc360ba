// Package server exposes the upload, auth, user-data, rates, and export
// surface over HTTP. Handlers stay thin; domain behavior lives in the
// pipeline, repository, rates, and report packages.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/profitcalc/profitcalc/internal/auth"
	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/pipeline"
	"github.com/profitcalc/profitcalc/internal/rates"
	"github.com/profitcalc/profitcalc/internal/repository"
)

type Server struct {
	echo   *echo.Echo
	logger *slog.Logger

	cfg      *common.Config
	coord    *pipeline.Coordinator
	users    repository.UserRepository
	userData repository.UserDataRepository
	tokens   *auth.Tokens
	rates    *rates.Cache
}

func New(
	cfg *common.Config,
	coord *pipeline.Coordinator,
	users repository.UserRepository,
	userData repository.UserDataRepository,
	tokens *auth.Tokens,
	ratesCache *rates.Cache,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(bodyLimit(cfg.Server.MaxUploadBytes)))

	s := &Server{
		echo:     e,
		logger:   logger,
		cfg:      cfg,
		coord:    coord,
		users:    users,
		userData: userData,
		tokens:   tokens,
		rates:    ratesCache,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	api.GET("/health", s.handleHealth)

	api.POST("/files/upload", s.handleUpload)
	api.POST("/files/export", s.handleExport)

	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	user := api.Group("/user-data", s.requireAuth)
	user.GET("", s.handleGetUserData)
	user.POST("", s.handleSaveUserData)

	api.GET("/currencies", s.handleCurrencies)
	api.GET("/rates", s.handleRates)
	api.POST("/convert", s.handleConvert)
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http.listen", "addr", s.cfg.Server.Addr)
	err := s.echo.Start(s.cfg.Server.Addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http.shutdown")
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps domain sentinels onto HTTP statuses. Unknown errors
// are logged and returned as opaque 500s.
func (s *Server) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrUnsupportedFormat),
		errors.Is(err, common.ErrEmptyInput),
		errors.Is(err, common.ErrNoTransactions),
		errors.Is(err, common.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, common.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, common.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		s.logger.Error("http.internal", "path", c.Path(), "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func bodyLimit(maxBytes int64) string {
	if maxBytes <= 0 {
		maxBytes = 20 << 20
	}
	// echo parses humanized sizes; megabytes are precise enough here.
	mb := maxBytes >> 20
	if mb < 1 {
		mb = 1
	}
	return strconv.FormatInt(mb, 10) + "M"
}
