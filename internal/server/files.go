package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/model"
	"github.com/profitcalc/profitcalc/internal/report"
)

type uploadResponse struct {
	Message      string              `json:"message"`
	Transactions []model.Transaction `json:"transactions"`
	Summary      report.Summary      `json:"summary"`
}

// handleUpload accepts a multipart file, runs it through the pipeline,
// and returns the extracted transactions with a summary.
func (s *Server) handleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return s.writeError(c, fmt.Errorf("%w: missing file field", common.ErrInvalidInput))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return s.writeError(c, fmt.Errorf("open upload: %w", err))
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return s.writeError(c, fmt.Errorf("read upload: %w", err))
	}

	ext := filepath.Ext(fileHeader.Filename)
	txs, err := s.coord.Process(c.Request().Context(), data, ext)
	if err != nil {
		return s.writeError(c, err)
	}

	s.logger.Info("http.upload.ok", "filename", fileHeader.Filename, "transactions", len(txs))
	return c.JSON(http.StatusOK, uploadResponse{
		Message:      fmt.Sprintf("Extracted %d transactions from %s", len(txs), fileHeader.Filename),
		Transactions: txs,
		Summary:      report.Summarize(txs),
	})
}

type exportRequest struct {
	Format       string              `json:"format"`
	Transactions []model.Transaction `json:"transactions"`
}

// handleExport renders a transaction list as a downloadable XLSX or CSV.
func (s *Server) handleExport(c echo.Context) error {
	var req exportRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return s.writeError(c, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	if len(req.Transactions) == 0 {
		return s.writeError(c, fmt.Errorf("%w: no transactions to export", common.ErrInvalidInput))
	}

	switch req.Format {
	case "", "xlsx":
		data, err := report.ExportXLSX(req.Transactions)
		if err != nil {
			return s.writeError(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="transactions.xlsx"`)
		return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "csv":
		data, err := report.ExportCSV(req.Transactions)
		if err != nil {
			return s.writeError(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
		return c.Blob(http.StatusOK, "text/csv", data)
	default:
		return s.writeError(c, fmt.Errorf("%w: unknown export format %q", common.ErrInvalidInput, req.Format))
	}
}
