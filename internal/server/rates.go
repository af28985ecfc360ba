package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/profitcalc/profitcalc/internal/common"
)

func (s *Server) handleCurrencies(c echo.Context) error {
	return c.JSON(http.StatusOK, s.rates.Currencies(c.Request().Context()))
}

func (s *Server) handleRates(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"base":  "USD",
		"rates": s.rates.Rates(c.Request().Context()),
	})
}

type convertRequest struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
}

func (s *Server) handleConvert(c echo.Context) error {
	var req convertRequest
	if err := c.Bind(&req); err != nil {
		return s.writeError(c, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	if req.From == "" || req.To == "" {
		return s.writeError(c, fmt.Errorf("%w: from and to currencies are required", common.ErrInvalidInput))
	}
	converted, err := s.rates.Convert(c.Request().Context(), req.Amount, req.From, req.To)
	if err != nil {
		return s.writeError(c, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"amount":    req.Amount,
		"from":      req.From,
		"to":        req.To,
		"converted": converted,
	})
}
