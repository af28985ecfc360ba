package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/repository"
)

func (s *Server) handleGetUserData(c echo.Context) error {
	data, err := s.userData.Get(c.Request().Context(), currentUserID(c))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

// handleSaveUserData replaces the caller's stored transactions and
// settings with the posted payload.
func (s *Server) handleSaveUserData(c echo.Context) error {
	var data repository.UserData
	if err := c.Bind(&data); err != nil {
		return s.writeError(c, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	if err := s.userData.Save(c.Request().Context(), currentUserID(c), &data); err != nil {
		return s.writeError(c, err)
	}
	s.logger.Info("userdata.save.ok", "transactions", len(data.Transactions))
	return c.JSON(http.StatusOK, map[string]string{"message": "saved"})
}
