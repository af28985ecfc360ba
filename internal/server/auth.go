package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/profitcalc/profitcalc/internal/auth"
	"github.com/profitcalc/profitcalc/internal/common"
)

const userIDKey = "userID"

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return s.writeError(c, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || len(creds.Password) < 8 {
		return s.writeError(c, fmt.Errorf("%w: username and a password of at least 8 characters are required", common.ErrInvalidInput))
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		return s.writeError(c, err)
	}
	user, err := s.users.Create(c.Request().Context(), creds.Username, hash)
	if err != nil {
		return s.writeError(c, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return s.writeError(c, err)
	}
	s.logger.Info("auth.register.ok", "username", user.Username)
	return c.JSON(http.StatusCreated, tokenResponse{Token: token, Username: user.Username})
}

func (s *Server) handleLogin(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return s.writeError(c, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}

	user, err := s.users.GetByUsername(c.Request().Context(), creds.Username)
	if err != nil || !auth.CheckPassword(user.PasswordHash, creds.Password) {
		// Same response for unknown user and bad password.
		return s.writeError(c, common.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return s.writeError(c, err)
	}
	s.logger.Info("auth.login.ok", "username", user.Username)
	return c.JSON(http.StatusOK, tokenResponse{Token: token, Username: user.Username})
}

// requireAuth validates the Bearer token and stashes the user id in the
// request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return s.writeError(c, common.ErrUnauthorized)
		}
		claims, err := s.tokens.Parse(token)
		if err != nil {
			return s.writeError(c, err)
		}
		c.Set(userIDKey, claims.Subject)
		return next(c)
	}
}

func currentUserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
