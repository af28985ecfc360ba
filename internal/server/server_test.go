package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitcalc/profitcalc/internal/auth"
	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/pipeline"
	"github.com/profitcalc/profitcalc/internal/rates"
	"github.com/profitcalc/profitcalc/internal/repository"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := repository.Open(context.Background(), repository.Config{Path: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ratesSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"rates":{"USD":1,"EUR":0.9}}`))
	}))
	t.Cleanup(ratesSrv.Close)

	cfg := &common.Config{
		Server: common.ServerConfig{Addr: ":0", MaxUploadBytes: 1 << 20},
		Auth:   common.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Rates:  common.RatesConfig{URL: ratesSrv.URL, TTL: time.Hour},
	}

	return New(
		cfg,
		pipeline.NewCoordinator(nil, nil),
		repository.NewUserRepository(db),
		repository.NewUserDataRepository(db),
		auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		rates.NewCache(rates.Config{URL: cfg.Rates.URL, TTL: cfg.Rates.TTL}, nil),
		nil,
	)
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func uploadFile(t *testing.T, s *Server, filename string, contents []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(contents)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadCSV(t *testing.T) {
	s := newTestServer(t)

	csvData := []byte("Date,Description,Amount\n" +
		"2024-01-15,Monthly Rent Payment,-1200.00\n" +
		"2024-01-20,Customer Invoice,3500.00\n")
	rec := uploadFile(t, s, "ledger.csv", csvData)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Message      string `json:"message"`
		Transactions []struct {
			Date     string `json:"date"`
			Type     string `json:"type"`
			Category string `json:"category"`
		} `json:"transactions"`
		Summary struct {
			Total int    `json:"total"`
			Net   string `json:"net"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Contains(t, resp.Message, "2 transactions")
	require.Len(t, resp.Transactions, 2)
	assert.Equal(t, "2024-01-15", resp.Transactions[0].Date)
	assert.Equal(t, "expense", resp.Transactions[0].Type)
	assert.Equal(t, "Rent", resp.Transactions[0].Category)
	assert.Equal(t, 2, resp.Summary.Total)
	assert.Equal(t, "2300", resp.Summary.Net)
}

func TestUploadUnsupportedFormat(t *testing.T) {
	s := newTestServer(t)
	rec := uploadFile(t, s, "notes.docx", []byte("whatever"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file format")
}

func TestUploadMissingFileField(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/files/upload", "", map[string]string{"x": "y"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthAndUserDataFlow(t *testing.T) {
	s := newTestServer(t)

	// register
	rec := doJSON(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var reg tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	require.NotEmpty(t, reg.Token)

	// duplicate username rejected
	rec = doJSON(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// login
	rec = doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var login tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	// wrong password
	rec = doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// user-data requires a token
	rec = doJSON(t, s, http.MethodGet, "/api/user-data", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// fresh account gets defaults
	rec = doJSON(t, s, http.MethodGet, "/api/user-data", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var data repository.UserData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Empty(t, data.Transactions)
	assert.Equal(t, "USD", data.Settings.Currency)

	// save and read back
	payload := map[string]any{
		"transactions": []map[string]any{{
			"id":          "csv-1",
			"date":        "2024-01-15",
			"description": "Office Rent",
			"amount":      "-1200",
			"type":        "expense",
			"category":    "Rent",
		}},
		"settings": map[string]any{"currency": "EUR", "categories": []string{"Rent", "Other"}},
	}
	rec = doJSON(t, s, http.MethodPost, "/api/user-data", login.Token, payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, s, http.MethodGet, "/api/user-data", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	require.Len(t, data.Transactions, 1)
	assert.Equal(t, "Office Rent", data.Transactions[0].Description)
	assert.Equal(t, "EUR", data.Settings.Currency)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "bob", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvertEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/convert", "", map[string]any{
		"amount": "100", "from": "USD", "to": "EUR",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Converted string `json:"converted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "90", resp.Converted)

	rec = doJSON(t, s, http.MethodPost, "/api/convert", "", map[string]any{
		"amount": "100", "from": "USD",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	s := newTestServer(t)

	body := map[string]any{
		"format": "csv",
		"transactions": []map[string]any{{
			"id":          "csv-1",
			"date":        "2024-01-15",
			"description": "Office Rent",
			"amount":      "-1200",
			"type":        "expense",
			"category":    "Rent",
		}},
	}
	rec := doJSON(t, s, http.MethodPost, "/api/files/export", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "transactions.csv")
	assert.Contains(t, rec.Body.String(), "Office Rent")

	rec = doJSON(t, s, http.MethodPost, "/api/files/export", "", map[string]any{"format": "csv"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
