package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type voteRequest struct {
	OptionID string `json:"optionId" validate:"required,oneof=down stable"`
	Limit    int    `query:"limit" json:"limit" default:"30" validate:"gte=1,lte=366"`
}

type voteHandler struct{}

func (voteHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/vote", func(c echo.Context) error {
		req := &voteRequest{}
		if verr := ReadAndValidateRequest(c, req); verr != nil {
			return BadRequestResponse(c, verr)
		}
		return SuccessResponse(c, req)
	})
}

func newTestServer(opts ...ServerOption) *Server {
	return NewServer([]Handler{voteHandler{}, nil}, append(opts, WithMetrics(false, 0))...)
}

func TestReadiness(t *testing.T) {
	s := newTestServer(
		WithCheck("cache", func(context.Context) error { return nil }),
		WithCheck("clickhouse", func(context.Context) error { return errors.New("connection refused") }),
	)

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Data["cache"])
	assert.Equal(t, "connection refused", body.Data["clickhouse"])

	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(WithCORS(true, "https://pulso.example"))

	req := httptest.NewRequest(http.MethodOptions, "/vote", nil)
	req.Header.Set(echo.HeaderOrigin, "https://pulso.example")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://pulso.example", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "600", rec.Header().Get(echo.HeaderAccessControlMaxAge))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(echo.HeaderOrigin, "https://elsewhere.example")
	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestValidationUsesWireNames(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/vote", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Body = http.NoBody
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Data []ValidationError `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	fields := map[string]string{}
	for _, e := range body.Data {
		fields[e.Field] = e.Code
	}
	assert.Equal(t, "ERR_REQUIRED", fields["optionId"])
}
