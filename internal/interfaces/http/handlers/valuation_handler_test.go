package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	valuationapp "github.com/turtacn/DealLens/internal/application/valuation"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
)

func newValuationHandler() *ValuationHandler {
	return NewValuationHandler(valuationapp.NewService(nil, logging.NewNopLogger()), 0, logging.NewNopLogger())
}

func predict(t *testing.T, h *ValuationHandler, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	h.Predict(w, r)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func TestIndex(t *testing.T) {
	w := httptest.NewRecorder()
	newValuationHandler().Index(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"name": "ML Valuation API",
		"version": "1.0.0",
		"status": "running",
		"endpoints": {"health": "/health", "test": "/test", "predict": "/predict (POST)"}
	}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newValuationHandler().Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"healthy","message":"Valuation API is running"}`, w.Body.String())
}

func TestTestFixture(t *testing.T) {
	w := httptest.NewRecorder()
	newValuationHandler().Test(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.JSONEq(t, `{
		"test_company": "CloudTech (Technology, USA, $50M)",
		"expected_multiple": 5.4,
		"expected_valuation": 270,
		"status": "API is working correctly"
	}`, w.Body.String())
}

func TestPredict_Success(t *testing.T) {
	w, _ := predict(t, newValuationHandler(), `{"sector":"Technology","geography":"USA","revenue":50}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.JSONEq(t, `{
		"success": true,
		"inputs": {"sector": "Technology", "geography": "USA", "revenue_m": 50},
		"predictions": {
			"revenue_multiple": 4.86,
			"multiple_range": {"low": 3.64, "high": 6.07},
			"enterprise_value_m": 243,
			"ev_range": {"low": 182.2, "high": 303.7},
			"confidence": 0.85
		},
		"key_drivers": [
			"Technology sector baseline: 4.5x",
			"USA market premium: +19%",
			"Size adjustment: -9%",
			"Final multiple: 4.86x"
		]
	}`, w.Body.String())
}

func TestPredict_Defaults(t *testing.T) {
	w, out := predict(t, newValuationHandler(), `{"revenue":"12.5"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"sector": "Other", "geography": "Global", "revenue_m": 12.5}, out["inputs"])
}

func TestPredict_UnparseableRevenueIsZero(t *testing.T) {
	w, out := predict(t, newValuationHandler(), `{"sector":"Gaming","revenue":"lots"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	preds := out["predictions"].(map[string]interface{})
	assert.Equal(t, 5.0, preds["revenue_multiple"])
	assert.Equal(t, 0.0, preds["enterprise_value_m"])
}

func TestPredict_Failures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty body", ``, "No JSON data provided"},
		{"null", `null`, "No JSON data provided"},
		{"empty object", `{}`, "No JSON data provided"},
		{"malformed", `{"sector":`, "Failed to decode JSON object"},
		{"array", `[1]`, "request body must be a JSON object"},
		{"numeric sector", `{"sector": 7}`, "sector must be a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, out := predict(t, newValuationHandler(), tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, out["success"])
			assert.True(t, strings.HasPrefix(out["error"].(string), tt.message), out["error"])
		})
	}
}

func TestPredict_BodyTooLarge(t *testing.T) {
	h := NewValuationHandler(valuationapp.NewService(nil, logging.NewNopLogger()), 16, logging.NewNopLogger())
	w, out := predict(t, h, `{"sector":"Technology","geography":"USA","revenue":50}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "failed to read request body", out["error"])
}

type failingService struct{}

func (failingService) Score(context.Context, valuationapp.Request) (*valuationapp.Result, error) {
	return nil, assert.AnError
}

func TestPredict_ServiceError(t *testing.T) {
	h := NewValuationHandler(failingService{}, 0, logging.NewNopLogger())
	w, out := predict(t, h, `{"sector":"Technology"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, assert.AnError.Error(), out["error"])
}

//Personal.AI order the ending
