package handlers

import (
	"io"
	"net/http"

	valuationapp "github.com/turtacn/DealLens/internal/application/valuation"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/pkg/errors"
)

// Service identity reported by the index endpoint.
const (
	ServiceName    = "ML Valuation API"
	ServiceVersion = "1.0.0"
)

// IndexResponse describes the service and its endpoints.
type IndexResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// StatusResponse is the /health body.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TestResponse is the static /test fixture.
type TestResponse struct {
	TestCompany       string  `json:"test_company"`
	ExpectedMultiple  float64 `json:"expected_multiple"`
	ExpectedValuation float64 `json:"expected_valuation"`
	Status            string  `json:"status"`
}

// PredictResponse is the /predict success body.
type PredictResponse struct {
	Success bool `json:"success"`
	valuationapp.Result
}

// ValuationHandler serves the valuation API.
type ValuationHandler struct {
	svc         valuationapp.Service
	maxBodySize int64
	logger      logging.Logger
}

// NewValuationHandler returns a handler over svc. Bodies larger than
// maxBodySize are rejected; zero means 1 MiB.
func NewValuationHandler(svc valuationapp.Service, maxBodySize int64, logger logging.Logger) *ValuationHandler {
	if maxBodySize <= 0 {
		maxBodySize = 1 << 20
	}
	return &ValuationHandler{svc: svc, maxBodySize: maxBodySize, logger: logger}
}

// Index handles GET /.
func (h *ValuationHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, IndexResponse{
		Name:    ServiceName,
		Version: ServiceVersion,
		Status:  "running",
		Endpoints: map[string]string{
			"health":  "/health",
			"test":    "/test",
			"predict": "/predict (POST)",
		},
	})
}

// Health handles GET /health.
func (h *ValuationHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "healthy", Message: "Valuation API is running"})
}

// Test handles GET /test. The body is a fixed document and does not call the
// engine.
func (h *ValuationHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TestResponse{
		TestCompany:       "CloudTech (Technology, USA, $50M)",
		ExpectedMultiple:  5.4,
		ExpectedValuation: 270,
		Status:            "API is working correctly",
	})
}

// Predict handles POST /predict. Every failure is a 400 with
// {success:false, error}.
func (h *ValuationHandler) Predict(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, errors.InvalidParam("failed to read request body").WithCause(err))
		return
	}

	req, err := valuationapp.DecodeRequest(body)
	if err != nil {
		h.logger.Debug("Rejected predict request",
			logging.Err(err),
			logging.String("request_id", logging.RequestIDFromContext(r.Context())))
		writeFailure(w, http.StatusBadRequest, err)
		return
	}

	res, err := h.svc.Score(r.Context(), req)
	if err != nil {
		h.logger.Error("Valuation failed", logging.Err(err), logging.String("sector", req.Sector))
		writeFailure(w, http.StatusBadRequest, err)
		return
	}

	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, PredictResponse{Success: true, Result: *res})
}

//Personal.AI order the ending
