package client

import (
	"context"
	"net/http"
)

// PredictRequest is the /predict body. Revenue is in millions.
type PredictRequest struct {
	Sector    string  `json:"sector,omitempty"`
	Geography string  `json:"geography,omitempty"`
	Revenue   float64 `json:"revenue"`
}

// Range is a low/high pair.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Inputs echoes the request as the server scored it.
type Inputs struct {
	Sector    string  `json:"sector"`
	Geography string  `json:"geography"`
	RevenueM  float64 `json:"revenue_m"`
}

// Predictions are the rounded valuation figures.
type Predictions struct {
	RevenueMultiple  float64 `json:"revenue_multiple"`
	MultipleRange    Range   `json:"multiple_range"`
	EnterpriseValueM float64 `json:"enterprise_value_m"`
	EVRange          Range   `json:"ev_range"`
	Confidence       float64 `json:"confidence"`
}

// PredictResponse is a successful /predict reply.
type PredictResponse struct {
	Success     bool        `json:"success"`
	Inputs      Inputs      `json:"inputs"`
	Predictions Predictions `json:"predictions"`
	KeyDrivers  []string    `json:"key_drivers"`
}

// ServiceInfo is the / reply.
type ServiceInfo struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthStatus is the /health reply.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Predict scores one company.
func (c *Client) Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error) {
	var out PredictResponse
	if err := c.do(ctx, http.MethodPost, "/predict", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Info fetches the service description.
func (c *Client) Info(ctx context.Context) (*ServiceInfo, error) {
	var out ServiceInfo
	if err := c.do(ctx, http.MethodGet, "/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health fetches /health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
