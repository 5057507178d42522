package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-mrp-api/internal/model"
)

// RiskPredictor asks an external service for a coarse delay-risk label on a
// work order. It is strictly best-effort: any failure degrades to Unknown.
type RiskPredictor interface {
	Predict(ctx context.Context, req RiskRequest) string
}

type RiskRequest struct {
	Operation      string `json:"operation"`
	Machine        string `json:"machine"`
	Worker         string `json:"worker"`
	PlannedMinutes int    `json:"planned_minutes"`
	ActualMinutes  int    `json:"actual_minutes"`
}

type riskResponse struct {
	Risk string `json:"risk"`
}

type HTTPRiskPredictor struct {
	url        string
	httpClient *http.Client
}

// NewHTTPRiskPredictor builds the adapter. An empty url disables prediction;
// Predict then always returns Unknown without a network call.
func NewHTTPRiskPredictor(url string, timeout time.Duration) *HTTPRiskPredictor {
	return &HTTPRiskPredictor{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *HTTPRiskPredictor) Predict(ctx context.Context, req RiskRequest) string {
	if p.url == "" {
		return model.RiskUnknown
	}

	body, err := json.Marshal(req)
	if err != nil {
		return model.RiskUnknown
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return model.RiskUnknown
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return model.RiskUnknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.RiskUnknown
	}

	var out riskResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.RiskUnknown
	}

	switch out.Risk {
	case model.RiskLow, model.RiskMedium, model.RiskHigh:
		return out.Risk
	}
	return model.RiskUnknown
}

var _ RiskPredictor = (*HTTPRiskPredictor)(nil)
