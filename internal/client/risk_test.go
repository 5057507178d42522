package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-mrp-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictReturnsServerLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req RiskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "milling", req.Operation)

		json.NewEncoder(w).Encode(map[string]string{"risk": model.RiskHigh})
	}))
	defer srv.Close()

	p := NewHTTPRiskPredictor(srv.URL, time.Second)
	got := p.Predict(context.Background(), RiskRequest{Operation: "milling", PlannedMinutes: 60})
	assert.Equal(t, model.RiskHigh, got)
}

func TestPredictDisabledWithoutURL(t *testing.T) {
	p := NewHTTPRiskPredictor("", time.Second)
	got := p.Predict(context.Background(), RiskRequest{Operation: "milling"})
	assert.Equal(t, model.RiskUnknown, got)
}

func TestPredictServerErrorFallsBackToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewHTTPRiskPredictor(srv.URL, time.Second)
	got := p.Predict(context.Background(), RiskRequest{Operation: "milling"})
	assert.Equal(t, model.RiskUnknown, got)
}

func TestPredictUnrecognizedLabelFallsBackToUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"risk": "CATASTROPHIC"})
	}))
	defer srv.Close()

	p := NewHTTPRiskPredictor(srv.URL, time.Second)
	got := p.Predict(context.Background(), RiskRequest{Operation: "milling"})
	assert.Equal(t, model.RiskUnknown, got)
}

func TestPredictUnreachableServerFallsBackToUnknown(t *testing.T) {
	p := NewHTTPRiskPredictor("http://127.0.0.1:1", 100*time.Millisecond)
	got := p.Predict(context.Background(), RiskRequest{Operation: "milling"})
	assert.Equal(t, model.RiskUnknown, got)
}
