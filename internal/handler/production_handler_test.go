package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"go-mrp-api/internal/model"
	"go-mrp-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProductionService returns canned results; err takes precedence.
type stubProductionService struct {
	job *model.ProductionJob
	err error
}

func (s *stubProductionService) Create(req *service.CreateJobRequest, userID string) (*model.ProductionJob, error) {
	return s.job, s.err
}
func (s *stubProductionService) Start(id uuid.UUID, userID string) (*model.ProductionJob, error) {
	return s.job, s.err
}
func (s *stubProductionService) Complete(id uuid.UUID, userID string) (*model.ProductionJob, error) {
	return s.job, s.err
}
func (s *stubProductionService) Fail(id uuid.UUID, userID string) (*model.ProductionJob, error) {
	return s.job, s.err
}
func (s *stubProductionService) SetStatus(id uuid.UUID, next model.JobStatus, userID string) (*model.ProductionJob, error) {
	return s.job, s.err
}
func (s *stubProductionService) GetJob(id uuid.UUID) (*model.ProductionJob, error) {
	return s.job, s.err
}
func (s *stubProductionService) GetAllJobs() ([]model.ProductionJob, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.ProductionJob{}, nil
}
func (s *stubProductionService) GetJobsByOrder(orderID uuid.UUID) ([]model.ProductionJob, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.ProductionJob{}, nil
}
func (s *stubProductionService) Delete(id uuid.UUID, userID string) error {
	return s.err
}

func newJobApp(stub *stubProductionService) *fiber.App {
	h := NewProductionHandler(stub)
	app := fiber.New()
	app.Post("/jobs/:id/complete", h.CompleteJob)
	app.Post("/jobs/:id/start", h.StartJob)
	app.Get("/jobs/:id", h.GetJob)
	return app
}

func TestCompleteJobInvalidTransitionReturns409(t *testing.T) {
	app := newJobApp(&stubProductionService{err: service.ErrInvalidTransition})

	req := httptest.NewRequest("POST", "/jobs/"+uuid.NewString()+"/complete", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestCompleteJobNotFoundReturns404(t *testing.T) {
	app := newJobApp(&stubProductionService{err: service.ErrJobNotFound})

	req := httptest.NewRequest("POST", "/jobs/"+uuid.NewString()+"/complete", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestStartJobSuccess(t *testing.T) {
	job := &model.ProductionJob{Quantity: 5, Status: model.JobRunning}
	app := newJobApp(&stubProductionService{job: job})

	req := httptest.NewRequest("POST", "/jobs/"+uuid.NewString()+"/start", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

// Unclassified errors (driver failures and the like) must surface as a 500
// with a generic body, never the raw message.
func TestCompleteJobUnclassifiedErrorReturns500(t *testing.T) {
	app := newJobApp(&stubProductionService{err: errors.New("pq: connection reset by peer")})

	req := httptest.NewRequest("POST", "/jobs/"+uuid.NewString()+"/complete", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "connection reset")
	assert.Contains(t, string(body), "Internal Server Error")
}

func TestCompleteJobValidationErrorReturns400(t *testing.T) {
	app := newJobApp(&stubProductionService{err: fmt.Errorf("%w: unknown job status", service.ErrValidation)})

	req := httptest.NewRequest("POST", "/jobs/"+uuid.NewString()+"/complete", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "unknown job status"))
}

func TestGetJobBadIDReturns400(t *testing.T) {
	app := newJobApp(&stubProductionService{})

	req := httptest.NewRequest("GET", "/jobs/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
