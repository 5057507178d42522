package service

import (
	"context"
	"errors"

	"go-mrp-api/internal/client"
	"go-mrp-api/internal/model"
	"go-mrp-api/internal/repository"
	"go-mrp-api/internal/ws"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrWorkOrderNotFound = errors.New("work order not found")

type WorkOrderService interface {
	Create(req *model.WorkOrder, userID string) (*model.WorkOrder, error)
	Update(id uuid.UUID, req *model.WorkOrder, userID string) (*model.WorkOrder, error)
	GetByID(id uuid.UUID) (*model.WorkOrder, error)
	GetAll() ([]model.WorkOrder, error)
	Delete(id uuid.UUID) error
}

type workOrderService struct {
	repo        repository.WorkOrderRepository
	productRepo repository.ProductRepository
	risk        client.RiskPredictor
	wsHub       *ws.Hub
	log         zerolog.Logger
}

func NewWorkOrderService(repo repository.WorkOrderRepository, pRepo repository.ProductRepository, risk client.RiskPredictor, hub *ws.Hub, log zerolog.Logger) WorkOrderService {
	return &workOrderService{
		repo:        repo,
		productRepo: pRepo,
		risk:        risk,
		wsHub:       hub,
		log:         log,
	}
}

func (s *workOrderService) Create(req *model.WorkOrder, userID string) (*model.WorkOrder, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		return nil, ErrProductNotFound
	}

	if req.Status == "" {
		req.Status = model.WorkOrderPlanned
	}
	req.RiskLabel = model.RiskUnknown
	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.repo.Create(req); err != nil {
		return nil, err
	}

	// Risk annotation is advisory and must never block or fail the request
	go s.annotateRisk(req.ID, client.RiskRequest{
		Operation:      req.Operation,
		Machine:        req.Machine,
		Worker:         req.Worker,
		PlannedMinutes: req.PlannedMinutes,
		ActualMinutes:  req.ActualMinutes,
	})

	return req, nil
}

func (s *workOrderService) Update(id uuid.UUID, req *model.WorkOrder, userID string) (*model.WorkOrder, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrWorkOrderNotFound
	}

	existing.Operation = req.Operation
	existing.Machine = req.Machine
	existing.Worker = req.Worker
	existing.PlannedMinutes = req.PlannedMinutes
	existing.ActualMinutes = req.ActualMinutes
	if req.Status != "" {
		existing.Status = req.Status
	}
	existing.Note = req.Note
	existing.UpdatedBy = userID

	if err := validateInput(existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}

	go s.annotateRisk(existing.ID, client.RiskRequest{
		Operation:      existing.Operation,
		Machine:        existing.Machine,
		Worker:         existing.Worker,
		PlannedMinutes: existing.PlannedMinutes,
		ActualMinutes:  existing.ActualMinutes,
	})

	return existing, nil
}

// annotateRisk calls the external predictor and stores whatever label comes
// back. The predictor degrades to Unknown on its own; only the DB write can
// fail here, and that is logged and dropped.
func (s *workOrderService) annotateRisk(id uuid.UUID, req client.RiskRequest) {
	label := s.risk.Predict(context.Background(), req)

	if err := s.repo.UpdateRiskLabel(id, label); err != nil {
		s.log.Warn().Err(err).Str("work_order_id", id.String()).Msg("failed to store risk label")
		return
	}

	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":          "work_order_update",
		"action":        "risk_annotated",
		"work_order_id": id,
		"risk_label":    label,
	})
}

func (s *workOrderService) GetByID(id uuid.UUID) (*model.WorkOrder, error) {
	order, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrWorkOrderNotFound
	}
	return order, nil
}

func (s *workOrderService) GetAll() ([]model.WorkOrder, error) {
	return s.repo.FindAll()
}

func (s *workOrderService) Delete(id uuid.UUID) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return ErrWorkOrderNotFound
	}
	return s.repo.Delete(id)
}
