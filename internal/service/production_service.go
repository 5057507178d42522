package service

import (
	"errors"
	"time"

	"go-mrp-api/internal/model"
	"go-mrp-api/internal/repository"
	"go-mrp-api/internal/ws"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CreateJobRequest struct {
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	ProductID uuid.UUID  `json:"product_id" validate:"uuid_required"`
	Quantity  int        `json:"quantity" validate:"required,gt=0"`
}

// ProductionService drives jobs through PENDING -> RUNNING -> COMPLETED/FAILED.
// Complete is the only path that touches stock, and it does so through the
// inventory ledger inside the same transaction as the status flip: either
// both commit or neither does.
type ProductionService interface {
	Create(req *CreateJobRequest, userID string) (*model.ProductionJob, error)
	Start(id uuid.UUID, userID string) (*model.ProductionJob, error)
	Complete(id uuid.UUID, userID string) (*model.ProductionJob, error)
	Fail(id uuid.UUID, userID string) (*model.ProductionJob, error)
	SetStatus(id uuid.UUID, next model.JobStatus, userID string) (*model.ProductionJob, error)
	GetJob(id uuid.UUID) (*model.ProductionJob, error)
	GetAllJobs() ([]model.ProductionJob, error)
	GetJobsByOrder(orderID uuid.UUID) ([]model.ProductionJob, error)
	Delete(id uuid.UUID, userID string) error
}

type productionService struct {
	jobRepo     repository.ProductionJobRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	inventory   InventoryService
	db          *gorm.DB
	wsHub       *ws.Hub
	log         zerolog.Logger
}

func NewProductionService(jRepo repository.ProductionJobRepository, pRepo repository.ProductRepository, oRepo repository.OrderRepository, inv InventoryService, db *gorm.DB, hub *ws.Hub, log zerolog.Logger) ProductionService {
	return &productionService{
		jobRepo:     jRepo,
		productRepo: pRepo,
		orderRepo:   oRepo,
		inventory:   inv,
		db:          db,
		wsHub:       hub,
		log:         log,
	}
}

func (s *productionService) Create(req *CreateJobRequest, userID string) (*model.ProductionJob, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		return nil, ErrProductNotFound
	}
	if req.OrderID != nil {
		if _, err := s.orderRepo.FindByID(*req.OrderID); err != nil {
			return nil, ErrOrderNotFound
		}
	}

	job := &model.ProductionJob{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Status:    model.JobPending,
	}
	job.CreatedBy = userID
	job.UpdatedBy = userID

	if err := s.jobRepo.Create(job); err != nil {
		return nil, err
	}

	return job, nil
}

func (s *productionService) Start(id uuid.UUID, userID string) (*model.ProductionJob, error) {
	return s.transition(id, model.JobRunning, userID)
}

// Complete flips the job to COMPLETED and applies its stock effect exactly
// once. The job row is locked FOR UPDATE for the whole transaction, so a
// concurrent second complete() blocks, then fails the RUNNING check.
func (s *productionService) Complete(id uuid.UUID, userID string) (*model.ProductionJob, error) {
	var completed *model.ProductionJob

	err := s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.jobRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return ErrJobNotFound
		}
		if !job.Status.CanTransition(model.JobCompleted) {
			return ErrInvalidTransition
		}

		job.MarkFinished(model.JobCompleted, time.Now())
		job.UpdatedBy = userID
		if err := s.jobRepo.Save(tx, job); err != nil {
			return err
		}

		// Ledger failure rolls the status flip back with it
		if err := s.inventory.AdjustStockTx(tx, job.ProductID, job.Quantity, model.ReasonJobCompletion, userID); err != nil {
			return err
		}

		completed = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("job_id", completed.ID.String()).
		Int("quantity", completed.Quantity).
		Msg("production job completed")

	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "job_update",
		"action": "job_completed",
		"job": map[string]interface{}{
			"id":         completed.ID,
			"product_id": completed.ProductID,
			"quantity":   completed.Quantity,
		},
		"user_id": userID,
	})

	return completed, nil
}

func (s *productionService) Fail(id uuid.UUID, userID string) (*model.ProductionJob, error) {
	return s.transition(id, model.JobFailed, userID)
}

// SetStatus is the operational override. It obeys the same transition table
// as the guarded paths (so COMPLETED stays unreachable here and can never
// apply stock twice) and leaves an audit trace in the logs.
func (s *productionService) SetStatus(id uuid.UUID, next model.JobStatus, userID string) (*model.ProductionJob, error) {
	if !model.ValidJobStatus(next) {
		return nil, invalidInput("unknown job status")
	}
	if next == model.JobCompleted {
		// Stock side effect must go through Complete
		return nil, ErrInvalidTransition
	}

	s.log.Warn().
		Str("job_id", id.String()).
		Str("target_status", string(next)).
		Str("user_id", userID).
		Msg("generic job status override used")

	return s.transition(id, next, userID)
}

// transition performs a guarded status change under a row lock.
func (s *productionService) transition(id uuid.UUID, next model.JobStatus, userID string) (*model.ProductionJob, error) {
	var updated *model.ProductionJob

	err := s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.jobRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return ErrJobNotFound
		}
		if !job.Status.CanTransition(next) {
			return ErrInvalidTransition
		}

		now := time.Now()
		switch next {
		case model.JobRunning:
			job.MarkStarted(now)
		case model.JobFailed:
			job.MarkFinished(model.JobFailed, now)
		case model.JobPending:
			// Retry of a failed job: the finish timestamp no longer applies
			job.Status = model.JobPending
			job.FinishedAt = nil
		default:
			job.Status = next
		}
		job.UpdatedBy = userID

		if err := s.jobRepo.Save(tx, job); err != nil {
			return err
		}
		updated = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *productionService) GetJob(id uuid.UUID) (*model.ProductionJob, error) {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *productionService) GetAllJobs() ([]model.ProductionJob, error) {
	return s.jobRepo.FindAll()
}

func (s *productionService) GetJobsByOrder(orderID uuid.UUID) ([]model.ProductionJob, error) {
	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		return nil, ErrOrderNotFound
	}
	return s.jobRepo.FindByOrder(orderID)
}

// Delete refuses completed jobs: their stock effect is history that an
// explicit compensating adjustment would have to undo first.
func (s *productionService) Delete(id uuid.UUID, userID string) error {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		return ErrJobNotFound
	}
	if job.Status == model.JobCompleted {
		return ErrJobCompleted
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.jobRepo.Delete(tx, id)
	})
}
