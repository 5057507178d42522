package service

import (
	"go-mrp-api/internal/model"
	"go-mrp-api/internal/repository"

	"github.com/google/uuid"
)

type BOMService interface {
	Create(req *model.BOM, userID string) (*model.BOM, error)
	Update(id uuid.UUID, req *model.BOM, userID string) (*model.BOM, error)
	Release(id uuid.UUID, userID string) (*model.BOM, error)
	GetByID(id uuid.UUID) (*model.BOM, error)
	GetAll() ([]model.BOM, error)
	GetByProduct(productID uuid.UUID) ([]model.BOM, error)
	Delete(id uuid.UUID) error
}

type bomService struct {
	bomRepo     repository.BOMRepository
	productRepo repository.ProductRepository
}

func NewBOMService(bomRepo repository.BOMRepository, productRepo repository.ProductRepository) BOMService {
	return &bomService{
		bomRepo:     bomRepo,
		productRepo: productRepo,
	}
}

func (s *bomService) Create(req *model.BOM, userID string) (*model.BOM, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		return nil, ErrProductNotFound
	}
	for _, item := range req.Items {
		if _, err := s.productRepo.FindByID(item.ComponentID); err != nil {
			return nil, ErrProductNotFound
		}
		if !item.Quantity.IsPositive() {
			return nil, invalidInput("component quantity must be positive")
		}
	}

	req.Status = model.BOMDraft
	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.bomRepo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *bomService) Update(id uuid.UUID, req *model.BOM, userID string) (*model.BOM, error) {
	existing, err := s.bomRepo.FindByID(id)
	if err != nil {
		return nil, ErrBOMNotFound
	}
	if existing.Status != model.BOMDraft {
		return nil, ErrBOMReleased
	}

	for _, item := range req.Items {
		if _, err := s.productRepo.FindByID(item.ComponentID); err != nil {
			return nil, ErrProductNotFound
		}
		if !item.Quantity.IsPositive() {
			return nil, invalidInput("component quantity must be positive")
		}
	}

	existing.Version = req.Version
	existing.Notes = req.Notes
	existing.UpdatedBy = userID
	existing.Items = nil // lines are replaced wholesale below
	if err := s.bomRepo.Update(existing); err != nil {
		return nil, err
	}
	if err := s.bomRepo.ReplaceItems(id, req.Items); err != nil {
		return nil, err
	}

	return s.bomRepo.FindByID(id)
}

// Release freezes the BOM; released BOMs can only move to obsolete.
func (s *bomService) Release(id uuid.UUID, userID string) (*model.BOM, error) {
	bom, err := s.bomRepo.FindByID(id)
	if err != nil {
		return nil, ErrBOMNotFound
	}
	if bom.Status != model.BOMDraft {
		return nil, ErrBOMReleased
	}

	bom.Status = model.BOMReleased
	bom.UpdatedBy = userID
	if err := s.bomRepo.Update(bom); err != nil {
		return nil, err
	}
	return bom, nil
}

func (s *bomService) GetByID(id uuid.UUID) (*model.BOM, error) {
	bom, err := s.bomRepo.FindByID(id)
	if err != nil {
		return nil, ErrBOMNotFound
	}
	return bom, nil
}

func (s *bomService) GetAll() ([]model.BOM, error) {
	return s.bomRepo.FindAll()
}

func (s *bomService) GetByProduct(productID uuid.UUID) ([]model.BOM, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, ErrProductNotFound
	}
	return s.bomRepo.FindByProduct(productID)
}

func (s *bomService) Delete(id uuid.UUID) error {
	bom, err := s.bomRepo.FindByID(id)
	if err != nil {
		return ErrBOMNotFound
	}
	if bom.Status == model.BOMReleased {
		return ErrBOMReleased
	}
	return s.bomRepo.Delete(id)
}
