package service

import (
	"errors"

	"go-mrp-api/internal/model"
	"go-mrp-api/internal/repository"
	"go-mrp-api/internal/ws"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// InventoryService owns the product ledger. AdjustStock is the only
// sanctioned way to change stock anywhere in the system; every caller that
// mutates stock (manual adjustments, production job completion) routes
// through it so the inventory log stays reconciled with the stock column.
type InventoryService interface {
	CreateProduct(req *model.Product, initialStock int, userID string) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error)
	AdjustStock(productID uuid.UUID, delta int, reason, userID string) (*model.Product, error)
	AdjustStockTx(tx *gorm.DB, productID uuid.UUID, delta int, reason, userID string) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	DeleteProduct(id uuid.UUID, userID string) error
	GetAllLogs() ([]model.InventoryLog, error)
	GetLogsByProduct(productID uuid.UUID) ([]model.InventoryLog, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	log         zerolog.Logger
}

func NewInventoryService(pRepo repository.ProductRepository, lRepo repository.InventoryLogRepository, db *gorm.DB, hub *ws.Hub, log zerolog.Logger) InventoryService {
	return &inventoryService{
		productRepo: pRepo,
		logRepo:     lRepo,
		db:          db,
		wsHub:       hub,
		log:         log,
	}
}

func (s *inventoryService) CreateProduct(req *model.Product, initialStock int, userID string) (*model.Product, error) {
	req.Stock = initialStock

	if err := validateInput(req); err != nil {
		return nil, err
	}
	if initialStock < 0 {
		return nil, invalidInput("initial stock cannot be negative")
	}

	// SKU duplication check (business rule, the unique index is the backstop)
	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateSKU
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID

	// Product row and the seed log entry commit together or not at all
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, req); err != nil {
			return err
		}
		if initialStock > 0 {
			entry := &model.InventoryLog{
				ProductID: req.ID,
				Change:    initialStock,
				Reason:    model.ReasonInitialStock,
				CreatedBy: userID,
			}
			if err := s.logRepo.Create(tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("sku", req.SKU).Int("initial_stock", initialStock).Msg("product created")

	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":    req.ID,
			"sku":   req.SKU,
			"name":  req.Name,
			"stock": req.Stock,
		},
		"user_id": userID,
	})

	return req, nil
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, req *model.Product, userID string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	// SKU change must not collide with another product
	if req.SKU != existing.SKU {
		other, _ := s.productRepo.FindBySKU(req.SKU)
		if other != nil && other.ID != uuid.Nil && other.ID != id {
			return nil, ErrDuplicateSKU
		}
	}

	// Stock is deliberately not updatable here; use AdjustStock
	existing.Name = req.Name
	existing.SKU = req.SKU
	existing.Unit = req.Unit
	existing.CostPrice = req.CostPrice
	existing.SellingPrice = req.SellingPrice
	existing.UpdatedBy = userID

	if err := validateInput(existing); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// AdjustStock applies a signed delta and appends the matching log entry in a
// single database transaction.
func (s *inventoryService) AdjustStock(productID uuid.UUID, delta int, reason, userID string) (*model.Product, error) {
	if reason == "" {
		return nil, invalidInput("adjustment reason is required")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.AdjustStockTx(tx, productID, delta, reason, userID)
	})
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, err
	}

	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": "stock_adjusted",
		"product": map[string]interface{}{
			"id":        product.ID,
			"sku":       product.SKU,
			"new_stock": product.Stock,
		},
		"change":  delta,
		"reason":  reason,
		"user_id": userID,
	})

	return product, nil
}

// AdjustStockTx is the ledger choke point for callers that already hold a
// transaction (production job completion). The conditional UPDATE either
// applies the delta atomically or touches no rows; a zero row count on an
// existing product means the delta would drive stock negative.
func (s *inventoryService) AdjustStockTx(tx *gorm.DB, productID uuid.UUID, delta int, reason, userID string) error {
	rows, err := s.productRepo.AdjustStock(tx, productID, delta, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := s.productRepo.FindByID(productID); err != nil {
			return ErrProductNotFound
		}
		return ErrInsufficientStock
	}

	entry := &model.InventoryLog{
		ProductID: productID,
		Change:    delta,
		Reason:    reason,
		CreatedBy: userID,
	}
	if err := s.logRepo.Create(tx, entry); err != nil {
		return err
	}

	s.log.Info().
		Str("product_id", productID.String()).
		Int("change", delta).
		Str("reason", reason).
		Msg("stock adjusted")
	return nil
}

func (s *inventoryService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *inventoryService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) DeleteProduct(id uuid.UUID, userID string) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}

	refs, err := s.productRepo.ReferenceCount(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrProductReferenced
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.productRepo.Delete(tx, id)
	})
}

func (s *inventoryService) GetAllLogs() ([]model.InventoryLog, error) {
	return s.logRepo.FindAll()
}

func (s *inventoryService) GetLogsByProduct(productID uuid.UUID) ([]model.InventoryLog, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, ErrProductNotFound
	}
	return s.logRepo.FindByProduct(productID)
}
