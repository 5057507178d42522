package service

import (
	"errors"

	"go-mrp-api/internal/model"
	"go-mrp-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreateOrderRequest struct {
	CustomerID uuid.UUID        `json:"customer_id" validate:"uuid_required"`
	Items      []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type OrderService interface {
	CreateOrder(req *CreateOrderRequest, userID string) (*model.Order, error)
	UpdateStatus(id uuid.UUID, next model.OrderStatus, userID string) (*model.Order, error)
	GetOrder(id uuid.UUID) (*model.Order, error)
	GetAllOrders() ([]model.Order, error)
	GetOrdersByCustomer(customerID uuid.UUID) ([]model.Order, error)
	DeleteOrder(id uuid.UUID, userID string) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	jobRepo     repository.ProductionJobRepository
	db          *gorm.DB
	log         zerolog.Logger
}

func NewOrderService(oRepo repository.OrderRepository, pRepo repository.ProductRepository, uRepo repository.UserRepository, jRepo repository.ProductionJobRepository, db *gorm.DB, log zerolog.Logger) OrderService {
	return &orderService{
		orderRepo:   oRepo,
		productRepo: pRepo,
		userRepo:    uRepo,
		jobRepo:     jRepo,
		db:          db,
		log:         log,
	}
}

// CreateOrder validates the customer and every line item product before any
// insert, then writes the header and all items in one transaction. The total
// is captured at creation time and never recomputed.
func (s *orderService) CreateOrder(req *CreateOrderRequest, userID string) (*model.Order, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if item.UnitPrice.IsNegative() {
			return nil, invalidInput("item unit price cannot be negative")
		}
	}

	if _, err := s.userRepo.FindByID(req.CustomerID); err != nil {
		return nil, ErrCustomerNotFound
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		if _, err := s.productRepo.FindByID(in.ProductID); err != nil {
			return nil, ErrProductNotFound
		}
		items = append(items, model.OrderItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
		})
	}

	order := &model.Order{
		CustomerID:  req.CustomerID,
		Status:      model.OrderPending,
		TotalAmount: model.ComputeTotal(items),
		Items:       items,
	}
	order.CreatedBy = userID
	order.UpdatedBy = userID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("total", order.TotalAmount.String()).
		Int("items", len(order.Items)).
		Msg("order created")

	return order, nil
}

// UpdateStatus moves an order along the transition table. The row is locked
// so two concurrent updates cannot both pass the legality check.
func (s *orderService) UpdateStatus(id uuid.UUID, next model.OrderStatus, userID string) (*model.Order, error) {
	if !model.ValidOrderStatus(next) {
		return nil, invalidInput("unknown order status")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return ErrOrderNotFound
		}
		if !order.Status.CanTransition(next) {
			return ErrInvalidTransition
		}
		return s.orderRepo.UpdateStatus(tx, id, next, userID)
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(id)
}

func (s *orderService) GetOrder(id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetAllOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) GetOrdersByCustomer(customerID uuid.UUID) ([]model.Order, error) {
	if _, err := s.userRepo.FindByID(customerID); err != nil {
		return nil, ErrCustomerNotFound
	}
	return s.orderRepo.FindByCustomer(customerID)
}

// DeleteOrder refuses once a COMPLETED job references the order, because its
// stock history would become ambiguous. Items cascade at the FK level.
func (s *orderService) DeleteOrder(id uuid.UUID, userID string) error {
	if _, err := s.orderRepo.FindByID(id); err != nil {
		return ErrOrderNotFound
	}

	completed, err := s.jobRepo.CountByOrderAndStatus(id, model.JobCompleted)
	if err != nil {
		return err
	}
	if completed > 0 {
		return ErrOrderHasHistory
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Delete(tx, id)
	})
}
