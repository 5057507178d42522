package service

import (
	"testing"

	"go-mrp-api/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory fakes covering the pre-transaction validation paths. Paths that
// reach the database transaction are exercised against a real Postgres in
// integration environments.

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) { return nil, gorm.ErrRecordNotFound }
func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindAll() ([]model.User, error)  { return nil, nil }
func (f *fakeUserRepo) Create(user *model.User) error   { return nil }
func (f *fakeUserRepo) Update(user *model.User) error   { return nil }
func (f *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	return nil
}
func (f *fakeUserRepo) Delete(id uuid.UUID) error { return nil }

type fakeProductRepo struct {
	products   map[uuid.UUID]*model.Product
	adjustRows int64
	adjustErr  error
}

func (f *fakeProductRepo) Create(tx *gorm.DB, product *model.Product) error { return nil }
func (f *fakeProductRepo) FindAll() ([]model.Product, error)                { return nil, nil }
func (f *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProductRepo) FindBySKU(sku string) (*model.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProductRepo) Update(product *model.Product) error { return nil }
func (f *fakeProductRepo) AdjustStock(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (int64, error) {
	return f.adjustRows, f.adjustErr
}
func (f *fakeProductRepo) ReferenceCount(id uuid.UUID) (int64, error) { return 0, nil }
func (f *fakeProductRepo) Delete(tx *gorm.DB, id uuid.UUID) error     { return nil }

func newOrderServiceForValidation(customer *model.User, products ...*model.Product) OrderService {
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
	if customer != nil {
		userRepo.users[customer.ID] = customer
	}
	productRepo := &fakeProductRepo{products: map[uuid.UUID]*model.Product{}}
	for _, p := range products {
		productRepo.products[p.ID] = p
	}
	return NewOrderService(nil, productRepo, userRepo, nil, nil, zerolog.Nop())
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	svc := newOrderServiceForValidation(nil)

	_, err := svc.CreateOrder(&CreateOrderRequest{CustomerID: uuid.New()}, "tester")
	require.Error(t, err)
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	svc := newOrderServiceForValidation(nil)

	req := &CreateOrderRequest{
		CustomerID: uuid.New(),
		Items: []OrderItemInput{
			{ProductID: uuid.New(), Quantity: 0, UnitPrice: decimal.NewFromInt(10)},
		},
	}
	_, err := svc.CreateOrder(req, "tester")
	require.Error(t, err)
}

func TestCreateOrderRejectsNegativeUnitPrice(t *testing.T) {
	svc := newOrderServiceForValidation(nil)

	req := &CreateOrderRequest{
		CustomerID: uuid.New(),
		Items: []OrderItemInput{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(-5)},
		},
	}
	_, err := svc.CreateOrder(req, "tester")
	require.Error(t, err)
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	svc := newOrderServiceForValidation(nil)

	req := &CreateOrderRequest{
		CustomerID: uuid.New(),
		Items: []OrderItemInput{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	}
	_, err := svc.CreateOrder(req, "tester")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	customer := &model.User{BaseModel: model.BaseModel{ID: uuid.New()}, Username: "cust"}
	svc := newOrderServiceForValidation(customer)

	req := &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	}
	_, err := svc.CreateOrder(req, "tester")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
