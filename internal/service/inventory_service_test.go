package service

import (
	"testing"
	"time"

	"go-mrp-api/internal/model"
	"go-mrp-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeLogRepo records ledger entries in memory.
type fakeLogRepo struct {
	entries []model.InventoryLog
}

func (f *fakeLogRepo) Create(tx *gorm.DB, entry *model.InventoryLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}
func (f *fakeLogRepo) FindAll() ([]model.InventoryLog, error) { return f.entries, nil }
func (f *fakeLogRepo) FindByProduct(productID uuid.UUID) ([]model.InventoryLog, error) {
	return nil, nil
}
func (f *fakeLogRepo) SumByProduct(productID uuid.UUID) (int64, error) { return 0, nil }
func (f *fakeLogRepo) GetStockMovement(startDate, endDate time.Time) ([]repository.StockMovementData, error) {
	return nil, nil
}
func (f *fakeLogRepo) GetDashboardStats(lowStockThreshold int) (*repository.DashboardStats, error) {
	return nil, nil
}

func newInventoryServiceWithFakes(productRepo *fakeProductRepo, logRepo *fakeLogRepo) InventoryService {
	return NewInventoryService(productRepo, logRepo, nil, nil, zerolog.Nop())
}

// A zero-row conditional update on an existing product means the delta would
// drive stock negative; nothing may be persisted.
func TestAdjustStockTxInsufficientStock(t *testing.T) {
	product := &model.Product{BaseModel: model.BaseModel{ID: uuid.New()}, SKU: "WIDGET-1", Stock: 2}
	productRepo := &fakeProductRepo{
		products:   map[uuid.UUID]*model.Product{product.ID: product},
		adjustRows: 0,
	}
	logRepo := &fakeLogRepo{}
	svc := newInventoryServiceWithFakes(productRepo, logRepo)

	err := svc.AdjustStockTx(nil, product.ID, -5, "scrap", "tester")

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, logRepo.entries, "a rejected adjustment must not write a ledger entry")
}

func TestAdjustStockTxUnknownProduct(t *testing.T) {
	productRepo := &fakeProductRepo{products: map[uuid.UUID]*model.Product{}}
	logRepo := &fakeLogRepo{}
	svc := newInventoryServiceWithFakes(productRepo, logRepo)

	err := svc.AdjustStockTx(nil, uuid.New(), -1, "scrap", "tester")

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, logRepo.entries)
}

func TestAdjustStockTxAppendsMatchingLogEntry(t *testing.T) {
	product := &model.Product{BaseModel: model.BaseModel{ID: uuid.New()}, SKU: "WIDGET-1", Stock: 10}
	productRepo := &fakeProductRepo{
		products:   map[uuid.UUID]*model.Product{product.ID: product},
		adjustRows: 1,
	}
	logRepo := &fakeLogRepo{}
	svc := newInventoryServiceWithFakes(productRepo, logRepo)

	require.NoError(t, svc.AdjustStockTx(nil, product.ID, -3, "scrap", "tester"))

	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, product.ID, logRepo.entries[0].ProductID)
	assert.Equal(t, -3, logRepo.entries[0].Change)
	assert.Equal(t, "scrap", logRepo.entries[0].Reason)
}
