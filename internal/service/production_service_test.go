package service

import (
	"context"
	"database/sql"
	"testing"

	"go-mrp-api/internal/model"
	"go-mrp-api/internal/ws"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// fakeConnPool lets db.Transaction run against in-memory repos: Begin hands
// out a committable pool and no SQL ever reaches a real connection.
type fakeConnPool struct{}

func (fakeConnPool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, sql.ErrConnDone
}
func (fakeConnPool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, sql.ErrConnDone
}
func (fakeConnPool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, sql.ErrConnDone
}
func (fakeConnPool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}
func (fakeConnPool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	return &fakeTx{}, nil
}

type fakeTx struct{ fakeConnPool }

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func newFakeTxDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{ConnPool: fakeConnPool{}})
	require.NoError(t, err)
	return db
}

// fakeJobRepo holds a single job.
type fakeJobRepo struct {
	job *model.ProductionJob
}

func (f *fakeJobRepo) Create(job *model.ProductionJob) error { f.job = job; return nil }
func (f *fakeJobRepo) FindByID(id uuid.UUID) (*model.ProductionJob, error) {
	if f.job == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.job, nil
}
func (f *fakeJobRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.ProductionJob, error) {
	return f.FindByID(id)
}
func (f *fakeJobRepo) FindAll() ([]model.ProductionJob, error) { return nil, nil }
func (f *fakeJobRepo) FindByOrder(orderID uuid.UUID) ([]model.ProductionJob, error) {
	return nil, nil
}
func (f *fakeJobRepo) Save(tx *gorm.DB, job *model.ProductionJob) error { f.job = job; return nil }
func (f *fakeJobRepo) CountByOrderAndStatus(orderID uuid.UUID, status model.JobStatus) (int64, error) {
	return 0, nil
}
func (f *fakeJobRepo) Delete(tx *gorm.DB, id uuid.UUID) error { f.job = nil; return nil }

func newProductionServiceWithFakes(t *testing.T, jobRepo *fakeJobRepo, productRepo *fakeProductRepo, logRepo *fakeLogRepo) ProductionService {
	t.Helper()
	db := newFakeTxDB(t)
	inv := NewInventoryService(productRepo, logRepo, db, nil, zerolog.Nop())
	hub := ws.NewHub(zerolog.Nop())
	return NewProductionService(jobRepo, productRepo, nil, inv, db, hub, zerolog.Nop())
}

// Completing a job applies its stock effect exactly once: the second call
// fails the transition check and never reaches the ledger.
func TestCompleteAppliesStockExactlyOnce(t *testing.T) {
	product := &model.Product{BaseModel: model.BaseModel{ID: uuid.New()}, SKU: "WIDGET-1", Stock: 0}
	productRepo := &fakeProductRepo{
		products:   map[uuid.UUID]*model.Product{product.ID: product},
		adjustRows: 1,
	}
	logRepo := &fakeLogRepo{}
	jobRepo := &fakeJobRepo{job: &model.ProductionJob{
		BaseModel: model.BaseModel{ID: uuid.New()},
		ProductID: product.ID,
		Quantity:  7,
		Status:    model.JobRunning,
	}}
	svc := newProductionServiceWithFakes(t, jobRepo, productRepo, logRepo)

	completed, err := svc.Complete(jobRepo.job.ID, "tester")
	require.NoError(t, err)
	assert.Equal(t, model.JobCompleted, completed.Status)
	require.NotNil(t, completed.FinishedAt)

	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, 7, logRepo.entries[0].Change)
	assert.Equal(t, model.ReasonJobCompletion, logRepo.entries[0].Reason)

	// Second completion of the same job changes nothing.
	_, err = svc.Complete(jobRepo.job.ID, "tester")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Len(t, logRepo.entries, 1, "stock effect must not be applied twice")
}

func TestCompleteRejectedWhenLedgerRefuses(t *testing.T) {
	product := &model.Product{BaseModel: model.BaseModel{ID: uuid.New()}, SKU: "WIDGET-1", Stock: 0}
	productRepo := &fakeProductRepo{
		products:   map[uuid.UUID]*model.Product{product.ID: product},
		adjustRows: 0, // conditional update reports no rows
	}
	logRepo := &fakeLogRepo{}
	jobRepo := &fakeJobRepo{job: &model.ProductionJob{
		BaseModel: model.BaseModel{ID: uuid.New()},
		ProductID: product.ID,
		Quantity:  3,
		Status:    model.JobRunning,
	}}
	svc := newProductionServiceWithFakes(t, jobRepo, productRepo, logRepo)

	_, err := svc.Complete(jobRepo.job.ID, "tester")

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, logRepo.entries)
}

func TestCompleteUnknownJob(t *testing.T) {
	svc := newProductionServiceWithFakes(t, &fakeJobRepo{}, &fakeProductRepo{products: map[uuid.UUID]*model.Product{}}, &fakeLogRepo{})

	_, err := svc.Complete(uuid.New(), "tester")
	assert.ErrorIs(t, err, ErrJobNotFound)
}
