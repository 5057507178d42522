package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils/tests"
)

// sqlRecorder captures every statement gorm builds so tests can assert on
// the generated SQL without a live database.
type sqlRecorder struct {
	mu         sync.Mutex
	statements []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.statements = append(r.statements, sql)
	r.mu.Unlock()
}

func (r *sqlRecorder) last(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.statements)
	return r.statements[len(r.statements)-1]
}

func newDryRunDB(t *testing.T, rec *sqlRecorder) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun: true,
		Logger: rec,
	})
	require.NoError(t, err)
	return db
}

func TestJobFindByIDForUpdateEmitsRowLock(t *testing.T) {
	rec := &sqlRecorder{}
	db := newDryRunDB(t, rec)

	repo := NewProductionJobRepo(db)
	repo.FindByIDForUpdate(db, uuid.New())

	assert.Contains(t, rec.last(t), "FOR UPDATE")
}

func TestOrderFindByIDForUpdateEmitsRowLock(t *testing.T) {
	rec := &sqlRecorder{}
	db := newDryRunDB(t, rec)

	repo := NewOrderRepo(db)
	repo.FindByIDForUpdate(db, uuid.New())

	assert.Contains(t, rec.last(t), "FOR UPDATE")
}

func TestJobFindByIDDoesNotLock(t *testing.T) {
	rec := &sqlRecorder{}
	db := newDryRunDB(t, rec)

	repo := NewProductionJobRepo(db)
	repo.FindByID(uuid.New())

	assert.NotContains(t, rec.last(t), "FOR UPDATE")
}
