package repository

import (
	"go-mrp-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductionJobRepository interface {
	Create(job *model.ProductionJob) error
	FindByID(id uuid.UUID) (*model.ProductionJob, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.ProductionJob, error)
	FindAll() ([]model.ProductionJob, error)
	FindByOrder(orderID uuid.UUID) ([]model.ProductionJob, error)
	Save(tx *gorm.DB, job *model.ProductionJob) error
	CountByOrderAndStatus(orderID uuid.UUID, status model.JobStatus) (int64, error)
	Delete(tx *gorm.DB, id uuid.UUID) error
}

type productionJobRepo struct {
	db *gorm.DB
}

func NewProductionJobRepo(db *gorm.DB) ProductionJobRepository {
	return &productionJobRepo{db}
}

func (r *productionJobRepo) Create(job *model.ProductionJob) error {
	return r.db.Create(job).Error
}

func (r *productionJobRepo) FindByID(id uuid.UUID) (*model.ProductionJob, error) {
	var job model.ProductionJob
	err := r.db.Preload("Product").Preload("Order").First(&job, "id = ?", id).Error
	return &job, err
}

// FindByIDForUpdate locks the job row for the duration of the surrounding
// transaction so two concurrent complete() calls serialize on it.
func (r *productionJobRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.ProductionJob, error) {
	var job model.ProductionJob
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&job, "id = ?", id).Error
	return &job, err
}

func (r *productionJobRepo) FindAll() ([]model.ProductionJob, error) {
	var jobs []model.ProductionJob
	err := r.db.Preload("Product").Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *productionJobRepo) FindByOrder(orderID uuid.UUID) ([]model.ProductionJob, error) {
	var jobs []model.ProductionJob
	err := r.db.Preload("Product").Where("order_id = ?", orderID).
		Order("created_at ASC").Find(&jobs).Error
	return jobs, err
}

func (r *productionJobRepo) Save(tx *gorm.DB, job *model.ProductionJob) error {
	return tx.Save(job).Error
}

func (r *productionJobRepo) CountByOrderAndStatus(orderID uuid.UUID, status model.JobStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProductionJob{}).
		Where("order_id = ? AND status = ?", orderID, status).
		Count(&count).Error
	return count, err
}

func (r *productionJobRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.ProductionJob{}, "id = ?", id).Error
}
