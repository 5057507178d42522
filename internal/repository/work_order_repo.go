package repository

import (
	"go-mrp-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkOrderRepository interface {
	Create(order *model.WorkOrder) error
	FindByID(id uuid.UUID) (*model.WorkOrder, error)
	FindAll() ([]model.WorkOrder, error)
	Update(order *model.WorkOrder) error
	UpdateRiskLabel(id uuid.UUID, label string) error
	Delete(id uuid.UUID) error
}

type workOrderRepo struct {
	db *gorm.DB
}

func NewWorkOrderRepo(db *gorm.DB) WorkOrderRepository {
	return &workOrderRepo{db}
}

func (r *workOrderRepo) Create(order *model.WorkOrder) error {
	return r.db.Create(order).Error
}

func (r *workOrderRepo) FindByID(id uuid.UUID) (*model.WorkOrder, error) {
	var order model.WorkOrder
	err := r.db.Preload("Product").First(&order, "id = ?", id).Error
	return &order, err
}

func (r *workOrderRepo) FindAll() ([]model.WorkOrder, error) {
	var orders []model.WorkOrder
	err := r.db.Preload("Product").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *workOrderRepo) Update(order *model.WorkOrder) error {
	return r.db.Save(order).Error
}

// UpdateRiskLabel is written from the async risk annotation path; it must not
// clobber concurrent field edits, hence the single-column update.
func (r *workOrderRepo) UpdateRiskLabel(id uuid.UUID, label string) error {
	return r.db.Model(&model.WorkOrder{}).Where("id = ?", id).Update("risk_label", label).Error
}

func (r *workOrderRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.WorkOrder{}, "id = ?", id).Error
}
