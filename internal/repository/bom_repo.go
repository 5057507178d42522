package repository

import (
	"go-mrp-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BOMRepository interface {
	Create(bom *model.BOM) error
	FindByID(id uuid.UUID) (*model.BOM, error)
	FindAll() ([]model.BOM, error)
	FindByProduct(productID uuid.UUID) ([]model.BOM, error)
	Update(bom *model.BOM) error
	ReplaceItems(bomID uuid.UUID, items []model.BOMItem) error
	Delete(id uuid.UUID) error
}

type bomRepo struct {
	db *gorm.DB
}

func NewBOMRepo(db *gorm.DB) BOMRepository {
	return &bomRepo{db}
}

func (r *bomRepo) Create(bom *model.BOM) error {
	return r.db.Create(bom).Error
}

func (r *bomRepo) FindByID(id uuid.UUID) (*model.BOM, error) {
	var bom model.BOM
	err := r.db.Preload("Items").Preload("Items.Component").Preload("Product").
		First(&bom, "id = ?", id).Error
	return &bom, err
}

func (r *bomRepo) FindAll() ([]model.BOM, error) {
	var boms []model.BOM
	err := r.db.Preload("Product").Order("created_at DESC").Find(&boms).Error
	return boms, err
}

func (r *bomRepo) FindByProduct(productID uuid.UUID) ([]model.BOM, error) {
	var boms []model.BOM
	err := r.db.Preload("Items").Where("product_id = ?", productID).
		Order("version ASC").Find(&boms).Error
	return boms, err
}

func (r *bomRepo) Update(bom *model.BOM) error {
	return r.db.Save(bom).Error
}

// ReplaceItems swaps a draft BOM's component lines in one transaction.
func (r *bomRepo) ReplaceItems(bomID uuid.UUID, items []model.BOMItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bom_id = ?", bomID).Delete(&model.BOMItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].BOMID = bomID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *bomRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.BOM{}, "id = ?", id).Error
}
