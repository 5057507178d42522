package repository

import (
	"go-mrp-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Update(product *model.Product) error
	AdjustStock(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (int64, error)
	ReferenceCount(id uuid.UUID) (int64, error)
	Delete(tx *gorm.DB, id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// AdjustStock applies a signed stock delta as a single conditional UPDATE so
// concurrent adjustments can never lose an increment or drive stock negative.
// The returned affected-row count is the success signal: 0 rows on an
// existing product means the delta would have gone below zero.
func (r *productRepo) AdjustStock(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", delta),
			"updated_by": updatedBy,
		})
	return res.RowsAffected, res.Error
}

// ReferenceCount counts rows in other tables that still point at the product.
// A non-zero count blocks deletion.
func (r *productRepo) ReferenceCount(id uuid.UUID) (int64, error) {
	var total, n int64

	if err := r.db.Model(&model.OrderItem{}).Where("product_id = ?", id).Count(&n).Error; err != nil {
		return 0, err
	}
	total += n

	if err := r.db.Model(&model.ProductionJob{}).Where("product_id = ?", id).Count(&n).Error; err != nil {
		return 0, err
	}
	total += n

	if err := r.db.Model(&model.InventoryLog{}).Where("product_id = ?", id).Count(&n).Error; err != nil {
		return 0, err
	}
	total += n

	return total, nil
}

func (r *productRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Product{}, "id = ?", id).Error
}
