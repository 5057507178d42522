package repository

import (
	"time"

	"go-mrp-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryLogRepository interface {
	Create(tx *gorm.DB, entry *model.InventoryLog) error
	FindAll() ([]model.InventoryLog, error)
	FindByProduct(productID uuid.UUID) ([]model.InventoryLog, error)
	SumByProduct(productID uuid.UUID) (int64, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats(lowStockThreshold int) (*DashboardStats, error)
}

// StockMovementData for chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats for overview stats
type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

type inventoryLogRepo struct {
	db *gorm.DB
}

func NewInventoryLogRepo(db *gorm.DB) InventoryLogRepository {
	return &inventoryLogRepo{db}
}

func (r *inventoryLogRepo) Create(tx *gorm.DB, entry *model.InventoryLog) error {
	return tx.Create(entry).Error
}

func (r *inventoryLogRepo) FindAll() ([]model.InventoryLog, error) {
	var logs []model.InventoryLog
	err := r.db.Preload("Product").Order("created_at DESC").Find(&logs).Error
	return logs, err
}

func (r *inventoryLogRepo) FindByProduct(productID uuid.UUID) ([]model.InventoryLog, error) {
	var logs []model.InventoryLog
	err := r.db.Where("product_id = ?", productID).Order("created_at ASC").Find(&logs).Error
	return logs, err
}

// SumByProduct returns the sum of all deltas for a product. Matching it
// against the product's stock column is the ledger reconciliation check.
func (r *inventoryLogRepo) SumByProduct(productID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db.Model(&model.InventoryLog{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(change), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *inventoryLogRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Aggregate log deltas per day, split into inbound and outbound
	rows, err := r.db.Model(&model.InventoryLog{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN change > 0 THEN change ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN change < 0 THEN -change ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *inventoryLogRepo) GetDashboardStats(lowStockThreshold int) (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("stock < ?", lowStockThreshold).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	// Valuation uses cost price, not selling price
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock * cost_price), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
