package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	SKU          string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Stock        int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	Unit         string          `gorm:"type:varchar(20)" json:"unit"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0" json:"cost_price"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0" json:"selling_price"`

	// Relasi
	InventoryLogs []InventoryLog `json:"inventory_logs,omitempty"`
}
