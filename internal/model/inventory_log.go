package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known log reasons written by the system itself. Manual adjustments
// carry whatever reason the caller supplied.
const (
	ReasonInitialStock  = "Initial stock"
	ReasonJobCompletion = "Production job completion"
)

// InventoryLog is an append-only record of a single stock delta. Rows are
// written in the same database transaction as the product stock update and
// are never modified or deleted afterwards: summing Change over a product's
// logs must always reproduce its current stock.
type InventoryLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `json:"product,omitempty" validate:"-"`
	Change    int       `gorm:"not null" json:"change"` // signed, positive = stock increase
	Reason    string    `gorm:"type:varchar(255);not null" json:"reason" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

func (InventoryLog) TableName() string {
	return "inventory_logs"
}

func (l *InventoryLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

