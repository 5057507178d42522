package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BOM lifecycle status
const (
	BOMDraft    = "draft"
	BOMReleased = "released"
	BOMObsolete = "obsolete"
)

// BOM is a bill of materials: the component list needed to manufacture one
// unit of a product. Only draft BOMs may be edited.
type BOM struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `json:"product,omitempty" validate:"-"`
	Version   string    `gorm:"type:varchar(16);not null" json:"version" validate:"required"`
	Status    string    `gorm:"type:varchar(16);not null;default:'draft'" json:"status"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`

	Items []BOMItem `gorm:"foreignKey:BOMID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (BOM) TableName() string {
	return "bill_of_materials"
}

type BOMItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BOMID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"bom_id"`
	ComponentID uuid.UUID       `gorm:"type:uuid;not null" json:"component_id" validate:"uuid_required"`
	Component   *Product        `gorm:"foreignKey:ComponentID" json:"component,omitempty" validate:"-"`
	Quantity    decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"quantity"`
	Unit        string          `gorm:"type:varchar(16);not null;default:'pcs'" json:"unit"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(15,4);not null;default:0" json:"unit_cost"`
}

func (BOMItem) TableName() string {
	return "bom_items"
}

func (i *BOMItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
