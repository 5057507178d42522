package model

import (
	"time"

	"github.com/google/uuid"
)

// Delay-risk labels returned by the external predictor. Unknown is the
// fallback whenever the predictor is unreachable or undecided.
const (
	RiskLow     = "Low"
	RiskMedium  = "Medium"
	RiskHigh    = "High"
	RiskUnknown = "Unknown"
)

type WorkOrderStatus string

const (
	WorkOrderPlanned    WorkOrderStatus = "PLANNED"
	WorkOrderInProgress WorkOrderStatus = "IN_PROGRESS"
	WorkOrderDone       WorkOrderStatus = "DONE"
)

// WorkOrder represents a single shop-floor operation (cutting, assembly, QA ...)
// scheduled on a machine for a worker. It is a simpler entity than
// ProductionJob and has no effect on stock; the risk label is a best-effort
// annotation from the external delay predictor.
type WorkOrder struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `json:"product,omitempty" validate:"-"`

	Operation string `gorm:"type:varchar(100);not null" json:"operation" validate:"required"`
	Machine   string `gorm:"type:varchar(100)" json:"machine"`
	Worker    string `gorm:"type:varchar(100)" json:"worker"`

	// Durations in minutes; actual stays 0 until the operation finishes
	PlannedMinutes int `gorm:"not null" json:"planned_minutes" validate:"required,gt=0"`
	ActualMinutes  int `gorm:"not null;default:0" json:"actual_minutes" validate:"gte=0"`

	Status    WorkOrderStatus `gorm:"type:varchar(20);not null;default:'PLANNED'" json:"status"`
	RiskLabel string          `gorm:"type:varchar(10);not null;default:'Unknown'" json:"risk_label"`

	Note string `gorm:"type:text" json:"note,omitempty"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}

// WorkOrderResponse for API responses
type WorkOrderResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Product        *Product        `json:"product,omitempty"`
	Operation      string          `json:"operation"`
	Machine        string          `json:"machine"`
	Worker         string          `json:"worker"`
	PlannedMinutes int             `json:"planned_minutes"`
	ActualMinutes  int             `json:"actual_minutes"`
	Status         WorkOrderStatus `json:"status"`
	RiskLabel      string          `json:"risk_label"`
	Note           string          `json:"note,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	CreatedBy      string          `json:"created_by"`
}

// ToResponse converts WorkOrder to WorkOrderResponse
func (w *WorkOrder) ToResponse() WorkOrderResponse {
	return WorkOrderResponse{
		ID:             w.ID,
		ProductID:      w.ProductID,
		Product:        w.Product,
		Operation:      w.Operation,
		Machine:        w.Machine,
		Worker:         w.Worker,
		PlannedMinutes: w.PlannedMinutes,
		ActualMinutes:  w.ActualMinutes,
		Status:         w.Status,
		RiskLabel:      w.RiskLabel,
		Note:           w.Note,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
		CreatedBy:      w.CreatedBy,
	}
}
