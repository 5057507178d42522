package model

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobPending   JobStatus = "PENDING"
	JobRunning   JobStatus = "RUNNING"
	JobCompleted JobStatus = "COMPLETED"
	JobFailed    JobStatus = "FAILED"
)

// jobTransitions gates every status change, including the generic override
// path. COMPLETED has no outgoing edges: its stock effect has been applied
// and cannot be un-applied. FAILED -> PENDING is the operational retry.
var jobTransitions = map[JobStatus][]JobStatus{
	JobPending:   {JobRunning, JobFailed},
	JobRunning:   {JobCompleted, JobFailed},
	JobFailed:    {JobPending},
	JobCompleted: {},
}

// ValidJobStatus reports whether s is a known production job status.
func ValidJobStatus(s JobStatus) bool {
	_, ok := jobTransitions[s]
	return ok
}

// CanTransition reports whether a job may move from its current status to next.
func (s JobStatus) CanTransition(next JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether s has no outgoing transitions.
func (s JobStatus) Terminal() bool {
	return len(jobTransitions[s]) == 0
}

// ProductionJob is a unit of manufacturing work for a quantity of one product,
// optionally tied to a customer order.
type ProductionJob struct {
	BaseModel
	OrderID    *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Order      *Order     `json:"order,omitempty" validate:"-"`
	ProductID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product    *Product   `json:"product,omitempty" validate:"-"`
	Quantity   int        `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Status     JobStatus  `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func (ProductionJob) TableName() string {
	return "production_jobs"
}

// MarkStarted records started_at once; repeated starts after a retry keep the
// original timestamp.
func (j *ProductionJob) MarkStarted(now time.Time) {
	j.Status = JobRunning
	if j.StartedAt == nil {
		j.StartedAt = &now
	}
}

// MarkFinished flips the job into a finishing status and stamps finished_at
// if it is not already set.
func (j *ProductionJob) MarkFinished(status JobStatus, now time.Time) {
	j.Status = status
	if j.FinishedAt == nil {
		j.FinishedAt = &now
	}
}
