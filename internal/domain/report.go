package domain

import (
	"fmt"
	"time"
)

type ReportStatus string

const (
	ReportQueued     ReportStatus = "queued"
	ReportProcessing ReportStatus = "processing"
	ReportCompleted  ReportStatus = "completed"
	ReportFailed     ReportStatus = "failed"
)

// transitions is the closed state machine: completed and failed are
// terminal, and completed is only reachable through processing.
var transitions = map[ReportStatus][]ReportStatus{
	ReportQueued:     {ReportProcessing, ReportFailed},
	ReportProcessing: {ReportCompleted, ReportFailed},
}

func (s ReportStatus) CanTransition(to ReportStatus) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportQueued, ReportProcessing, ReportCompleted, ReportFailed:
		return true
	}
	return false
}

// Report is a persisted generation job. ProcessID is the opaque public
// token; all post-creation mutation goes through Transition/the executor.
type Report struct {
	ID           uint         `gorm:"primaryKey" json:"-"`
	ProcessID    string       `gorm:"uniqueIndex;size:36;not null" json:"process_id"`
	UserID       uint         `gorm:"not null;index:idx_reports_user_created" json:"user_id"`
	Status       ReportStatus `gorm:"size:16;not null;default:queued;index" json:"status"`
	Progress     int          `gorm:"not null;default:0" json:"progress"`
	StartDate    time.Time    `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time    `gorm:"type:date;not null" json:"end_date"`
	FilePath     string       `json:"-"`
	ErrorMessage string       `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time    `gorm:"index:idx_reports_user_created" json:"created_at"`
	UpdatedAt    time.Time    `json:"-"`
}

func (Report) TableName() string { return "reports" }

func (r *Report) Completed() bool { return r.Status == ReportCompleted }

// Transition moves the report to the given status, rejecting anything
// outside the state machine.
func (r *Report) Transition(to ReportStatus) error {
	if !r.Status.CanTransition(to) {
		return fmt.Errorf("invalid report transition %s -> %s", r.Status, to)
	}
	r.Status = to
	return nil
}

type ReportRepository interface {
	Create(r *Report) error
	FindByID(id uint) (*Report, error)
	FindByProcessID(processID string) (*Report, error)
	ListByStatus(status ReportStatus, limit, offset int) ([]Report, int64, error)
	Update(r *Report) error
}
