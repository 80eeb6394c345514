package entity

import "time"

// Project công trình — a construction project. Code is the short identifier
// embedded in PYC/DNTT document codes.
type Project struct {
	ID      string `json:"id" gorm:"primaryKey;size:32"`
	Code    string `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name    string `json:"name" gorm:"size:200;not null"`
	Address string `json:"address" gorm:"size:500"`
	Manager string `json:"manager" gorm:"size:100"`
	Status  string `json:"status" gorm:"size:20;default:active"` // active/completed/suspended

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedBy string    `json:"created_by" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// SharedProjectCode is used in document codes for requests with no project
// (shared/global scope).
const SharedProjectCode = "CHUNG"

// Project status
const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusSuspended = "suspended"
)
