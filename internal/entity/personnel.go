package entity

import "time"

// Personnel nhân sự — a staff member of the contractor. Email doubles as
// the actor identity recorded on status ledgers.
type Personnel struct {
	ID    string `json:"id" gorm:"primaryKey;size:32"`
	Name  string `json:"name" gorm:"size:100;not null"`
	Email string `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Phone string `json:"phone" gorm:"size:20"`
	Role  string `json:"role" gorm:"size:50"` // director/accountant/site_manager/staff

	ProjectID *string `json:"project_id" gorm:"size:32;index"` // current assignment, nil = head office
	Status    string  `json:"status" gorm:"size:20;default:active"`

	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Personnel) TableName() string {
	return "personnel"
}
