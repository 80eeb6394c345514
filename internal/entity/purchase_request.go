package entity

import "time"

// PurchaseRequest phiếu yêu cầu (PYC) — a priced request for materials or
// services raised against a project, or shared scope when ProjectID is nil.
// The ID is the human-readable document code: PYC/<project>/<yyyy>/<mm>/<nnnn>.
type PurchaseRequest struct {
	ID       string `json:"id" gorm:"primaryKey;size:64"`
	Title    string `json:"title" gorm:"size:200;not null"`
	Type     string `json:"request_type" gorm:"size:50"`
	Priority string `json:"priority" gorm:"size:20;default:normal"` // urgent/high/normal
	Status   string `json:"status" gorm:"size:20;default:pending;index"`

	ProjectID    *string `json:"project_id" gorm:"size:32;index"` // nil = shared scope
	TaskCategory string  `json:"task_category" gorm:"size:100"`
	Purpose      string  `json:"purpose_text" gorm:"type:text"`
	Notes        string  `json:"notes" gorm:"type:text"`

	// Request-level VAT default; line items may override per line.
	VATDisplay string  `json:"default_vat_display" gorm:"size:20"`
	VATValue   float64 `json:"default_vat_value" gorm:"type:decimal(5,2);default:0"`

	// Sum of line totals; recomputed on every header/line write.
	TotalAmount float64 `json:"total_amount" gorm:"type:decimal(18,2);default:0"`

	CreatedBy       string     `json:"created_by" gorm:"size:100"`
	ApprovedBy      *string    `json:"approved_by" gorm:"size:100"`
	ApprovedAt      *time.Time `json:"approved_at"`
	ApprovedMessage *string    `json:"approved_message" gorm:"size:500"`

	StatusHistory StatusHistory  `json:"status_history" gorm:"type:jsonb"`
	Attachments   AttachmentList `json:"attachments" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []PYCLineItem `json:"items,omitempty" gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

func (PurchaseRequest) TableName() string {
	return "pyc_requests"
}

// PYC status
const (
	PYCStatusPending       = "pending"
	PYCStatusApproved      = "approved"
	PYCStatusRejected      = "rejected"
	PYCStatusNeedsRevision = "needs_revision"
)

// PYC priority
const (
	PYCPriorityUrgent = "urgent"
	PYCPriorityHigh   = "high"
	PYCPriorityNormal = "normal"
)

// PYCLineItem chi tiết phiếu yêu cầu — one priced line on a purchase
// request. Lines are lifecycle-bound to their request (cascade delete).
type PYCLineItem struct {
	ID        string `json:"id" gorm:"primaryKey;size:32"`
	RequestID string `json:"request_id" gorm:"size:64;not null;index"`

	ItemName        string `json:"item_name" gorm:"size:200;not null"`
	Category        string `json:"category" gorm:"size:100"`
	TaskDescription string `json:"task_description" gorm:"size:500"`
	MaterialCode    string `json:"material_code" gorm:"size:50"`
	Unit            string `json:"unit" gorm:"size:20"`

	Quantity  float64 `json:"quantity" gorm:"type:decimal(12,2);default:0"`
	UnitPrice float64 `json:"unit_price" gorm:"type:decimal(15,2);default:0"`
	LineTotal float64 `json:"line_total" gorm:"type:decimal(18,2);default:0"` // quantity * unit_price

	VATDisplay string  `json:"vat_display" gorm:"size:20"`
	VATValue   float64 `json:"vat_value" gorm:"type:decimal(5,2);default:0"`

	Purpose string `json:"purpose_text" gorm:"size:500"`
	Notes   string `json:"notes" gorm:"type:text"`

	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PYCLineItem) TableName() string {
	return "pyc_line_items"
}
