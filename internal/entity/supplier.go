package entity

import "time"

// Supplier nhà cung cấp — reference data looked up while drafting a payment
// request. Scoped to a project when ProjectID is set.
type Supplier struct {
	ID      string `json:"id" gorm:"primaryKey;size:32"`
	Name    string `json:"name" gorm:"size:200;not null"`
	TaxCode string `json:"tax_code" gorm:"size:50"`
	Address string `json:"address" gorm:"size:500"`

	BankAccount string `json:"bank_account" gorm:"size:50"`
	BankName    string `json:"bank_name" gorm:"size:200"`

	ProjectID *string `json:"project_id" gorm:"size:32;index"`

	CreatedBy string    `json:"created_by" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// ExpenseCategory maps an expense type to its reporting group. GroupName is
// resolved read-only from TypeName on payment requests.
type ExpenseCategory struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	TypeName  string    `json:"type_name" gorm:"size:200;uniqueIndex;not null"`
	GroupName string    `json:"group_name" gorm:"size:200;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ExpenseCategory) TableName() string {
	return "expense_categories"
}
