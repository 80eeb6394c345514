package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories back-office repository set
type Repositories struct {
	Project         *ProjectRepository
	Personnel       *PersonnelRepository
	Supplier        *SupplierRepository
	ExpenseCategory *ExpenseCategoryRepository
	PYC             *PYCRepository
	DNTT            *DNTTRepository
}

// NewRepositories creates the repository set
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Project:         NewProjectRepository(db),
		Personnel:       NewPersonnelRepository(db),
		Supplier:        NewSupplierRepository(db),
		ExpenseCategory: NewExpenseCategoryRepository(db),
		PYC:             NewPYCRepository(db),
		DNTT:            NewDNTTRepository(db),
	}
}
