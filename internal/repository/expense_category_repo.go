package repository

import (
	"context"

	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/entity"
	"gorm.io/gorm"
)

// ExpenseCategoryRepository expense taxonomy store
type ExpenseCategoryRepository struct {
	db *gorm.DB
}

func NewExpenseCategoryRepository(db *gorm.DB) *ExpenseCategoryRepository {
	return &ExpenseCategoryRepository{db: db}
}

func (r *ExpenseCategoryRepository) FindAll(ctx context.Context) ([]entity.ExpenseCategory, error) {
	var items []entity.ExpenseCategory
	err := r.db.WithContext(ctx).Order("group_name ASC, type_name ASC").Find(&items).Error
	return items, err
}

func (r *ExpenseCategoryRepository) Create(ctx context.Context, cat *entity.ExpenseCategory) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *ExpenseCategoryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.ExpenseCategory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
