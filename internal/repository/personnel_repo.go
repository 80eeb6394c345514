package repository

import (
	"context"
	"errors"

	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/entity"
	"gorm.io/gorm"
)

// PersonnelRepository staff store
type PersonnelRepository struct {
	db *gorm.DB
}

func NewPersonnelRepository(db *gorm.DB) *PersonnelRepository {
	return &PersonnelRepository{db: db}
}

func (r *PersonnelRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Personnel, int64, error) {
	var items []entity.Personnel
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Personnel{})

	if projectID := filters["project_id"]; projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	if role := filters["role"]; role != "" {
		query = query.Where("role = ?", role)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *PersonnelRepository) FindByID(ctx context.Context, id string) (*entity.Personnel, error) {
	var person entity.Personnel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (r *PersonnelRepository) Create(ctx context.Context, person *entity.Personnel) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *PersonnelRepository) Update(ctx context.Context, person *entity.Personnel) error {
	return r.db.WithContext(ctx).Save(person).Error
}

func (r *PersonnelRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.Personnel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
