package repository

import (
	"context"
	"errors"

	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DNTTRepository payment request (DNTT) store
type DNTTRepository struct {
	db *gorm.DB
}

func NewDNTTRepository(db *gorm.DB) *DNTTRepository {
	return &DNTTRepository{db: db}
}

// FindAll lists payment requests with filters and pagination.
func (r *DNTTRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PaymentRequest, int64, error) {
	var items []entity.PaymentRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PaymentRequest{})

	if projectID := filters["project_id"]; projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("payment_reason ILIKE ? OR supplier_name ILIKE ? OR id ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByID loads one payment request with its lines.
func (r *DNTTRepository) FindByID(ctx context.Context, id string) (*entity.PaymentRequest, error) {
	var dntt entity.PaymentRequest
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&dntt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dntt, nil
}

// FindByIDForUpdate loads one voucher under a row lock for ledger appends;
// must run inside a transaction.
func (r *DNTTRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*entity.PaymentRequest, error) {
	var dntt entity.PaymentRequest
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&dntt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dntt, nil
}

// Create persists the header together with its lines.
func (r *DNTTRepository) Create(ctx context.Context, dntt *entity.PaymentRequest) error {
	return r.db.WithContext(ctx).Create(dntt).Error
}

// Update saves the header only.
func (r *DNTTRepository) Update(ctx context.Context, dntt *entity.PaymentRequest) error {
	return r.db.WithContext(ctx).Omit("Items").Save(dntt).Error
}

// Delete removes the header; lines cascade via the schema constraint.
func (r *DNTTRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.PaymentRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NextSequence returns the next document sequence for a project/month scope.
func (r *DNTTRepository) NextSequence(ctx context.Context, projectCode string, year, month int) (int, error) {
	prefix := DocumentCodePrefix("DNTT", projectCode, year, month)
	return nextSequence(ctx, r.db, &entity.PaymentRequest{}, prefix)
}

// DB exposes the underlying handle for cross-repository transactions.
func (r *DNTTRepository) DB() *gorm.DB {
	return r.db
}
