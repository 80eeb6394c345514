package repository

import (
	"context"
	"errors"

	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PYCRepository purchase request (PYC) store
type PYCRepository struct {
	db *gorm.DB
}

func NewPYCRepository(db *gorm.DB) *PYCRepository {
	return &PYCRepository{db: db}
}

// FindAll lists purchase requests with filters and pagination.
func (r *PYCRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseRequest, int64, error) {
	var items []entity.PurchaseRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseRequest{})

	if projectID := filters["project_id"]; projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if priority := filters["priority"]; priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if reqType := filters["type"]; reqType != "" {
		query = query.Where("type = ?", reqType)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("title ILIKE ? OR id ILIKE ?", "%"+search+"%", "%"+search+"%")
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

// FindByID loads one purchase request with its line items.
func (r *PYCRepository) FindByID(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	var pyc entity.PurchaseRequest
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&pyc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pyc, nil
}

// FindApprovedByIDs loads the given requests restricted to approved status,
// ordered as requested. Approval enforcement for payment derivation lives
// here, at the query boundary.
func (r *PYCRepository) FindApprovedByIDs(ctx context.Context, ids []string) ([]entity.PurchaseRequest, error) {
	var items []entity.PurchaseRequest
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id IN ? AND status = ?", ids, entity.PYCStatusApproved).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	// Preserve caller order; the first selected request drives derivation
	// defaults.
	byID := make(map[string]entity.PurchaseRequest, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	ordered := make([]entity.PurchaseRequest, 0, len(items))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			ordered = append(ordered, it)
		}
	}
	return ordered, nil
}

// FindByIDForUpdate loads one request under a row lock. Used to serialize
// read-modify-write of the status ledger; must run inside a transaction.
func (r *PYCRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*entity.PurchaseRequest, error) {
	var pyc entity.PurchaseRequest
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&pyc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pyc, nil
}

// Create persists the header together with its line items.
func (r *PYCRepository) Create(ctx context.Context, pyc *entity.PurchaseRequest) error {
	return r.db.WithContext(ctx).Create(pyc).Error
}

// Update saves the header only.
func (r *PYCRepository) Update(ctx context.Context, pyc *entity.PurchaseRequest) error {
	return r.db.WithContext(ctx).Omit("Items").Save(pyc).Error
}

// ReplaceItems swaps the full line-item set of a request inside one
// transaction. Line identity is not preserved across edits.
func (r *PYCRepository) ReplaceItems(ctx context.Context, requestID string, items []entity.PYCLineItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", requestID).Delete(&entity.PYCLineItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// Delete removes the header; line items cascade via the schema constraint.
func (r *PYCRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.PurchaseRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NextSequence returns the next document sequence for a project/month scope.
func (r *PYCRepository) NextSequence(ctx context.Context, projectCode string, year, month int) (int, error) {
	prefix := DocumentCodePrefix("PYC", projectCode, year, month)
	return nextSequence(ctx, r.db, &entity.PurchaseRequest{}, prefix)
}

// DB exposes the underlying handle for cross-repository transactions.
func (r *PYCRepository) DB() *gorm.DB {
	return r.db
}
