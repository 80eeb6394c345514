package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/entity"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PurchaseRequestService PYC approval workflow: creation, content updates,
// status transitions with the append-only ledger, deletion.
type PurchaseRequestService struct {
	pycRepo     *repository.PYCRepository
	projectRepo *repository.ProjectRepository
	db          *gorm.DB
	logger      *zap.Logger
}

func NewPurchaseRequestService(pycRepo *repository.PYCRepository, projectRepo *repository.ProjectRepository, db *gorm.DB, logger *zap.Logger) *PurchaseRequestService {
	return &PurchaseRequestService{
		pycRepo:     pycRepo,
		projectRepo: projectRepo,
		db:          db,
		logger:      logger,
	}
}

// List returns purchase requests with filters and pagination.
func (s *PurchaseRequestService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseRequest, int64, error) {
	return s.pycRepo.FindAll(ctx, page, pageSize, filters)
}

// Get returns one purchase request with its line items.
func (s *PurchaseRequestService) Get(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	return s.pycRepo.FindByID(ctx, id)
}

// CreatePYCRequest create request
type CreatePYCRequest struct {
	ID           string              `json:"id"` // allocated from the project/month sequence when empty
	Title        string              `json:"title" binding:"required"`
	Type         string              `json:"request_type"`
	Priority     string              `json:"priority"`
	Status       string              `json:"status"`
	ProjectID    *string             `json:"project_id"`
	TaskCategory string              `json:"task_category"`
	Purpose      string              `json:"purpose_text"`
	Notes        string              `json:"notes"`
	VATDisplay   string              `json:"default_vat_display"`
	VATValue     float64             `json:"default_vat_value"`
	Attachments  []entity.Attachment `json:"attachments"`
	Items        []PYCItemInput      `json:"items"`
}

// PYCItemInput one line of a create/update payload
type PYCItemInput struct {
	ItemName        string  `json:"item_name"`
	Category        string  `json:"category"`
	TaskDescription string  `json:"task_description"`
	MaterialCode    string  `json:"material_code"`
	Unit            string  `json:"unit"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	VATDisplay      string  `json:"vat_display"`
	VATValue        float64 `json:"vat_value"`
	Purpose         string  `json:"purpose_text"`
	Notes           string  `json:"notes"`
}

func validateItems(items []PYCItemInput) error {
	if len(items) == 0 {
		return validationErr("line_items")
	}
	for _, item := range items {
		if item.ItemName == "" {
			return validationErr("item_name")
		}
		if item.Quantity < 0 {
			return validationErr("quantity")
		}
		if item.UnitPrice < 0 {
			return validationErr("unit_price")
		}
	}
	return nil
}

// Create validates the payload, computes the total, seeds the status ledger
// and persists the header together with its line items. Nothing is written
// when validation fails.
func (s *PurchaseRequestService) Create(ctx context.Context, actor string, req *CreatePYCRequest) (*entity.PurchaseRequest, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	if req.Title == "" {
		return nil, validationErr("title")
	}
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		allocated, err := s.allocateCode(ctx, req.ProjectID)
		if err != nil {
			return nil, err
		}
		id = allocated
	}

	status := req.Status
	if status == "" {
		status = entity.PYCStatusPending
	}
	priority := req.Priority
	if priority == "" {
		priority = entity.PYCPriorityNormal
	}

	pyc := &entity.PurchaseRequest{
		ID:            id,
		Title:         req.Title,
		Type:          req.Type,
		Priority:      priority,
		Status:        status,
		ProjectID:     req.ProjectID,
		TaskCategory:  req.TaskCategory,
		Purpose:       req.Purpose,
		Notes:         req.Notes,
		VATDisplay:    req.VATDisplay,
		VATValue:      req.VATValue,
		CreatedBy:     actor,
		Attachments:   req.Attachments,
		StatusHistory: entity.StatusHistory{}.Append(status, actor, "Initial creation"),
	}

	var total float64
	for i, item := range req.Items {
		line := buildLineItem(pyc.ID, i, item)
		total += line.LineTotal
		pyc.Items = append(pyc.Items, line)
	}
	pyc.TotalAmount = total

	if err := s.pycRepo.Create(ctx, pyc); err != nil {
		return nil, fmt.Errorf("create purchase request: %w", err)
	}

	s.logger.Info("purchase request created",
		zap.String("id", pyc.ID),
		zap.String("actor", actor),
		zap.Float64("total", pyc.TotalAmount),
		zap.Int("items", len(pyc.Items)))
	return pyc, nil
}

// UpdatePYCRequest update request; the line-item set replaces the stored one.
type UpdatePYCRequest struct {
	Title        string              `json:"title" binding:"required"`
	Type         string              `json:"request_type"`
	Priority     string              `json:"priority"`
	Status       string              `json:"status"`
	ProjectID    *string             `json:"project_id"`
	TaskCategory string              `json:"task_category"`
	Purpose      string              `json:"purpose_text"`
	Notes        string              `json:"notes"`
	VATDisplay   string              `json:"default_vat_display"`
	VATValue     float64             `json:"default_vat_value"`
	Attachments  []entity.Attachment `json:"attachments"`
	Items        []PYCItemInput      `json:"items"`
}

// Update rewrites header content and replaces the full line-item set
// (delete-all-then-reinsert; line identity does not survive an edit). A
// "Content updated" entry is appended to the ledger. A requester fixing a
// needs_revision document resubmits by setting Status back to pending here.
func (s *PurchaseRequestService) Update(ctx context.Context, actor, id string, req *UpdatePYCRequest) (*entity.PurchaseRequest, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	if req.Title == "" {
		return nil, validationErr("title")
	}
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}

	var updated *entity.PurchaseRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pyc, err := s.pycRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		pyc.Title = req.Title
		pyc.Type = req.Type
		pyc.Priority = req.Priority
		pyc.ProjectID = req.ProjectID
		pyc.TaskCategory = req.TaskCategory
		pyc.Purpose = req.Purpose
		pyc.Notes = req.Notes
		pyc.VATDisplay = req.VATDisplay
		pyc.VATValue = req.VATValue
		pyc.Attachments = req.Attachments

		status := req.Status
		if status == "" {
			status = pyc.Status
		}
		pyc.Status = status
		pyc.StatusHistory = pyc.StatusHistory.Append(status, actor, "Content updated")

		items := make([]entity.PYCLineItem, 0, len(req.Items))
		var total float64
		for i, item := range req.Items {
			line := buildLineItem(pyc.ID, i, item)
			total += line.LineTotal
			items = append(items, line)
		}
		pyc.TotalAmount = total

		if err := tx.Omit("Items").Save(pyc).Error; err != nil {
			return fmt.Errorf("save purchase request: %w", err)
		}
		if err := tx.Where("request_id = ?", pyc.ID).Delete(&entity.PYCLineItem{}).Error; err != nil {
			return fmt.Errorf("delete line items: %w", err)
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("insert line items: %w", err)
		}
		pyc.Items = items
		updated = pyc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase request updated",
		zap.String("id", id),
		zap.String("actor", actor),
		zap.Float64("total", updated.TotalAmount))
	return updated, nil
}

// SetStatus transitions a purchase request and appends the ledger entry
// under a row lock so concurrent transitions never lose an entry.
//
// ApprovedBy/ApprovedAt/ApprovedMessage are rewritten on every transition:
// set when the new status is approved, cleared otherwise. The fields answer
// "who approved it, if currently approved" — not "who last acted on it".
func (s *PurchaseRequestService) SetStatus(ctx context.Context, actor, id, status, message string) (*entity.PurchaseRequest, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	switch status {
	case entity.PYCStatusPending, entity.PYCStatusApproved, entity.PYCStatusRejected, entity.PYCStatusNeedsRevision:
	default:
		return nil, validationErr("status")
	}

	var updated *entity.PurchaseRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pyc, err := s.pycRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		pyc.Status = status
		pyc.StatusHistory = pyc.StatusHistory.Append(status, actor, message)

		if status == entity.PYCStatusApproved {
			now := time.Now()
			pyc.ApprovedBy = &actor
			pyc.ApprovedAt = &now
		} else {
			pyc.ApprovedBy = nil
			pyc.ApprovedAt = nil
		}
		if message != "" {
			pyc.ApprovedMessage = &message
		} else {
			pyc.ApprovedMessage = nil
		}

		if err := tx.Omit("Items").Save(pyc).Error; err != nil {
			return fmt.Errorf("save status: %w", err)
		}
		updated = pyc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase request status changed",
		zap.String("id", id),
		zap.String("status", status),
		zap.String("actor", actor))
	// Notification delivery is intentionally a stub: the requester is
	// informed out-of-band.
	return updated, nil
}

// Delete removes one purchase request; line items cascade.
func (s *PurchaseRequestService) Delete(ctx context.Context, actor, id string) error {
	if actor == "" {
		return ErrUnauthorized
	}
	return s.pycRepo.Delete(ctx, id)
}

// DeleteOutcome per-id result of a bulk delete
type DeleteOutcome struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// DeleteMany deletes each id independently and reports per-id outcomes;
// one failure does not roll back the others.
func (s *PurchaseRequestService) DeleteMany(ctx context.Context, actor string, ids []string) ([]DeleteOutcome, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	outcomes := make([]DeleteOutcome, 0, len(ids))
	for _, id := range ids {
		if err := s.pycRepo.Delete(ctx, id); err != nil {
			outcomes = append(outcomes, DeleteOutcome{ID: id, Error: err.Error()})
			continue
		}
		outcomes = append(outcomes, DeleteOutcome{ID: id, OK: true})
	}
	return outcomes, nil
}

// NextSequence returns the next sequence number for a project/month scope
// together with the full document code it would produce.
func (s *PurchaseRequestService) NextSequence(ctx context.Context, projectID string, year, month int) (int, string, error) {
	code, err := s.projectCode(ctx, strPtrOrNil(projectID))
	if err != nil {
		return 0, "", err
	}
	seq, err := s.pycRepo.NextSequence(ctx, code, year, month)
	if err != nil {
		return 0, "", fmt.Errorf("next sequence: %w", err)
	}
	return seq, repository.FormatDocumentCode("PYC", code, year, month, seq), nil
}

func (s *PurchaseRequestService) allocateCode(ctx context.Context, projectID *string) (string, error) {
	code, err := s.projectCode(ctx, projectID)
	if err != nil {
		return "", err
	}
	now := time.Now()
	seq, err := s.pycRepo.NextSequence(ctx, code, now.Year(), int(now.Month()))
	if err != nil {
		return "", fmt.Errorf("allocate code: %w", err)
	}
	return repository.FormatDocumentCode("PYC", code, now.Year(), int(now.Month()), seq), nil
}

func (s *PurchaseRequestService) projectCode(ctx context.Context, projectID *string) (string, error) {
	if projectID == nil || *projectID == "" {
		return entity.SharedProjectCode, nil
	}
	project, err := s.projectRepo.FindByID(ctx, *projectID)
	if err != nil {
		return "", err
	}
	return project.Code, nil
}

func buildLineItem(requestID string, index int, item PYCItemInput) entity.PYCLineItem {
	return entity.PYCLineItem{
		ID:              uuid.New().String()[:32],
		RequestID:       requestID,
		ItemName:        item.ItemName,
		Category:        item.Category,
		TaskDescription: item.TaskDescription,
		MaterialCode:    item.MaterialCode,
		Unit:            item.Unit,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		LineTotal:       lineTotal(item.Quantity, item.UnitPrice),
		VATDisplay:      item.VATDisplay,
		VATValue:        item.VATValue,
		Purpose:         item.Purpose,
		Notes:           item.Notes,
		SortOrder:       index + 1,
	}
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
