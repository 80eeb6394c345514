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

// PaymentRequestService derives DNTT vouchers from approved purchase
// requests and runs their status lifecycle.
type PaymentRequestService struct {
	dnttRepo    *repository.DNTTRepository
	pycRepo     *repository.PYCRepository
	projectRepo *repository.ProjectRepository
	categorySvc *ExpenseCategoryService
	db          *gorm.DB
	logger      *zap.Logger
}

func NewPaymentRequestService(
	dnttRepo *repository.DNTTRepository,
	pycRepo *repository.PYCRepository,
	projectRepo *repository.ProjectRepository,
	categorySvc *ExpenseCategoryService,
	db *gorm.DB,
	logger *zap.Logger,
) *PaymentRequestService {
	return &PaymentRequestService{
		dnttRepo:    dnttRepo,
		pycRepo:     pycRepo,
		projectRepo: projectRepo,
		categorySvc: categorySvc,
		db:          db,
		logger:      logger,
	}
}

// List returns payment requests with filters and pagination.
func (s *PaymentRequestService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PaymentRequest, int64, error) {
	return s.dnttRepo.FindAll(ctx, page, pageSize, filters)
}

// Get returns one payment request with its lines.
func (s *PaymentRequestService) Get(ctx context.Context, id string) (*entity.PaymentRequest, error) {
	return s.dnttRepo.FindByID(ctx, id)
}

// CandidateLine one flattened purchase-request line offered for selection
// during derivation, with its gross-down money split precomputed.
type CandidateLine struct {
	SourceLineID string  `json:"source_line_id"`
	PYCRequestID string  `json:"pyc_request_id"`
	PYCTitle     string  `json:"pyc_title"`
	ProjectID    *string `json:"project_id"`

	ItemName string `json:"item_name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`

	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	VATValue  float64 `json:"vat_value"`

	Gross     float64 `json:"gross"`
	Net       float64 `json:"net"`
	VATAmount float64 `json:"vat_amount"`
}

// BuildCandidates flattens the line items of the selected purchase
// requests into candidate payment lines. Only approved requests are
// loaded; ids that are missing or not approved are silently dropped from
// the candidate set (they were never eligible for selection).
func (s *PaymentRequestService) BuildCandidates(ctx context.Context, pycIDs []string) ([]CandidateLine, error) {
	if len(pycIDs) == 0 {
		return nil, validationErr("pyc_ids")
	}
	requests, err := s.pycRepo.FindApprovedByIDs(ctx, pycIDs)
	if err != nil {
		return nil, fmt.Errorf("load purchase requests: %w", err)
	}

	var candidates []CandidateLine
	for _, pyc := range requests {
		for _, item := range pyc.Items {
			vat := item.VATValue
			if vat == 0 && item.VATDisplay == "" {
				vat = pyc.VATValue
			}
			gross, net, vatAmount := splitGross(item.Quantity, item.UnitPrice, vat)
			candidates = append(candidates, CandidateLine{
				SourceLineID: item.ID,
				PYCRequestID: pyc.ID,
				PYCTitle:     pyc.Title,
				ProjectID:    pyc.ProjectID,
				ItemName:     item.ItemName,
				Category:     item.Category,
				Unit:         item.Unit,
				Quantity:     item.Quantity,
				UnitPrice:    item.UnitPrice,
				VATValue:     vat,
				Gross:        gross,
				Net:          net,
				VATAmount:    vatAmount,
			})
		}
	}
	return candidates, nil
}

// CreateDNTTRequest create payload: header fields plus the selected
// (possibly overridden) lines.
type CreateDNTTRequest struct {
	ID              string     `json:"id"` // allocated when empty
	RequestDate     *time.Time `json:"request_date"`
	PaymentReason   string     `json:"payment_reason"`
	SupplierName    string     `json:"supplier_name"`
	SupplierTaxCode string     `json:"supplier_tax_code"`
	PaymentTypeCode string     `json:"payment_type_code"`
	DocumentNumber  string     `json:"document_number"`
	PayerType       string     `json:"payer_type"`
	ExpenseTypeName string     `json:"expense_type_name"`
	ContractType    string     `json:"contract_type_code"`
	Notes           string     `json:"notes"`
	ProjectID       *string    `json:"project_id"`
	Requester       string     `json:"requester"`

	SelectedRequestIDs []string        `json:"selected_request_ids"`
	Lines              []DNTTLineInput `json:"lines"`
}

// DNTTLineInput one selected line; quantity and unit price may have been
// overridden by the user during derivation.
type DNTTLineInput struct {
	SourceLineID string  `json:"source_line_id"`
	PYCRequestID string  `json:"pyc_request_id"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	VATValue     float64 `json:"vat_value"`
}

// Create assembles and persists a payment request from the selected
// approved purchase requests.
//
// All money is recomputed server-side with the gross-down split; the
// from-PYC flags are derived by comparing the submitted quantity and unit
// price against the originating line, not trusted from the client.
func (s *PaymentRequestService) Create(ctx context.Context, actor string, req *CreateDNTTRequest) (*entity.PaymentRequest, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	if len(req.SelectedRequestIDs) == 0 {
		return nil, validationErr("selected_request_ids")
	}
	if len(req.Lines) == 0 {
		return nil, validationErr("lines")
	}

	sources, err := s.pycRepo.FindApprovedByIDs(ctx, req.SelectedRequestIDs)
	if err != nil {
		return nil, fmt.Errorf("load purchase requests: %w", err)
	}
	if len(sources) == 0 {
		return nil, repository.ErrNotFound
	}
	first := sources[0]

	sourceLines := make(map[string]*entity.PYCLineItem)
	sourceOf := make(map[string]*entity.PurchaseRequest)
	for i := range sources {
		pyc := &sources[i]
		for j := range pyc.Items {
			item := &pyc.Items[j]
			sourceLines[item.ID] = item
			sourceOf[item.ID] = pyc
		}
	}

	// Header defaulting happens before the mandatory-field gate so a
	// defaulted reason satisfies it.
	reason := req.PaymentReason
	if reason == "" {
		reason = "Payment for " + first.Title
	}

	if req.RequestDate == nil {
		return nil, validationErr("request_date")
	}
	if req.SupplierName == "" {
		return nil, validationErr("supplier_name")
	}
	if req.ExpenseTypeName == "" {
		return nil, validationErr("expense_type_name")
	}
	if req.ContractType == "" {
		return nil, validationErr("contract_type_code")
	}
	if req.DocumentNumber == "" {
		return nil, validationErr("document_number")
	}
	if req.PayerType == "" {
		return nil, validationErr("payer_type")
	}
	if req.PaymentTypeCode == "" {
		return nil, validationErr("payment_type_code")
	}

	groupName, err := s.categorySvc.ResolveGroup(ctx, req.ExpenseTypeName)
	if err != nil {
		return nil, fmt.Errorf("resolve expense group: %w", err)
	}

	id := req.ID
	if id == "" {
		id, err = s.allocateCode(ctx, req.ProjectID)
		if err != nil {
			return nil, err
		}
	}

	requester := req.Requester
	if requester == "" {
		requester = actor
	}

	dntt := &entity.PaymentRequest{
		ID:                id,
		Status:            entity.DNTTStatusCreated,
		RequestDate:       req.RequestDate,
		PaymentReason:     reason,
		SupplierName:      req.SupplierName,
		SupplierTaxCode:   req.SupplierTaxCode,
		PaymentTypeCode:   req.PaymentTypeCode,
		PaymentMethod:     entity.PaymentMethodFor(req.PaymentTypeCode),
		DocumentNumber:    req.DocumentNumber,
		PayerType:         req.PayerType,
		ExpenseTypeName:   req.ExpenseTypeName,
		ExpenseGroupName:  groupName,
		ContractTypeCode:  req.ContractType,
		Notes:             req.Notes,
		PYCClassification: first.Type,
		ProjectID:         req.ProjectID,
		CreatedBy:         actor,
		Requester:         requester,
		StatusHistory:     entity.StatusHistory{}.Append(entity.DNTTStatusCreated, actor, "Initial creation"),
	}
	if dntt.ProjectID == nil {
		dntt.ProjectID = first.ProjectID
	}

	var totalGross, totalNet, totalVAT float64
	for i, line := range req.Lines {
		source, ok := sourceLines[line.SourceLineID]
		if !ok {
			return nil, validationErr("source_line_id")
		}
		origin := sourceOf[line.SourceLineID]

		gross, net, vatAmount := splitGross(line.Quantity, line.UnitPrice, line.VATValue)
		totalGross += gross
		totalNet += net
		totalVAT += vatAmount

		dntt.Items = append(dntt.Items, entity.PaymentLineItem{
			ID:               uuid.New().String()[:32],
			PaymentRequestID: dntt.ID,
			PYCRequestID:     origin.ID,
			PYCTitle:         origin.Title,
			ProjectID:        origin.ProjectID,
			ItemName:         source.ItemName,
			Category:         source.Category,
			Unit:             source.Unit,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice,
			VATValue:         line.VATValue,
			Gross:            gross,
			Net:              net,
			VATAmount:        vatAmount,
			IsQtyFromPYC:     line.Quantity == source.Quantity,
			IsPriceFromPYC:   line.UnitPrice == source.UnitPrice,
			SortOrder:        i + 1,
		})
	}
	dntt.TotalGross = totalGross
	dntt.TotalNet = totalNet
	dntt.VATAmount = totalVAT

	// Legacy single-line projection: singular fields mirror the sole line,
	// nil whenever there is more than one.
	if len(dntt.Items) == 1 {
		line := dntt.Items[0]
		qty := line.Quantity
		price := line.UnitPrice
		rate := line.VATValue
		dntt.Quantity = &qty
		dntt.UnitPrice = &price
		dntt.VATRate = &rate
		if qty != 0 {
			netUnit := line.Net / qty
			dntt.NetUnitPrice = &netUnit
		}
	}

	if err := s.dnttRepo.Create(ctx, dntt); err != nil {
		return nil, fmt.Errorf("create payment request: %w", err)
	}

	s.logger.Info("payment request created",
		zap.String("id", dntt.ID),
		zap.String("actor", actor),
		zap.Int("lines", len(dntt.Items)),
		zap.Float64("gross", dntt.TotalGross))
	return dntt, nil
}

// SetStatus transitions a payment request under a row lock, appending the
// ledger entry. Same approved-field coupling as purchase requests.
func (s *PaymentRequestService) SetStatus(ctx context.Context, actor, id, status, message string) (*entity.PaymentRequest, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	switch status {
	case entity.DNTTStatusCreated, entity.DNTTStatusPending, entity.DNTTStatusApproved, entity.DNTTStatusRejected:
	default:
		return nil, validationErr("status")
	}

	var updated *entity.PaymentRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dntt, err := s.dnttRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		dntt.Status = status
		dntt.StatusHistory = dntt.StatusHistory.Append(status, actor, message)

		if status == entity.DNTTStatusApproved {
			now := time.Now()
			dntt.ApprovedBy = &actor
			dntt.ApprovedAt = &now
		} else {
			dntt.ApprovedBy = nil
			dntt.ApprovedAt = nil
		}

		if err := tx.Omit("Items").Save(dntt).Error; err != nil {
			return fmt.Errorf("save status: %w", err)
		}
		updated = dntt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment request status changed",
		zap.String("id", id),
		zap.String("status", status),
		zap.String("actor", actor))
	return updated, nil
}

// Delete removes one payment request; lines cascade.
func (s *PaymentRequestService) Delete(ctx context.Context, actor, id string) error {
	if actor == "" {
		return ErrUnauthorized
	}
	return s.dnttRepo.Delete(ctx, id)
}

// DeleteMany deletes each id independently, reporting per-id outcomes.
func (s *PaymentRequestService) DeleteMany(ctx context.Context, actor string, ids []string) ([]DeleteOutcome, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	outcomes := make([]DeleteOutcome, 0, len(ids))
	for _, id := range ids {
		if err := s.dnttRepo.Delete(ctx, id); err != nil {
			outcomes = append(outcomes, DeleteOutcome{ID: id, Error: err.Error()})
			continue
		}
		outcomes = append(outcomes, DeleteOutcome{ID: id, OK: true})
	}
	return outcomes, nil
}

func (s *PaymentRequestService) allocateCode(ctx context.Context, projectID *string) (string, error) {
	code := entity.SharedProjectCode
	if projectID != nil && *projectID != "" {
		project, err := s.projectRepo.FindByID(ctx, *projectID)
		if err != nil {
			return "", err
		}
		code = project.Code
	}
	now := time.Now()
	seq, err := s.dnttRepo.NextSequence(ctx, code, now.Year(), int(now.Month()))
	if err != nil {
		return "", fmt.Errorf("allocate code: %w", err)
	}
	return repository.FormatDocumentCode("DNTT", code, now.Year(), int(now.Month()), seq), nil
}
