package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/entity"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/repository"
)

// ProjectService construction project master data
type ProjectService struct {
	repo *repository.ProjectRepository
}

func NewProjectService(repo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Project, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProjectRequest create/update payload
type CreateProjectRequest struct {
	Code    string  `json:"code" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	Address string  `json:"address"`
	Manager string  `json:"manager"`
	Status  string  `json:"status"`
	Notes   string  `json:"notes"`
}

func (s *ProjectService) Create(ctx context.Context, actor string, req *CreateProjectRequest) (*entity.Project, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	status := req.Status
	if status == "" {
		status = entity.ProjectStatusActive
	}
	project := &entity.Project{
		ID:        uuid.New().String()[:32],
		Code:      req.Code,
		Name:      req.Name,
		Address:   req.Address,
		Manager:   req.Manager,
		Status:    status,
		Notes:     req.Notes,
		CreatedBy: actor,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, actor, id string, req *CreateProjectRequest) (*entity.Project, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Code = req.Code
	project.Name = req.Name
	project.Address = req.Address
	project.Manager = req.Manager
	if req.Status != "" {
		project.Status = req.Status
	}
	project.Notes = req.Notes
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, actor, id string) error {
	if actor == "" {
		return ErrUnauthorized
	}
	return s.repo.Delete(ctx, id)
}

// PersonnelService staff master data
type PersonnelService struct {
	repo *repository.PersonnelRepository
}

func NewPersonnelService(repo *repository.PersonnelRepository) *PersonnelService {
	return &PersonnelService{repo: repo}
}

func (s *PersonnelService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Personnel, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *PersonnelService) Get(ctx context.Context, id string) (*entity.Personnel, error) {
	return s.repo.FindByID(ctx, id)
}

// CreatePersonnelRequest create/update payload
type CreatePersonnelRequest struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	Phone     string  `json:"phone"`
	Role      string  `json:"role"`
	ProjectID *string `json:"project_id"`
	Status    string  `json:"status"`
	Notes     string  `json:"notes"`
}

func (s *PersonnelService) Create(ctx context.Context, actor string, req *CreatePersonnelRequest) (*entity.Personnel, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	status := req.Status
	if status == "" {
		status = "active"
	}
	person := &entity.Personnel{
		ID:        uuid.New().String()[:32],
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		ProjectID: req.ProjectID,
		Status:    status,
		Notes:     req.Notes,
	}
	if err := s.repo.Create(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *PersonnelService) Update(ctx context.Context, actor, id string, req *CreatePersonnelRequest) (*entity.Personnel, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	person.Name = req.Name
	person.Email = req.Email
	person.Phone = req.Phone
	person.Role = req.Role
	person.ProjectID = req.ProjectID
	if req.Status != "" {
		person.Status = req.Status
	}
	person.Notes = req.Notes
	if err := s.repo.Update(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

func (s *PersonnelService) Delete(ctx context.Context, actor, id string) error {
	if actor == "" {
		return ErrUnauthorized
	}
	return s.repo.Delete(ctx, id)
}

// SupplierService supplier reference data, including quick-add while
// drafting a payment request.
type SupplierService struct {
	repo *repository.SupplierRepository
}

func NewSupplierService(repo *repository.SupplierRepository) *SupplierService {
	return &SupplierService{repo: repo}
}

func (s *SupplierService) List(ctx context.Context, projectID string) ([]entity.Supplier, error) {
	return s.repo.FindAll(ctx, projectID)
}

// CreateSupplierRequest create/update payload
type CreateSupplierRequest struct {
	Name        string  `json:"name" binding:"required"`
	TaxCode     string  `json:"tax_code"`
	Address     string  `json:"address"`
	BankAccount string  `json:"bank_account"`
	BankName    string  `json:"bank_name"`
	ProjectID   *string `json:"project_id"`
}

func (s *SupplierService) Create(ctx context.Context, actor string, req *CreateSupplierRequest) (*entity.Supplier, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	supplier := &entity.Supplier{
		ID:          uuid.New().String()[:32],
		Name:        req.Name,
		TaxCode:     req.TaxCode,
		Address:     req.Address,
		BankAccount: req.BankAccount,
		BankName:    req.BankName,
		ProjectID:   req.ProjectID,
		CreatedBy:   actor,
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, actor, id string, req *CreateSupplierRequest) (*entity.Supplier, error) {
	if actor == "" {
		return nil, ErrUnauthorized
	}
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	supplier.Name = req.Name
	supplier.TaxCode = req.TaxCode
	supplier.Address = req.Address
	supplier.BankAccount = req.BankAccount
	supplier.BankName = req.BankName
	supplier.ProjectID = req.ProjectID
	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, actor, id string) error {
	if actor == "" {
		return ErrUnauthorized
	}
	return s.repo.Delete(ctx, id)
}
