package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services back-office service set
type Services struct {
	Project         *ProjectService
	Personnel       *PersonnelService
	Supplier        *SupplierService
	ExpenseCategory *ExpenseCategoryService
	PYC             *PurchaseRequestService
	DNTT            *PaymentRequestService
	Export          *ExportService
	Attachment      *AttachmentService
}

// NewServices wires the service set. rdb and minioClient may be nil; the
// dependent services degrade (no cache, uploads rejected).
func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, minioClient *minio.Client, bucket, publicBase string, logger *zap.Logger) *Services {
	categorySvc := NewExpenseCategoryService(repos.ExpenseCategory, rdb, logger)
	return &Services{
		Project:         NewProjectService(repos.Project),
		Personnel:       NewPersonnelService(repos.Personnel),
		Supplier:        NewSupplierService(repos.Supplier),
		ExpenseCategory: categorySvc,
		PYC:             NewPurchaseRequestService(repos.PYC, repos.Project, db, logger),
		DNTT:            NewPaymentRequestService(repos.DNTT, repos.PYC, repos.Project, categorySvc, db, logger),
		Export:          NewExportService(repos.DNTT),
		Attachment:      NewAttachmentService(minioClient, bucket, publicBase),
	}
}
