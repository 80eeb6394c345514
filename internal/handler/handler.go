package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/repository"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/service"
)

// Handlers back-office handler set
type Handlers struct {
	Project         *ProjectHandler
	Personnel       *PersonnelHandler
	Supplier        *SupplierHandler
	ExpenseCategory *ExpenseCategoryHandler
	PYC             *PurchaseRequestHandler
	DNTT            *PaymentRequestHandler
	Upload          *UploadHandler
}

// NewHandlers creates the handler set
func NewHandlers(svcs *service.Services) *Handlers {
	return &Handlers{
		Project:         NewProjectHandler(svcs.Project),
		Personnel:       NewPersonnelHandler(svcs.Personnel),
		Supplier:        NewSupplierHandler(svcs.Supplier),
		ExpenseCategory: NewExpenseCategoryHandler(svcs.ExpenseCategory),
		PYC:             NewPurchaseRequestHandler(svcs.PYC),
		DNTT:            NewPaymentRequestHandler(svcs.DNTT, svcs.Export),
		Upload:          NewUploadHandler(svcs.Attachment),
	}
}

// === response helpers ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40101, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// RespondError maps the service error taxonomy onto the response envelope.
func RespondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		Unauthorized(c, err.Error())
	case errors.As(err, &ve):
		BadRequest(c, "invalid or missing field: "+ve.Field)
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "record not found")
	default:
		InternalError(c, err.Error())
	}
}

// GetActor returns the authenticated actor identity (email claim).
func GetActor(c *gin.Context) string {
	email, _ := c.Get("user_email")
	if e, ok := email.(string); ok {
		return e
	}
	return ""
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}

func listResponse(items interface{}, page, pageSize int, total int64) ListResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	}
}
