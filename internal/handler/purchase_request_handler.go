package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/service"
)

// PurchaseRequestHandler PYC (phieu yeu cau) endpoints
type PurchaseRequestHandler struct {
	svc *service.PurchaseRequestService
}

func NewPurchaseRequestHandler(svc *service.PurchaseRequestService) *PurchaseRequestHandler {
	return &PurchaseRequestHandler{svc: svc}
}

// List GET /purchase-requests
func (h *PurchaseRequestHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]string{
		"project_id": c.Query("project_id"),
		"status":     c.Query("status"),
		"priority":   c.Query("priority"),
		"type":       c.Query("request_type"),
		"search":     c.Query("search"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, listResponse(items, page, pageSize, total))
}

// Get GET /purchase-requests/:id
func (h *PurchaseRequestHandler) Get(c *gin.Context) {
	req, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, req)
}

// Create POST /purchase-requests
func (h *PurchaseRequestHandler) Create(c *gin.Context) {
	var req service.CreatePYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	created, err := h.svc.Create(c.Request.Context(), GetActor(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	Created(c, created)
}

// Update PUT /purchase-requests/:id
func (h *PurchaseRequestHandler) Update(c *gin.Context) {
	var req service.UpdatePYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), GetActor(c), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, updated)
}

type setStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Message string `json:"message"`
}

// SetStatus PATCH /purchase-requests/:id/status
func (h *PurchaseRequestHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.svc.SetStatus(c.Request.Context(), GetActor(c), c.Param("id"), req.Status, req.Message)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, updated)
}

// Delete DELETE /purchase-requests/:id
func (h *PurchaseRequestHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), GetActor(c), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// BulkDelete POST /purchase-requests/bulk-delete
func (h *PurchaseRequestHandler) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	outcomes, err := h.svc.DeleteMany(c.Request.Context(), GetActor(c), req.IDs)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"results": outcomes})
}

// NextSequence GET /purchase-requests/next-sequence
func (h *PurchaseRequestHandler) NextSequence(c *gin.Context) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if y := c.Query("year"); y != "" {
		if v, err := strconv.Atoi(y); err == nil {
			year = v
		}
	}
	if m := c.Query("month"); m != "" {
		if v, err := strconv.Atoi(m); err == nil && v >= 1 && v <= 12 {
			month = v
		}
	}

	seq, code, err := h.svc.NextSequence(c.Request.Context(), c.Query("project_id"), year, month)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"sequence": seq,
		"code":     code,
	})
}
