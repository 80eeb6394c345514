package handler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/service"
)

// PaymentRequestHandler DNTT (de nghi thanh toan) endpoints
type PaymentRequestHandler struct {
	svc       *service.PaymentRequestService
	exportSvc *service.ExportService
}

func NewPaymentRequestHandler(svc *service.PaymentRequestService, exportSvc *service.ExportService) *PaymentRequestHandler {
	return &PaymentRequestHandler{svc: svc, exportSvc: exportSvc}
}

// List GET /payment-requests
func (h *PaymentRequestHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]string{
		"project_id": c.Query("project_id"),
		"status":     c.Query("status"),
		"search":     c.Query("search"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, listResponse(items, page, pageSize, total))
}

// Get GET /payment-requests/:id
func (h *PaymentRequestHandler) Get(c *gin.Context) {
	req, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, req)
}

// Candidates GET /payment-requests/candidates?pyc_ids=a,b
//
// Flattens the approved purchase requests named by pyc_ids into derivation
// candidate lines.
func (h *PaymentRequestHandler) Candidates(c *gin.Context) {
	raw := c.Query("pyc_ids")
	if raw == "" {
		BadRequest(c, "pyc_ids is required")
		return
	}

	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	lines, err := h.svc.BuildCandidates(c.Request.Context(), ids)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"lines": lines})
}

// Create POST /payment-requests
func (h *PaymentRequestHandler) Create(c *gin.Context) {
	var req service.CreateDNTTRequest
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

// SetStatus PATCH /payment-requests/:id/status
func (h *PaymentRequestHandler) SetStatus(c *gin.Context) {
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

// Delete DELETE /payment-requests/:id
func (h *PaymentRequestHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), GetActor(c), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}

// BulkDelete POST /payment-requests/bulk-delete
func (h *PaymentRequestHandler) BulkDelete(c *gin.Context) {
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

// Export GET /payment-requests/export
func (h *PaymentRequestHandler) Export(c *gin.Context) {
	filters := map[string]string{
		"project_id": c.Query("project_id"),
		"status":     c.Query("status"),
		"search":     c.Query("search"),
	}

	f, filename, err := h.exportSvc.ExportPaymentRequests(c.Request.Context(), filters)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "failed to write export: "+err.Error())
	}
}
