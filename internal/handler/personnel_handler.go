package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/service"
)

// PersonnelHandler personnel master data endpoints
type PersonnelHandler struct {
	svc *service.PersonnelService
}

func NewPersonnelHandler(svc *service.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{svc: svc}
}

// List GET /personnel
func (h *PersonnelHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]string{
		"project_id": c.Query("project_id"),
		"role":       c.Query("role"),
		"search":     c.Query("search"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, listResponse(items, page, pageSize, total))
}

// Get GET /personnel/:id
func (h *PersonnelHandler) Get(c *gin.Context) {
	person, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, person)
}

// Create POST /personnel
func (h *PersonnelHandler) Create(c *gin.Context) {
	var req service.CreatePersonnelRequest
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

// Update PUT /personnel/:id
func (h *PersonnelHandler) Update(c *gin.Context) {
	var req service.CreatePersonnelRequest
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

// Delete DELETE /personnel/:id
func (h *PersonnelHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), GetActor(c), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}
