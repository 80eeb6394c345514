package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/service"
)

// ExpenseCategoryHandler expense type/group lookup endpoints
type ExpenseCategoryHandler struct {
	svc *service.ExpenseCategoryService
}

func NewExpenseCategoryHandler(svc *service.ExpenseCategoryService) *ExpenseCategoryHandler {
	return &ExpenseCategoryHandler{svc: svc}
}

// List GET /expense-categories
func (h *ExpenseCategoryHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"items": items})
}

type createExpenseCategoryRequest struct {
	TypeName  string `json:"type_name" binding:"required"`
	GroupName string `json:"group_name" binding:"required"`
}

// Create POST /expense-categories
func (h *ExpenseCategoryHandler) Create(c *gin.Context) {
	var req createExpenseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	created, err := h.svc.Create(c.Request.Context(), GetActor(c), req.TypeName, req.GroupName)
	if err != nil {
		RespondError(c, err)
		return
	}

	Created(c, created)
}

// Delete DELETE /expense-categories/:id
func (h *ExpenseCategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), GetActor(c), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}
