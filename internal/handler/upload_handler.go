package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/service"
)

// UploadHandler attachment upload endpoint
type UploadHandler struct {
	svc *service.AttachmentService
}

func NewUploadHandler(svc *service.AttachmentService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload POST /uploads
//
// Multipart form: file (required), table, ref_id, description.
func (h *UploadHandler) Upload(c *gin.Context) {
	if GetActor(c) == "" {
		Unauthorized(c, "unauthorized: no actor identity")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}

	table := c.PostForm("table")
	if table == "" {
		table = "misc"
	}
	refID := c.PostForm("ref_id")
	if refID == "" {
		refID = "unassigned"
	}

	src, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "failed to open upload: "+err.Error())
		return
	}
	defer src.Close()

	attachment, err := h.svc.Upload(
		c.Request.Context(),
		table,
		refID,
		fileHeader.Filename,
		c.PostForm("description"),
		src,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		RespondError(c, err)
		return
	}

	Created(c, attachment)
}
