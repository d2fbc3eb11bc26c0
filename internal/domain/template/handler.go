package template

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boqbase/internal/domain/catalog"
	"boqbase/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name and code are required")
		return
	}

	t, err := h.service.CreateTemplate(c.Request.Context(), req, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"templates": templates})
}

func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid template ID")
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.UpdateTemplate(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) DeleteTemplate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid template ID")
		return
	}

	if err := h.service.DeleteTemplate(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "template deleted"})
}

func (h *Handler) CreateSubmission(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "template_id and shop_id are required")
		return
	}

	sub, err := h.service.CreateSubmission(c.Request.Context(), req, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sub)
}

func (h *Handler) ListPendingSubmissions(c *gin.Context) {
	subs, err := h.service.ListPendingSubmissions(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submissions": subs})
}

func (h *Handler) ApproveSubmission(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid submission ID")
		return
	}

	sub, material, err := h.service.ApproveSubmission(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"submission": sub,
		"material":   material,
	})
}

func (h *Handler) RejectSubmission(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid submission ID")
		return
	}

	var req RejectSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection reason is required")
		return
	}

	sub, err := h.service.RejectSubmission(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submission": sub})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrTemplateNotFound, ErrSubmissionNotFound, ErrCategoryNotFound, catalog.ErrShopNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case ErrNameTaken, ErrCodeTaken:
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	case ErrAlreadyReviewed:
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case ErrReasonRequired:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
