package boq

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boqbase/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Project name is required")
		return
	}

	p, err := h.service.CreateProject(c.Request.Context(), req, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.service.ListProjects(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"projects": projects})
}

func (h *Handler) GetProject(c *gin.Context) {
	p, err := h.service.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.UpdateProject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.service.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "project deleted"})
}

func (h *Handler) CreateVersion(c *gin.Context) {
	var req CreateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.CreateVersion(c.Request.Context(), c.Param("id"), req.CopyFromVersionID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, v)
}

func (h *Handler) ListVersions(c *gin.Context) {
	versions, err := h.service.ListVersions(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"versions": versions})
}

func (h *Handler) UpdateVersion(c *gin.Context) {
	var req UpdateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status is required")
		return
	}

	v, err := h.service.UpdateVersionStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v)
}

func (h *Handler) DeleteVersion(c *gin.Context) {
	if err := h.service.DeleteVersion(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "version deleted"})
}

func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "project_id and estimator_kind are required")
		return
	}

	it, err := h.service.AddItem(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, it)
}

func (h *Handler) ListItems(c *gin.Context) {
	projectID := c.Query("project_id")
	if projectID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "project_id is required")
		return
	}

	var versionID *string
	if v := c.Query("version_id"); v != "" {
		versionID = &v
	}

	items, err := h.service.ListItems(c.Request.Context(), projectID, versionID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Payload is required")
		return
	}

	it, err := h.service.UpdateItem(c.Request.Context(), c.Param("id"), req.Payload)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, it)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	if err := h.service.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "item deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrProjectNotFound, ErrVersionNotFound, ErrItemNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case ErrInvalidTransition:
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
