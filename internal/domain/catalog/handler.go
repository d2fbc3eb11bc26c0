package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boqbase/internal/pkg/response"
	"boqbase/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListShops(c *gin.Context) {
	shops, err := h.service.ListPublicShops(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"shops": shops})
}

func (h *Handler) SubmitShop(c *gin.Context) {
	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid shop fields", errs)
		return
	}

	shop, err := h.service.SubmitShop(c.Request.Context(), req, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, shop)
}

func (h *Handler) ListPendingShops(c *gin.Context) {
	rows, err := h.service.ListPendingShops(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"shops": rows})
}

func (h *Handler) ApproveShop(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid shop ID")
		return
	}

	shop, err := h.service.ApproveShop(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, shop)
}

func (h *Handler) RejectShop(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid shop ID")
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection reason is required")
		return
	}

	shop, err := h.service.RejectShop(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, shop)
}

func (h *Handler) ListMaterials(c *gin.Context) {
	shopID, _ := strconv.ParseInt(c.Query("shop_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	f := MaterialFilters{
		Category:    c.Query("category"),
		SubCategory: c.Query("sub_category"),
		ShopID:      shopID,
		Search:      c.Query("search"),
		Limit:       limit,
		Offset:      offset,
	}

	materials, total, err := h.service.ListPublicMaterials(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"materials": materials,
		"total":     total,
	})
}

func (h *Handler) SubmitMaterial(c *gin.Context) {
	var req CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid material fields", errs)
		return
	}

	m, err := h.service.SubmitMaterial(c.Request.Context(), req, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) ListPendingMaterials(c *gin.Context) {
	rows, err := h.service.ListPendingMaterials(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"materials": rows})
}

func (h *Handler) ApproveMaterial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid material ID")
		return
	}

	m, err := h.service.ApproveMaterial(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) RejectMaterial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid material ID")
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection reason is required")
		return
	}

	m, err := h.service.RejectMaterial(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrShopNotFound, ErrMaterialNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case ErrReasonRequired:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
