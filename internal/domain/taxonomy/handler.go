package taxonomy

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boqbase/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), req.Name, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat)
}

func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": cats})
}

func (h *Handler) RenameCategory(c *gin.Context) {
	var req RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cat, err := h.service.RenameCategory(c.Request.Context(), c.Param("name"), req.NewName)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(c.Request.Context(), c.Param("name")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "category deleted"})
}

func (h *Handler) CreateSubcategory(c *gin.Context) {
	var req CreateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sub, err := h.service.CreateSubcategory(c.Request.Context(), req.Name, req.Category, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sub)
}

func (h *Handler) ListSubcategories(c *gin.Context) {
	subs, err := h.service.ListSubcategories(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subcategories": subs})
}

func (h *Handler) RenameSubcategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid subcategory ID")
		return
	}

	var req RenameSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sub, err := h.service.RenameSubcategory(c.Request.Context(), id, req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sub)
}

func (h *Handler) DeleteSubcategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid subcategory ID")
		return
	}

	if err := h.service.DeleteSubcategory(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "subcategory deleted"})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.CreateProduct(c.Request.Context(), req.Name, req.SubcategoryID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) ListProducts(c *gin.Context) {
	subcategoryID, _ := strconv.ParseInt(c.Query("subcategory_id"), 10, 64)

	products, err := h.service.ListProducts(c.Request.Context(), subcategoryID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.UpdateProduct(c.Request.Context(), id, req.Name, req.SubcategoryID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrCategoryNotFound, ErrSubcategoryNotFound, ErrProductNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case ErrNameTaken:
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
