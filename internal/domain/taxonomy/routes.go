package taxonomy

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes exposes the read-only listing endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
	rg.GET("/subcategories", h.ListSubcategories)
	rg.GET("/products", h.ListProducts)
}

// RegisterStaffRoutes exposes the mutations; the caller mounts them behind
// the staff role gate.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/categories", h.CreateCategory)
	rg.PUT("/categories/:name", h.RenameCategory)
	rg.DELETE("/categories/:name", h.DeleteCategory)

	rg.POST("/subcategories", h.CreateSubcategory)
	rg.PATCH("/subcategories/:id", h.RenameSubcategory)
	rg.DELETE("/subcategories/:id", h.DeleteSubcategory)

	rg.POST("/products", h.CreateProduct)
	rg.PATCH("/products/:id", h.UpdateProduct)
	rg.DELETE("/products/:id", h.DeleteProduct)
}
