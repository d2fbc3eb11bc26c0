package catalog

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes exposes the approved-only catalog listings.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/shops", h.ListShops)
	rg.GET("/materials", h.ListMaterials)
}

// RegisterRoutes exposes the authenticated submission endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/shops", h.SubmitShop)
	rg.POST("/materials", h.SubmitMaterial)
}

// RegisterStaffRoutes exposes the review queues and transitions.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.GET("/shops/pending", h.ListPendingShops)
	rg.POST("/shops/:id/approve", h.ApproveShop)
	rg.POST("/shops/:id/reject", h.RejectShop)

	rg.GET("/materials/pending", h.ListPendingMaterials)
	rg.POST("/materials/:id/approve", h.ApproveMaterial)
	rg.POST("/materials/:id/reject", h.RejectMaterial)
}
