package boq

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the BOQ store; all of it requires authentication.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/boq/projects", h.CreateProject)
	rg.GET("/boq/projects", h.ListProjects)
	rg.GET("/boq/projects/:id", h.GetProject)
	rg.PATCH("/boq/projects/:id", h.UpdateProject)
	rg.DELETE("/boq/projects/:id", h.DeleteProject)

	rg.POST("/boq/projects/:id/versions", h.CreateVersion)
	rg.GET("/boq/projects/:id/versions", h.ListVersions)
	rg.PATCH("/boq/versions/:id", h.UpdateVersion)
	rg.DELETE("/boq/versions/:id", h.DeleteVersion)

	rg.POST("/boq/items", h.AddItem)
	rg.GET("/boq/items", h.ListItems)
	rg.PATCH("/boq/items/:id", h.UpdateItem)
	rg.DELETE("/boq/items/:id", h.DeleteItem)
}
