package template

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes exposes the template listing for estimator tooling.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.ListTemplates)
}

// RegisterSubmitRoutes exposes submission creation; the caller mounts it
// behind the supplier/purchase_team/admin role gate.
func (h *Handler) RegisterSubmitRoutes(rg *gin.RouterGroup) {
	rg.POST("/submissions", h.CreateSubmission)
}

// RegisterStaffRoutes exposes template authorship and submission review.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/templates", h.CreateTemplate)
	rg.PATCH("/templates/:id", h.UpdateTemplate)
	rg.DELETE("/templates/:id", h.DeleteTemplate)

	rg.GET("/submissions/pending", h.ListPendingSubmissions)
	rg.POST("/submissions/:id/approve", h.ApproveSubmission)
	rg.POST("/submissions/:id/reject", h.RejectSubmission)
}
