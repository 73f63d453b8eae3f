package company

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the read-only company lookups used to fill the
// company_ids filter of the employee listing.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, middlewares ...gin.HandlerFunc) {
	company := r.Group("/companies")
	company.Use(middlewares...)
	{
		company.GET("", handler.GetAll)
		company.GET("/:id", handler.GetByID)
	}
}
