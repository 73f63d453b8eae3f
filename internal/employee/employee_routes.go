package employee

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the employee endpoints. Every handler in the group is
// preceded by the given middlewares (rate limiting in production).
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, middlewares ...gin.HandlerFunc) {
	employees := r.Group("/employees")
	employees.Use(middlewares...)
	{
		employees.GET("", handler.List)
		employees.GET("/options", handler.GetOptions)
	}
}
