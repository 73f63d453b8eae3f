package department

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, middlewares ...gin.HandlerFunc) {
	departments := r.Group("/departments")
	departments.Use(middlewares...)
	{
		departments.GET("", handler.GetAll)
		departments.GET("/:id", handler.GetByID)
	}
}
