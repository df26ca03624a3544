package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/zahidx/cashbook/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service facades.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")
	registerBookRoutes(v1, services.Book)
	registerTransactionRoutes(v1, services.Ledger)
	registerFeedRoutes(v1, services.Feed)
}
