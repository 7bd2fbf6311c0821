package route

import (
	"github.com/gestor-certificados/api/internal/adapter/api/controller"
	"github.com/gestor-certificados/api/pkg/auth"
	"github.com/gin-gonic/gin"
)

// SetupDashboardRoutes configura as rotas do dashboard
func SetupDashboardRoutes(router *gin.RouterGroup, dashboardController *controller.DashboardController) {
	dashboardRouter := router.Group("/dashboard")
	dashboardRouter.Use(auth.JWTAuthMiddleware())
	{
		dashboardRouter.GET("/stats", dashboardController.Stats)
		dashboardRouter.GET("/vencimentos-mensais", dashboardController.MonthlyExpirations)
	}
}
