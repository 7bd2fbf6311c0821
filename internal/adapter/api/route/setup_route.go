package route

import (
	"github.com/gestor-certificados/api/internal/adapter/api/controller"
	"github.com/gin-gonic/gin"
)

// SetupSetupRoutes configura as rotas de configuração inicial do sistema
func SetupSetupRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	setupRouter := router.Group("/setup")
	{
		// Cria o administrador inicial; só funciona com a base de usuários vazia
		setupRouter.POST("/admin", authController.CreateAdminUser)
	}
}
