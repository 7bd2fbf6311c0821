package route

import (
	"github.com/gestor-certificados/api/internal/adapter/api/controller"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes configura as rotas de autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/login", authController.Login)
		authRouter.POST("/register", authController.Register)
		authRouter.POST("/refresh", authController.RefreshToken)
	}
}
