package route

import (
	"github.com/gestor-certificados/api/internal/adapter/api/controller"
	"github.com/gestor-certificados/api/pkg/auth"
	"github.com/gin-gonic/gin"
)

// SetupImportRoutes configura as rotas de importação de certificados
func SetupImportRoutes(router *gin.RouterGroup, importController *controller.ImportController) {
	importRouter := router.Group("/importacoes")
	importRouter.Use(auth.JWTAuthMiddleware())
	{
		importRouter.POST("", importController.Upload)
		importRouter.GET("", importController.List)
		importRouter.GET("/:id", importController.Get)
	}
}
