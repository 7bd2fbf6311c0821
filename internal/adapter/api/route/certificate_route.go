package route

import (
	"github.com/gestor-certificados/api/internal/adapter/api/controller"
	"github.com/gestor-certificados/api/pkg/auth"
	"github.com/gin-gonic/gin"
)

// SetupCertificateRoutes configura as rotas do módulo de certificados
func SetupCertificateRoutes(router *gin.RouterGroup, certificateController *controller.CertificateController) {
	certificateRouter := router.Group("/certificados")
	certificateRouter.Use(auth.JWTAuthMiddleware())
	{
		// Operações CRUD básicas
		certificateRouter.GET("", certificateController.List)
		certificateRouter.GET("/:id", certificateController.Get)
		certificateRouter.POST("", certificateController.Create)
		certificateRouter.PUT("/:id", certificateController.Update)
		certificateRouter.DELETE("/:id", certificateController.Delete)

		// Operações adicionais
		certificateRouter.GET("/exportar", certificateController.Export)
		certificateRouter.POST("/upload-a1", certificateController.UploadA1)
	}
}
