package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gestor-certificados/api/internal/adapter/api/controller"
	"github.com/gestor-certificados/api/internal/adapter/api/dto"
	"github.com/gestor-certificados/api/internal/adapter/api/route"
	"github.com/gestor-certificados/api/internal/adapter/repository"
	"github.com/gestor-certificados/api/internal/domain/certificate"
	"github.com/gestor-certificados/api/internal/domain/importer"
	"github.com/gestor-certificados/api/internal/infrastructure/database"
	"github.com/gestor-certificados/api/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger
}

// NewApp cria uma nova instância do aplicativo com todas as dependências
func NewApp() (*App, error) {
	log := logger.NewLogger()

	db, err := database.NewPostgresPool(context.Background())
	if err != nil {
		return nil, err
	}

	// Repositórios
	userRepo := repository.NewUserRepository(db)
	certRepo := repository.NewCertificateRepository(db)
	batchRepo := repository.NewBatchRepository(db)

	// Serviços de domínio
	certService := certificate.NewService(certRepo, log)
	importService := importer.NewService(certService, batchRepo, log)

	// Controllers
	authController := controller.NewAuthController(userRepo, log)
	certController := controller.NewCertificateController(certService, log)
	importController := controller.NewImportController(importService, log)
	dashboardController := controller.NewDashboardController(certService, log)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	// Reconexão na fronteira da requisição: uma queda do banco responde 503
	// em vez de deixar o erro estourar dentro dos repositórios
	router.Use(func(c *gin.Context) {
		if err := database.EnsureConnection(c.Request.Context(), db, 3); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
				http.StatusServiceUnavailable,
				"Banco de dados indisponível",
				err.Error(),
			))
			return
		}
		c.Next()
	})

	app := &App{
		router: router,
		db:     db,
		logger: log,
	}

	api := router.Group("/api/v1")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.SetupAuthRoutes(api, authController)
	route.SetupSetupRoutes(api, authController)
	route.SetupCertificateRoutes(api, certController)
	route.SetupImportRoutes(api, importController)
	route.SetupDashboardRoutes(api, dashboardController)

	return app, nil
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("servidor iniciado", "port", port)
	return a.router.Run(fmt.Sprintf(":%s", port))
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
