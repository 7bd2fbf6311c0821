package controller

import (
	"net/http"

	"github.com/gestor-certificados/api/internal/adapter/api/dto"
	"github.com/gestor-certificados/api/internal/domain/certificate"
	"github.com/gestor-certificados/api/internal/domain/report"
	"github.com/gestor-certificados/api/pkg/auth"
	"github.com/gestor-certificados/api/pkg/logger"
	"github.com/gin-gonic/gin"
)

// DashboardController manipula as requisições do dashboard
type DashboardController struct {
	service *certificate.Service
	logger  logger.Logger
}

// NewDashboardController cria uma nova instância de DashboardController
func NewDashboardController(service *certificate.Service, log logger.Logger) *DashboardController {
	return &DashboardController{
		service: service,
		logger:  log,
	}
}

// Stats retorna as contagens por status dos certificados do usuário.
// As contagens são calculadas na hora, sobre os status recém-reatualizados.
// @Summary Contagens do dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Router /dashboard/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	certs, err := c.service.List(ctx, auth.CurrentUserID(ctx), certificate.Filter{})
	if err != nil {
		c.logger.Error("erro ao calcular estatísticas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao calcular estatísticas", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStatsResponse(report.Aggregate(certs)))
}

// MonthlyExpirations retorna os vencimentos agrupados por mês civil
// @Summary Vencimentos por mês
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.MonthlyResponse
// @Router /dashboard/vencimentos-mensais [get]
func (c *DashboardController) MonthlyExpirations(ctx *gin.Context) {
	certs, err := c.service.List(ctx, auth.CurrentUserID(ctx), certificate.Filter{})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao calcular vencimentos", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.MonthlyResponse{Months: report.MonthlyExpirations(certs)})
}
