package dto

import (
	"github.com/gestor-certificados/api/internal/domain/certificate"
	"github.com/gestor-certificados/api/internal/domain/report"
)

// StatsResponse representa as contagens do dashboard
type StatsResponse struct {
	Total    int `json:"total_certificados"`
	Valid    int `json:"validos"`
	Expiring int `json:"proximos_vencer"`
	Expired  int `json:"expirados"`
}

// NewStatsResponse cria a resposta a partir da agregação do domínio
func NewStatsResponse(summary report.Summary) StatsResponse {
	return StatsResponse{
		Total:    summary.Total,
		Valid:    summary.ByStatus[certificate.StatusValid],
		Expiring: summary.ByStatus[certificate.StatusExpiring],
		Expired:  summary.ByStatus[certificate.StatusExpired],
	}
}

// MonthlyResponse representa os vencimentos agrupados por mês
type MonthlyResponse struct {
	Months []report.MonthCount `json:"meses"`
}
