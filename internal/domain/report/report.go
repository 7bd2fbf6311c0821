// Package report contém as projeções de leitura do dashboard: contagens por
// status e vencimentos agrupados por mês. Funções puras sobre a lista já
// reatualizada de certificados; nada aqui é cacheado.
package report

import (
	"fmt"
	"sort"

	"github.com/gestor-certificados/api/internal/domain/certificate"
)

// Summary agrega as contagens por status de uma lista de certificados
type Summary struct {
	Total    int                        `json:"total"`
	ByStatus map[certificate.Status]int `json:"by_status"`
}

// MonthCount é a quantidade de vencimentos em um mês civil
type MonthCount struct {
	// Label no formato MM/AAAA, como exibido no gráfico de barras
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Aggregate calcula o total e a contagem por status
func Aggregate(certs []*certificate.Certificate) Summary {
	summary := Summary{
		Total: len(certs),
		ByStatus: map[certificate.Status]int{
			certificate.StatusValid:    0,
			certificate.StatusExpiring: 0,
			certificate.StatusExpired:  0,
		},
	}
	for _, cert := range certs {
		summary.ByStatus[cert.Status]++
	}
	return summary
}

// MonthlyExpirations agrupa os vencimentos por mês civil da data de validade,
// em ordem cronológica. A ordenação compara ano e mês numericamente; ordenar
// o rótulo MM/AAAA como texto colocaria 01/2026 antes de 12/2025.
func MonthlyExpirations(certs []*certificate.Certificate) []MonthCount {
	type yearMonth struct {
		year  int
		month int
	}

	counts := make(map[yearMonth]int)
	for _, cert := range certs {
		expiry := cert.ExpiresAt.UTC()
		counts[yearMonth{year: expiry.Year(), month: int(expiry.Month())}]++
	}

	keys := make([]yearMonth, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	result := make([]MonthCount, 0, len(keys))
	for _, key := range keys {
		result = append(result, MonthCount{
			Label: fmt.Sprintf("%02d/%04d", key.month, key.year),
			Count: counts[key],
		})
	}
	return result
}
