package certificate

import "time"

// Status representa a situação do certificado em relação ao vencimento
type Status string

// Valores possíveis de status. Os rótulos são os mesmos exibidos nas telas
// e planilhas, por isso ficam em português.
const (
	StatusValid    Status = "Válido"
	StatusExpiring Status = "Próximo ao Vencimento"
	StatusExpired  Status = "Expirado"
)

// ExpiringWindow é a janela de alerta antes do vencimento
const ExpiringWindow = 30 * 24 * time.Hour

// Classify calcula o status de um certificado a partir da data de validade.
// É a única fonte da regra de vencimento: nenhum outro ponto do sistema deve
// recalcular essa comparação. A base de tempo é UTC.
func Classify(expiresAt, now time.Time) Status {
	expiresAt = expiresAt.UTC()
	now = now.UTC()

	if expiresAt.Before(now) {
		return StatusExpired
	}
	if expiresAt.Sub(now) <= ExpiringWindow {
		return StatusExpiring
	}
	return StatusValid
}

// Priority retorna a ordem de exibição do status (vencidos primeiro)
func (s Status) Priority() int {
	switch s {
	case StatusExpired:
		return 0
	case StatusExpiring:
		return 1
	default:
		return 2
	}
}

// IsValid verifica se o valor corresponde a um status conhecido
func (s Status) IsValid() bool {
	switch s {
	case StatusValid, StatusExpiring, StatusExpired:
		return true
	}
	return false
}
