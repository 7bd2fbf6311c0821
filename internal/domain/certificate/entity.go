package certificate

import (
	"strings"
	"time"

	"github.com/gestor-certificados/api/pkg/cnpj"
	"github.com/google/uuid"
)

// Certificate representa o certificado de uma empresa acompanhado pelo sistema.
// O status é derivado da data de validade via Classify e fica persistido para
// permitir filtros baratos; ele é reatualizado a cada leitura.
type Certificate struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	LegalName string    `json:"legal_name"`
	TradeName string    `json:"trade_name"`
	CNPJ      string    `json:"cnpj"`
	Phone     string    `json:"phone"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCertificate cria um novo certificado já validado e classificado.
// A data de emissão assume o momento da criação quando não informada.
func NewCertificate(userID, legalName, tradeName, cnpjValue, phone string, issuedAt, expiresAt time.Time, notes string) (*Certificate, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "user_id", Message: "usuário é obrigatório"}
	}
	if strings.TrimSpace(legalName) == "" {
		return nil, &ValidationError{Field: "razao_social", Message: "razão social é obrigatória"}
	}
	if strings.TrimSpace(tradeName) == "" {
		return nil, &ValidationError{Field: "nome_fantasia", Message: "nome fantasia é obrigatório"}
	}
	normalized, err := cnpj.Normalize(cnpjValue)
	if err != nil {
		return nil, &ValidationError{Field: "cnpj", Message: err.Error()}
	}
	if strings.TrimSpace(phone) == "" {
		return nil, &ValidationError{Field: "telefone", Message: "telefone é obrigatório"}
	}
	if expiresAt.IsZero() {
		return nil, &ValidationError{Field: "data_validade", Message: "data de validade é obrigatória"}
	}

	now := time.Now().UTC()
	if issuedAt.IsZero() {
		issuedAt = now
	}
	if issuedAt.After(now) {
		return nil, &ValidationError{Field: "data_emissao", Message: "data de emissão não pode ser futura"}
	}

	return &Certificate{
		ID:        uuid.New().String(),
		UserID:    userID,
		LegalName: strings.TrimSpace(legalName),
		TradeName: strings.TrimSpace(tradeName),
		CNPJ:      normalized,
		Phone:     strings.TrimSpace(phone),
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Status:    Classify(expiresAt, now),
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RefreshStatus recalcula o status a partir de "now" e informa se mudou
func (c *Certificate) RefreshStatus(now time.Time) bool {
	status := Classify(c.ExpiresAt, now)
	if status == c.Status {
		return false
	}
	c.Status = status
	return true
}

// AppendNote acrescenta uma observação preservando o texto anterior
func (c *Certificate) AppendNote(note string) {
	if note == "" {
		return
	}
	if c.Notes == "" {
		c.Notes = note
		return
	}
	c.Notes = c.Notes + "\n" + note
}

// FormattedCNPJ retorna o CNPJ com a máscara padrão para exibição
func (c *Certificate) FormattedCNPJ() string {
	return cnpj.Format(c.CNPJ)
}
