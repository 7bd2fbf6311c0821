package dto

import (
	"time"

	"github.com/gestor-certificados/api/internal/domain/certificate"
)

// CertificateRequest representa os dados para criar/atualizar um certificado.
// As datas usam o formato ISO-8601 (AAAA-MM-DD), como nos formulários.
type CertificateRequest struct {
	LegalName string `json:"razao_social" binding:"required"`
	TradeName string `json:"nome_fantasia" binding:"required"`
	CNPJ      string `json:"cnpj" binding:"required"`
	Phone     string `json:"telefone" binding:"required"`
	IssuedAt  string `json:"data_emissao"`
	ExpiresAt string `json:"data_validade" binding:"required"`
	Notes     string `json:"observacoes"`
}

// ToInput converte a requisição para o input do domínio
func (r CertificateRequest) ToInput() (certificate.Input, error) {
	expiresAt, err := parseDate(r.ExpiresAt)
	if err != nil {
		return certificate.Input{}, &certificate.ValidationError{Field: "data_validade", Message: "formato esperado: AAAA-MM-DD"}
	}

	var issuedAt time.Time
	if r.IssuedAt != "" {
		issuedAt, err = parseDate(r.IssuedAt)
		if err != nil {
			return certificate.Input{}, &certificate.ValidationError{Field: "data_emissao", Message: "formato esperado: AAAA-MM-DD"}
		}
	}

	return certificate.Input{
		LegalName: r.LegalName,
		TradeName: r.TradeName,
		CNPJ:      r.CNPJ,
		Phone:     r.Phone,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Notes:     r.Notes,
	}, nil
}

// CertificateResponse representa a resposta com dados de um certificado
type CertificateResponse struct {
	ID        string    `json:"id"`
	LegalName string    `json:"razao_social"`
	TradeName string    `json:"nome_fantasia"`
	CNPJ      string    `json:"cnpj"`
	Phone     string    `json:"telefone"`
	IssuedAt  time.Time `json:"data_emissao"`
	ExpiresAt time.Time `json:"data_validade"`
	Status    string    `json:"status"`
	Notes     string    `json:"observacoes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CertificateListResponse representa a resposta com uma lista de certificados
type CertificateListResponse struct {
	Certificates []CertificateResponse `json:"certificados"`
	Total        int                   `json:"total"`
}

// NewCertificateResponse cria um novo CertificateResponse a partir do domínio
func NewCertificateResponse(cert *certificate.Certificate) CertificateResponse {
	return CertificateResponse{
		ID:        cert.ID,
		LegalName: cert.LegalName,
		TradeName: cert.TradeName,
		CNPJ:      cert.FormattedCNPJ(),
		Phone:     cert.Phone,
		IssuedAt:  cert.IssuedAt,
		ExpiresAt: cert.ExpiresAt,
		Status:    string(cert.Status),
		Notes:     cert.Notes,
		CreatedAt: cert.CreatedAt,
		UpdatedAt: cert.UpdatedAt,
	}
}

// NewCertificateListResponse cria um novo CertificateListResponse
func NewCertificateListResponse(certs []*certificate.Certificate) CertificateListResponse {
	response := CertificateListResponse{
		Certificates: make([]CertificateResponse, 0, len(certs)),
		Total:        len(certs),
	}
	for _, cert := range certs {
		response.Certificates = append(response.Certificates, NewCertificateResponse(cert))
	}
	return response
}

// parseDate aceita data civil ou timestamp RFC3339
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
