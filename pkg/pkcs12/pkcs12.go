// Package pkcs12 extrai os dados relevantes de certificados digitais A1
// (arquivos .pfx/.p12) para alimentar o cadastro de certificados.
package pkcs12

import (
	"errors"
	"strings"
	"time"

	"github.com/gestor-certificados/api/pkg/cnpj"
	"software.sslmate.com/src/go-pkcs12"
)

// Erros de extração
var (
	ErrDecode      = errors.New("não foi possível decodificar o arquivo PKCS12; verifique a senha")
	ErrNoLeaf      = errors.New("arquivo PKCS12 não contém certificado")
	ErrCNPJMissing = errors.New("CNPJ não encontrado no certificado")
)

// Info são os dados extraídos do certificado digital
type Info struct {
	// LegalName é a razão social presente no subject do certificado
	LegalName string
	// CNPJ normalizado (14 dígitos)
	CNPJ string
	// IssuedAt é o início da vigência (NotBefore)
	IssuedAt time.Time
	// ExpiresAt é o fim da vigência (NotAfter)
	ExpiresAt time.Time
}

// ExtractInfo decodifica o .pfx e extrai razão social, CNPJ e vigência.
// Nos certificados ICP-Brasil o CN do titular vem como "RAZAO SOCIAL:CNPJ".
func ExtractInfo(pfxData []byte, password string) (*Info, error) {
	_, leaf, _, err := pkcs12.DecodeChain(pfxData, password)
	if err != nil {
		return nil, ErrDecode
	}
	if leaf == nil {
		return nil, ErrNoLeaf
	}

	commonName := leaf.Subject.CommonName
	legalName := commonName
	document := ""

	if idx := strings.LastIndex(commonName, ":"); idx >= 0 {
		legalName = strings.TrimSpace(commonName[:idx])
		document = commonName[idx+1:]
	}

	normalized, err := cnpj.Normalize(document)
	if err != nil {
		// Alguns emissores colocam o CNPJ em outro campo do subject
		normalized = searchCNPJ(leaf.Subject.Organization)
		if normalized == "" {
			return nil, ErrCNPJMissing
		}
	}

	return &Info{
		LegalName: legalName,
		CNPJ:      normalized,
		IssuedAt:  leaf.NotBefore.UTC(),
		ExpiresAt: leaf.NotAfter.UTC(),
	}, nil
}

// searchCNPJ procura um CNPJ válido em uma lista de atributos do subject
func searchCNPJ(values []string) string {
	for _, value := range values {
		if normalized, err := cnpj.Normalize(value); err == nil {
			return normalized
		}
	}
	return ""
}
