package importer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrParse indica XML malformado; o lote inteiro é rejeitado sem processar
// nenhuma entrada.
var ErrParse = errors.New("XML malformado")

// xmlEntry é a representação de um <certificado> no arquivo importado
type xmlEntry struct {
	LegalName string `xml:"razao_social"`
	TradeName string `xml:"nome_fantasia"`
	CNPJ      string `xml:"cnpj"`
	Phone     string `xml:"telefone"`
	ExpiresAt string `xml:"data_validade"`
	Notes     string `xml:"observacoes"`
}

// xmlDocument aceita o formato de contêiner <certificados> com zero ou mais
// filhos <certificado>
type xmlDocument struct {
	XMLName xml.Name   `xml:"certificados"`
	Entries []xmlEntry `xml:"certificado"`
}

// xmlSingle aceita o formato de um único <certificado> na raiz
type xmlSingle struct {
	XMLName xml.Name `xml:"certificado"`
	xmlEntry
}

// parseDocument decodifica o XML de importação em entradas na ordem do
// documento. Tenta primeiro o contêiner e depois o formato de raiz única.
func parseDocument(data []byte) ([]xmlEntry, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err == nil {
		return doc.Entries, nil
	}

	var single xmlSingle
	if err := xml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return []xmlEntry{single.xmlEntry}, nil
}

// validate confere os campos obrigatórios da entrada e converte a data
func (e xmlEntry) validate() (expiresAt time.Time, err error) {
	if strings.TrimSpace(e.LegalName) == "" {
		return time.Time{}, errors.New("razão social ausente")
	}
	if strings.TrimSpace(e.TradeName) == "" {
		return time.Time{}, errors.New("nome fantasia ausente")
	}
	if strings.TrimSpace(e.CNPJ) == "" {
		return time.Time{}, errors.New("CNPJ ausente")
	}
	if strings.TrimSpace(e.Phone) == "" {
		return time.Time{}, errors.New("telefone ausente")
	}

	raw := strings.TrimSpace(e.ExpiresAt)
	if raw == "" {
		return time.Time{}, errors.New("data de validade ausente")
	}
	// Data ISO-8601, com ou sem componente de hora
	expiresAt, err = time.Parse("2006-01-02", raw)
	if err != nil {
		expiresAt, err = time.Parse(time.RFC3339, raw)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("data de validade inválida: %q", raw)
	}
	return expiresAt.UTC(), nil
}
