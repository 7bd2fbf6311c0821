// Package excel gera a planilha de exportação de certificados.
package excel

import (
	"bytes"
	"fmt"

	"github.com/gestor-certificados/api/internal/domain/certificate"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Certificados"

var headers = []string{"ID", "Razão Social", "Nome Fantasia", "CNPJ", "Telefone", "Data Validade", "Status"}

// statusColor devolve a cor da fonte usada para cada status na planilha
func statusColor(status certificate.Status) string {
	switch status {
	case certificate.StatusExpired:
		return "FF0000"
	case certificate.StatusExpiring:
		return "FFA500"
	default:
		return "008000"
	}
}

// Generate monta a planilha a partir da lista já ordenada e com status
// reatualizado; este pacote não consulta nem recalcula nada.
func Generate(certs []*certificate.Certificate) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar planilha: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"0D6EFD"}},
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar estilo de cabeçalho: %w", err)
	}

	widths := make([]int, len(headers))
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("erro ao escrever cabeçalho: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("erro ao aplicar estilo de cabeçalho: %w", err)
		}
		widths[col] = len(header)
	}

	for row, cert := range certs {
		values := []string{
			cert.ID,
			cert.LegalName,
			cert.TradeName,
			cert.FormattedCNPJ(),
			cert.Phone,
			cert.ExpiresAt.Format("02/01/2006"),
			string(cert.Status),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("erro ao escrever linha %d: %w", row+2, err)
			}
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}

		// Cor da fonte conforme o status, como na planilha original
		statusStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Color: statusColor(cert.Status)},
		})
		if err != nil {
			return nil, fmt.Errorf("erro ao criar estilo de status: %w", err)
		}
		cell, _ := excelize.CoordinatesToCellName(len(values), row+2)
		if err := f.SetCellStyle(sheetName, cell, cell, statusStyle); err != nil {
			return nil, fmt.Errorf("erro ao aplicar estilo de status: %w", err)
		}
	}

	for col, width := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheetName, name, name, float64(width+2)); err != nil {
			return nil, fmt.Errorf("erro ao ajustar largura de coluna: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar arquivo Excel: %w", err)
	}
	return buf, nil
}
