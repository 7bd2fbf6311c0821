package dto

import (
	"time"

	"github.com/gestor-certificados/api/internal/domain/importer"
)

// ImportReportResponse representa o relatório final de um lote processado
type ImportReportResponse struct {
	BatchID   string               `json:"batch_id"`
	Total     int                  `json:"total"`
	Processed int                  `json:"processed"`
	Created   int                  `json:"created"`
	Updated   int                  `json:"updated"`
	Errors    []importer.EntryError `json:"errors,omitempty"`
}

// NewImportReportResponse cria a resposta a partir do relatório do domínio
func NewImportReportResponse(report *importer.Report) ImportReportResponse {
	return ImportReportResponse{
		BatchID:   report.BatchID,
		Total:     report.Total,
		Processed: report.Processed,
		Created:   report.Created,
		Updated:   report.Updated,
		Errors:    report.Errors,
	}
}

// BatchResponse representa a resposta com dados de um lote de importação
type BatchResponse struct {
	ID               string    `json:"id"`
	Filename         string    `json:"filename"`
	Status           string    `json:"status"`
	TotalEntries     int       `json:"total_entries"`
	ProcessedEntries int       `json:"processed_entries"`
	LastError        string    `json:"last_error,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewBatchResponse cria um BatchResponse a partir do domínio
func NewBatchResponse(b *importer.Batch) BatchResponse {
	return BatchResponse{
		ID:               b.ID,
		Filename:         b.Filename,
		Status:           string(b.Status),
		TotalEntries:     b.TotalEntries,
		ProcessedEntries: b.ProcessedEntries,
		LastError:        b.LastError,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// BatchListResponse representa a resposta com uma lista de lotes
type BatchListResponse struct {
	Batches []BatchResponse `json:"batches"`
	Total   int             `json:"total"`
}

// NewBatchListResponse cria um BatchListResponse
func NewBatchListResponse(batches []*importer.Batch) BatchListResponse {
	response := BatchListResponse{
		Batches: make([]BatchResponse, 0, len(batches)),
		Total:   len(batches),
	}
	for _, b := range batches {
		response.Batches = append(response.Batches, NewBatchResponse(b))
	}
	return response
}
