package importer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gestor-certificados/api/internal/domain/certificate"
	"github.com/gestor-certificados/api/pkg/logger"
)

// EntryError registra a falha de uma entrada individual do lote
type EntryError struct {
	Index   int    `json:"index"`
	CNPJ    string `json:"cnpj,omitempty"`
	Message string `json:"message"`
}

// Report é o resultado do processamento de um lote
type Report struct {
	BatchID   string       `json:"batch_id"`
	Total     int          `json:"total"`
	Processed int          `json:"processed"`
	Created   int          `json:"created"`
	Updated   int          `json:"updated"`
	Errors    []EntryError `json:"errors,omitempty"`
}

// Service executa o pipeline de importação de certificados via XML.
// Cada entrada é persistida individualmente: uma falha no meio do lote não
// desfaz as entradas anteriores.
type Service struct {
	certs   *certificate.Service
	batches Repository
	logger  logger.Logger
	now     func() time.Time
}

// NewService cria uma nova instância do serviço de importação
func NewService(certs *certificate.Service, batches Repository, log logger.Logger) *Service {
	return &Service{
		certs:   certs,
		batches: batches,
		logger:  log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock troca a fonte de tempo do serviço (usado em testes)
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Import processa um arquivo XML de certificados para o usuário.
// XML malformado aborta o lote inteiro com ErrParse; falhas por entrada são
// registradas no relatório e o processamento continua.
func (s *Service) Import(ctx context.Context, userID, filename string, r io.Reader) (*Report, error) {
	if !acceptableFilename(filename) {
		return nil, fmt.Errorf("%w: arquivo %q não parece ser XML", ErrParse, filename)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de importação: %w", err)
	}

	batch := NewBatch(userID, filename)
	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("erro ao registrar lote de importação: %w", err)
	}

	entries, err := parseDocument(data)
	if err != nil {
		batch.Fail(err.Error())
		if uerr := s.batches.Update(ctx, batch); uerr != nil {
			s.logger.Error("falha ao marcar lote como falho", "batch_id", batch.ID, "error", uerr)
		}
		return nil, err
	}

	report := &Report{BatchID: batch.ID, Total: len(entries)}
	stamp := s.now().Format("02/01/2006 15:04")

	for i, entry := range entries {
		expiresAt, err := entry.validate()
		if err != nil {
			report.Errors = append(report.Errors, EntryError{Index: i + 1, CNPJ: entry.CNPJ, Message: err.Error()})
			continue
		}

		in := certificate.Input{
			LegalName: entry.LegalName,
			TradeName: entry.TradeName,
			CNPJ:      entry.CNPJ,
			Phone:     entry.Phone,
			ExpiresAt: expiresAt,
			Notes:     entry.Notes,
		}

		// A nota distingue criação de atualização; o Upsert anexa o texto
		// do caminho efetivamente tomado.
		_, created, err := s.certs.Upsert(ctx, userID, in,
			"importado via importação em "+stamp,
			"atualizado via importação em "+stamp)
		if err != nil {
			report.Errors = append(report.Errors, EntryError{Index: i + 1, CNPJ: entry.CNPJ, Message: err.Error()})
			continue
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
		report.Processed++

		batch.TotalEntries = report.Total
		batch.ProcessedEntries = report.Processed
		if uerr := s.batches.Update(ctx, batch); uerr != nil {
			s.logger.Warn("falha ao atualizar progresso do lote", "batch_id", batch.ID, "error", uerr)
		}
	}

	lastError := ""
	if n := len(report.Errors); n > 0 {
		lastError = report.Errors[n-1].Message
	}
	batch.Complete(report.Total, report.Processed, lastError)
	if err := s.batches.Update(ctx, batch); err != nil {
		s.logger.Error("falha ao concluir lote de importação", "batch_id", batch.ID, "error", err)
	}

	s.logger.Info("importação concluída",
		"batch_id", batch.ID, "total", report.Total,
		"processed", report.Processed, "errors", len(report.Errors))
	return report, nil
}

// FindBatch busca um lote do usuário
func (s *Service) FindBatch(ctx context.Context, userID, id string) (*Batch, error) {
	batch, err := s.batches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch.UserID != userID {
		return nil, ErrBatchNotFound
	}
	return batch, nil
}

// ListBatches lista os lotes do usuário
func (s *Service) ListBatches(ctx context.Context, userID string) ([]*Batch, error) {
	return s.batches.ListByUser(ctx, userID)
}

// acceptableFilename valida a extensão antes de tentar o parse
func acceptableFilename(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xml")
}
