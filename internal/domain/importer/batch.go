package importer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// BatchStatus representa o estado de um lote de importação
type BatchStatus string

const (
	BatchProcessing BatchStatus = "processing"
	BatchCompleted  BatchStatus = "completed"
	BatchFailed     BatchStatus = "failed"
)

// ErrBatchNotFound indica que o lote de importação não existe
var ErrBatchNotFound = errors.New("lote de importação não encontrado")

// Batch representa um evento de upload de XML e o progresso do processamento
type Batch struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	Filename         string      `json:"filename"`
	Status           BatchStatus `json:"status"`
	TotalEntries     int         `json:"total_entries"`
	ProcessedEntries int         `json:"processed_entries"`
	LastError        string      `json:"last_error,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// NewBatch cria um novo lote no estado inicial de processamento
func NewBatch(userID, filename string) *Batch {
	now := time.Now().UTC()
	return &Batch{
		ID:        uuid.New().String(),
		UserID:    userID,
		Filename:  filename,
		Status:    BatchProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Complete marca o lote como concluído com o progresso final
func (b *Batch) Complete(total, processed int, lastError string) {
	b.Status = BatchCompleted
	b.TotalEntries = total
	b.ProcessedEntries = processed
	b.LastError = lastError
	b.UpdatedAt = time.Now().UTC()
}

// Fail marca o lote como falho (XML malformado ou erro irrecuperável)
func (b *Batch) Fail(reason string) {
	b.Status = BatchFailed
	b.LastError = reason
	b.UpdatedAt = time.Now().UTC()
}

// Repository define a interface para persistência de lotes de importação
type Repository interface {
	// Create insere um novo lote
	Create(ctx context.Context, batch *Batch) error

	// Update atualiza o progresso e o estado de um lote
	Update(ctx context.Context, batch *Batch) error

	// FindByID busca um lote pelo ID
	FindByID(ctx context.Context, id string) (*Batch, error)

	// ListByUser lista os lotes de um usuário, mais recentes primeiro
	ListByUser(ctx context.Context, userID string) ([]*Batch, error)
}
