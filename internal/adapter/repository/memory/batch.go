package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gestor-certificados/api/internal/domain/importer"
)

// BatchRepository implementa importer.Repository em memória
type BatchRepository struct {
	mu      sync.Mutex
	batches map[string]*importer.Batch
}

// NewBatchRepository cria um repositório de lotes em memória
func NewBatchRepository() *BatchRepository {
	return &BatchRepository{
		batches: make(map[string]*importer.Batch),
	}
}

// Create implementa importer.Repository.Create
func (r *BatchRepository) Create(_ context.Context, b *importer.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *b
	r.batches[b.ID] = &clone
	return nil
}

// Update implementa importer.Repository.Update
func (r *BatchRepository) Update(_ context.Context, b *importer.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.batches[b.ID]; !ok {
		return importer.ErrBatchNotFound
	}
	clone := *b
	r.batches[b.ID] = &clone
	return nil
}

// FindByID implementa importer.Repository.FindByID
func (r *BatchRepository) FindByID(_ context.Context, id string) (*importer.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.batches[id]
	if !ok {
		return nil, importer.ErrBatchNotFound
	}
	clone := *b
	return &clone, nil
}

// ListByUser implementa importer.Repository.ListByUser
func (r *BatchRepository) ListByUser(_ context.Context, userID string) ([]*importer.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*importer.Batch
	for _, b := range r.batches {
		if b.UserID == userID {
			clone := *b
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
