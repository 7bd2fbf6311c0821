package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestor-certificados/api/internal/domain/importer"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const batchColumns = `id, user_id, filename, status, total_entries, processed_entries, last_error, created_at, updated_at`

// BatchRepository implementa a interface importer.Repository
type BatchRepository struct {
	db *pgxpool.Pool
}

// NewBatchRepository cria uma nova instância de BatchRepository
func NewBatchRepository(db *pgxpool.Pool) importer.Repository {
	return &BatchRepository{
		db: db,
	}
}

// Create implementa importer.Repository.Create
func (r *BatchRepository) Create(ctx context.Context, b *importer.Batch) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO import_batches (
			id, user_id, filename, status, total_entries, processed_entries,
			last_error, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.UserID, b.Filename, b.Status, b.TotalEntries, b.ProcessedEntries,
		b.LastError, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar lote de importação: %w", err)
	}
	return nil
}

// Update implementa importer.Repository.Update
func (r *BatchRepository) Update(ctx context.Context, b *importer.Batch) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE import_batches SET
			status = $1, total_entries = $2, processed_entries = $3,
			last_error = $4, updated_at = $5
		WHERE id = $6`,
		b.Status, b.TotalEntries, b.ProcessedEntries, b.LastError, b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar lote de importação: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return importer.ErrBatchNotFound
	}
	return nil
}

// FindByID implementa importer.Repository.FindByID
func (r *BatchRepository) FindByID(ctx context.Context, id string) (*importer.Batch, error) {
	var b importer.Batch
	err := r.db.QueryRow(ctx,
		`SELECT `+batchColumns+` FROM import_batches WHERE id = $1`, id).Scan(
		&b.ID, &b.UserID, &b.Filename, &b.Status, &b.TotalEntries,
		&b.ProcessedEntries, &b.LastError, &b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, importer.ErrBatchNotFound
		}
		return nil, fmt.Errorf("erro ao buscar lote de importação: %w", err)
	}
	return &b, nil
}

// ListByUser implementa importer.Repository.ListByUser
func (r *BatchRepository) ListByUser(ctx context.Context, userID string) ([]*importer.Batch, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+batchColumns+` FROM import_batches
		 WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lotes de importação: %w", err)
	}
	defer rows.Close()

	var batches []*importer.Batch
	for rows.Next() {
		var b importer.Batch
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.Filename, &b.Status, &b.TotalEntries,
			&b.ProcessedEntries, &b.LastError, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler lote de importação: %w", err)
		}
		batches = append(batches, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer lotes de importação: %w", err)
	}
	return batches, nil
}
