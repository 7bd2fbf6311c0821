package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gestor-certificados/api/internal/domain/certificate"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const certificateColumns = `
	id, user_id, legal_name, trade_name, cnpj, phone,
	issued_at, expires_at, status, notes, created_at, updated_at`

// CertificateRepository implementa a interface certificate.Repository
type CertificateRepository struct {
	db *pgxpool.Pool
}

// NewCertificateRepository cria uma nova instância de CertificateRepository
func NewCertificateRepository(db *pgxpool.Pool) certificate.Repository {
	return &CertificateRepository{
		db: db,
	}
}

// Create implementa certificate.Repository.Create
func (r *CertificateRepository) Create(ctx context.Context, c *certificate.Certificate) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO certificados (
			id, user_id, legal_name, trade_name, cnpj, phone,
			issued_at, expires_at, status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.UserID, c.LegalName, c.TradeName, c.CNPJ, c.Phone,
		c.IssuedAt, c.ExpiresAt, c.Status, c.Notes, c.CreatedAt, c.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return certificate.ErrDuplicateCNPJ
		}
		return fmt.Errorf("erro ao criar certificado: %w", err)
	}
	return nil
}

// FindByID implementa certificate.Repository.FindByID
func (r *CertificateRepository) FindByID(ctx context.Context, id string) (*certificate.Certificate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+certificateColumns+` FROM certificados WHERE id = $1`, id)
	return scanCertificate(row)
}

// FindByCNPJ implementa certificate.Repository.FindByCNPJ
func (r *CertificateRepository) FindByCNPJ(ctx context.Context, userID, cnpj string) (*certificate.Certificate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+certificateColumns+` FROM certificados WHERE user_id = $1 AND cnpj = $2`,
		userID, cnpj)
	return scanCertificate(row)
}

// List implementa certificate.Repository.List
func (r *CertificateRepository) List(ctx context.Context, userID string, filter certificate.Filter) ([]*certificate.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificados WHERE user_id = $1`
	args := []interface{}{userID}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := fmt.Sprintf("$%d", len(args))
		query += ` AND (legal_name ILIKE ` + n + ` OR trade_name ILIKE ` + n + ` OR cnpj ILIKE ` + n + `)`
	}
	if filter.ExpiresFrom != nil {
		args = append(args, *filter.ExpiresFrom)
		query += fmt.Sprintf(` AND expires_at >= $%d`, len(args))
	}
	if filter.ExpiresUntil != nil {
		args = append(args, *filter.ExpiresUntil)
		query += fmt.Sprintf(` AND expires_at < $%d`, len(args))
	}

	switch filter.Sort {
	case certificate.SortByStatusPriority:
		// Vencidos primeiro; dentro de cada grupo, validade crescente
		query += ` ORDER BY CASE status
			WHEN '` + string(certificate.StatusExpired) + `' THEN 0
			WHEN '` + string(certificate.StatusExpiring) + `' THEN 1
			ELSE 2 END, expires_at ASC`
	default:
		query += ` ORDER BY expires_at ASC`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar certificados: %w", err)
	}
	defer rows.Close()

	var certs []*certificate.Certificate
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer certificados: %w", err)
	}
	return certs, nil
}

// Update implementa certificate.Repository.Update
func (r *CertificateRepository) Update(ctx context.Context, c *certificate.Certificate) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE certificados SET
			legal_name = $1, trade_name = $2, cnpj = $3, phone = $4,
			issued_at = $5, expires_at = $6, status = $7, notes = $8,
			updated_at = $9
		WHERE id = $10`,
		c.LegalName, c.TradeName, c.CNPJ, c.Phone,
		c.IssuedAt, c.ExpiresAt, c.Status, c.Notes,
		c.UpdatedAt, c.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return certificate.ErrDuplicateCNPJ
		}
		return fmt.Errorf("erro ao atualizar certificado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return certificate.ErrNotFound
	}
	return nil
}

// UpdateStatus implementa certificate.Repository.UpdateStatus
func (r *CertificateRepository) UpdateStatus(ctx context.Context, id string, status certificate.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE certificados SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status do certificado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return certificate.ErrNotFound
	}
	return nil
}

// Delete implementa certificate.Repository.Delete
func (r *CertificateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM certificados WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao excluir certificado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return certificate.ErrNotFound
	}
	return nil
}

// CountByUser implementa certificate.Repository.CountByUser
func (r *CertificateRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM certificados WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar certificados: %w", err)
	}
	return count, nil
}

// scanCertificate lê uma linha de certificado no formato de certificateColumns
func scanCertificate(row pgx.Row) (*certificate.Certificate, error) {
	var c certificate.Certificate
	err := row.Scan(
		&c.ID, &c.UserID, &c.LegalName, &c.TradeName, &c.CNPJ, &c.Phone,
		&c.IssuedAt, &c.ExpiresAt, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, certificate.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao ler certificado: %w", err)
	}
	return &c, nil
}
