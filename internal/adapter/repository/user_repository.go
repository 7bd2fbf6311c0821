package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gestor-certificados/api/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, email, name, password_hash, created_at, updated_at`

// UserRepository implementa a interface user.Repository
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *pgxpool.Pool) user.Repository {
	return &UserRepository{
		db: db,
	}
}

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, username, email, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Username, u.Email, u.Name, u.Password, u.CreatedAt, u.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			if strings.Contains(err.Error(), "users_email") {
				return user.ErrDuplicateEmail
			}
			return user.ErrDuplicateUsername
		}
		return fmt.Errorf("erro ao criar usuário: %w", err)
	}
	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findBy(ctx, "id", id)
}

// FindByUsername implementa user.Repository.FindByUsername
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findBy(ctx, "username", username)
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findBy(ctx, "email", strings.ToLower(email))
}

// Count implementa user.Repository.Count
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar usuários: %w", err)
	}
	return count, nil
}

func (r *UserRepository) findBy(ctx context.Context, column, value string) (*user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value).Scan(
		&u.ID, &u.Username, &u.Email, &u.Name, &u.Password, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}
	return &u, nil
}
