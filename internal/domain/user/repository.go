package user

import "context"

// Repository define a interface para persistência de usuários
type Repository interface {
	// Create insere um novo usuário
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByUsername busca um usuário pelo nome de usuário
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail busca um usuário pelo email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Count conta os usuários cadastrados (usado no bootstrap do admin)
	Count(ctx context.Context) (int, error)
}
