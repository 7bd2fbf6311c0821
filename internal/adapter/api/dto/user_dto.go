package dto

import (
	"time"

	"github.com/gestor-certificados/api/internal/domain/user"
)

// UserResponse representa a resposta com dados de um usuário
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converte um usuário do domínio para o DTO de resposta
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
