package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Erros do domínio de usuários
var (
	ErrNotFound          = errors.New("usuário não encontrado")
	ErrDuplicateUsername = errors.New("nome de usuário já existe")
	ErrDuplicateEmail    = errors.New("email já cadastrado")
	ErrInvalidInput      = errors.New("dados de usuário inválidos")
)

// User representa um usuário do sistema; cada usuário é dono exclusivo dos
// seus certificados.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser cria um novo usuário com a senha já protegida por hash
func NewUser(username, email, name, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if name == "" {
		name = username
	}

	now := time.Now().UTC()
	u := &User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword configura a senha do usuário com hash bcrypt
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword verifica se a senha fornecida confere com o hash armazenado
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
