package certificate

import (
	"context"
	"time"
)

// SortMode define a ordenação da listagem de certificados
type SortMode string

const (
	// SortByExpiry ordena por data de validade crescente (padrão)
	SortByExpiry SortMode = "expiry"
	// SortByStatusPriority ordena por criticidade de status: expirados,
	// próximos ao vencimento e válidos, cada grupo por validade crescente
	SortByStatusPriority SortMode = "status"
)

// Filter define os filtros da listagem de certificados
type Filter struct {
	// Search é comparado sem diferenciar maiúsculas contra razão social,
	// nome fantasia e CNPJ
	Search string
	// ExpiresFrom limita a validade mínima (inclusivo)
	ExpiresFrom *time.Time
	// ExpiresUntil limita a validade máxima (exclusivo). Quem recebe uma
	// data civil do usuário deve somar um dia antes de preencher aqui.
	ExpiresUntil *time.Time
	Sort         SortMode
}

// Repository define a interface para persistência de certificados
type Repository interface {
	// Create insere um novo certificado
	Create(ctx context.Context, cert *Certificate) error

	// FindByID busca um certificado pelo ID
	FindByID(ctx context.Context, id string) (*Certificate, error)

	// FindByCNPJ busca o certificado de um CNPJ para um usuário
	FindByCNPJ(ctx context.Context, userID, cnpj string) (*Certificate, error)

	// List lista os certificados de um usuário aplicando filtros e ordenação
	List(ctx context.Context, userID string, filter Filter) ([]*Certificate, error)

	// Update atualiza os dados de um certificado existente
	Update(ctx context.Context, cert *Certificate) error

	// UpdateStatus persiste apenas o status reatualizado de um certificado
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Delete remove um certificado
	Delete(ctx context.Context, id string) error

	// CountByUser conta quantos certificados um usuário possui
	CountByUser(ctx context.Context, userID string) (int, error)
}
