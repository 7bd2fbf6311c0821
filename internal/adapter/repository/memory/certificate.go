// Package memory contém implementações em memória dos repositórios,
// usadas nos testes dos serviços de domínio.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/gestor-certificados/api/internal/domain/certificate"
)

// CertificateRepository implementa certificate.Repository em memória,
// espelhando o contrato de filtros e ordenação da implementação SQL.
type CertificateRepository struct {
	mu    sync.Mutex
	certs map[string]*certificate.Certificate

	// FailCreate força erro em Create (simula falha de persistência)
	FailCreate error
}

// NewCertificateRepository cria um repositório de certificados em memória
func NewCertificateRepository() *CertificateRepository {
	return &CertificateRepository{
		certs: make(map[string]*certificate.Certificate),
	}
}

// Create implementa certificate.Repository.Create
func (r *CertificateRepository) Create(_ context.Context, c *certificate.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate != nil {
		return r.FailCreate
	}
	for _, existing := range r.certs {
		if existing.UserID == c.UserID && existing.CNPJ == c.CNPJ {
			return certificate.ErrDuplicateCNPJ
		}
	}
	clone := *c
	r.certs[c.ID] = &clone
	return nil
}

// FindByID implementa certificate.Repository.FindByID
func (r *CertificateRepository) FindByID(_ context.Context, id string) (*certificate.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.certs[id]
	if !ok {
		return nil, certificate.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

// FindByCNPJ implementa certificate.Repository.FindByCNPJ
func (r *CertificateRepository) FindByCNPJ(_ context.Context, userID, cnpj string) (*certificate.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.certs {
		if c.UserID == userID && c.CNPJ == cnpj {
			clone := *c
			return &clone, nil
		}
	}
	return nil, certificate.ErrNotFound
}

// List implementa certificate.Repository.List
func (r *CertificateRepository) List(_ context.Context, userID string, filter certificate.Filter) ([]*certificate.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*certificate.Certificate
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, c := range r.certs {
		if c.UserID != userID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.LegalName), search) &&
			!strings.Contains(strings.ToLower(c.TradeName), search) &&
			!strings.Contains(c.CNPJ, search) {
			continue
		}
		if filter.ExpiresFrom != nil && c.ExpiresAt.Before(*filter.ExpiresFrom) {
			continue
		}
		if filter.ExpiresUntil != nil && !c.ExpiresAt.Before(*filter.ExpiresUntil) {
			continue
		}
		clone := *c
		result = append(result, &clone)
	}

	switch filter.Sort {
	case certificate.SortByStatusPriority:
		sort.SliceStable(result, func(i, j int) bool {
			if result[i].Status.Priority() != result[j].Status.Priority() {
				return result[i].Status.Priority() < result[j].Status.Priority()
			}
			return result[i].ExpiresAt.Before(result[j].ExpiresAt)
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].ExpiresAt.Before(result[j].ExpiresAt)
		})
	}
	return result, nil
}

// Update implementa certificate.Repository.Update
func (r *CertificateRepository) Update(_ context.Context, c *certificate.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.certs[c.ID]; !ok {
		return certificate.ErrNotFound
	}
	for _, existing := range r.certs {
		if existing.ID != c.ID && existing.UserID == c.UserID && existing.CNPJ == c.CNPJ {
			return certificate.ErrDuplicateCNPJ
		}
	}
	clone := *c
	r.certs[c.ID] = &clone
	return nil
}

// UpdateStatus implementa certificate.Repository.UpdateStatus
func (r *CertificateRepository) UpdateStatus(_ context.Context, id string, status certificate.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.certs[id]
	if !ok {
		return certificate.ErrNotFound
	}
	c.Status = status
	return nil
}

// Delete implementa certificate.Repository.Delete
func (r *CertificateRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.certs[id]; !ok {
		return certificate.ErrNotFound
	}
	delete(r.certs, id)
	return nil
}

// CountByUser implementa certificate.Repository.CountByUser
func (r *CertificateRepository) CountByUser(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, c := range r.certs {
		if c.UserID == userID {
			count++
		}
	}
	return count, nil
}

// StoredStatus retorna o status persistido de um certificado (inspeção em testes)
func (r *CertificateRepository) StoredStatus(id string) (certificate.Status, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.certs[id]
	if !ok {
		return "", false
	}
	return c.Status, true
}
