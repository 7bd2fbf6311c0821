package certificate

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gestor-certificados/api/pkg/cnpj"
	"github.com/gestor-certificados/api/pkg/logger"
)

// Input carrega os campos editáveis de um certificado
type Input struct {
	LegalName string
	TradeName string
	CNPJ      string
	Phone     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Notes     string
}

// Service concentra as regras de negócio de certificados: validação,
// unicidade de CNPJ por usuário, posse e reatualização de status nas leituras.
type Service struct {
	repo   Repository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria uma nova instância de Service
func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock troca a fonte de tempo do serviço (usado em testes)
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create valida e persiste um novo certificado para o usuário
func (s *Service) Create(ctx context.Context, userID string, in Input) (*Certificate, error) {
	cert, err := NewCertificate(userID, in.LegalName, in.TradeName, in.CNPJ, in.Phone, in.IssuedAt, in.ExpiresAt, in.Notes)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByCNPJ(ctx, userID, cert.CNPJ); err == nil {
		return nil, ErrDuplicateCNPJ
	} else if err != ErrNotFound {
		return nil, fmt.Errorf("erro ao verificar CNPJ existente: %w", err)
	}

	if err := s.repo.Create(ctx, cert); err != nil {
		return nil, err
	}
	s.logger.Info("certificado criado", "id", cert.ID, "cnpj", cert.CNPJ, "user_id", userID)
	return cert, nil
}

// Update altera um certificado existente do usuário. A unicidade do CNPJ só é
// verificada novamente quando o CNPJ mudou; o status é sempre recalculado.
func (s *Service) Update(ctx context.Context, userID, id string, in Input) (*Certificate, error) {
	cert, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.LegalName) == "" {
		return nil, &ValidationError{Field: "razao_social", Message: "razão social é obrigatória"}
	}
	if strings.TrimSpace(in.TradeName) == "" {
		return nil, &ValidationError{Field: "nome_fantasia", Message: "nome fantasia é obrigatório"}
	}
	normalized, err := cnpj.Normalize(in.CNPJ)
	if err != nil {
		return nil, &ValidationError{Field: "cnpj", Message: err.Error()}
	}
	if strings.TrimSpace(in.Phone) == "" {
		return nil, &ValidationError{Field: "telefone", Message: "telefone é obrigatório"}
	}
	if in.ExpiresAt.IsZero() {
		return nil, &ValidationError{Field: "data_validade", Message: "data de validade é obrigatória"}
	}

	if normalized != cert.CNPJ {
		if _, err := s.repo.FindByCNPJ(ctx, userID, normalized); err == nil {
			return nil, ErrDuplicateCNPJ
		} else if err != ErrNotFound {
			return nil, fmt.Errorf("erro ao verificar CNPJ existente: %w", err)
		}
	}

	now := s.now()
	cert.LegalName = strings.TrimSpace(in.LegalName)
	cert.TradeName = strings.TrimSpace(in.TradeName)
	cert.CNPJ = normalized
	cert.Phone = strings.TrimSpace(in.Phone)
	if !in.IssuedAt.IsZero() {
		cert.IssuedAt = in.IssuedAt
	}
	cert.ExpiresAt = in.ExpiresAt
	cert.Notes = in.Notes
	cert.Status = Classify(cert.ExpiresAt, now)
	cert.UpdatedAt = now

	if err := s.repo.Update(ctx, cert); err != nil {
		return nil, err
	}
	return cert, nil
}

// Delete remove um certificado do usuário
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Get busca um certificado do usuário com status reatualizado
func (s *Service) Get(ctx context.Context, userID, id string) (*Certificate, error) {
	cert, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, cert)
	return cert, nil
}

// List lista os certificados do usuário reatualizando o status de cada um
// antes de devolver. A reatualização é persistida (contrato de leitura com
// efeito colateral: "listar expirados" continua sendo um filtro barato).
func (s *Service) List(ctx context.Context, userID string, filter Filter) ([]*Certificate, error) {
	certs, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	for _, cert := range certs {
		s.refresh(ctx, cert)
	}
	// A ordenação por status usa o valor persistido; depois de reatualizar,
	// reordenar em memória garante que certificados recém-vencidos subam.
	if filter.Sort == SortByStatusPriority {
		sortByStatusPriority(certs)
	}
	return certs, nil
}

// Upsert aplica a semântica de importação: atualiza o certificado do CNPJ se
// já existir para o usuário, senão cria um novo. A nota correspondente ao
// caminho tomado é anexada às observações. Retorna se houve criação.
func (s *Service) Upsert(ctx context.Context, userID string, in Input, onCreateNote, onUpdateNote string) (*Certificate, bool, error) {
	normalized, err := cnpj.Normalize(in.CNPJ)
	if err != nil {
		return nil, false, &ValidationError{Field: "cnpj", Message: err.Error()}
	}

	existing, err := s.repo.FindByCNPJ(ctx, userID, normalized)
	if err != nil && err != ErrNotFound {
		return nil, false, fmt.Errorf("erro ao buscar certificado por CNPJ: %w", err)
	}

	now := s.now()
	if existing != nil {
		existing.LegalName = strings.TrimSpace(in.LegalName)
		existing.TradeName = strings.TrimSpace(in.TradeName)
		existing.Phone = strings.TrimSpace(in.Phone)
		existing.ExpiresAt = in.ExpiresAt
		existing.Status = Classify(existing.ExpiresAt, now)
		existing.AppendNote(onUpdateNote)
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	cert, err := NewCertificate(userID, in.LegalName, in.TradeName, normalized, in.Phone, in.IssuedAt, in.ExpiresAt, in.Notes)
	if err != nil {
		return nil, false, err
	}
	cert.AppendNote(onCreateNote)
	if err := s.repo.Create(ctx, cert); err != nil {
		return nil, false, err
	}
	return cert, true, nil
}

func (s *Service) owned(ctx context.Context, userID, id string) (*Certificate, error) {
	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cert.UserID != userID {
		return nil, ErrForbidden
	}
	return cert, nil
}

func (s *Service) refresh(ctx context.Context, cert *Certificate) {
	if !cert.RefreshStatus(s.now()) {
		return
	}
	if err := s.repo.UpdateStatus(ctx, cert.ID, cert.Status); err != nil {
		// A leitura não falha por causa da persistência do status; o valor
		// devolvido ao chamador já está correto.
		s.logger.Warn("falha ao persistir status reatualizado", "id", cert.ID, "error", err)
	}
}

func sortByStatusPriority(certs []*Certificate) {
	sort.SliceStable(certs, func(i, j int) bool {
		if certs[i].Status.Priority() != certs[j].Status.Priority() {
			return certs[i].Status.Priority() < certs[j].Status.Priority()
		}
		return certs[i].ExpiresAt.Before(certs[j].ExpiresAt)
	})
}
