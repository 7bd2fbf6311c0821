package certificate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gestor-certificados/api/internal/adapter/repository/memory"
	"github.com/gestor-certificados/api/internal/domain/certificate"
	"github.com/gestor-certificados/api/pkg/logger"
)

// CNPJs com dígitos verificadores válidos usados nos cenários
const (
	cnpjAcme  = "11.222.333/0001-81"
	cnpjBeta  = "00.000.000/0001-91"
	cnpjGamma = "33.000.167/0001-01"
)

func newTestService(t *testing.T) (*certificate.Service, *memory.CertificateRepository) {
	t.Helper()
	repo := memory.NewCertificateRepository()
	svc := certificate.NewService(repo, logger.Noop{})
	return svc, repo
}

func input(cnpjValue string, expiresAt time.Time) certificate.Input {
	return certificate.Input{
		LegalName: "Acme Comércio Ltda",
		TradeName: "Acme",
		CNPJ:      cnpjValue,
		Phone:     "(11) 99999-0000",
		ExpiresAt: expiresAt,
	}
}

func TestServiceCreate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	expiry := time.Now().UTC().AddDate(1, 0, 0)

	cert, err := svc.Create(ctx, "user-1", input(cnpjAcme, expiry))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cert.CNPJ != "11222333000181" {
		t.Errorf("CNPJ não normalizado: %q", cert.CNPJ)
	}
	if cert.Status != certificate.StatusValid {
		t.Errorf("status = %q, esperava %q", cert.Status, certificate.StatusValid)
	}
	if cert.ID == "" {
		t.Error("certificado criado sem ID")
	}
}

func TestServiceCreateInvalidCNPJ(t *testing.T) {
	svc, _ := newTestService(t)
	expiry := time.Now().UTC().AddDate(1, 0, 0)

	_, err := svc.Create(context.Background(), "user-1", input("11.222.333/0001-80", expiry))
	if !certificate.IsValidationError(err) {
		t.Fatalf("esperava erro de validação para dígito verificador inválido, obteve %v", err)
	}
}

func TestServiceCreateDuplicateCNPJ(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	expiry := time.Now().UTC().AddDate(1, 0, 0)

	if _, err := svc.Create(ctx, "user-1", input(cnpjAcme, expiry)); err != nil {
		t.Fatalf("primeira criação: %v", err)
	}

	// Mesmo CNPJ para o mesmo usuário é rejeitado
	if _, err := svc.Create(ctx, "user-1", input(cnpjAcme, expiry)); !errors.Is(err, certificate.ErrDuplicateCNPJ) {
		t.Errorf("esperava ErrDuplicateCNPJ, obteve %v", err)
	}

	// Outro usuário pode acompanhar a mesma empresa
	if _, err := svc.Create(ctx, "user-2", input(cnpjAcme, expiry)); err != nil {
		t.Errorf("mesmo CNPJ em usuário diferente deveria ser permitido: %v", err)
	}
}

func TestServiceUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	cert, err := svc.Create(ctx, "user-1", input(cnpjAcme, now.AddDate(1, 0, 0)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := input(cnpjAcme, now.AddDate(0, 0, 10))
	in.LegalName = "Acme Comércio e Serviços Ltda"
	updated, err := svc.Update(ctx, "user-1", cert.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.LegalName != "Acme Comércio e Serviços Ltda" {
		t.Errorf("razão social não atualizada: %q", updated.LegalName)
	}
	// Nova validade dentro da janela de 30 dias reclassifica o certificado
	if updated.Status != certificate.StatusExpiring {
		t.Errorf("status = %q, esperava %q", updated.Status, certificate.StatusExpiring)
	}

	got, err := svc.Get(ctx, "user-1", cert.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.LegalName != updated.LegalName || got.Status != updated.Status {
		t.Error("alterações não persistidas")
	}
}

func TestServiceUpdateDuplicateCNPJ(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	expiry := time.Now().UTC().AddDate(1, 0, 0)

	if _, err := svc.Create(ctx, "user-1", input(cnpjAcme, expiry)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(ctx, "user-1", input(cnpjBeta, expiry))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Mudar o CNPJ do segundo para o do primeiro colide
	if _, err := svc.Update(ctx, "user-1", second.ID, input(cnpjAcme, expiry)); !errors.Is(err, certificate.ErrDuplicateCNPJ) {
		t.Errorf("esperava ErrDuplicateCNPJ, obteve %v", err)
	}

	// Atualizar mantendo o próprio CNPJ não colide consigo mesmo
	if _, err := svc.Update(ctx, "user-1", second.ID, input(cnpjBeta, expiry)); err != nil {
		t.Errorf("atualização sem troca de CNPJ: %v", err)
	}
}

func TestServiceOwnership(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	expiry := time.Now().UTC().AddDate(1, 0, 0)

	cert, err := svc.Create(ctx, "user-1", input(cnpjAcme, expiry))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(ctx, "user-2", cert.ID); !errors.Is(err, certificate.ErrForbidden) {
		t.Errorf("Get de outro usuário: esperava ErrForbidden, obteve %v", err)
	}
	if _, err := svc.Update(ctx, "user-2", cert.ID, input(cnpjAcme, expiry)); !errors.Is(err, certificate.ErrForbidden) {
		t.Errorf("Update de outro usuário: esperava ErrForbidden, obteve %v", err)
	}
	if err := svc.Delete(ctx, "user-2", cert.ID); !errors.Is(err, certificate.ErrForbidden) {
		t.Errorf("Delete de outro usuário: esperava ErrForbidden, obteve %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	expiry := time.Now().UTC().AddDate(1, 0, 0)

	cert, err := svc.Create(ctx, "user-1", input(cnpjAcme, expiry))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, "user-1", cert.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "user-1", cert.ID); !errors.Is(err, certificate.ErrNotFound) {
		t.Errorf("esperava ErrNotFound após exclusão, obteve %v", err)
	}
}

func TestServiceListRefreshesStatus(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	cert, err := svc.Create(ctx, "user-1", input(cnpjAcme, now.AddDate(0, 0, 60)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cert.Status != certificate.StatusValid {
		t.Fatalf("status inicial = %q", cert.Status)
	}

	// 45 dias depois o certificado entrou na janela de vencimento
	svc.WithClock(func() time.Time { return now.AddDate(0, 0, 45) })

	certs, err := svc.List(ctx, "user-1", certificate.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(certs) != 1 {
		t.Fatalf("len(certs) = %d", len(certs))
	}
	if certs[0].Status != certificate.StatusExpiring {
		t.Errorf("status devolvido = %q, esperava %q", certs[0].Status, certificate.StatusExpiring)
	}
	// A reatualização também é persistida
	if stored, _ := repo.StoredStatus(cert.ID); stored != certificate.StatusExpiring {
		t.Errorf("status persistido = %q, esperava %q", stored, certificate.StatusExpiring)
	}
}

func TestServiceListDateRange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mk := func(cnpjValue string, expiry time.Time) {
		t.Helper()
		if _, err := svc.Create(ctx, "user-1", input(cnpjValue, expiry)); err != nil {
			t.Fatalf("Create %s: %v", cnpjValue, err)
		}
	}
	mk(cnpjAcme, time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC))
	mk(cnpjBeta, time.Date(2099, 1, 31, 0, 0, 0, 0, time.UTC))
	mk(cnpjGamma, time.Date(2099, 2, 1, 0, 0, 0, 0, time.UTC))

	from := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2099, 2, 1, 0, 0, 0, 0, time.UTC) // exclusivo
	certs, err := svc.List(ctx, "user-1", certificate.Filter{ExpiresFrom: &from, ExpiresUntil: &until})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(certs) != 2 {
		t.Fatalf("len(certs) = %d, esperava 2 (início inclusivo, fim exclusivo)", len(certs))
	}
	for _, c := range certs {
		if c.ExpiresAt.Month() != time.January {
			t.Errorf("certificado fora do intervalo: vence em %v", c.ExpiresAt)
		}
	}
}

func TestServiceListSortByStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	mk := func(cnpjValue string, expiry time.Time) {
		t.Helper()
		if _, err := svc.Create(ctx, "user-1", input(cnpjValue, expiry)); err != nil {
			t.Fatalf("Create %s: %v", cnpjValue, err)
		}
	}
	mk(cnpjAcme, now.AddDate(1, 0, 0))   // válido
	mk(cnpjBeta, now.AddDate(0, 0, 60))  // válido, expira antes
	mk(cnpjGamma, now.AddDate(0, 0, 10)) // próximo ao vencimento

	certs, err := svc.List(ctx, "user-1", certificate.Filter{Sort: certificate.SortByStatusPriority})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(certs) != 3 {
		t.Fatalf("len(certs) = %d", len(certs))
	}
	wantStatus := []certificate.Status{certificate.StatusExpiring, certificate.StatusValid, certificate.StatusValid}
	for i, want := range wantStatus {
		if certs[i].Status != want {
			t.Errorf("posição %d: status %q, esperava %q", i, certs[i].Status, want)
		}
	}
	// Empate de status resolve pela validade mais próxima
	if !certs[1].ExpiresAt.Before(certs[2].ExpiresAt) {
		t.Error("válidos fora de ordem de validade")
	}
}

func TestServiceUpsert(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	in := input(cnpjAcme, now.AddDate(1, 0, 0))
	cert, created, err := svc.Upsert(ctx, "user-1", in, "criado via importação", "atualizado via importação")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created {
		t.Error("primeiro Upsert deveria criar")
	}
	if cert.Notes != "criado via importação" {
		t.Errorf("nota de criação ausente: %q", cert.Notes)
	}

	in.LegalName = "Acme Holding S.A."
	in.ExpiresAt = now.AddDate(0, 0, 5)
	cert, created, err = svc.Upsert(ctx, "user-1", in, "criado via importação", "atualizado via importação")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if created {
		t.Error("segundo Upsert do mesmo CNPJ deveria atualizar")
	}
	if cert.LegalName != "Acme Holding S.A." {
		t.Errorf("razão social não sobrescrita: %q", cert.LegalName)
	}
	if cert.Status != certificate.StatusExpiring {
		t.Errorf("status não recalculado: %q", cert.Status)
	}
	if cert.Notes != "criado via importação\natualizado via importação" {
		t.Errorf("notas = %q", cert.Notes)
	}
}
