package report_test

import (
	"testing"
	"time"

	"github.com/gestor-certificados/api/internal/domain/certificate"
	"github.com/gestor-certificados/api/internal/domain/report"
)

func cert(status certificate.Status, expiresAt time.Time) *certificate.Certificate {
	return &certificate.Certificate{Status: status, ExpiresAt: expiresAt}
}

func TestAggregate(t *testing.T) {
	now := time.Now().UTC()
	certs := []*certificate.Certificate{
		cert(certificate.StatusValid, now.AddDate(1, 0, 0)),
		cert(certificate.StatusValid, now.AddDate(0, 6, 0)),
		cert(certificate.StatusExpiring, now.AddDate(0, 0, 10)),
		cert(certificate.StatusExpired, now.AddDate(0, 0, -5)),
	}

	summary := report.Aggregate(certs)
	if summary.Total != 4 {
		t.Errorf("Total = %d", summary.Total)
	}
	if summary.ByStatus[certificate.StatusValid] != 2 {
		t.Errorf("válidos = %d", summary.ByStatus[certificate.StatusValid])
	}
	if summary.ByStatus[certificate.StatusExpiring] != 1 {
		t.Errorf("próximos ao vencimento = %d", summary.ByStatus[certificate.StatusExpiring])
	}
	if summary.ByStatus[certificate.StatusExpired] != 1 {
		t.Errorf("expirados = %d", summary.ByStatus[certificate.StatusExpired])
	}
}

func TestAggregateEmpty(t *testing.T) {
	summary := report.Aggregate(nil)
	if summary.Total != 0 {
		t.Errorf("Total = %d", summary.Total)
	}
	// Todas as chaves de status presentes mesmo com lista vazia
	for _, status := range []certificate.Status{certificate.StatusValid, certificate.StatusExpiring, certificate.StatusExpired} {
		if count, ok := summary.ByStatus[status]; !ok || count != 0 {
			t.Errorf("status %q: count=%d presente=%v", status, count, ok)
		}
	}
}

func TestMonthlyExpirations(t *testing.T) {
	certs := []*certificate.Certificate{
		cert(certificate.StatusValid, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)),
		cert(certificate.StatusValid, time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)),
		cert(certificate.StatusValid, time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)),
		cert(certificate.StatusValid, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
	}

	months := report.MonthlyExpirations(certs)
	want := []report.MonthCount{
		{Label: "12/2025", Count: 2},
		{Label: "01/2026", Count: 1},
		{Label: "03/2026", Count: 1},
	}
	if len(months) != len(want) {
		t.Fatalf("len(months) = %d, esperava %d", len(months), len(want))
	}
	// Virada de ano: 12/2025 deve vir antes de 01/2026 apesar da ordem lexical
	for i, w := range want {
		if months[i] != w {
			t.Errorf("posição %d: %+v, esperava %+v", i, months[i], w)
		}
	}
}

func TestMonthlyExpirationsEmpty(t *testing.T) {
	if months := report.MonthlyExpirations(nil); len(months) != 0 {
		t.Errorf("lista vazia deveria gerar zero meses, obteve %v", months)
	}
}
