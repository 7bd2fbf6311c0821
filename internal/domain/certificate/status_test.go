package certificate_test

import (
	"testing"
	"time"

	"github.com/gestor-certificados/api/internal/domain/certificate"
)

func TestClassify(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      certificate.Status
	}{
		{name: "vencido há um dia", expiresAt: now.AddDate(0, 0, -1), want: certificate.StatusExpired},
		{name: "vence em 15 dias", expiresAt: now.AddDate(0, 0, 15), want: certificate.StatusExpiring},
		{name: "vence em 400 dias", expiresAt: now.AddDate(0, 0, 400), want: certificate.StatusValid},
		// Fronteiras da regra
		{name: "vencimento exatamente agora", expiresAt: now, want: certificate.StatusExpiring},
		{name: "exatamente 30 dias", expiresAt: now.Add(30 * 24 * time.Hour), want: certificate.StatusExpiring},
		{name: "exatamente 31 dias", expiresAt: now.Add(31 * 24 * time.Hour), want: certificate.StatusValid},
		{name: "um segundo no passado", expiresAt: now.Add(-time.Second), want: certificate.StatusExpired},
		{name: "um segundo além dos 30 dias", expiresAt: now.Add(30*24*time.Hour + time.Second), want: certificate.StatusValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := certificate.Classify(tt.expiresAt, now)
			if got != tt.want {
				t.Errorf("Classify(%v) = %q, esperava %q", tt.expiresAt, got, tt.want)
			}
			if !got.IsValid() {
				t.Errorf("Classify retornou status desconhecido %q", got)
			}
		})
	}
}

func TestClassifyTimezones(t *testing.T) {
	// A regra normaliza para UTC antes de comparar
	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*60*60)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	expiry := time.Date(2024, 6, 15, 9, 0, 0, 1, saoPaulo) // 12:00:00.000000001 UTC

	if got := certificate.Classify(expiry, now); got == certificate.StatusExpired {
		t.Errorf("vencimento no futuro classificado como expirado")
	}
}

func TestStatusPriority(t *testing.T) {
	if certificate.StatusExpired.Priority() >= certificate.StatusExpiring.Priority() {
		t.Error("expirado deve vir antes de próximo ao vencimento")
	}
	if certificate.StatusExpiring.Priority() >= certificate.StatusValid.Priority() {
		t.Error("próximo ao vencimento deve vir antes de válido")
	}
}
