package cnpj_test

import (
	"testing"

	"github.com/gestor-certificados/api/pkg/cnpj"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "com máscara", input: "11.222.333/0001-81", want: "11222333000181"},
		{name: "sem máscara", input: "11222333000181", want: "11222333000181"},
		{name: "curto demais", input: "1122233300018", wantErr: true},
		{name: "dígito verificador errado", input: "11.222.333/0001-82", wantErr: true},
		{name: "todos iguais", input: "11111111111111", wantErr: true},
		{name: "vazio", input: "", wantErr: true},
		{name: "letras misturadas", input: "11a222b333000181", want: "11222333000181"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cnpj.Normalize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("esperava erro para %q, obteve %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, esperava %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := cnpj.Format("11222333000181"); got != "11.222.333/0001-81" {
		t.Errorf("Format = %q", got)
	}
	// Valores fora do padrão passam direto
	if got := cnpj.Format("123"); got != "123" {
		t.Errorf("Format(123) = %q", got)
	}
}

func TestIsValid(t *testing.T) {
	if !cnpj.IsValid("11.222.333/0001-81") {
		t.Error("CNPJ válido rejeitado")
	}
	if cnpj.IsValid("00.000.000/0000-00") {
		t.Error("CNPJ de dígitos repetidos aceito")
	}
}
