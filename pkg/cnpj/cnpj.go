// Package cnpj concentra normalização, formatação e validação de CNPJ,
// a chave natural dos certificados no sistema.
package cnpj

import (
	"errors"
	"strings"
)

// Erros de validação de CNPJ
var (
	ErrInvalidLength = errors.New("CNPJ deve ter 14 dígitos")
	ErrInvalidDigits = errors.New("dígitos verificadores do CNPJ inválidos")
)

// Normalize remove a máscara e valida o CNPJ, retornando apenas os 14 dígitos
func Normalize(value string) (string, error) {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != 14 {
		return "", ErrInvalidLength
	}
	if !checkDigits(digits) {
		return "", ErrInvalidDigits
	}
	return digits, nil
}

// Format aplica a máscara XX.XXX.XXX/XXXX-XX a um CNPJ já normalizado.
// Valores fora do padrão são devolvidos como estão.
func Format(digits string) string {
	if len(digits) != 14 {
		return digits
	}
	return digits[:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:]
}

// IsValid informa se o valor (com ou sem máscara) é um CNPJ válido
func IsValid(value string) bool {
	_, err := Normalize(value)
	return err == nil
}

// checkDigits valida os dois dígitos verificadores do CNPJ
func checkDigits(digits string) bool {
	// CNPJs com todos os dígitos iguais passam no cálculo, mas são inválidos
	allEqual := true
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	return digitAt(digits, 12) == int(digits[12]-'0') &&
		digitAt(digits, 13) == int(digits[13]-'0')
}

// digitAt calcula o dígito verificador da posição informada (12 ou 13)
func digitAt(digits string, position int) int {
	weight := position - 7 // 5 para o primeiro dígito, 6 para o segundo
	sum := 0
	for i := 0; i < position; i++ {
		sum += int(digits[i]-'0') * weight
		weight--
		if weight < 2 {
			weight = 9
		}
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
