package certificate

import (
	"errors"
	"fmt"
)

// Erros do domínio de certificados
var (
	ErrNotFound      = errors.New("certificado não encontrado")
	ErrDuplicateCNPJ = errors.New("já existe um certificado com este CNPJ para o usuário")
	ErrForbidden     = errors.New("certificado pertence a outro usuário")
)

// ValidationError indica um campo obrigatório ausente ou malformado
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campo %s inválido: %s", e.Field, e.Message)
}

// IsValidationError verifica se o erro é de validação de campos
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
