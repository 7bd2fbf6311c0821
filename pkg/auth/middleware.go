package auth

import (
	"net/http"
	"strings"

	"github.com/gestor-certificados/api/internal/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// Chaves usadas no contexto da requisição
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// JWTAuthMiddleware cria um middleware para autenticação JWT.
// A identidade autenticada vira um parâmetro explícito (user_id no contexto)
// consumido por todos os controllers.
func JWTAuthMiddleware() gin.HandlerFunc {
	jwtService, err := NewJWTService()
	if err != nil {
		// Sem chave JWT configurada o serviço não autentica ninguém
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				http.StatusInternalServerError,
				"Erro ao configurar autenticação",
				"O serviço JWT não foi inicializado corretamente",
			))
		}
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Autenticação requerida",
				"O cabeçalho Authorization não foi fornecido",
			))
			return
		}

		// Verificar o formato "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Formato de token inválido",
				"Use o formato 'Bearer <token>'",
			))
			return
		}

		claims, err := jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			message := "Token inválido"
			if err == ErrExpiredToken {
				message = "Token expirado"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				message,
				err.Error(),
			))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// CurrentUserID retorna o ID do usuário autenticado na requisição
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
