package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gestor-certificados/api/internal/adapter/api/dto"
	"github.com/gestor-certificados/api/internal/domain/user"
	"github.com/gestor-certificados/api/pkg/auth"
	"github.com/gestor-certificados/api/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	userRepository user.Repository
	logger         logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepository user.Repository, log logger.Logger) *AuthController {
	return &AuthController{
		userRepository: userRepository,
		logger:         log,
	}
}

// Login autentica um usuário e retorna um token JWT
// @Summary Autentica um usuário
// @Description Verifica as credenciais do usuário e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	u, err := c.userRepository.FindByUsername(ctx, request.Username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", "Usuário ou senha incorretos"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao autenticar usuário", err.Error()))
		return
	}

	if !u.CheckPassword(request.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", "Usuário ou senha incorretos"))
		return
	}

	jwtService, err := auth.NewJWTService()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao configurar autenticação", err.Error()))
		return
	}

	token, err := jwtService.GenerateToken(u)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar token", err.Error()))
		return
	}

	c.logger.Info("login realizado", "username", u.Username)
	ctx.JSON(http.StatusOK, dto.LoginResponse{
		User:        dto.ToUserResponse(u),
		AccessToken: token,
		ExpiresAt:   time.Now().Add(jwtService.Expiration()),
	})
}

// Register cria uma nova conta de usuário
// @Summary Registra um novo usuário
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Dados do novo usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	u, err := user.NewUser(request.Username, request.Email, request.Name, request.Password)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados inválidos", err.Error()))
		return
	}

	if err := c.userRepository.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateUsername) || errors.Is(err, user.ErrDuplicateEmail) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Usuário já existe", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar usuário", err.Error()))
		return
	}

	c.logger.Info("usuário registrado", "username", u.Username)
	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// RefreshToken renova um token JWT
// @Summary Renova um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Token a ser renovado"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	jwtService, err := auth.NewJWTService()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao configurar autenticação", err.Error()))
		return
	}

	token, err := jwtService.RefreshToken(request.Token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Token inválido", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshTokenResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(jwtService.Expiration()),
	})
}

// CreateAdminUser cria o usuário administrador inicial do sistema.
// Só funciona enquanto não existir nenhum usuário cadastrado.
// @Summary Bootstrap do usuário administrador
// @Tags setup
// @Accept json
// @Produce json
// @Param admin body dto.RegisterRequest true "Dados do administrador"
// @Success 201 {object} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /setup/admin [post]
func (c *AuthController) CreateAdminUser(ctx *gin.Context) {
	count, err := c.userRepository.Count(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao verificar usuários", err.Error()))
		return
	}
	if count > 0 {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Sistema já inicializado", "Já existem usuários cadastrados"))
		return
	}

	c.Register(ctx)
}
