package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gestor-certificados/api/internal/adapter/api/dto"
	"github.com/gestor-certificados/api/internal/domain/certificate"
	"github.com/gestor-certificados/api/pkg/auth"
	"github.com/gestor-certificados/api/pkg/excel"
	"github.com/gestor-certificados/api/pkg/logger"
	"github.com/gestor-certificados/api/pkg/pkcs12"
	"github.com/gin-gonic/gin"
)

// CertificateController manipula as requisições de certificados
type CertificateController struct {
	service *certificate.Service
	logger  logger.Logger
}

// NewCertificateController cria uma nova instância de CertificateController
func NewCertificateController(service *certificate.Service, log logger.Logger) *CertificateController {
	return &CertificateController{
		service: service,
		logger:  log,
	}
}

// List lista os certificados do usuário autenticado
// @Summary Lista certificados
// @Description Lista os certificados do usuário com filtros opcionais. O
// status de cada certificado é reatualizado antes da resposta.
// @Tags certificados
// @Produce json
// @Param busca query string false "Busca por razão social, nome fantasia ou CNPJ"
// @Param validade_de query string false "Validade mínima (AAAA-MM-DD, inclusivo)"
// @Param validade_ate query string false "Validade máxima (AAAA-MM-DD, inclusivo)"
// @Param ordenacao query string false "expiry (padrão) ou status"
// @Success 200 {object} dto.CertificateListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /certificados [get]
func (c *CertificateController) List(ctx *gin.Context) {
	filter, err := parseListFilter(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Filtro inválido", err.Error()))
		return
	}

	certs, err := c.service.List(ctx, auth.CurrentUserID(ctx), filter)
	if err != nil {
		c.logger.Error("erro ao listar certificados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar certificados", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewCertificateListResponse(certs))
}

// Get busca um certificado pelo ID
// @Summary Busca um certificado
// @Tags certificados
// @Produce json
// @Param id path string true "ID do certificado"
// @Success 200 {object} dto.CertificateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /certificados/{id} [get]
func (c *CertificateController) Get(ctx *gin.Context) {
	cert, err := c.service.Get(ctx, auth.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		c.renderError(ctx, err, "Erro ao buscar certificado")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewCertificateResponse(cert))
}

// Create cria um novo certificado
// @Summary Cria um certificado
// @Tags certificados
// @Accept json
// @Produce json
// @Param certificado body dto.CertificateRequest true "Dados do certificado"
// @Success 201 {object} dto.CertificateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /certificados [post]
func (c *CertificateController) Create(ctx *gin.Context) {
	var request dto.CertificateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	input, err := request.ToInput()
	if err != nil {
		c.renderError(ctx, err, "Dados inválidos")
		return
	}

	cert, err := c.service.Create(ctx, auth.CurrentUserID(ctx), input)
	if err != nil {
		c.renderError(ctx, err, "Erro ao criar certificado")
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewCertificateResponse(cert))
}

// Update atualiza um certificado existente
// @Summary Atualiza um certificado
// @Tags certificados
// @Accept json
// @Produce json
// @Param id path string true "ID do certificado"
// @Param certificado body dto.CertificateRequest true "Dados do certificado"
// @Success 200 {object} dto.CertificateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /certificados/{id} [put]
func (c *CertificateController) Update(ctx *gin.Context) {
	var request dto.CertificateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	input, err := request.ToInput()
	if err != nil {
		c.renderError(ctx, err, "Dados inválidos")
		return
	}

	cert, err := c.service.Update(ctx, auth.CurrentUserID(ctx), ctx.Param("id"), input)
	if err != nil {
		c.renderError(ctx, err, "Erro ao atualizar certificado")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewCertificateResponse(cert))
}

// Delete exclui um certificado
// @Summary Exclui um certificado
// @Tags certificados
// @Produce json
// @Param id path string true "ID do certificado"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /certificados/{id} [delete]
func (c *CertificateController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx, auth.CurrentUserID(ctx), ctx.Param("id")); err != nil {
		c.renderError(ctx, err, "Erro ao excluir certificado")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Certificado excluído com sucesso", nil))
}

// Export gera a planilha Excel dos certificados do usuário
// @Summary Exporta certificados em Excel
// @Description Gera uma planilha .xlsx na ordenação por criticidade de status
// @Tags certificados
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /certificados/exportar [get]
func (c *CertificateController) Export(ctx *gin.Context) {
	certs, err := c.service.List(ctx, auth.CurrentUserID(ctx), certificate.Filter{
		Sort: certificate.SortByStatusPriority,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao exportar certificados", err.Error()))
		return
	}

	buf, err := excel.Generate(certs)
	if err != nil {
		c.logger.Error("erro ao gerar planilha", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar planilha", err.Error()))
		return
	}

	filename := fmt.Sprintf("certificados_%s.xlsx", time.Now().Format("02012006"))
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// UploadA1 cadastra/atualiza um certificado a partir de um arquivo A1 (.pfx)
// @Summary Upload de certificado digital A1
// @Description Extrai razão social, CNPJ e vigência do arquivo .pfx e faz o
// upsert do certificado correspondente
// @Tags certificados
// @Accept multipart/form-data
// @Produce json
// @Param arquivo formData file true "Arquivo .pfx/.p12"
// @Param senha formData string true "Senha do certificado"
// @Param telefone formData string false "Telefone de contato"
// @Success 200 {object} dto.CertificateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /certificados/upload-a1 [post]
func (c *CertificateController) UploadA1(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("arquivo")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Arquivo não enviado", err.Error()))
		return
	}
	password := ctx.PostForm("senha")
	if password == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Senha do certificado é obrigatória", ""))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Erro ao abrir arquivo", err.Error()))
		return
	}
	defer file.Close()

	pfxData, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Erro ao ler arquivo", err.Error()))
		return
	}

	info, err := pkcs12.ExtractInfo(pfxData, password)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Certificado digital inválido", err.Error()))
		return
	}

	phone := ctx.PostForm("telefone")
	if phone == "" {
		phone = "não informado"
	}

	stamp := time.Now().UTC().Format("02/01/2006 15:04")
	cert, created, err := c.service.Upsert(ctx, auth.CurrentUserID(ctx), certificate.Input{
		LegalName: info.LegalName,
		TradeName: info.LegalName,
		CNPJ:      info.CNPJ,
		Phone:     phone,
		IssuedAt:  info.IssuedAt,
		ExpiresAt: info.ExpiresAt,
	}, "importado via certificado A1 em "+stamp, "atualizado via certificado A1 em "+stamp)
	if err != nil {
		c.renderError(ctx, err, "Erro ao registrar certificado")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.logger.Info("certificado A1 processado", "cnpj", cert.CNPJ, "created", created)
	ctx.JSON(status, dto.NewCertificateResponse(cert))
}

// renderError traduz os erros do domínio para os códigos HTTP da API
func (c *CertificateController) renderError(ctx *gin.Context, err error, message string) {
	switch {
	case certificate.IsValidationError(err):
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, message, err.Error()))
	case errors.Is(err, certificate.ErrDuplicateCNPJ):
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, message, err.Error()))
	case errors.Is(err, certificate.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, message, err.Error()))
	case errors.Is(err, certificate.ErrForbidden):
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, message, err.Error()))
	default:
		c.logger.Error("erro interno", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, message, err.Error()))
	}
}

// parseListFilter monta o filtro da listagem a partir da query string.
// O limite superior informado pelo usuário é inclusivo em termos civis, por
// isso vira "data + 1 dia" exclusivo no filtro.
func parseListFilter(ctx *gin.Context) (certificate.Filter, error) {
	filter := certificate.Filter{
		Search: ctx.Query("busca"),
		Sort:   certificate.SortByExpiry,
	}
	if ctx.Query("ordenacao") == "status" {
		filter.Sort = certificate.SortByStatusPriority
	}

	if from := ctx.Query("validade_de"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, fmt.Errorf("validade_de inválida: %q", from)
		}
		t = t.UTC()
		filter.ExpiresFrom = &t
	}
	if until := ctx.Query("validade_ate"); until != "" {
		t, err := time.Parse("2006-01-02", until)
		if err != nil {
			return filter, fmt.Errorf("validade_ate inválida: %q", until)
		}
		t = t.UTC().AddDate(0, 0, 1)
		filter.ExpiresUntil = &t
	}
	return filter, nil
}
