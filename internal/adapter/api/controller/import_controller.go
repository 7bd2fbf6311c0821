package controller

import (
	"errors"
	"net/http"

	"github.com/gestor-certificados/api/internal/adapter/api/dto"
	"github.com/gestor-certificados/api/internal/domain/importer"
	"github.com/gestor-certificados/api/pkg/auth"
	"github.com/gestor-certificados/api/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ImportController manipula as requisições de importação de certificados
type ImportController struct {
	service *importer.Service
	logger  logger.Logger
}

// NewImportController cria uma nova instância de ImportController
func NewImportController(service *importer.Service, log logger.Logger) *ImportController {
	return &ImportController{
		service: service,
		logger:  log,
	}
}

// Upload processa um arquivo XML de certificados
// @Summary Importa certificados via XML
// @Description Processa o arquivo entrada a entrada: falhas individuais são
// registradas no relatório sem abortar o lote; XML malformado rejeita o lote
// inteiro
// @Tags importacoes
// @Accept multipart/form-data
// @Produce json
// @Param arquivo formData file true "Arquivo XML"
// @Success 200 {object} dto.ImportReportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /importacoes [post]
func (c *ImportController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("arquivo")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Arquivo não enviado", err.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Erro ao abrir arquivo", err.Error()))
		return
	}
	defer file.Close()

	report, err := c.service.Import(ctx, auth.CurrentUserID(ctx), fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, importer.ErrParse) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "XML inválido", err.Error()))
			return
		}
		c.logger.Error("erro na importação", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao importar certificados", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewImportReportResponse(report))
}

// List lista os lotes de importação do usuário
// @Summary Lista lotes de importação
// @Tags importacoes
// @Produce json
// @Success 200 {object} dto.BatchListResponse
// @Router /importacoes [get]
func (c *ImportController) List(ctx *gin.Context) {
	batches, err := c.service.ListBatches(ctx, auth.CurrentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar importações", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewBatchListResponse(batches))
}

// Get busca um lote de importação pelo ID
// @Summary Busca um lote de importação
// @Tags importacoes
// @Produce json
// @Param id path string true "ID do lote"
// @Success 200 {object} dto.BatchResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /importacoes/{id} [get]
func (c *ImportController) Get(ctx *gin.Context) {
	batch, err := c.service.FindBatch(ctx, auth.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, importer.ErrBatchNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Lote não encontrado", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar lote", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewBatchResponse(batch))
}
