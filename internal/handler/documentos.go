package handler

import (
	"errors"
	"io"
	"net/http"

	"embarques/internal/apierror"
	"embarques/internal/dto"
	"embarques/internal/i18n"
	"embarques/internal/middleware"
	"embarques/internal/service"

	"github.com/gin-gonic/gin"
)

// campoArchivo is the multipart field carrying the document.
const campoArchivo = "archivo"

type DocumentosHandler struct {
	svc      service.DocumentoService
	maxBytes int64
}

func NewDocumentosHandler(svc service.DocumentoService, maxBytes int64) *DocumentosHandler {
	return &DocumentosHandler{svc: svc, maxBytes: maxBytes}
}

func (h *DocumentosHandler) fail(c *gin.Context, err error) {
	respondErrorMB(c, err, h.maxBytes>>20)
}

// Operaciones GET /v1/documentos/operaciones?q=
func (h *DocumentosHandler) Operaciones(c *gin.Context) {
	ops, err := h.svc.Operaciones(c.Request.Context(), middleware.GetSettings(c), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OperacionesResumenResponse{Operaciones: ops})
}

// Slots godoc
// @Summary Documentos de una operación
// @Tags documentos
// @Produce json
// @Param id path string true "ID de la operación"
// @Success 200 {object} dto.DocumentosOperacionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/operaciones/{id}/documentos [get]
func (h *DocumentosHandler) Slots(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Slots(c.Request.Context(), middleware.GetSettings(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Subir godoc
// @Summary Subir o reemplazar un documento
// @Tags documentos
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "ID de la operación"
// @Param tipo path string true "Tipo de documento"
// @Param archivo formData file true "PDF, XLS o XLSX"
// @Success 201 {object} dto.DocumentoSubidoResponse
// @Failure 413 {object} apierror.APIError
// @Failure 415 {object} apierror.APIError
// @Router /v1/operaciones/{id}/documentos/{tipo} [post]
func (h *DocumentosHandler) Subir(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	// Leave room for the multipart envelope around the file.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)

	fh, err := c.FormFile(campoArchivo)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, service.ErrArchivoGrande)
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(middleware.GetSettings(c).T(i18n.ErrValorInvalido)))
		return
	}
	if fh.Size > h.maxBytes {
		h.fail(c, service.ErrArchivoGrande)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		h.fail(c, err)
		return
	}

	resp, err := h.svc.Subir(c.Request.Context(), middleware.GetSettings(c), id, c.Param("tipo"), fh.Filename, data)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Eliminar godoc
// @Summary Eliminar un documento
// @Tags documentos
// @Produce json
// @Param id path string true "ID del documento"
// @Param confirmado query bool false "Confirmación"
// @Success 204
// @Failure 409 {object} apierror.ConfirmationError
// @Router /v1/documentos/{id} [delete]
func (h *DocumentosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id, c.Query("confirmado") == "true"); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
