package handler

import (
	"fmt"
	"net/http"
	"time"

	"embarques/internal/dto"
	"embarques/internal/middleware"
	"embarques/internal/service"

	"github.com/gin-gonic/gin"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RegistrosHandler struct{ svc service.RegistroService }

func NewRegistrosHandler(svc service.RegistroService) *RegistrosHandler {
	return &RegistrosHandler{svc: svc}
}

// Listar godoc
// @Summary Operaciones activas
// @Tags registros
// @Produce json
// @Param refresh query bool false "Recargar desde la base de datos"
// @Success 200 {object} dto.RegistrosResponse
// @Failure 500 {object} apierror.APIError
// @Router /v1/registros [get]
func (h *RegistrosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetSettings(c), c.Query("refresh") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Agregar godoc
// @Summary Agregar una fila vacía
// @Tags registros
// @Produce json
// @Success 201 {object} projection.Fila
// @Router /v1/registros [post]
func (h *RegistrosHandler) Agregar(c *gin.Context) {
	fila, err := h.svc.AgregarFila(c.Request.Context(), middleware.GetSettings(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fila)
}

// Editar godoc
// @Summary Editar una celda
// @Tags registros
// @Accept json
// @Produce json
// @Param id path string true "ID de la operación"
// @Param body body dto.EditarCeldaRequest true "Celda"
// @Success 200 {object} dto.EdicionResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/registros/{id} [patch]
func (h *RegistrosHandler) Editar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.EditarCeldaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EditarCelda(c.Request.Context(), middleware.GetSettings(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EnviarAPapelera godoc
// @Summary Enviar operaciones a la papelera
// @Tags registros
// @Accept json
// @Produce json
// @Param body body dto.SeleccionRequest true "Operaciones"
// @Success 200 {object} dto.LoteResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/registros/papelera [post]
func (h *RegistrosHandler) EnviarAPapelera(c *gin.Context) {
	var req dto.SeleccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, err := h.svc.EnviarAPapelera(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoteResponse{Afectadas: n})
}

// Naves GET /v1/registros/naves?naviera=
func (h *RegistrosHandler) Naves(c *gin.Context) {
	opciones, err := h.svc.OpcionesNave(c.Request.Context(), c.Query("naviera"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OpcionesResponse{Opciones: opciones})
}

// Exportar godoc
// @Summary Exportar operaciones activas a Excel
// @Tags registros
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /v1/registros/export [get]
func (h *RegistrosHandler) Exportar(c *gin.Context) {
	st := middleware.GetSettings(c)
	data, err := h.svc.ExportarXLSX(c.Request.Context(), st)
	if err != nil {
		respondError(c, err)
		return
	}
	nombre := fmt.Sprintf("registros_%s.xlsx", time.Now().In(st.Zone).Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, mimeXLSX, data)
}

// HojaReserva godoc
// @Summary Hoja de reserva en PDF
// @Tags registros
// @Produce application/pdf
// @Param id path string true "ID de la operación"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/operaciones/{id}/pdf [get]
func (h *RegistrosHandler) HojaReserva(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	data, nombre, err := h.svc.HojaReservaPDF(c.Request.Context(), middleware.GetSettings(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
