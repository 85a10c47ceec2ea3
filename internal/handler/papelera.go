package handler

import (
	"net/http"

	"embarques/internal/dto"
	"embarques/internal/middleware"
	"embarques/internal/service"

	"github.com/gin-gonic/gin"
)

type PapeleraHandler struct{ svc service.PapeleraService }

func NewPapeleraHandler(svc service.PapeleraService) *PapeleraHandler {
	return &PapeleraHandler{svc: svc}
}

// Listar GET /v1/papelera
func (h *PapeleraHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetSettings(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Restaurar godoc
// @Summary Restaurar operaciones de la papelera
// @Tags papelera
// @Accept json
// @Produce json
// @Param body body dto.SeleccionRequest true "Operaciones"
// @Success 200 {object} dto.LoteResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/papelera/restaurar [post]
func (h *PapeleraHandler) Restaurar(c *gin.Context) {
	var req dto.SeleccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, err := h.svc.Restaurar(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoteResponse{Afectadas: n})
}

// Eliminar godoc
// @Summary Eliminar operaciones definitivamente
// @Description Sin "confirmado" responde 409 con la pregunta a mostrar.
// @Tags papelera
// @Accept json
// @Produce json
// @Param body body dto.EliminarRequest true "Operaciones"
// @Success 200 {object} dto.LoteResponse
// @Failure 409 {object} apierror.ConfirmationError
// @Router /v1/papelera/eliminar [post]
func (h *PapeleraHandler) Eliminar(c *gin.Context) {
	var req dto.EliminarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, err := h.svc.Eliminar(c.Request.Context(), req.IDs, req.Confirmado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoteResponse{Afectadas: n})
}

// Vaciar godoc
// @Summary Vaciar la papelera
// @Tags papelera
// @Accept json
// @Produce json
// @Param body body dto.ConfirmacionRequest true "Confirmación"
// @Success 200 {object} dto.LoteResponse
// @Failure 409 {object} apierror.ConfirmationError
// @Router /v1/papelera/vaciar [post]
func (h *PapeleraHandler) Vaciar(c *gin.Context) {
	var req dto.ConfirmacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, err := h.svc.Vaciar(c.Request.Context(), req.Confirmado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoteResponse{Afectadas: n})
}
