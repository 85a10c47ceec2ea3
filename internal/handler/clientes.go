package handler

import (
	"net/http"

	"embarques/internal/dto"
	"embarques/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Listar GET /v1/clientes
func (h *ClientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Agregar POST /v1/clientes
func (h *ClientesHandler) Agregar(c *gin.Context) {
	resp, err := h.svc.Agregar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Editar godoc
// @Summary Editar una celda de la grilla de clientes
// @Tags clientes
// @Accept json
// @Produce json
// @Param id path string true "ID del cliente"
// @Param body body dto.EditarClienteRequest true "Celda"
// @Success 200 {object} dto.EdicionClienteResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/clientes/{id} [patch]
func (h *ClientesHandler) Editar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.EditarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EditarCelda(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Eliminar clientes
// @Tags clientes
// @Accept json
// @Produce json
// @Param body body dto.EliminarRequest true "Clientes"
// @Success 200 {object} dto.LoteResponse
// @Failure 409 {object} apierror.ConfirmationError
// @Router /v1/clientes [delete]
func (h *ClientesHandler) Eliminar(c *gin.Context) {
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
