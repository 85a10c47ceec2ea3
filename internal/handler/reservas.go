package handler

import (
	"net/http"

	"embarques/internal/dto"
	"embarques/internal/middleware"
	"embarques/internal/service"
	"embarques/internal/wizard"

	"github.com/gin-gonic/gin"
)

type ReservasHandler struct{ svc service.ReservaService }

func NewReservasHandler(svc service.ReservaService) *ReservasHandler {
	return &ReservasHandler{svc: svc}
}

// Listar godoc
// @Summary Mis reservas
// @Tags reservas
// @Produce json
// @Param q query string false "Búsqueda libre"
// @Param estado query string false "Estado"
// @Param cliente query string false "Cliente"
// @Param naviera query string false "Naviera"
// @Param especie query string false "Especie"
// @Param orden query string false "Campo de orden"
// @Param desc query bool false "Orden descendente"
// @Success 200 {object} dto.ReservasResponse
// @Router /v1/reservas [get]
func (h *ReservasHandler) Listar(c *gin.Context) {
	var q dto.ReservasQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetSettings(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Formulario GET /v1/reservas/formulario
func (h *ReservasHandler) Formulario(c *gin.Context) {
	resp, err := h.svc.Formulario(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Naves GET /v1/reservas/naves?naviera=<id>
func (h *ReservasHandler) Naves(c *gin.Context) {
	naviera, ok := queryID(c, "naviera")
	if !ok {
		return
	}
	opciones, err := h.svc.Naves(c.Request.Context(), naviera)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OpcionesResponse{Opciones: opciones})
}

// ResolverCliente GET /v1/reservas/clientes?input=&seleccionado=
func (h *ReservasHandler) ResolverCliente(c *gin.Context) {
	resp, err := h.svc.ResolverCliente(c.Request.Context(), middleware.GetSettings(c), c.Query("input"), c.Query("seleccionado"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearCliente godoc
// @Summary Crear un cliente en el catálogo
// @Tags reservas
// @Accept json
// @Produce json
// @Param body body dto.CrearClienteRequest true "Nombre"
// @Success 201 {object} catalogo.Opcion
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/reservas/clientes [post]
func (h *ReservasHandler) CrearCliente(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	o, err := h.svc.CrearCliente(c.Request.Context(), req.Nombre)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// Estado POST /v1/reservas/estado
func (h *ReservasHandler) Estado(c *gin.Context) {
	var f wizard.Formulario
	if !bindAndValidate(c, &f) {
		return
	}
	c.JSON(http.StatusOK, h.svc.Estado(f))
}

// Preview godoc
// @Summary Vista previa de la reserva
// @Description Devuelve las filas a insertar y el token que exige la confirmación.
// @Tags reservas
// @Accept json
// @Produce json
// @Param body body wizard.Formulario true "Formulario"
// @Success 200 {object} wizard.Preview
// @Failure 422 {object} apierror.APIError
// @Router /v1/reservas/preview [post]
func (h *ReservasHandler) Preview(c *gin.Context) {
	var f wizard.Formulario
	if !bindAndValidate(c, &f) {
		return
	}
	p, err := h.svc.Preview(c.Request.Context(), middleware.GetSettings(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Confirmar godoc
// @Summary Confirmar e insertar la reserva
// @Tags reservas
// @Accept json
// @Produce json
// @Param body body dto.ConfirmarReservaRequest true "Formulario y token de vista previa"
// @Success 201 {object} dto.ReservaCreadaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/reservas [post]
func (h *ReservasHandler) Confirmar(c *gin.Context) {
	var req dto.ConfirmarReservaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Confirmar(c.Request.Context(), middleware.GetSettings(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
