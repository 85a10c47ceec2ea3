package handler

import (
	"net/http"

	"embarques/internal/dto"
	"embarques/internal/middleware"
	"embarques/internal/service"

	"github.com/gin-gonic/gin"
)

// GestionHandler serves the invoicing and trucking forms.
type GestionHandler struct{ svc service.GestionService }

func NewGestionHandler(svc service.GestionService) *GestionHandler {
	return &GestionHandler{svc: svc}
}

func (h *GestionHandler) listar(c *gin.Context, q dto.GestionQuery) {
	ops, err := h.svc.Operaciones(c.Request.Context(), middleware.GetSettings(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OperacionesResumenResponse{Operaciones: ops})
}

// OperacionesFacturacion godoc
// @Summary Operaciones para facturar
// @Tags facturacion
// @Produce json
// @Param q query string false "Búsqueda"
// @Param pendientes query bool false "Solo sin número de factura"
// @Success 200 {object} dto.OperacionesResumenResponse
// @Router /v1/facturacion [get]
func (h *GestionHandler) OperacionesFacturacion(c *gin.Context) {
	var q dto.GestionQuery
	if !bindQuery(c, &q) {
		return
	}
	h.listar(c, q)
}

// OperacionesTransporte GET /v1/transportes?q=
func (h *GestionHandler) OperacionesTransporte(c *gin.Context) {
	h.listar(c, dto.GestionQuery{Q: c.Query("q")})
}

// Facturar godoc
// @Summary Guardar la facturación de una operación
// @Tags facturacion
// @Accept json
// @Produce json
// @Param id path string true "ID de la operación"
// @Param body body dto.FacturacionRequest true "Facturación"
// @Success 200 {object} dto.GuardadoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/facturacion/{id} [put]
func (h *GestionHandler) Facturar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.FacturacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Facturar(c.Request.Context(), middleware.GetSettings(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Transporte godoc
// @Summary Guardar el transporte de una operación
// @Tags transportes
// @Accept json
// @Produce json
// @Param id path string true "ID de la operación"
// @Param body body dto.TransporteRequest true "Transporte"
// @Success 200 {object} dto.GuardadoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/transportes/{id} [put]
func (h *GestionHandler) Transporte(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.TransporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Transporte(c.Request.Context(), middleware.GetSettings(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Dashboard y catálogos ────────────────────────────────────────────────────

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Resumen godoc
// @Summary Contadores del panel de inicio
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/dashboard [get]
func (h *DashboardHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context(), middleware.GetSettings(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type CatalogosHandler struct{ svc service.CatalogoService }

func NewCatalogosHandler(svc service.CatalogoService) *CatalogosHandler {
	return &CatalogosHandler{svc: svc}
}

// Opciones GET /v1/catalogos/:tipo?q=
func (h *CatalogosHandler) Opciones(c *gin.Context) {
	opciones, err := h.svc.Opciones(c.Request.Context(), c.Param("tipo"), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OpcionesResponse{Opciones: opciones})
}
