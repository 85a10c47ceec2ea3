package service

import (
	"context"
	"errors"
	"strings"

	"embarques/internal/dto"
	"embarques/internal/grid"
	"embarques/internal/i18n"
	"embarques/internal/projection"
	"embarques/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GestionService backs the invoicing and trucking forms. Both replace a fixed
// group of columns of one operation at once.
type GestionService interface {
	Operaciones(ctx context.Context, s i18n.Settings, q dto.GestionQuery) ([]dto.OperacionResumen, error)
	Facturar(ctx context.Context, s i18n.Settings, id uuid.UUID, req dto.FacturacionRequest) (dto.GuardadoResponse, error)
	Transporte(ctx context.Context, s i18n.Settings, id uuid.UUID, req dto.TransporteRequest) (dto.GuardadoResponse, error)
}

type gestionService struct {
	ops   repository.OperacionRepository
	cache Invalidador
}

func NewGestionService(ops repository.OperacionRepository, cache Invalidador) GestionService {
	return &gestionService{ops: ops, cache: cache}
}

// Operaciones searches active operations. Pendientes keeps only those without
// an ASLI invoice number.
func (s *gestionService) Operaciones(ctx context.Context, st i18n.Settings, q dto.GestionQuery) ([]dto.OperacionResumen, error) {
	ops, err := s.ops.Buscar(ctx, repository.FiltroOperaciones{Q: q.Q, SinFactura: q.Pendientes})
	if err != nil {
		return nil, err
	}
	return mapResumenes(ops, st), nil
}

func (s *gestionService) Facturar(ctx context.Context, st i18n.Settings, id uuid.UUID, req dto.FacturacionRequest) (dto.GuardadoResponse, error) {
	c := campos{st: st}
	c.texto("factura_transporte", req.FacturaTransporte)
	c.decimal("monto_facturado", req.MontoFacturado)
	c.texto("numero_factura_asli", req.NumeroFacturaASLI)
	c.texto("concepto_facturado", req.ConceptoFacturado)
	c.texto("moneda", req.Moneda)
	c.decimal("tipo_cambio", req.TipoCambio)
	c.decimal("margen_estimado", req.MargenEstimado)
	c.decimal("margen_real", req.MargenReal)
	c.fecha("fecha_entrega_factura", req.FechaEntregaFactura)
	c.fecha("fecha_pago_cliente", req.FechaPagoCliente)
	c.fecha("fecha_pago_transporte", req.FechaPagoTransporte)
	return s.guardar(ctx, st, id, c)
}

func (s *gestionService) Transporte(ctx context.Context, st i18n.Settings, id uuid.UUID, req dto.TransporteRequest) (dto.GuardadoResponse, error) {
	c := campos{st: st}
	c.texto("transporte", req.Transporte)
	c.texto("chofer", req.Chofer)
	c.texto("rut_chofer", req.RutChofer)
	c.texto("telefono_chofer", req.TelefonoChofer)
	c.texto("patente_camion", req.PatenteCamion)
	c.texto("patente_remolque", req.PatenteRemolque)
	c.texto("contenedor", req.Contenedor)
	c.texto("sello", req.Sello)
	c.decimal("tara", req.Tara)
	c.instante("citacion", req.Citacion)
	c.instante("llegada_planta", req.LlegadaPlanta)
	c.instante("salida_planta", req.SalidaPlanta)
	c.texto("deposito", req.Deposito)
	c.instante("agendamiento_retiro", req.AgendamientoRetiro)
	c.instante("inicio_stacking", req.InicioStacking)
	c.instante("fin_stacking", req.FinStacking)
	c.instante("ingreso_stacking", req.IngresoStacking)
	c.texto("tramo", req.Tramo)
	c.decimal("valor_tramo", req.ValorTramo)
	c.set("porteo", req.Porteo)
	c.decimal("valor_porteo", req.ValorPorteo)
	c.set("falso_flete", req.FalsoFlete)
	c.decimal("valor_falso_flete", req.ValorFalsoFlete)
	c.texto("factura_transporte", req.FacturaTransporte)
	c.texto("observaciones", req.Observaciones)
	return s.guardar(ctx, st, id, c)
}

func (s *gestionService) guardar(ctx context.Context, st i18n.Settings, id uuid.UUID, c campos) (dto.GuardadoResponse, error) {
	if c.err != nil {
		return dto.GuardadoResponse{}, c.err
	}
	if err := s.ops.ActualizarCampos(ctx, id, c.valores); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GuardadoResponse{}, ErrOperacionNoEncontrada
		}
		return dto.GuardadoResponse{}, err
	}
	s.cache.Invalidar(ctx)
	return dto.GuardadoResponse{Mensaje: st.T(i18n.CambiosGuardados)}, nil
}

// campos collects column values for one update. Blank input clears the
// column. The first conversion error sticks.
type campos struct {
	st      i18n.Settings
	valores map[string]any
	err     error
}

func (c *campos) set(col string, v any) {
	if c.valores == nil {
		c.valores = map[string]any{}
	}
	c.valores[col] = v
}

func (c *campos) texto(col, raw string) {
	v, _, _ := grid.Normalizar(grid.Texto, raw)
	c.set(col, v)
}

func (c *campos) decimal(col, raw string) {
	v, _, err := grid.Normalizar(grid.Decimal, raw)
	if err != nil && c.err == nil {
		c.err = err
	}
	c.set(col, v)
}

// fecha stores a calendar date as yyyy-mm-dd.
func (c *campos) fecha(col, raw string) {
	if strings.TrimSpace(raw) == "" {
		c.set(col, nil)
		return
	}
	iso := projection.FechaISO(raw, c.st.Zone)
	if iso == "" && c.err == nil {
		c.err = grid.ErrValorInvalido
	}
	c.set(col, iso)
}

// instante stores a local date and time of the configured zone.
func (c *campos) instante(col, raw string) {
	if strings.TrimSpace(raw) == "" {
		c.set(col, nil)
		return
	}
	t, ok := projection.Parse(raw, c.st.Zone)
	if !ok && c.err == nil {
		c.err = grid.ErrValorInvalido
	}
	c.set(col, t)
}
