package dto

import "embarques/internal/repository"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// FacturacionRequest replaces the invoicing fields of one operation. Blank
// values clear the column. Amounts use "." as decimal separator.
type FacturacionRequest struct {
	FacturaTransporte   string `json:"factura_transporte"`
	MontoFacturado      string `json:"monto_facturado"     validate:"omitempty,number"`
	NumeroFacturaASLI   string `json:"numero_factura_asli" validate:"max=60"`
	ConceptoFacturado   string `json:"concepto_facturado"`
	Moneda              string `json:"moneda"              validate:"max=10"`
	TipoCambio          string `json:"tipo_cambio"         validate:"omitempty,number"`
	MargenEstimado      string `json:"margen_estimado"     validate:"omitempty,number"`
	MargenReal          string `json:"margen_real"         validate:"omitempty,number"`
	FechaEntregaFactura string `json:"fecha_entrega_factura"`
	FechaPagoCliente    string `json:"fecha_pago_cliente"`
	FechaPagoTransporte string `json:"fecha_pago_transporte"`
}

// TransporteRequest replaces the trucking fields of one operation.
type TransporteRequest struct {
	Transporte         string `json:"transporte"`
	Chofer             string `json:"chofer"`
	RutChofer          string `json:"rut_chofer"          validate:"max=20"`
	TelefonoChofer     string `json:"telefono_chofer"     validate:"max=30"`
	PatenteCamion      string `json:"patente_camion"      validate:"max=15"`
	PatenteRemolque    string `json:"patente_remolque"    validate:"max=15"`
	Contenedor         string `json:"contenedor"          validate:"max=20"`
	Sello              string `json:"sello"`
	Tara               string `json:"tara"                validate:"omitempty,number"`
	Citacion           string `json:"citacion"`
	LlegadaPlanta      string `json:"llegada_planta"`
	SalidaPlanta       string `json:"salida_planta"`
	Deposito           string `json:"deposito"`
	AgendamientoRetiro string `json:"agendamiento_retiro"`
	InicioStacking     string `json:"inicio_stacking"`
	FinStacking        string `json:"fin_stacking"`
	IngresoStacking    string `json:"ingreso_stacking"`
	Tramo              string `json:"tramo"`
	ValorTramo         string `json:"valor_tramo"         validate:"omitempty,number"`
	Porteo             bool   `json:"porteo"`
	ValorPorteo        string `json:"valor_porteo"        validate:"omitempty,number"`
	FalsoFlete         bool   `json:"falso_flete"`
	ValorFalsoFlete    string `json:"valor_falso_flete"   validate:"omitempty,number"`
	FacturaTransporte  string `json:"factura_transporte"`
	Observaciones      string `json:"observaciones"`
}

type GestionQuery struct {
	Q          string `form:"q"`
	Pendientes bool   `form:"pendientes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OperacionesResumenResponse struct {
	Operaciones []OperacionResumen `json:"operaciones"`
}

type GuardadoResponse struct {
	Mensaje string `json:"mensaje"`
}

type DashboardResponse struct {
	TotalActivas   int64               `json:"total_activas"`
	EnPapelera     int64               `json:"en_papelera"`
	PorEstado      []repository.Conteo `json:"por_estado"`
	PorNaviera     []repository.Conteo `json:"por_naviera"`
	ProximosZarpes []OperacionResumen  `json:"proximos_zarpes"`
	Recientes      []OperacionResumen  `json:"recientes"`
}
