package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Operacion is one shipment/booking record. Every business attribute is
// nullable. Date and datetime columns are scanned as raw strings so that the
// display layer can fall back to whatever the store returned.
type Operacion struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Correlativo int64     `gorm:"column:correlativo;autoIncrement;not null;uniqueIndex"`
	RefASLI     *string   `gorm:"column:ref_asli;index"`

	// General
	Ingreso         *string `gorm:"column:ingreso;type:timestamptz"`
	Semana          *int    `gorm:"column:semana"`
	Ejecutivo       *string `gorm:"column:ejecutivo"`
	EstadoOperacion *string `gorm:"column:estado_operacion;index"`
	TipoOperacion   *string `gorm:"column:tipo_operacion"`
	Cliente         *string `gorm:"column:cliente;index"`
	Consignatario   *string `gorm:"column:consignatario"`

	// Comercial
	Incoterm  *string `gorm:"column:incoterm"`
	FormaPago *string `gorm:"column:forma_pago"`

	// Carga
	Especie     *string             `gorm:"column:especie"`
	Pais        *string             `gorm:"column:pais"`
	Temperatura *string             `gorm:"column:temperatura"`
	Ventilacion *string             `gorm:"column:ventilacion"`
	Pallets     *int                `gorm:"column:pallets"`
	PesoBruto   decimal.NullDecimal `gorm:"column:peso_bruto;type:numeric(12,2)"`
	PesoNeto    decimal.NullDecimal `gorm:"column:peso_neto;type:numeric(12,2)"`
	TipoUnidad  *string             `gorm:"column:tipo_unidad"`

	// Naviera / embarque
	Naviera *string `gorm:"column:naviera;index"`
	Nave    *string `gorm:"column:nave"`
	POL     *string `gorm:"column:pol"`
	ETD     *string `gorm:"column:etd;type:date"`
	POD     *string `gorm:"column:pod"`
	ETA     *string `gorm:"column:eta;type:date"`
	TT      *int    `gorm:"column:tt"`
	Booking *string `gorm:"column:booking;index"`

	// Documentación
	AGA                *string `gorm:"column:aga"`
	DUS                *string `gorm:"column:dus"`
	SPS                *string `gorm:"column:sps"`
	NumeroGuiaDespacho *string `gorm:"column:numero_guia_despacho"`

	// Planta / stacking
	PlantaPresentacion *string `gorm:"column:planta_presentacion"`
	Citacion           *string `gorm:"column:citacion;type:timestamptz"`
	LlegadaPlanta      *string `gorm:"column:llegada_planta;type:timestamptz"`
	SalidaPlanta       *string `gorm:"column:salida_planta;type:timestamptz"`
	InicioStacking     *string `gorm:"column:inicio_stacking;type:timestamptz"`
	FinStacking        *string `gorm:"column:fin_stacking;type:timestamptz"`
	IngresoStacking    *string `gorm:"column:ingreso_stacking;type:timestamptz"`
	CorteDocumental    *string `gorm:"column:corte_documental;type:timestamptz"`
	InfLate            *string `gorm:"column:inf_late;type:timestamptz"`
	LateInicio         *string `gorm:"column:late_inicio;type:timestamptz"`
	LateFin            *string `gorm:"column:late_fin;type:timestamptz"`
	XLateInicio        *string `gorm:"column:xlate_inicio;type:timestamptz"`
	XLateFin           *string `gorm:"column:xlate_fin;type:timestamptz"`

	// Depósito / retiro
	Deposito           *string `gorm:"column:deposito"`
	AgendamientoRetiro *string `gorm:"column:agendamiento_retiro;type:timestamptz"`
	DevolucionUnidad   *string `gorm:"column:devolucion_unidad;type:timestamptz"`

	// Transporte
	Transporte      *string             `gorm:"column:transporte"`
	Chofer          *string             `gorm:"column:chofer"`
	RutChofer       *string             `gorm:"column:rut_chofer"`
	TelefonoChofer  *string             `gorm:"column:telefono_chofer"`
	PatenteCamion   *string             `gorm:"column:patente_camion"`
	PatenteRemolque *string             `gorm:"column:patente_remolque"`
	Contenedor      *string             `gorm:"column:contenedor"`
	Sello           *string             `gorm:"column:sello"`
	Tara            decimal.NullDecimal `gorm:"column:tara;type:numeric(12,2)"`

	// Costos transporte
	Almacenamiento    decimal.NullDecimal `gorm:"column:almacenamiento;type:numeric(12,2)"`
	Tramo             *string             `gorm:"column:tramo"`
	ValorTramo        decimal.NullDecimal `gorm:"column:valor_tramo;type:numeric(14,2)"`
	Porteo            *bool               `gorm:"column:porteo"`
	ValorPorteo       decimal.NullDecimal `gorm:"column:valor_porteo;type:numeric(14,2)"`
	FalsoFlete        *bool               `gorm:"column:falso_flete"`
	ValorFalsoFlete   decimal.NullDecimal `gorm:"column:valor_falso_flete;type:numeric(14,2)"`
	FacturaTransporte *string             `gorm:"column:factura_transporte"`

	// Facturación
	MontoFacturado    decimal.NullDecimal `gorm:"column:monto_facturado;type:numeric(14,2)"`
	NumeroFacturaASLI *string             `gorm:"column:numero_factura_asli"`
	ConceptoFacturado *string             `gorm:"column:concepto_facturado"`
	Moneda            *string             `gorm:"column:moneda"`
	TipoCambio        decimal.NullDecimal `gorm:"column:tipo_cambio;type:numeric(12,4)"`
	MargenEstimado    decimal.NullDecimal `gorm:"column:margen_estimado;type:numeric(14,2)"`
	MargenReal        decimal.NullDecimal `gorm:"column:margen_real;type:numeric(14,2)"`

	// Fechas administrativas
	FechaConfirmacionBooking *string `gorm:"column:fecha_confirmacion_booking;type:date"`
	FechaEnvioDocumentacion  *string `gorm:"column:fecha_envio_documentacion;type:date"`
	FechaEntregaBL           *string `gorm:"column:fecha_entrega_bl;type:date"`
	FechaEntregaFactura      *string `gorm:"column:fecha_entrega_factura;type:date"`
	FechaPagoCliente         *string `gorm:"column:fecha_pago_cliente;type:date"`
	FechaPagoTransporte      *string `gorm:"column:fecha_pago_transporte;type:date"`
	FechaCierre              *string `gorm:"column:fecha_cierre;type:date"`

	// Otros
	Prioridad        *string `gorm:"column:prioridad"`
	OperacionCritica *bool   `gorm:"column:operacion_critica"`
	OrigenRegistro   *string `gorm:"column:origen_registro"`
	Observaciones    *string `gorm:"column:observaciones;type:text"`

	CreatedAt time.Time  `gorm:"column:created_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index"`
}

func (Operacion) TableName() string { return "operaciones" }

// Ciclo reports the lifecycle state encoded by deleted_at.
func (o Operacion) Ciclo() Lifecycle {
	if o.DeletedAt == nil {
		return Activa
	}
	return EnPapelera
}
