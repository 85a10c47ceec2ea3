package service

import (
	"embarques/internal/dto"
	"embarques/internal/i18n"
	"embarques/internal/model"
	"embarques/internal/projection"
)

// mapResumen builds the selector entry of an operation.
func mapResumen(op model.Operacion, s i18n.Settings) dto.OperacionResumen {
	return dto.OperacionResumen{
		ID:                 op.ID,
		RefASLI:            projection.RefASLI(op.RefASLI, op.Correlativo),
		Cliente:            texto(op.Cliente),
		Naviera:            texto(op.Naviera),
		Nave:               texto(op.Nave),
		Booking:            texto(op.Booking),
		POD:                texto(op.POD),
		ETD:                projection.FormatFecha(texto(op.ETD), s.Zone),
		EstadoOperacion:    texto(op.EstadoOperacion),
		PlantaPresentacion: texto(op.PlantaPresentacion),
		NumeroFacturaASLI:  texto(op.NumeroFacturaASLI),
	}
}

func mapResumenes(ops []model.Operacion, s i18n.Settings) []dto.OperacionResumen {
	out := make([]dto.OperacionResumen, len(ops))
	for i, op := range ops {
		out[i] = mapResumen(op, s)
	}
	return out
}

func texto(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
