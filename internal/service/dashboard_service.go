package service

import (
	"context"
	"time"

	"embarques/internal/dto"
	"embarques/internal/i18n"
	"embarques/internal/repository"
)

const (
	ventanaZarpes = 30 * 24 * time.Hour
	limiteListas  = 10
)

type DashboardService interface {
	Resumen(ctx context.Context, s i18n.Settings) (dto.DashboardResponse, error)
}

type dashboardService struct {
	ops repository.OperacionRepository
	now func() time.Time
}

func NewDashboardService(ops repository.OperacionRepository) DashboardService {
	return &dashboardService{ops: ops, now: time.Now}
}

// Resumen gathers the home counters: active and trashed totals, breakdowns by
// status and carrier, departures of the next 30 days and the latest bookings.
func (s *dashboardService) Resumen(ctx context.Context, st i18n.Settings) (dto.DashboardResponse, error) {
	var out dto.DashboardResponse
	var err error

	if out.TotalActivas, err = s.ops.ContarActivas(ctx); err != nil {
		return out, err
	}
	if out.EnPapelera, err = s.ops.ContarPapelera(ctx); err != nil {
		return out, err
	}
	if out.PorEstado, err = s.ops.ContarPor(ctx, "estado_operacion"); err != nil {
		return out, err
	}
	if out.PorNaviera, err = s.ops.ContarPor(ctx, "naviera"); err != nil {
		return out, err
	}

	hoy := s.now().In(st.Zone)
	zarpes, err := s.ops.ProximosZarpes(ctx, hoy, hoy.Add(ventanaZarpes), limiteListas)
	if err != nil {
		return out, err
	}
	out.ProximosZarpes = mapResumenes(zarpes, st)

	recientes, err := s.ops.Recientes(ctx, limiteListas)
	if err != nil {
		return out, err
	}
	out.Recientes = mapResumenes(recientes, st)
	return out, nil
}
