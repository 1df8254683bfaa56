package service

import (
	"context"
	"time"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const fechaLayout = "2006-01-02"

// ReporteService is the read side. Every query aggregates over persisted
// history and never mutates it; the same period always yields the same report.
type ReporteService interface {
	ResumenPeriodo(ctx context.Context, tenantID uuid.UUID, filter dto.PeriodoFilter) (*dto.ResumenPeriodoResponse, error)
	RankingBarberos(ctx context.Context, tenantID uuid.UUID, filter dto.PeriodoFilter, limit int) ([]dto.RankingBarberoResponse, error)
	DesgloseMedios(ctx context.Context, tenantID uuid.UUID, filter dto.PeriodoFilter) ([]dto.MedioPagoDesgloseResponse, error)
	SerieDiaria(ctx context.Context, tenantID uuid.UUID, filter dto.PeriodoFilter) ([]dto.SerieDiariaPunto, error)
}

type reporteService struct {
	repo repository.ReporteRepository
}

func NewReporteService(repo repository.ReporteRepository) ReporteService {
	return &reporteService{repo: repo}
}

func (s *reporteService) ResumenPeriodo(ctx context.Context, tenantID uuid.UUID, filter dto.PeriodoFilter) (*dto.ResumenPeriodoResponse, error) {
	desde, hasta, err := resolverPeriodo(filter)
	if err != nil {
		return nil, err
	}
	actual, err := s.repo.Totales(ctx, tenantID, desde.Format(fechaLayout), hasta.Format(fechaLayout))
	if err != nil {
		return nil, err
	}

	// The comparison window is the immediately preceding period of equal length.
	dias := int(hasta.Sub(desde).Hours()/24) + 1
	antHasta := desde.AddDate(0, 0, -1)
	antDesde := antHasta.AddDate(0, 0, -(dias - 1))
	anterior, err := s.repo.Totales(ctx, tenantID, antDesde.Format(fechaLayout), antHasta.Format(fechaLayout))
	if err != nil {
		return nil, err
	}

	return &dto.ResumenPeriodoResponse{
		Desde:          desde.Format(fechaLayout),
		Hasta:          hasta.Format(fechaLayout),
		TotalVentas:    actual.TotalVentas,
		TotalPagos:     actual.TotalPagos,
		TotalImpuestos: actual.TotalImpuestos,
		Operaciones:    actual.Operaciones,
		VariacionPct:   variacionPct(actual.TotalVentas+actual.TotalPagos, anterior.TotalVentas+anterior.TotalPagos),
	}, nil
}

func (s *reporteService) RankingBarberos(ctx context.Context, tenantID uuid.UUID, filter dto.PeriodoFilter, limit int) ([]dto.RankingBarberoResponse, error) {
	desde, hasta, err := resolverPeriodo(filter)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	rows, err := s.repo.RankingBarberos(ctx, tenantID, desde.Format(fechaLayout), hasta.Format(fechaLayout), limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RankingBarberoResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RankingBarberoResponse{
			BarberoID:  r.BarberoID.String(),
			Entradas:   r.Entradas,
			TotalBruto: r.TotalBruto,
			TotalNeto:  r.TotalNeto,
		})
	}
	return out, nil
}

func (s *reporteService) DesgloseMedios(ctx context.Context, tenantID uuid.UUID, filter dto.PeriodoFilter) ([]dto.MedioPagoDesgloseResponse, error) {
	desde, hasta, err := resolverPeriodo(filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.DesgloseMedios(ctx, tenantID, desde.Format(fechaLayout), hasta.Format(fechaLayout))
	if err != nil {
		return nil, err
	}
	var total int64
	for _, r := range rows {
		total += r.Total
	}
	out := make([]dto.MedioPagoDesgloseResponse, 0, len(rows))
	for _, r := range rows {
		pct := decimal.Zero
		if total > 0 {
			pct = decimal.NewFromInt(r.Total).
				Mul(decimal.NewFromInt(100)).
				Div(decimal.NewFromInt(total)).
				Round(2)
		}
		out = append(out, dto.MedioPagoDesgloseResponse{
			Metodo:     r.Metodo,
			Total:      r.Total,
			Porcentaje: pct,
		})
	}
	return out, nil
}

func (s *reporteService) SerieDiaria(ctx context.Context, tenantID uuid.UUID, filter dto.PeriodoFilter) ([]dto.SerieDiariaPunto, error) {
	desde, hasta, err := resolverPeriodo(filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.SerieDiaria(ctx, tenantID, desde.Format(fechaLayout), hasta.Format(fechaLayout))
	if err != nil {
		return nil, err
	}
	out := make([]dto.SerieDiariaPunto, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SerieDiariaPunto{Fecha: r.Fecha, Total: r.Total})
	}
	return out, nil
}

// resolverPeriodo parses the inclusive date range; both bounds empty defaults
// to the current calendar month.
func resolverPeriodo(filter dto.PeriodoFilter) (desde, hasta time.Time, err error) {
	now := time.Now()
	if filter.Desde == "" && filter.Hasta == "" {
		desde = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		hasta = desde.AddDate(0, 1, -1)
		return desde, hasta, nil
	}
	desde, err = time.Parse(fechaLayout, filter.Desde)
	if err != nil {
		return desde, hasta, apierror.Invalid("desde inválido, se espera YYYY-MM-DD")
	}
	hasta, err = time.Parse(fechaLayout, filter.Hasta)
	if err != nil {
		return desde, hasta, apierror.Invalid("hasta inválido, se espera YYYY-MM-DD")
	}
	if hasta.Before(desde) {
		return desde, hasta, apierror.Invalid("el periodo es inválido: hasta es anterior a desde")
	}
	return desde, hasta, nil
}

// variacionPct follows the convention for empty baselines: growth from zero
// reports as 100, and two empty periods report as 0.
func variacionPct(actual, anterior int64) decimal.Decimal {
	switch {
	case anterior == 0 && actual == 0:
		return decimal.Zero
	case anterior == 0:
		return decimal.NewFromInt(100)
	default:
		return decimal.NewFromInt(actual - anterior).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(anterior)).
			Round(2)
	}
}
