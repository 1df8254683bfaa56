package service

import (
	"context"
	"errors"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/model"
	"barberpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reparto is a resolved revenue split. BarberoPct + NegocioPct == 100.
type Reparto struct {
	BarberoPct int
	NegocioPct int
	// Fuente: override_barbero | override_servicio | tenant | sistema
	Fuente string
}

// RepartoService resolves commission splits and tax rates per tenant, and
// manages the tenant revenue configuration.
//
// Split resolution order (first match wins):
//  1. active per-barber override for the barber
//  2. active per-service override for the service
//  3. tenant default split
//  4. system default 50/50 (config row is lazily created, so in practice the
//     tenant default always exists after first access)
type RepartoService interface {
	ResolverReparto(ctx context.Context, tenantID, barberoID, servicioID uuid.UUID) (*Reparto, error)
	// TasaImpuesto returns the tenant's integer tax percentage, 0 when disabled.
	TasaImpuesto(ctx context.Context, tenantID uuid.UUID) (int, error)

	Obtener(ctx context.Context, tenantID uuid.UUID) (*dto.ConfigRepartoResponse, error)
	Actualizar(ctx context.Context, tenantID uuid.UUID, req dto.ActualizarRepartoRequest) error
	CrearOverride(ctx context.Context, tenantID uuid.UUID, req dto.CrearOverrideRequest) (*dto.OverrideResponse, error)
	DesactivarOverride(ctx context.Context, tenantID, overrideID uuid.UUID) error
}

type repartoService struct {
	repo repository.ConfigRepartoRepository
}

func NewRepartoService(repo repository.ConfigRepartoRepository) RepartoService {
	return &repartoService{repo: repo}
}

func (s *repartoService) ResolverReparto(ctx context.Context, tenantID, barberoID, servicioID uuid.UUID) (*Reparto, error) {
	cfg, err := s.repo.GetOrCreate(ctx, tenantID)
	if err != nil {
		// Without a config row we still honor the system default — resolution
		// must never block a sale.
		return &Reparto{BarberoPct: model.DefaultBarberoPct, NegocioPct: model.DefaultNegocioPct, Fuente: model.FuenteSistema}, nil
	}

	// Per-barber override takes precedence over per-service when both match.
	if o := buscarOverride(cfg.Overrides, model.OverrideBarbero, barberoID); o != nil {
		return &Reparto{BarberoPct: o.BarberoPct, NegocioPct: o.NegocioPct, Fuente: model.FuenteOverrideBarbero}, nil
	}
	if o := buscarOverride(cfg.Overrides, model.OverrideServicio, servicioID); o != nil {
		return &Reparto{BarberoPct: o.BarberoPct, NegocioPct: o.NegocioPct, Fuente: model.FuenteOverrideServicio}, nil
	}
	return &Reparto{BarberoPct: cfg.BarberoPct, NegocioPct: cfg.NegocioPct, Fuente: model.FuenteTenant}, nil
}

func buscarOverride(overrides []model.RepartoOverride, tipo string, refID uuid.UUID) *model.RepartoOverride {
	for i := range overrides {
		o := &overrides[i]
		if o.Activo && o.Tipo == tipo && o.RefID == refID {
			return o
		}
	}
	return nil
}

func (s *repartoService) TasaImpuesto(ctx context.Context, tenantID uuid.UUID) (int, error) {
	cfg, err := s.repo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	if !cfg.ImpuestoHabilitado {
		return 0, nil
	}
	return cfg.TasaImpuesto, nil
}

// ─── Configuración ───────────────────────────────────────────────────────────

func (s *repartoService) Obtener(ctx context.Context, tenantID uuid.UUID) (*dto.ConfigRepartoResponse, error) {
	cfg, err := s.repo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return configToResponse(cfg), nil
}

func (s *repartoService) Actualizar(ctx context.Context, tenantID uuid.UUID, req dto.ActualizarRepartoRequest) error {
	if req.BarberoPct+req.NegocioPct != 100 {
		return apierror.Invalid("los porcentajes del reparto deben sumar 100")
	}
	cfg, err := s.repo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return err
	}
	cfg.BarberoPct = req.BarberoPct
	cfg.NegocioPct = req.NegocioPct
	cfg.ImpuestoHabilitado = req.ImpuestoHabilitado
	cfg.TasaImpuesto = req.TasaImpuesto
	return s.repo.Update(ctx, cfg)
}

func (s *repartoService) CrearOverride(ctx context.Context, tenantID uuid.UUID, req dto.CrearOverrideRequest) (*dto.OverrideResponse, error) {
	if req.BarberoPct+req.NegocioPct != 100 {
		return nil, apierror.Invalid("los porcentajes del override deben sumar 100")
	}
	refID, err := uuid.Parse(req.RefID)
	if err != nil {
		return nil, apierror.Invalid("ref_id inválido")
	}
	cfg, err := s.repo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	o := &model.RepartoOverride{
		ConfigID:   cfg.ID,
		Tipo:       req.Tipo,
		RefID:      refID,
		BarberoPct: req.BarberoPct,
		NegocioPct: req.NegocioPct,
		Activo:     true,
		Notas:      req.Notas,
	}
	if err := s.repo.CreateOverride(ctx, o); err != nil {
		return nil, err
	}
	resp := overrideToResponse(o)
	return &resp, nil
}

func (s *repartoService) DesactivarOverride(ctx context.Context, tenantID, overrideID uuid.UUID) error {
	cfg, err := s.repo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return err
	}
	if err := s.repo.DesactivarOverride(ctx, cfg.ID, overrideID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("override no encontrado")
		}
		return err
	}
	return nil
}

func configToResponse(cfg *model.ConfigReparto) *dto.ConfigRepartoResponse {
	overrides := make([]dto.OverrideResponse, 0, len(cfg.Overrides))
	for i := range cfg.Overrides {
		overrides = append(overrides, overrideToResponse(&cfg.Overrides[i]))
	}
	return &dto.ConfigRepartoResponse{
		BarberoPct:         cfg.BarberoPct,
		NegocioPct:         cfg.NegocioPct,
		ImpuestoHabilitado: cfg.ImpuestoHabilitado,
		TasaImpuesto:       cfg.TasaImpuesto,
		Overrides:          overrides,
	}
}

func overrideToResponse(o *model.RepartoOverride) dto.OverrideResponse {
	return dto.OverrideResponse{
		ID:         o.ID.String(),
		Tipo:       o.Tipo,
		RefID:      o.RefID.String(),
		BarberoPct: o.BarberoPct,
		NegocioPct: o.NegocioPct,
		Activo:     o.Activo,
		Notas:      o.Notas,
	}
}

// ─── Aritmética de montos ────────────────────────────────────────────────────
// Amounts are int64 minor units; decimal is used only for percentage math so
// rounding is explicit. Banker's rounding keeps repeated splits unbiased.

// aplicarPorcentaje returns round(monto × pct / 100) with half-to-even rounding.
func aplicarPorcentaje(monto int64, pct int) int64 {
	return decimal.NewFromInt(monto).
		Mul(decimal.NewFromInt(int64(pct))).
		Div(decimal.NewFromInt(100)).
		RoundBank(0).
		IntPart()
}

// aplicarBasisPoints returns round(monto × bps / 10000) with half-to-even rounding.
func aplicarBasisPoints(monto int64, bps int) int64 {
	return decimal.NewFromInt(monto).
		Mul(decimal.NewFromInt(int64(bps))).
		Div(decimal.NewFromInt(10000)).
		RoundBank(0).
		IntPart()
}

// dividirMonto splits gross by the reparto: the barber share is rounded, the
// business share is the exact remainder, so the two always sum to bruto.
func dividirMonto(bruto int64, r *Reparto) (barbero, negocio int64) {
	barbero = aplicarPorcentaje(bruto, r.BarberoPct)
	negocio = bruto - barbero
	return barbero, negocio
}
