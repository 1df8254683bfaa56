package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/model"
	"barberpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// descuadreMenorMax is the |descuadre| ceiling, in minor units, for the
// "menor" classification at close.
const descuadreMenorMax = 1000

type CajaService interface {
	Abrir(ctx context.Context, tenantID uuid.UUID, req dto.AbrirCajaRequest) (*dto.CajaResponse, error)
	RegistrarIngreso(ctx context.Context, tenantID uuid.UUID, req dto.IngresoCajaRequest) error
	RegistrarEgreso(ctx context.Context, tenantID uuid.UUID, req dto.EgresoCajaRequest) error
	// IngresoOperacion appends a sale/payment-linked ingress to the open caja.
	// Returns repository.ErrSinCajaAbierta when no caja is open — callers
	// treat that as a skip, not a failure.
	IngresoOperacion(ctx context.Context, tenantID uuid.UUID, monto int64, concepto string, ventaID, pagoID *uuid.UUID) error
	Cerrar(ctx context.Context, tenantID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CajaResponse, error)
	Activa(ctx context.Context, tenantID uuid.UUID) (*dto.CajaResponse, error)
	Reporte(ctx context.Context, tenantID, cajaID uuid.UUID) (*dto.CajaResponse, error)
	Historial(ctx context.Context, tenantID uuid.UUID, page, limit int) (*dto.CajaListResponse, error)
}

type cajaService struct {
	repo repository.CajaRepository
}

func NewCajaService(repo repository.CajaRepository) CajaService {
	return &cajaService{repo: repo}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, tenantID uuid.UUID, req dto.AbrirCajaRequest) (*dto.CajaResponse, error) {
	// Pre-insert guard for a friendly message; the partial unique index on
	// (tenant_id) WHERE estado='abierta' is the real invariant under races.
	if _, err := s.repo.FindAbierta(ctx, tenantID); err == nil {
		return nil, apierror.Conflict("ya existe una caja abierta para este negocio")
	}

	turno := req.Turno
	if turno == "" {
		turno = "unico"
	}
	caja := &model.Caja{
		TenantID:      tenantID,
		Fecha:         time.Now().Format("2006-01-02"),
		Turno:         turno,
		Responsable:   req.Responsable,
		MontoApertura: req.MontoApertura,
		Estado:        model.CajaAbierta,
		OpenedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, caja); err != nil {
		if esViolacionCajaUnica(err) {
			// Unique index violation from a concurrent open.
			return nil, apierror.Conflict("ya existe una caja abierta para este negocio")
		}
		return nil, err
	}
	return cajaToResponse(caja, false), nil
}

// esViolacionCajaUnica detects the partial unique index on open cajas
// (uq_cajas_tenant_abierta, SQLSTATE 23505) rejecting a concurrent open.
func esViolacionCajaUnica(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}

// ── Movimientos ───────────────────────────────────────────────────────────────
// Ingresos y egresos son append-only; nunca se modifican ni se borran.

func (s *cajaService) RegistrarIngreso(ctx context.Context, tenantID uuid.UUID, req dto.IngresoCajaRequest) error {
	caja, err := s.abiertaOInvalidState(ctx, tenantID)
	if err != nil {
		return err
	}
	return s.appendMovimiento(ctx, &model.MovimientoCaja{
		CajaID:    caja.ID,
		Tipo:      model.MovIngreso,
		Monto:     req.Monto,
		Concepto:  req.Concepto,
		Categoria: categoriaODefault(req.Categoria),
	})
}

func (s *cajaService) RegistrarEgreso(ctx context.Context, tenantID uuid.UUID, req dto.EgresoCajaRequest) error {
	caja, err := s.abiertaOInvalidState(ctx, tenantID)
	if err != nil {
		return err
	}
	autorizador := req.Autorizador
	return s.appendMovimiento(ctx, &model.MovimientoCaja{
		CajaID:      caja.ID,
		Tipo:        model.MovEgreso,
		Monto:       req.Monto,
		Concepto:    req.Concepto,
		Categoria:   categoriaODefault(req.Categoria),
		Autorizador: &autorizador,
	})
}

func (s *cajaService) IngresoOperacion(ctx context.Context, tenantID uuid.UUID, monto int64, concepto string, ventaID, pagoID *uuid.UUID) error {
	caja, err := s.repo.FindAbierta(ctx, tenantID)
	if err != nil {
		return err // ErrSinCajaAbierta passes through for the caller to skip
	}
	err = s.repo.CreateMovimiento(ctx, &model.MovimientoCaja{
		CajaID:    caja.ID,
		Tipo:      model.MovIngreso,
		Monto:     monto,
		Concepto:  concepto,
		Categoria: "operacion",
		VentaID:   ventaID,
		PagoID:    pagoID,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// The caja closed between the lookup and the insert; for the caller
		// this is the same as having no caja open.
		return repository.ErrSinCajaAbierta
	}
	return err
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// The expected amount is always recomputed from the full movement list; it is
// never read from a running counter that could drift under partial writes.

func (s *cajaService) Cerrar(ctx context.Context, tenantID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CajaResponse, error) {
	caja, err := s.repo.FindAbierta(ctx, tenantID)
	if err != nil {
		return nil, apierror.InvalidState("no hay caja abierta para cerrar")
	}

	esperado := montoEsperado(caja)
	descuadre := req.MontoContado - esperado
	clasificacion := clasificarDescuadre(descuadre)

	now := time.Now()
	caja.Estado = model.CajaCerrada
	caja.MontoContado = &req.MontoContado
	caja.MontoEsperado = &esperado
	caja.Descuadre = &descuadre
	caja.Clasificacion = &clasificacion
	caja.Observaciones = req.Observaciones
	caja.ClosedAt = &now

	if len(req.Denominaciones) > 0 {
		if b, err := json.Marshal(req.Denominaciones); err == nil {
			s := string(b)
			caja.Denominaciones = &s
		}
	}

	if err := s.repo.Cerrar(ctx, caja); err != nil {
		return nil, apierror.InvalidState("la caja ya fue cerrada")
	}
	return cajaToResponse(caja, true), nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *cajaService) Activa(ctx context.Context, tenantID uuid.UUID) (*dto.CajaResponse, error) {
	caja, err := s.repo.FindAbierta(ctx, tenantID)
	if err != nil {
		return nil, apierror.NotFound("sin caja abierta")
	}
	return cajaToResponse(caja, true), nil
}

func (s *cajaService) Reporte(ctx context.Context, tenantID, cajaID uuid.UUID) (*dto.CajaResponse, error) {
	caja, err := s.repo.FindByID(ctx, tenantID, cajaID)
	if err != nil {
		return nil, apierror.NotFound("caja no encontrada")
	}
	return cajaToResponse(caja, true), nil
}

func (s *cajaService) Historial(ctx context.Context, tenantID uuid.UUID, page, limit int) (*dto.CajaListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	cajas, total, err := s.repo.ListCerradas(ctx, tenantID, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CajaResponse, 0, len(cajas))
	for i := range cajas {
		data = append(data, *cajaToResponse(&cajas[i], false))
	}
	return &dto.CajaListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *cajaService) abiertaOInvalidState(ctx context.Context, tenantID uuid.UUID) (*model.Caja, error) {
	caja, err := s.repo.FindAbierta(ctx, tenantID)
	if err != nil {
		return nil, apierror.InvalidState("no hay caja abierta")
	}
	return caja, nil
}

// appendMovimiento writes through the estado-guarded insert; losing the race
// against a concurrent close surfaces as InvalidState, never as a write.
func (s *cajaService) appendMovimiento(ctx context.Context, m *model.MovimientoCaja) error {
	if err := s.repo.CreateMovimiento(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.InvalidState("la caja ya fue cerrada")
		}
		return err
	}
	return nil
}

func categoriaODefault(c string) string {
	if c == "" {
		return "general"
	}
	return c
}

// montoEsperado = apertura + Σingresos − Σegresos over the full entry list.
func montoEsperado(c *model.Caja) int64 {
	esperado := c.MontoApertura
	for _, m := range c.Movimientos {
		switch m.Tipo {
		case model.MovIngreso:
			esperado += m.Monto
		case model.MovEgreso:
			esperado -= m.Monto
		}
	}
	return esperado
}

// clasificarDescuadre: ninguno (0), menor (|d| ≤ 1000), alto (resto).
func clasificarDescuadre(d int64) string {
	abs := d
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs == 0:
		return model.DescuadreNinguno
	case abs <= descuadreMenorMax:
		return model.DescuadreMenor
	default:
		return model.DescuadreAlto
	}
}

func cajaToResponse(c *model.Caja, conMovimientos bool) *dto.CajaResponse {
	resp := &dto.CajaResponse{
		ID:            c.ID.String(),
		Fecha:         c.Fecha,
		Turno:         c.Turno,
		Responsable:   c.Responsable,
		MontoApertura: c.MontoApertura,
		Estado:        c.Estado,
		MontoEsperado: montoEsperado(c),
		MontoContado:  c.MontoContado,
		Descuadre:     c.Descuadre,
		Clasificacion: c.Clasificacion,
		Observaciones: c.Observaciones,
		OpenedAt:      c.OpenedAt.Format(time.RFC3339),
	}
	if c.Estado == model.CajaCerrada && c.MontoEsperado != nil {
		// A closed caja reports the expected amount frozen at close time.
		resp.MontoEsperado = *c.MontoEsperado
	}
	if c.ClosedAt != nil {
		t := c.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	if conMovimientos {
		for _, m := range c.Movimientos {
			resp.Movimientos = append(resp.Movimientos, dto.MovimientoCajaResponse{
				ID:          m.ID.String(),
				Tipo:        m.Tipo,
				Monto:       m.Monto,
				Concepto:    m.Concepto,
				Categoria:   m.Categoria,
				Autorizador: m.Autorizador,
				CreatedAt:   m.CreatedAt.Format(time.RFC3339),
			})
		}
	}
	return resp
}
