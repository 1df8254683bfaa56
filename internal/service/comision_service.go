package service

import (
	"context"
	"strings"
	"time"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/model"
	"barberpos/internal/repository"

	"github.com/google/uuid"
)

// ComisionService is the commission ledger: creation at settlement time and
// the pendiente → aprobada → pagada lifecycle. Entries are never deleted;
// amounts change only through Ajustar, which appends to the audit history.
type ComisionService interface {
	// CrearDesdeVenta records the commission for one service line of a sale.
	CrearDesdeVenta(ctx context.Context, tenantID, barberoID, servicioID, ventaID uuid.UUID, montoBruto int64) error
	// CrearDesdeReserva records the commission for a settled booking.
	CrearDesdeReserva(ctx context.Context, tenantID, barberoID, servicioID, reservaID uuid.UUID, montoBruto int64) error

	Aprobar(ctx context.Context, tenantID, id uuid.UUID, actor string) (*dto.ComisionResponse, error)
	Pagar(ctx context.Context, tenantID, id uuid.UUID, req dto.PagarComisionRequest) (*dto.ComisionResponse, error)
	Ajustar(ctx context.Context, tenantID, id uuid.UUID, actor string, req dto.AjustarComisionRequest) (*dto.ComisionResponse, error)

	List(ctx context.Context, tenantID uuid.UUID, filter dto.ComisionFilter) (*dto.ComisionListResponse, error)
	Balance(ctx context.Context, tenantID, barberoID uuid.UUID, estado string) (*dto.BalanceComisionResponse, error)
}

type comisionService struct {
	repo    repository.ComisionRepository
	reparto RepartoService
}

func NewComisionService(repo repository.ComisionRepository, reparto RepartoService) ComisionService {
	return &comisionService{repo: repo, reparto: reparto}
}

// ── Creación ──────────────────────────────────────────────────────────────────

func (s *comisionService) CrearDesdeVenta(ctx context.Context, tenantID, barberoID, servicioID, ventaID uuid.UUID, montoBruto int64) error {
	c, err := s.nuevaComision(ctx, tenantID, barberoID, servicioID, montoBruto)
	if err != nil {
		return err
	}
	c.VentaID = &ventaID
	return s.repo.Create(ctx, c)
}

func (s *comisionService) CrearDesdeReserva(ctx context.Context, tenantID, barberoID, servicioID, reservaID uuid.UUID, montoBruto int64) error {
	c, err := s.nuevaComision(ctx, tenantID, barberoID, servicioID, montoBruto)
	if err != nil {
		return err
	}
	c.ReservaID = &reservaID
	return s.repo.Create(ctx, c)
}

func (s *comisionService) nuevaComision(ctx context.Context, tenantID, barberoID, servicioID uuid.UUID, montoBruto int64) (*model.Comision, error) {
	reparto, err := s.reparto.ResolverReparto(ctx, tenantID, barberoID, servicioID)
	if err != nil {
		return nil, err
	}
	montoBarbero, montoNegocio := dividirMonto(montoBruto, reparto)
	return &model.Comision{
		TenantID:     tenantID,
		BarberoID:    barberoID,
		ServicioID:   servicioID,
		MontoBruto:   montoBruto,
		MontoBarbero: montoBarbero,
		MontoNegocio: montoNegocio,
		BarberoPct:   reparto.BarberoPct,
		NegocioPct:   reparto.NegocioPct,
		Fuente:       reparto.Fuente,
		Estado:       model.ComisionPendiente,
	}, nil
}

// ── Transiciones ──────────────────────────────────────────────────────────────

func (s *comisionService) Aprobar(ctx context.Context, tenantID, id uuid.UUID, actor string) (*dto.ComisionResponse, error) {
	c, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, apierror.NotFound("comisión no encontrada")
	}
	if c.Estado != model.ComisionPendiente {
		return nil, apierror.InvalidState("solo una comisión pendiente puede aprobarse")
	}
	if actor == "" {
		return nil, apierror.Invalid("la aprobación requiere un actor")
	}

	now := time.Now()
	c.Estado = model.ComisionAprobada
	c.AprobadaPor = &actor
	c.AprobadaAt = &now
	if err := s.repo.Update(ctx, c, model.ComisionPendiente); err != nil {
		return nil, apierror.InvalidState("la comisión cambió de estado; reintente")
	}
	return comisionToResponse(c), nil
}

func (s *comisionService) Pagar(ctx context.Context, tenantID, id uuid.UUID, req dto.PagarComisionRequest) (*dto.ComisionResponse, error) {
	c, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, apierror.NotFound("comisión no encontrada")
	}
	if c.Estado == model.ComisionPagada {
		return nil, apierror.Conflict("la comisión ya está pagada")
	}
	if c.Estado != model.ComisionAprobada {
		return nil, apierror.InvalidState("solo una comisión aprobada puede pagarse")
	}

	now := time.Now()
	metodo := req.MetodoPago
	c.Estado = model.ComisionPagada
	c.MetodoPago = &metodo
	c.PagadaAt = &now
	c.NotasPago = req.Notas
	if err := s.repo.Update(ctx, c, model.ComisionAprobada); err != nil {
		return nil, apierror.InvalidState("la comisión cambió de estado; reintente")
	}
	return comisionToResponse(c), nil
}

func (s *comisionService) Ajustar(ctx context.Context, tenantID, id uuid.UUID, actor string, req dto.AjustarComisionRequest) (*dto.ComisionResponse, error) {
	if strings.TrimSpace(req.Motivo) == "" {
		return nil, apierror.Invalid("el ajuste requiere un motivo")
	}
	c, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, apierror.NotFound("comisión no encontrada")
	}
	// pagada is terminal: no adjustment may ever touch a paid entry.
	if c.Estado == model.ComisionPagada {
		return nil, apierror.InvalidState("una comisión pagada no admite ajustes")
	}

	ajuste := &model.ComisionAjuste{
		ComisionID:   c.ID,
		MontoBarbero: req.MontoBarbero,
		MontoNegocio: req.MontoNegocio,
		Motivo:       req.Motivo,
		Actor:        actor,
	}
	c.MontoBarbero = req.MontoBarbero
	c.MontoNegocio = req.MontoNegocio
	if err := s.repo.AppendAjuste(ctx, c, ajuste); err != nil {
		return nil, apierror.InvalidState("la comisión cambió de estado; reintente")
	}
	c.Ajustes = append(c.Ajustes, *ajuste)
	return comisionToResponse(c), nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *comisionService) List(ctx context.Context, tenantID uuid.UUID, filter dto.ComisionFilter) (*dto.ComisionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	comisiones, total, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ComisionResponse, 0, len(comisiones))
	for i := range comisiones {
		data = append(data, *comisionToResponse(&comisiones[i]))
	}
	return &dto.ComisionListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *comisionService) Balance(ctx context.Context, tenantID, barberoID uuid.UUID, estado string) (*dto.BalanceComisionResponse, error) {
	total, entradas, err := s.repo.Balance(ctx, tenantID, barberoID, estado)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceComisionResponse{
		BarberoID: barberoID.String(),
		Estado:    estado,
		Entradas:  entradas,
		Total:     total,
	}, nil
}

func comisionToResponse(c *model.Comision) *dto.ComisionResponse {
	resp := &dto.ComisionResponse{
		ID:           c.ID.String(),
		BarberoID:    c.BarberoID.String(),
		ServicioID:   c.ServicioID.String(),
		MontoBruto:   c.MontoBruto,
		MontoBarbero: c.MontoBarbero,
		MontoNegocio: c.MontoNegocio,
		BarberoPct:   c.BarberoPct,
		NegocioPct:   c.NegocioPct,
		Fuente:       c.Fuente,
		Estado:       c.Estado,
		AprobadaPor:  c.AprobadaPor,
		MetodoPago:   c.MetodoPago,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
	if c.VentaID != nil {
		s := c.VentaID.String()
		resp.VentaID = &s
	}
	if c.ReservaID != nil {
		s := c.ReservaID.String()
		resp.ReservaID = &s
	}
	if c.PagadaAt != nil {
		t := c.PagadaAt.Format(time.RFC3339)
		resp.PagadaAt = &t
	}
	for _, a := range c.Ajustes {
		resp.Ajustes = append(resp.Ajustes, dto.AjusteResponse{
			MontoBarbero: a.MontoBarbero,
			MontoNegocio: a.MontoNegocio,
			Motivo:       a.Motivo,
			Actor:        a.Actor,
			CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}
