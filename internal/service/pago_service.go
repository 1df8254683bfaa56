package service

import (
	"context"
	"fmt"
	"time"

	"barberpos/internal/apierror"
	"barberpos/internal/dto"
	"barberpos/internal/model"
	"barberpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TarifasProcesador maps a payment method to its processing fee in basis
// points. Methods missing from the table carry no fee.
type TarifasProcesador map[string]int

// DefaultTarifas: only credit cards carry a fee out of the box; debit,
// transfers and cash settle at face value.
func DefaultTarifas() TarifasProcesador {
	return TarifasProcesador{model.MetodoCredito: 250}
}

// Encolador pushes asynchronous jobs onto the worker queues. A nil Encolador
// disables notifications without touching the settlement path.
type Encolador interface {
	EncolarNotificacion(ctx context.Context, tipo string, payload map[string]any) error
}

type PagoService interface {
	RegistrarPago(ctx context.Context, tenantID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error)
	ObtenerPago(ctx context.Context, tenantID, id uuid.UUID) (*dto.PagoResponse, error)
}

type pagoService struct {
	repo     repository.PagoRepository
	reservas repository.ReservaRepository
	reparto  RepartoService
	caja     CajaService
	ledger   ComisionService
	tarifas  TarifasProcesador
	jobs     Encolador
}

func NewPagoService(
	repo repository.PagoRepository,
	reservas repository.ReservaRepository,
	reparto RepartoService,
	caja CajaService,
	ledger ComisionService,
	tarifas TarifasProcesador,
	jobs Encolador,
) PagoService {
	if tarifas == nil {
		tarifas = DefaultTarifas()
	}
	return &pagoService{
		repo:     repo,
		reservas: reservas,
		reparto:  reparto,
		caja:     caja,
		ledger:   ledger,
		tarifas:  tarifas,
		jobs:     jobs,
	}
}

// ── RegistrarPago ─────────────────────────────────────────────────────────────
// Settlement of a booking. Tenders must sum exactly to the booking price; fees
// come off each tender by method, and tax is computed on the net revenue after
// fees. As with sales, the payment record is persisted first and everything
// downstream is best-effort.

func (s *pagoService) RegistrarPago(ctx context.Context, tenantID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error) {
	reservaID, err := uuid.Parse(req.ReservaID)
	if err != nil {
		return nil, apierror.Invalid("reserva_id inválido")
	}
	reserva, err := s.reservas.FindByID(ctx, tenantID, reservaID)
	if err != nil {
		return nil, apierror.NotFound("reserva no encontrada")
	}
	if reserva.Pagada {
		return nil, apierror.Conflict("la reserva ya fue pagada")
	}

	var totalMedios int64
	for _, m := range req.Medios {
		totalMedios += m.Monto
	}
	if totalMedios != reserva.Precio {
		return nil, apierror.AmountMismatch(fmt.Sprintf(
			"los medios suman %d pero la reserva vale %d", totalMedios, reserva.Precio))
	}

	pago := model.Pago{
		TenantID:  tenantID,
		ReservaID: reserva.ID,
		BarberoID: reserva.BarberoID,
		Total:     reserva.Precio,
	}
	var efectivo int64
	for _, m := range req.Medios {
		fee := aplicarBasisPoints(m.Monto, s.tarifas[m.Metodo])
		neto := m.Monto - fee
		pago.TotalNeto += neto
		pago.Medios = append(pago.Medios, model.PagoMedio{
			Metodo:             m.Metodo,
			Monto:              m.Monto,
			ComisionProcesador: fee,
			MontoNeto:          neto,
		})
		if m.Metodo == model.MetodoEfectivo {
			efectivo += m.Monto
		}
	}

	tasa, err := s.reparto.TasaImpuesto(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	pago.Impuesto = aplicarPorcentaje(pago.TotalNeto, tasa)

	if err := s.repo.Create(ctx, &pago); err != nil {
		return nil, err
	}
	if err := s.reservas.MarcarPagada(ctx, tenantID, reserva.ID); err != nil {
		// Lost a race with a concurrent settlement of the same booking. The
		// payment row stays for reconciliation; the caller gets the conflict.
		log.Warn().
			Str("tenant_id", tenantID.String()).
			Str("reserva_id", reserva.ID.String()).
			Str("pago_id", pago.ID.String()).
			Msg("reserva pagada concurrentemente; pago duplicado requiere conciliación")
		return nil, apierror.Conflict("la reserva ya fue pagada")
	}

	s.ejecutarEfectos(ctx, tenantID, reserva, &pago, efectivo)

	return pagoToResponse(&pago), nil
}

func (s *pagoService) ejecutarEfectos(ctx context.Context, tenantID uuid.UUID, reserva *model.Reserva, pago *model.Pago, efectivo int64) {
	if efectivo > 0 {
		err := s.caja.IngresoOperacion(ctx, tenantID, efectivo,
			fmt.Sprintf("Pago reserva %s", reserva.ID), nil, &pago.ID)
		if err == repository.ErrSinCajaAbierta {
			log.Debug().
				Str("tenant_id", tenantID.String()).
				Str("pago_id", pago.ID.String()).
				Msg("pago en efectivo sin caja abierta; ingreso omitido")
		} else if err != nil {
			log.Error().Err(err).
				Str("tenant_id", tenantID.String()).
				Str("pago_id", pago.ID.String()).
				Msg("efecto post-pago falló; requiere conciliación manual")
		}
	}

	if err := s.ledger.CrearDesdeReserva(ctx, tenantID, reserva.BarberoID, reserva.ServicioID, reserva.ID, reserva.Precio); err != nil {
		log.Error().Err(err).
			Str("tenant_id", tenantID.String()).
			Str("pago_id", pago.ID.String()).
			Msg("comisión post-pago falló; requiere conciliación manual")
	}

	if s.jobs != nil {
		err := s.jobs.EncolarNotificacion(ctx, "pago_confirmado", map[string]any{
			"tenant_id":  tenantID.String(),
			"pago_id":    pago.ID.String(),
			"reserva_id": reserva.ID.String(),
			"total":      pago.Total,
		})
		if err != nil {
			log.Warn().Err(err).
				Str("pago_id", pago.ID.String()).
				Msg("no se pudo encolar la notificación de pago")
		}
	}
}

func (s *pagoService) ObtenerPago(ctx context.Context, tenantID, id uuid.UUID) (*dto.PagoResponse, error) {
	pago, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, apierror.NotFound("pago no encontrado")
	}
	return pagoToResponse(pago), nil
}

func pagoToResponse(p *model.Pago) *dto.PagoResponse {
	medios := make([]dto.MedioPagoResponse, 0, len(p.Medios))
	for _, m := range p.Medios {
		medios = append(medios, dto.MedioPagoResponse{
			Metodo:             m.Metodo,
			Monto:              m.Monto,
			ComisionProcesador: m.ComisionProcesador,
			MontoNeto:          m.MontoNeto,
		})
	}
	return &dto.PagoResponse{
		ID:        p.ID.String(),
		ReservaID: p.ReservaID.String(),
		BarberoID: p.BarberoID.String(),
		Total:     p.Total,
		TotalNeto: p.TotalNeto,
		Impuesto:  p.Impuesto,
		Medios:    medios,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
