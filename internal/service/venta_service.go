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

type VentaService interface {
	RegistrarVenta(ctx context.Context, tenantID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, tenantID, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, tenantID uuid.UUID, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo    repository.VentaRepository
	precios PrecioService
	reparto RepartoService
	stock   StockService
	caja    CajaService
	ledger  ComisionService
	jobs    Encolador
}

func NewVentaService(
	repo repository.VentaRepository,
	precios PrecioService,
	reparto RepartoService,
	stock StockService,
	caja CajaService,
	ledger ComisionService,
	jobs Encolador,
) VentaService {
	return &ventaService{
		repo:    repo,
		precios: precios,
		reparto: reparto,
		stock:   stock,
		caja:    caja,
		ledger:  ledger,
		jobs:    jobs,
	}
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// The sale record is the source of truth: it is computed with authoritative
// prices and persisted first. Everything after the insert (stock, caja,
// comisiones) is a best-effort side effect wrapped in its own error boundary —
// a failure is logged for manual reconciliation and never rolls the sale back.

func (s *ventaService) RegistrarVenta(ctx context.Context, tenantID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if len(req.Items) == 0 {
		return nil, apierror.Invalid("la venta debe incluir al menos un item")
	}

	var barberoID *uuid.UUID
	if req.BarberoID != nil {
		id, err := uuid.Parse(*req.BarberoID)
		if err != nil {
			return nil, apierror.Invalid("barbero_id inválido")
		}
		barberoID = &id
	}

	// 1. Resolve authoritative prices and build line items (pre-flight; any
	// validation or lookup failure aborts the whole operation here).
	var lineas []lineaResuelta
	var subtotal int64
	for _, item := range req.Items {
		itemID, err := uuid.Parse(item.ItemID)
		if err != nil {
			return nil, apierror.Invalid("item_id inválido: " + item.ItemID)
		}
		resuelto, err := s.precios.Resolver(ctx, tenantID, itemID, item.Tipo, item.PrecioUnitario)
		if err != nil {
			return nil, err
		}
		lineaSubtotal := resuelto.Precio * int64(item.Cantidad)
		subtotal += lineaSubtotal
		lineas = append(lineas, lineaResuelta{
			tipo:     item.Tipo,
			itemID:   itemID,
			nombre:   resuelto.Nombre,
			precio:   resuelto.Precio,
			cantidad: item.Cantidad,
			subtotal: lineaSubtotal,
		})
	}

	// 2. Clamp the discount to [0, subtotal] — never fail on excess.
	descuento := req.Descuento
	if descuento < 0 {
		descuento = 0
	}
	if descuento > subtotal {
		descuento = subtotal
	}

	// 3. Tax on the discounted subtotal (the tenant rate may be zero).
	tasa, err := s.reparto.TasaImpuesto(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	impuesto := aplicarPorcentaje(subtotal-descuento, tasa)
	total := subtotal - descuento + impuesto

	// 4. Persist the immutable sale record with the computed figures.
	venta := model.Venta{
		TenantID:   tenantID,
		BarberoID:  barberoID,
		Subtotal:   subtotal,
		Descuento:  descuento,
		Impuesto:   impuesto,
		Total:      total,
		MetodoPago: req.MetodoPago,
	}
	for _, l := range lineas {
		venta.Items = append(venta.Items, model.VentaItem{
			Tipo:           l.tipo,
			ItemID:         l.itemID,
			Nombre:         l.nombre,
			PrecioUnitario: l.precio,
			Cantidad:       l.cantidad,
			Subtotal:       l.subtotal,
		})
	}
	if err := s.repo.Create(ctx, &venta); err != nil {
		return nil, err
	}

	// 5. Post-commit effects, each independently best-effort.
	s.ejecutarEfectos(ctx, tenantID, &venta, lineas, barberoID)

	return ventaToResponse(&venta), nil
}

// lineaResuelta is a sale line after authoritative price resolution.
type lineaResuelta struct {
	tipo     string
	itemID   uuid.UUID
	nombre   string
	precio   int64
	cantidad int
	subtotal int64
}

// ejecutarEfectos runs the post-commit effect list. Each effect logs and
// continues on failure; none can fail the sale.
func (s *ventaService) ejecutarEfectos(ctx context.Context, tenantID uuid.UUID, venta *model.Venta, lineas []lineaResuelta, barberoID *uuid.UUID) {
	type efecto struct {
		nombre string
		fn     func() error
	}
	var efectos []efecto

	// Stock salida per product line.
	for _, l := range lineas {
		if l.tipo != model.ItemProducto {
			continue
		}
		l := l
		efectos = append(efectos, efecto{
			nombre: "stock_salida:" + l.itemID.String(),
			fn: func() error {
				return s.stock.RegistrarSalida(ctx, tenantID, l.itemID, l.cantidad,
					fmt.Sprintf("Venta %s", venta.ID), venta.ID)
			},
		})
	}

	// Caja ingress for cash sales — skipped silently when no caja is open.
	if venta.MetodoPago == model.MetodoEfectivo {
		efectos = append(efectos, efecto{
			nombre: "caja_ingreso",
			fn: func() error {
				err := s.caja.IngresoOperacion(ctx, tenantID, venta.Total,
					fmt.Sprintf("Venta %s", venta.ID), &venta.ID, nil)
				if err == repository.ErrSinCajaAbierta {
					log.Debug().
						Str("tenant_id", tenantID.String()).
						Str("venta_id", venta.ID.String()).
						Msg("venta en efectivo sin caja abierta; ingreso omitido")
					return nil
				}
				return err
			},
		})
	}

	// Commission entries for each service line when a barber is assigned.
	if barberoID != nil {
		for _, l := range lineas {
			if l.tipo != model.ItemServicio {
				continue
			}
			l := l
			efectos = append(efectos, efecto{
				nombre: "comision:" + l.itemID.String(),
				fn: func() error {
					return s.ledger.CrearDesdeVenta(ctx, tenantID, *barberoID, l.itemID, venta.ID, l.subtotal)
				},
			})
		}
	}

	// Sale receipt notification, queued fire-and-forget like the payment one.
	if s.jobs != nil {
		efectos = append(efectos, efecto{
			nombre: "notificacion",
			fn: func() error {
				return s.jobs.EncolarNotificacion(ctx, "venta_registrada", map[string]any{
					"tenant_id":   tenantID.String(),
					"venta_id":    venta.ID.String(),
					"total":       venta.Total,
					"metodo_pago": venta.MetodoPago,
				})
			},
		})
	}

	for _, e := range efectos {
		if err := e.fn(); err != nil {
			log.Error().
				Str("tenant_id", tenantID.String()).
				Str("venta_id", venta.ID.String()).
				Str("efecto", e.nombre).
				Err(err).
				Msg("efecto post-venta falló; requiere conciliación manual")
		}
	}
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerVenta(ctx context.Context, tenantID, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, apierror.NotFound("venta no encontrada")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListVentas(ctx context.Context, tenantID uuid.UUID, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, dto.ItemVentaResponse{
			Tipo:           item.Tipo,
			Nombre:         item.Nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	var barberoID *string
	if v.BarberoID != nil {
		s := v.BarberoID.String()
		barberoID = &s
	}
	return &dto.VentaResponse{
		ID:         v.ID.String(),
		BarberoID:  barberoID,
		Items:      items,
		Subtotal:   v.Subtotal,
		Descuento:  v.Descuento,
		Impuesto:   v.Impuesto,
		Total:      v.Total,
		MetodoPago: v.MetodoPago,
		CreatedAt:  v.CreatedAt.Format(time.RFC3339),
	}
}
