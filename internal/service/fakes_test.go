package service

import (
	"context"
	"errors"

	"barberpos/internal/dto"
	"barberpos/internal/model"
	"barberpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes shared by the service tests. Each fake returns
// copies from its Find methods, like a real repository reading fresh rows, so
// guarded updates behave the same as against Postgres.

// ── Catalogo ──────────────────────────────────────────────────────────────────

type fakeCatalogoRepo struct {
	servicios  map[uuid.UUID]*model.Servicio
	productos  map[uuid.UUID]*model.Producto
	failAjuste bool
}

var _ repository.CatalogoRepository = (*fakeCatalogoRepo)(nil)

func newFakeCatalogoRepo() *fakeCatalogoRepo {
	return &fakeCatalogoRepo{
		servicios: make(map[uuid.UUID]*model.Servicio),
		productos: make(map[uuid.UUID]*model.Producto),
	}
}

func (f *fakeCatalogoRepo) FindServicio(_ context.Context, _, id uuid.UUID) (*model.Servicio, error) {
	s, ok := f.servicios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeCatalogoRepo) FindProducto(_ context.Context, _, id uuid.UUID) (*model.Producto, error) {
	p, ok := f.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCatalogoRepo) AjustarStock(_ context.Context, _, productoID uuid.UUID, delta int) (int, error) {
	if f.failAjuste {
		return 0, errors.New("ajuste de stock rechazado")
	}
	p, ok := f.productos[productoID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	antes := p.StockActual
	p.StockActual += delta
	return antes, nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

type fakeVentaRepo struct {
	ventas []*model.Venta
}

var _ repository.VentaRepository = (*fakeVentaRepo)(nil)

func (f *fakeVentaRepo) Create(_ context.Context, v *model.Venta) error {
	v.ID = uuid.New()
	f.ventas = append(f.ventas, v)
	return nil
}

func (f *fakeVentaRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*model.Venta, error) {
	for _, v := range f.ventas {
		if v.TenantID == tenantID && v.ID == id {
			cp := *v
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVentaRepo) List(_ context.Context, tenantID uuid.UUID, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range f.ventas {
		if v.TenantID == tenantID {
			out = append(out, *v)
		}
	}
	return out, int64(len(out)), nil
}

// ── Caja ──────────────────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	cajas []*model.Caja
	// errCreate, when set, makes Create fail with that error.
	errCreate error
	// trasFindAbierta runs against the stored row right after a successful
	// FindAbierta; tests use it to close the caja under the caller's feet.
	trasFindAbierta func(*model.Caja)
}

var _ repository.CajaRepository = (*fakeCajaRepo)(nil)

func (f *fakeCajaRepo) Create(_ context.Context, c *model.Caja) error {
	if f.errCreate != nil {
		return f.errCreate
	}
	for _, existente := range f.cajas {
		if existente.TenantID == c.TenantID && existente.Estado == model.CajaAbierta {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	c.ID = uuid.New()
	f.cajas = append(f.cajas, c)
	return nil
}

func (f *fakeCajaRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*model.Caja, error) {
	for _, c := range f.cajas {
		if c.TenantID == tenantID && c.ID == id {
			return copiaCaja(c), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCajaRepo) FindAbierta(_ context.Context, tenantID uuid.UUID) (*model.Caja, error) {
	for _, c := range f.cajas {
		if c.TenantID == tenantID && c.Estado == model.CajaAbierta {
			cp := copiaCaja(c)
			if f.trasFindAbierta != nil {
				f.trasFindAbierta(c)
			}
			return cp, nil
		}
	}
	return nil, repository.ErrSinCajaAbierta
}

func (f *fakeCajaRepo) Cerrar(_ context.Context, c *model.Caja) error {
	for _, stored := range f.cajas {
		if stored.ID == c.ID {
			if stored.Estado != model.CajaAbierta {
				return gorm.ErrRecordNotFound
			}
			stored.Estado = c.Estado
			stored.MontoContado = c.MontoContado
			stored.MontoEsperado = c.MontoEsperado
			stored.Descuadre = c.Descuadre
			stored.Clasificacion = c.Clasificacion
			stored.Denominaciones = c.Denominaciones
			stored.Observaciones = c.Observaciones
			stored.ClosedAt = c.ClosedAt
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCajaRepo) CreateMovimiento(_ context.Context, m *model.MovimientoCaja) error {
	for _, c := range f.cajas {
		// Como el insert real, el movimiento solo entra si la caja sigue abierta.
		if c.ID == m.CajaID && c.Estado == model.CajaAbierta {
			m.ID = uuid.New()
			c.Movimientos = append(c.Movimientos, *m)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCajaRepo) ListMovimientos(_ context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	for _, c := range f.cajas {
		if c.ID == cajaID {
			return append([]model.MovimientoCaja(nil), c.Movimientos...), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCajaRepo) ListCerradas(_ context.Context, tenantID uuid.UUID, _, _ int) ([]model.Caja, int64, error) {
	var out []model.Caja
	for _, c := range f.cajas {
		if c.TenantID == tenantID && c.Estado == model.CajaCerrada {
			out = append(out, *copiaCaja(c))
		}
	}
	return out, int64(len(out)), nil
}

func copiaCaja(c *model.Caja) *model.Caja {
	cp := *c
	cp.Movimientos = append([]model.MovimientoCaja(nil), c.Movimientos...)
	return &cp
}

// ── Comisiones ────────────────────────────────────────────────────────────────

type fakeComisionRepo struct {
	comisiones []*model.Comision
}

var _ repository.ComisionRepository = (*fakeComisionRepo)(nil)

func (f *fakeComisionRepo) Create(_ context.Context, c *model.Comision) error {
	c.ID = uuid.New()
	f.comisiones = append(f.comisiones, c)
	return nil
}

func (f *fakeComisionRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*model.Comision, error) {
	for _, c := range f.comisiones {
		if c.TenantID == tenantID && c.ID == id {
			cp := *c
			cp.Ajustes = append([]model.ComisionAjuste(nil), c.Ajustes...)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeComisionRepo) Update(_ context.Context, c *model.Comision, desdeEstado string) error {
	for _, stored := range f.comisiones {
		if stored.ID == c.ID {
			if stored.Estado != desdeEstado {
				return gorm.ErrRecordNotFound
			}
			stored.Estado = c.Estado
			stored.AprobadaPor = c.AprobadaPor
			stored.AprobadaAt = c.AprobadaAt
			stored.MetodoPago = c.MetodoPago
			stored.PagadaAt = c.PagadaAt
			stored.NotasPago = c.NotasPago
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeComisionRepo) AppendAjuste(_ context.Context, c *model.Comision, a *model.ComisionAjuste) error {
	for _, stored := range f.comisiones {
		if stored.ID == c.ID {
			if stored.Estado != model.ComisionPendiente && stored.Estado != model.ComisionAprobada {
				return gorm.ErrRecordNotFound
			}
			a.ID = uuid.New()
			stored.Ajustes = append(stored.Ajustes, *a)
			stored.MontoBarbero = c.MontoBarbero
			stored.MontoNegocio = c.MontoNegocio
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeComisionRepo) List(_ context.Context, tenantID uuid.UUID, filter dto.ComisionFilter) ([]model.Comision, int64, error) {
	var out []model.Comision
	for _, c := range f.comisiones {
		if c.TenantID != tenantID {
			continue
		}
		if filter.BarberoID != "" && c.BarberoID.String() != filter.BarberoID {
			continue
		}
		if filter.Estado != "" && c.Estado != filter.Estado {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeComisionRepo) Balance(_ context.Context, tenantID, barberoID uuid.UUID, estado string) (int64, int64, error) {
	var total, entradas int64
	for _, c := range f.comisiones {
		if c.TenantID != tenantID || c.BarberoID != barberoID {
			continue
		}
		if estado != "" && c.Estado != estado {
			continue
		}
		total += c.MontoBarbero
		entradas++
	}
	return total, entradas, nil
}

// ── Config de reparto ─────────────────────────────────────────────────────────

type fakeConfigRepartoRepo struct {
	configs map[uuid.UUID]*model.ConfigReparto
	// errDesactivar, when set, makes DesactivarOverride fail with that error.
	errDesactivar error
}

var _ repository.ConfigRepartoRepository = (*fakeConfigRepartoRepo)(nil)

func newFakeConfigRepartoRepo() *fakeConfigRepartoRepo {
	return &fakeConfigRepartoRepo{configs: make(map[uuid.UUID]*model.ConfigReparto)}
}

func (f *fakeConfigRepartoRepo) GetOrCreate(_ context.Context, tenantID uuid.UUID) (*model.ConfigReparto, error) {
	cfg, ok := f.configs[tenantID]
	if !ok {
		cfg = &model.ConfigReparto{
			ID:         uuid.New(),
			TenantID:   tenantID,
			BarberoPct: model.DefaultBarberoPct,
			NegocioPct: model.DefaultNegocioPct,
		}
		f.configs[tenantID] = cfg
	}
	cp := *cfg
	cp.Overrides = append([]model.RepartoOverride(nil), cfg.Overrides...)
	return &cp, nil
}

func (f *fakeConfigRepartoRepo) Update(_ context.Context, c *model.ConfigReparto) error {
	for _, cfg := range f.configs {
		if cfg.ID == c.ID {
			cfg.BarberoPct = c.BarberoPct
			cfg.NegocioPct = c.NegocioPct
			cfg.ImpuestoHabilitado = c.ImpuestoHabilitado
			cfg.TasaImpuesto = c.TasaImpuesto
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeConfigRepartoRepo) CreateOverride(_ context.Context, o *model.RepartoOverride) error {
	for _, cfg := range f.configs {
		if cfg.ID == o.ConfigID {
			o.ID = uuid.New()
			cfg.Overrides = append(cfg.Overrides, *o)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeConfigRepartoRepo) DesactivarOverride(_ context.Context, configID, overrideID uuid.UUID) error {
	if f.errDesactivar != nil {
		return f.errDesactivar
	}
	for _, cfg := range f.configs {
		if cfg.ID != configID {
			continue
		}
		for i := range cfg.Overrides {
			if cfg.Overrides[i].ID == overrideID {
				cfg.Overrides[i].Activo = false
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

// errConfigRepartoRepo always fails; exercises the system-default fallback.
type errConfigRepartoRepo struct{}

var _ repository.ConfigRepartoRepository = (*errConfigRepartoRepo)(nil)

func (errConfigRepartoRepo) GetOrCreate(context.Context, uuid.UUID) (*model.ConfigReparto, error) {
	return nil, errors.New("base de datos caída")
}
func (errConfigRepartoRepo) Update(context.Context, *model.ConfigReparto) error {
	return errors.New("base de datos caída")
}
func (errConfigRepartoRepo) CreateOverride(context.Context, *model.RepartoOverride) error {
	return errors.New("base de datos caída")
}
func (errConfigRepartoRepo) DesactivarOverride(context.Context, uuid.UUID, uuid.UUID) error {
	return errors.New("base de datos caída")
}

// ── Reservas y pagos ──────────────────────────────────────────────────────────

type fakeReservaRepo struct {
	reservas map[uuid.UUID]*model.Reserva
}

var _ repository.ReservaRepository = (*fakeReservaRepo)(nil)

func newFakeReservaRepo() *fakeReservaRepo {
	return &fakeReservaRepo{reservas: make(map[uuid.UUID]*model.Reserva)}
}

func (f *fakeReservaRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*model.Reserva, error) {
	r, ok := f.reservas[id]
	if !ok || r.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReservaRepo) MarcarPagada(_ context.Context, tenantID, id uuid.UUID) error {
	r, ok := f.reservas[id]
	if !ok || r.TenantID != tenantID || r.Pagada {
		return gorm.ErrRecordNotFound
	}
	r.Pagada = true
	return nil
}

type fakePagoRepo struct {
	pagos []*model.Pago
}

var _ repository.PagoRepository = (*fakePagoRepo)(nil)

func (f *fakePagoRepo) Create(_ context.Context, p *model.Pago) error {
	p.ID = uuid.New()
	f.pagos = append(f.pagos, p)
	return nil
}

func (f *fakePagoRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*model.Pago, error) {
	for _, p := range f.pagos {
		if p.TenantID == tenantID && p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Stock ─────────────────────────────────────────────────────────────────────

type fakeMovimientoStockRepo struct {
	movimientos []*model.MovimientoStock
}

var _ repository.MovimientoStockRepository = (*fakeMovimientoStockRepo)(nil)

func (f *fakeMovimientoStockRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	m.ID = uuid.New()
	f.movimientos = append(f.movimientos, m)
	return nil
}

func (f *fakeMovimientoStockRepo) List(_ context.Context, tenantID uuid.UUID, filter repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	var out []model.MovimientoStock
	for _, m := range f.movimientos {
		if m.TenantID != tenantID {
			continue
		}
		if filter.ProductoID != nil && m.ProductoID != *filter.ProductoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

// ── Reportes ──────────────────────────────────────────────────────────────────

// fakeReporteRepo serves scripted aggregates keyed by the period start date.
type fakeReporteRepo struct {
	totales map[string]*repository.TotalesPeriodo
	ranking []repository.RankingBarberoRow
	medios  []repository.MedioPagoRow
	serie   []repository.SerieDiariaRow
}

var _ repository.ReporteRepository = (*fakeReporteRepo)(nil)

func (f *fakeReporteRepo) Totales(_ context.Context, _ uuid.UUID, desde, _ string) (*repository.TotalesPeriodo, error) {
	if t, ok := f.totales[desde]; ok {
		return t, nil
	}
	return &repository.TotalesPeriodo{}, nil
}

func (f *fakeReporteRepo) RankingBarberos(_ context.Context, _ uuid.UUID, _, _ string, _ int) ([]repository.RankingBarberoRow, error) {
	return f.ranking, nil
}

func (f *fakeReporteRepo) DesgloseMedios(_ context.Context, _ uuid.UUID, _, _ string) ([]repository.MedioPagoRow, error) {
	return f.medios, nil
}

func (f *fakeReporteRepo) SerieDiaria(_ context.Context, _ uuid.UUID, _, _ string) ([]repository.SerieDiariaRow, error) {
	return f.serie, nil
}

// ── Jobs ──────────────────────────────────────────────────────────────────────

type fakeEncolador struct {
	tipos []string
}

var _ Encolador = (*fakeEncolador)(nil)

func (f *fakeEncolador) EncolarNotificacion(_ context.Context, tipo string, _ map[string]any) error {
	f.tipos = append(f.tipos, tipo)
	return nil
}
