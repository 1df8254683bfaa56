package repository

import (
	"context"
	"errors"

	"barberpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSinCajaAbierta signals there is no open caja for the tenant. Callers
// that treat the caja as a best-effort sink check for it explicitly.
var ErrSinCajaAbierta = errors.New("sin caja abierta")

type CajaRepository interface {
	Create(ctx context.Context, c *model.Caja) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Caja, error)
	// FindAbierta returns the tenant's open caja or ErrSinCajaAbierta.
	FindAbierta(ctx context.Context, tenantID uuid.UUID) (*model.Caja, error)
	// Cerrar persists closing fields iff the caja is still open; the update is
	// guarded by estado so a concurrent close loses cleanly.
	Cerrar(ctx context.Context, c *model.Caja) error
	// CreateMovimiento appends the movement only while its caja is still open;
	// the estado check travels with the insert, so a close that lands in
	// between yields gorm.ErrRecordNotFound instead of a write on a closed caja.
	CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error)
	ListCerradas(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.Caja, int64, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Preload("Movimientos", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindAbierta(ctx context.Context, tenantID uuid.UUID) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Preload("Movimientos", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("tenant_id = ? AND estado = ?", tenantID, model.CajaAbierta).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSinCajaAbierta
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) Cerrar(ctx context.Context, c *model.Caja) error {
	res := r.db.WithContext(ctx).Model(&model.Caja{}).
		Where("id = ? AND estado = ?", c.ID, model.CajaAbierta).
		Updates(map[string]interface{}{
			"estado":         c.Estado,
			"monto_contado":  c.MontoContado,
			"monto_esperado": c.MontoEsperado,
			"descuadre":      c.Descuadre,
			"clasificacion":  c.Clasificacion,
			"denominaciones": c.Denominaciones,
			"observaciones":  c.Observaciones,
			"closed_at":      c.ClosedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cajaRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO movimientos_caja
			(id, caja_id, tipo, monto, concepto, categoria, autorizador, venta_id, pago_id, created_at)
		SELECT ?, c.id, ?, ?, ?, ?, ?, ?, ?, NOW()
		FROM cajas c
		WHERE c.id = ? AND c.estado = ?`,
		m.ID, m.Tipo, m.Monto, m.Concepto, m.Categoria, m.Autorizador, m.VentaID, m.PagoID,
		m.CajaID, model.CajaAbierta)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).
		Where("caja_id = ?", cajaID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) ListCerradas(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]model.Caja, int64, error) {
	var cajas []model.Caja
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Caja{}).
		Where("tenant_id = ? AND estado = ?", tenantID, model.CajaCerrada)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("closed_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&cajas).Error
	return cajas, total, err
}
