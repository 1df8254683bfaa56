package repository

import (
	"context"

	"barberpos/internal/dto"
	"barberpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComisionRepository interface {
	Create(ctx context.Context, c *model.Comision) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Comision, error)
	// Update persists state/amount transitions guarded by the entry's current
	// estado, so concurrent transitions cannot double-apply.
	Update(ctx context.Context, c *model.Comision, desdeEstado string) error
	// AppendAjuste atomically stores the adjustment record and the new amounts.
	AppendAjuste(ctx context.Context, c *model.Comision, a *model.ComisionAjuste) error
	List(ctx context.Context, tenantID uuid.UUID, filter dto.ComisionFilter) ([]model.Comision, int64, error)
	// Balance sums monto_barbero for a barber, optionally filtered by estado.
	Balance(ctx context.Context, tenantID, barberoID uuid.UUID, estado string) (total int64, entradas int64, err error)
}

type comisionRepo struct{ db *gorm.DB }

func NewComisionRepository(db *gorm.DB) ComisionRepository { return &comisionRepo{db: db} }

func (r *comisionRepo) Create(ctx context.Context, c *model.Comision) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *comisionRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Comision, error) {
	var c model.Comision
	err := r.db.WithContext(ctx).
		Preload("Ajustes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comisionRepo) Update(ctx context.Context, c *model.Comision, desdeEstado string) error {
	res := r.db.WithContext(ctx).Model(&model.Comision{}).
		Where("id = ? AND estado = ?", c.ID, desdeEstado).
		Updates(map[string]interface{}{
			"estado":       c.Estado,
			"aprobada_por": c.AprobadaPor,
			"aprobada_at":  c.AprobadaAt,
			"metodo_pago":  c.MetodoPago,
			"pagada_at":    c.PagadaAt,
			"notas_pago":   c.NotasPago,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *comisionRepo) AppendAjuste(ctx context.Context, c *model.Comision, a *model.ComisionAjuste) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Comision{}).
			Where("id = ? AND estado IN ?", c.ID, []string{model.ComisionPendiente, model.ComisionAprobada}).
			Updates(map[string]interface{}{
				"monto_barbero": c.MontoBarbero,
				"monto_negocio": c.MontoNegocio,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *comisionRepo) List(ctx context.Context, tenantID uuid.UUID, filter dto.ComisionFilter) ([]model.Comision, int64, error) {
	var comisiones []model.Comision
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Comision{}).Where("tenant_id = ?", tenantID)
	if filter.BarberoID != "" {
		q = q.Where("barbero_id = ?", filter.BarberoID)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Ajustes").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit).
		Find(&comisiones).Error
	return comisiones, total, err
}

func (r *comisionRepo) Balance(ctx context.Context, tenantID, barberoID uuid.UUID, estado string) (int64, int64, error) {
	type row struct {
		Total    int64
		Entradas int64
	}
	var out row
	q := r.db.WithContext(ctx).Model(&model.Comision{}).
		Select("COALESCE(SUM(monto_barbero),0) AS total, COUNT(*) AS entradas").
		Where("tenant_id = ? AND barbero_id = ?", tenantID, barberoID)
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Scan(&out).Error
	return out.Total, out.Entradas, err
}
