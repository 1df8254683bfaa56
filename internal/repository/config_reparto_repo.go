package repository

import (
	"context"

	"barberpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfigRepartoRepository interface {
	// GetOrCreate returns the tenant's revenue config, lazily creating it with
	// system defaults. Safe under concurrent first access: INSERT … ON
	// CONFLICT DO NOTHING followed by a re-read.
	GetOrCreate(ctx context.Context, tenantID uuid.UUID) (*model.ConfigReparto, error)
	Update(ctx context.Context, c *model.ConfigReparto) error
	CreateOverride(ctx context.Context, o *model.RepartoOverride) error
	DesactivarOverride(ctx context.Context, configID, overrideID uuid.UUID) error
}

type configRepartoRepo struct{ db *gorm.DB }

func NewConfigRepartoRepository(db *gorm.DB) ConfigRepartoRepository {
	return &configRepartoRepo{db: db}
}

func (r *configRepartoRepo) GetOrCreate(ctx context.Context, tenantID uuid.UUID) (*model.ConfigReparto, error) {
	seed := model.ConfigReparto{
		TenantID:   tenantID,
		BarberoPct: model.DefaultBarberoPct,
		NegocioPct: model.DefaultNegocioPct,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "tenant_id"}}, DoNothing: true}).
		Create(&seed).Error; err != nil {
		return nil, err
	}

	var cfg model.ConfigReparto
	err := r.db.WithContext(ctx).
		Preload("Overrides").
		Where("tenant_id = ?", tenantID).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepartoRepo) Update(ctx context.Context, c *model.ConfigReparto) error {
	return r.db.WithContext(ctx).Model(&model.ConfigReparto{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"barbero_pct":         c.BarberoPct,
			"negocio_pct":         c.NegocioPct,
			"impuesto_habilitado": c.ImpuestoHabilitado,
			"tasa_impuesto":       c.TasaImpuesto,
		}).Error
}

func (r *configRepartoRepo) CreateOverride(ctx context.Context, o *model.RepartoOverride) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *configRepartoRepo) DesactivarOverride(ctx context.Context, configID, overrideID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.RepartoOverride{}).
		Where("id = ? AND config_id = ?", overrideID, configID).
		Update("activo", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
