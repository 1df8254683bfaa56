package repository

import (
	"context"

	"barberpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogoRepository is the read/adjust seam to the services & products
// catalog. The settlement core never creates catalog entries; it resolves
// prices and moves stock.
type CatalogoRepository interface {
	FindServicio(ctx context.Context, tenantID, id uuid.UUID) (*model.Servicio, error)
	FindProducto(ctx context.Context, tenantID, id uuid.UUID) (*model.Producto, error)
	// AjustarStock applies delta to the product's stock and returns the stock
	// before the adjustment. Runs as a single UPDATE … RETURNING-style
	// read-modify-write inside its own transaction.
	AjustarStock(ctx context.Context, tenantID, productoID uuid.UUID, delta int) (stockAnterior int, err error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) FindServicio(ctx context.Context, tenantID, id uuid.UUID) (*model.Servicio, error) {
	var s model.Servicio
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *catalogoRepo) FindProducto(ctx context.Context, tenantID, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *catalogoRepo) AjustarStock(ctx context.Context, tenantID, productoID uuid.UUID, delta int) (int, error) {
	var antes int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Producto
		if err := tx.Clauses(clauseLockForUpdate()).
			Where("tenant_id = ? AND id = ?", tenantID, productoID).
			First(&p).Error; err != nil {
			return err
		}
		antes = p.StockActual
		return tx.Model(&model.Producto{}).
			Where("id = ?", productoID).
			Update("stock_actual", gorm.Expr("stock_actual + ?", delta)).Error
	})
	return antes, err
}
