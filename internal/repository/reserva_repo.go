package repository

import (
	"context"

	"barberpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservaRepository is the seam to the booking collaborator. The settlement
// core only reads a booking's authoritative price and flips its settled flag.
type ReservaRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Reserva, error)
	// MarcarPagada flips pagada = true iff it was false; a concurrent
	// settlement loses with gorm.ErrRecordNotFound.
	MarcarPagada(ctx context.Context, tenantID, id uuid.UUID) error
}

type reservaRepo struct{ db *gorm.DB }

func NewReservaRepository(db *gorm.DB) ReservaRepository { return &reservaRepo{db: db} }

func (r *reservaRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Reserva, error) {
	var res model.Reserva
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservaRepo) MarcarPagada(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Reserva{}).
		Where("tenant_id = ? AND id = ? AND pagada = false", tenantID, id).
		Update("pagada", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
