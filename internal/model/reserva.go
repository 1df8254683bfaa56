package model

import (
	"time"

	"github.com/google/uuid"
)

// Reserva is the slice of a booking the settlement core needs: its
// authoritative price, the assigned barber, and whether it has been settled.
// Scheduling (date, time slot, client) lives in the booking collaborator and
// is out of scope here.
type Reserva struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BarberoID  uuid.UUID `gorm:"type:uuid;not null"`
	ServicioID uuid.UUID `gorm:"type:uuid;not null"`
	Precio     int64     `gorm:"not null"`
	Pagada     bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
