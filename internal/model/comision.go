package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados del ciclo de vida de una comision.
const (
	ComisionPendiente = "pendiente"
	ComisionAprobada  = "aprobada"
	ComisionPagada    = "pagada"
)

// Fuentes del porcentaje aplicado al calcular una comision.
const (
	FuenteOverrideBarbero  = "override_barbero"
	FuenteOverrideServicio = "override_servicio"
	FuenteTenant           = "tenant"
	FuenteSistema          = "sistema"
)

// Comision is one commission-ledger entry: money owed to a barber for one
// commissionable line item. Entries are created at sale or booking-settlement
// time and are never deleted; amounts change only through Ajustes, state only
// through the pendiente → aprobada → pagada transitions.
//
// MontoBarbero + MontoNegocio == MontoBruto always holds: the barber share is
// rounded and the business share is the exact remainder.
type Comision struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	BarberoID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ServicioID uuid.UUID  `gorm:"type:uuid;not null"`
	VentaID    *uuid.UUID `gorm:"type:uuid"`
	ReservaID  *uuid.UUID `gorm:"type:uuid"`

	MontoBruto   int64 `gorm:"not null"`
	MontoBarbero int64 `gorm:"not null"`
	MontoNegocio int64 `gorm:"not null"`
	BarberoPct   int   `gorm:"not null"`
	NegocioPct   int   `gorm:"not null"`
	// Fuente: override_barbero | override_servicio | tenant | sistema
	Fuente            string `gorm:"type:varchar(20);not null"`
	ImpuestoRetenido  int64  `gorm:"not null;default:0"`
	Estado            string `gorm:"type:varchar(10);not null;default:'pendiente';index"`
	AprobadaPor       *string
	AprobadaAt        *time.Time
	MetodoPago        *string `gorm:"type:varchar(20)"`
	PagadaAt          *time.Time
	NotasPago         *string
	CreatedAt         time.Time

	Ajustes []ComisionAjuste `gorm:"foreignKey:ComisionID"`
}

// ComisionAjuste is an append-only audit record of a manual amount adjustment.
type ComisionAjuste struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComisionID   uuid.UUID `gorm:"type:uuid;not null;index"`
	MontoBarbero int64     `gorm:"not null"`
	MontoNegocio int64     `gorm:"not null"`
	Motivo       string    `gorm:"not null"`
	Actor        string    `gorm:"not null"`
	CreatedAt    time.Time
}
