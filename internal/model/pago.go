package model

import (
	"time"

	"github.com/google/uuid"
)

// Pago records the settlement of a single booking. Created once; the tender
// lines and computed amounts are immutable after creation.
type Pago struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ReservaID uuid.UUID `gorm:"type:uuid;not null;index"`
	BarberoID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Total is the authoritative booking price the tenders summed to.
	Total int64 `gorm:"not null"`
	// TotalNeto is Total minus all processing fees; the tax base.
	TotalNeto int64 `gorm:"not null"`
	Impuesto  int64 `gorm:"not null;default:0"`
	CreatedAt time.Time

	Medios []PagoMedio `gorm:"foreignKey:PagoID"`
}

// PagoMedio is one tender line within a (possibly split) payment.
type PagoMedio struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PagoID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Metodo: efectivo | debito | credito | transferencia
	Metodo string `gorm:"type:varchar(20);not null"`
	Monto  int64  `gorm:"not null"`
	// ComisionProcesador is the processing fee for this tender (fee table by
	// method); MontoNeto = Monto - ComisionProcesador.
	ComisionProcesador int64 `gorm:"not null;default:0"`
	MontoNeto          int64 `gorm:"not null"`
}

// TableName overrides GORM's default pluralization (pago_medios → medios_pago).
func (PagoMedio) TableName() string { return "medios_pago" }
