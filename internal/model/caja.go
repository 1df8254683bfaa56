package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de una caja.
const (
	CajaAbierta = "abierta"
	CajaCerrada = "cerrada"
)

// Clasificacion del descuadre al cierre.
const (
	DescuadreNinguno = "ninguno"
	DescuadreMenor   = "menor"
	DescuadreAlto    = "alto"
)

// Caja is a per-tenant, per-day, per-shift cash register session. At most one
// caja may be "abierta" per tenant at any time — enforced by a partial unique
// index on (tenant_id) WHERE estado = 'abierta' (see infra.applySchemaPatches)
// in addition to the pre-insert guard in the service.
//
// MontoEsperado, Descuadre and Clasificacion are populated only on close and
// are always derived from the full movement list, never from a running counter.
type Caja struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Fecha         string    `gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	Turno         string    `gorm:"type:varchar(20);not null;default:'unico'"`
	Responsable   string    `gorm:"not null"`
	MontoApertura int64     `gorm:"not null"`
	Estado        string    `gorm:"type:varchar(10);not null;default:'abierta'"`

	MontoContado  *int64
	MontoEsperado *int64
	Descuadre     *int64
	// Clasificacion: ninguno | menor | alto
	Clasificacion *string `gorm:"type:varchar(10)"`
	// Denominaciones is the counted bill/coin breakdown declared at close,
	// serialized JSON. Informational only; never enters the expected amount.
	Denominaciones *string
	Observaciones  *string
	OpenedAt       time.Time
	ClosedAt       *time.Time

	Movimientos []MovimientoCaja `gorm:"foreignKey:CajaID"`
}

// Tipos de movimiento de caja.
const (
	MovIngreso = "ingreso"
	MovEgreso  = "egreso"
)

// MovimientoCaja is an immutable event in the cash register ledger. Amounts
// are always positive; direction comes from Tipo. Movements are NEVER
// modified or deleted.
type MovimientoCaja struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Tipo: ingreso | egreso
	Tipo      string `gorm:"type:varchar(10);not null"`
	Monto     int64  `gorm:"not null"`
	Concepto  string `gorm:"not null"`
	Categoria string `gorm:"type:varchar(30);not null;default:'general'"`
	// Autorizador is required for egresos registered by hand.
	Autorizador *string
	VentaID     *uuid.UUID `gorm:"type:uuid"`
	PagoID      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}

// TableName overrides GORM's default pluralization.
func (MovimientoCaja) TableName() string { return "movimientos_caja" }
