package model

import (
	"time"

	"github.com/google/uuid"
)

// System defaults applied when a tenant has no revenue config yet.
const (
	DefaultBarberoPct = 50
	DefaultNegocioPct = 50
)

// Tipos de override de reparto.
const (
	OverrideBarbero  = "barbero"
	OverrideServicio = "servicio"
)

// ConfigReparto holds a tenant's revenue-split defaults and tax settings.
// One row per tenant, lazily created with system defaults on first read via
// an idempotent upsert (safe under concurrent first access).
type ConfigReparto struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	// BarberoPct + NegocioPct siempre suman 100.
	BarberoPct         int  `gorm:"not null;default:50"`
	NegocioPct         int  `gorm:"not null;default:50"`
	ImpuestoHabilitado bool `gorm:"not null;default:false"`
	// TasaImpuesto is an integer percentage 0–100.
	TasaImpuesto int `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Overrides []RepartoOverride `gorm:"foreignKey:ConfigID"`
}

// RepartoOverride is a per-barber or per-service exception to the tenant's
// default split. Only rows with Activo=true participate in resolution.
type RepartoOverride struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConfigID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Tipo: barbero | servicio
	Tipo string `gorm:"type:varchar(10);not null"`
	// RefID is the barber or service this override applies to.
	RefID      uuid.UUID `gorm:"type:uuid;not null;index"`
	BarberoPct int       `gorm:"not null"`
	NegocioPct int       `gorm:"not null"`
	Activo     bool      `gorm:"not null;default:true"`
	Notas      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides GORM's default pluralization.
func (ConfigReparto) TableName() string { return "configs_reparto" }

// TableName overrides GORM's default pluralization.
func (RepartoOverride) TableName() string { return "reparto_overrides" }
