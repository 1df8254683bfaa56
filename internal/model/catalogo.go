package model

import (
	"time"

	"github.com/google/uuid"
)

// Servicio is a bookable barbershop service. PrecioPromo, when set and lower
// than Precio, is the price charged at sale time.
type Servicio struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre      string    `gorm:"not null"`
	Precio      int64     `gorm:"not null"`
	PrecioPromo *int64
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Producto is a retail product with tracked stock.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre      string    `gorm:"not null"`
	Precio      int64     `gorm:"not null"`
	PrecioPromo *int64
	StockActual int  `gorm:"not null;default:0"`
	StockMinimo int  `gorm:"not null;default:5"`
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
