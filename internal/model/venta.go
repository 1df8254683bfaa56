package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de item de venta.
const (
	ItemServicio = "servicio"
	ItemProducto = "producto"
)

// Metodos de pago aceptados en ventas y pagos.
const (
	MetodoEfectivo      = "efectivo"
	MetodoDebito        = "debito"
	MetodoCredito       = "credito"
	MetodoTransferencia = "transferencia"
)

// Venta is the immutable record of a point-of-sale transaction. All amounts
// are integer minor-currency units, computed server-side at registration time.
// A Venta is never updated after creation — corrections are new sales or
// commission-ledger adjustments.
type Venta struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	BarberoID *uuid.UUID `gorm:"type:uuid;index"`
	Subtotal  int64      `gorm:"not null"`
	Descuento int64      `gorm:"not null;default:0"`
	Impuesto  int64      `gorm:"not null;default:0"`
	Total     int64      `gorm:"not null"`
	// MetodoPago: efectivo | debito | credito | transferencia
	MetodoPago string `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time

	Items []VentaItem `gorm:"foreignKey:VentaID"`
}

// VentaItem is one line of a sale with the authoritative unit price captured
// at sale time.
type VentaItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Tipo: servicio | producto
	Tipo           string    `gorm:"type:varchar(10);not null"`
	ItemID         uuid.UUID `gorm:"type:uuid;not null"`
	Nombre         string    `gorm:"not null"`
	PrecioUnitario int64     `gorm:"not null"`
	Cantidad       int       `gorm:"not null"`
	Subtotal       int64     `gorm:"not null"`
}
