package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	Tipo     string `json:"tipo"      validate:"required,oneof=servicio producto"`
	ItemID   string `json:"item_id"   validate:"required,uuid"`
	Cantidad int    `json:"cantidad"  validate:"required,min=1"`
	// PrecioUnitario is what the client *believes* the price is. It is never
	// trusted: the server resolves the authoritative price and logs mismatches.
	PrecioUnitario *int64 `json:"precio_unitario" validate:"omitempty,min=0"`
}

type RegistrarVentaRequest struct {
	BarberoID  *string            `json:"barbero_id"  validate:"omitempty,uuid"`
	Items      []ItemVentaRequest `json:"items"       validate:"required,min=1,dive"`
	Descuento  int64              `json:"descuento"   validate:"min=0"`
	MetodoPago string             `json:"metodo_pago" validate:"required,oneof=efectivo debito credito transferencia"`
}

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha string `form:"fecha"` // YYYY-MM-DD; empty = today
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	Tipo           string `json:"tipo"`
	Nombre         string `json:"nombre"`
	Cantidad       int    `json:"cantidad"`
	PrecioUnitario int64  `json:"precio_unitario"`
	Subtotal       int64  `json:"subtotal"`
}

type VentaResponse struct {
	ID         string              `json:"id"`
	BarberoID  *string             `json:"barbero_id"`
	Items      []ItemVentaResponse `json:"items"`
	Subtotal   int64               `json:"subtotal"`
	Descuento  int64               `json:"descuento"`
	Impuesto   int64               `json:"impuesto"`
	Total      int64               `json:"total"`
	MetodoPago string              `json:"metodo_pago"`
	CreatedAt  string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
