package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PagarComisionRequest struct {
	MetodoPago string  `json:"metodo_pago" validate:"required,oneof=efectivo debito credito transferencia"`
	Notas      *string `json:"notas"`
}

type AjustarComisionRequest struct {
	MontoBarbero int64  `json:"monto_barbero" validate:"min=0"`
	MontoNegocio int64  `json:"monto_negocio" validate:"min=0"`
	Motivo       string `json:"motivo"        validate:"required,min=5"`
}

// ComisionFilter is bound from the query string of GET /v1/comisiones.
type ComisionFilter struct {
	BarberoID string `form:"barbero_id"`
	Estado    string `form:"estado"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AjusteResponse struct {
	MontoBarbero int64  `json:"monto_barbero"`
	MontoNegocio int64  `json:"monto_negocio"`
	Motivo       string `json:"motivo"`
	Actor        string `json:"actor"`
	CreatedAt    string `json:"created_at"`
}

type ComisionResponse struct {
	ID           string  `json:"id"`
	BarberoID    string  `json:"barbero_id"`
	ServicioID   string  `json:"servicio_id"`
	VentaID      *string `json:"venta_id,omitempty"`
	ReservaID    *string `json:"reserva_id,omitempty"`
	MontoBruto   int64   `json:"monto_bruto"`
	MontoBarbero int64   `json:"monto_barbero"`
	MontoNegocio int64   `json:"monto_negocio"`
	BarberoPct   int     `json:"barbero_pct"`
	NegocioPct   int     `json:"negocio_pct"`
	Fuente       string  `json:"fuente"`
	Estado       string  `json:"estado"`
	AprobadaPor  *string `json:"aprobada_por,omitempty"`
	MetodoPago   *string `json:"metodo_pago,omitempty"`
	PagadaAt     *string `json:"pagada_at,omitempty"`
	CreatedAt    string  `json:"created_at"`

	Ajustes []AjusteResponse `json:"ajustes,omitempty"`
}

type ComisionListResponse struct {
	Data  []ComisionResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type BalanceComisionResponse struct {
	BarberoID string `json:"barbero_id"`
	Estado    string `json:"estado,omitempty"`
	Entradas  int64  `json:"entradas"`
	Total     int64  `json:"total"`
}
