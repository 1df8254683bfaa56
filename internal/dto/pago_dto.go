package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type MedioPagoRequest struct {
	Metodo string `json:"metodo" validate:"required,oneof=efectivo debito credito transferencia"`
	Monto  int64  `json:"monto"  validate:"required,gt=0"`
}

type RegistrarPagoRequest struct {
	ReservaID string             `json:"reserva_id" validate:"required,uuid"`
	Medios    []MedioPagoRequest `json:"medios"     validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MedioPagoResponse struct {
	Metodo             string `json:"metodo"`
	Monto              int64  `json:"monto"`
	ComisionProcesador int64  `json:"comision_procesador"`
	MontoNeto          int64  `json:"monto_neto"`
}

type PagoResponse struct {
	ID        string              `json:"id"`
	ReservaID string              `json:"reserva_id"`
	BarberoID string              `json:"barbero_id"`
	Total     int64               `json:"total"`
	TotalNeto int64               `json:"total_neto"`
	Impuesto  int64               `json:"impuesto"`
	Medios    []MedioPagoResponse `json:"medios"`
	CreatedAt string              `json:"created_at"`
}
