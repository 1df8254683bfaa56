package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ActualizarRepartoRequest struct {
	BarberoPct         int  `json:"barbero_pct"         validate:"min=0,max=100"`
	NegocioPct         int  `json:"negocio_pct"         validate:"min=0,max=100"`
	ImpuestoHabilitado bool `json:"impuesto_habilitado"`
	TasaImpuesto       int  `json:"tasa_impuesto"       validate:"min=0,max=100"`
}

type CrearOverrideRequest struct {
	Tipo       string  `json:"tipo"        validate:"required,oneof=barbero servicio"`
	RefID      string  `json:"ref_id"      validate:"required,uuid"`
	BarberoPct int     `json:"barbero_pct" validate:"min=0,max=100"`
	NegocioPct int     `json:"negocio_pct" validate:"min=0,max=100"`
	Notas      *string `json:"notas"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OverrideResponse struct {
	ID         string  `json:"id"`
	Tipo       string  `json:"tipo"`
	RefID      string  `json:"ref_id"`
	BarberoPct int     `json:"barbero_pct"`
	NegocioPct int     `json:"negocio_pct"`
	Activo     bool    `json:"activo"`
	Notas      *string `json:"notas,omitempty"`
}

type ConfigRepartoResponse struct {
	BarberoPct         int                `json:"barbero_pct"`
	NegocioPct         int                `json:"negocio_pct"`
	ImpuestoHabilitado bool               `json:"impuesto_habilitado"`
	TasaImpuesto       int                `json:"tasa_impuesto"`
	Overrides          []OverrideResponse `json:"overrides"`
}
