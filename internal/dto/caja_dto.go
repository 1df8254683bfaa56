package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoApertura int64  `json:"monto_apertura" validate:"min=0"`
	Turno         string `json:"turno"          validate:"omitempty,max=20"`
	Responsable   string `json:"responsable"    validate:"required,min=2"`
}

type IngresoCajaRequest struct {
	Monto     int64  `json:"monto"     validate:"required,gt=0"`
	Concepto  string `json:"concepto"  validate:"required,min=3"`
	Categoria string `json:"categoria" validate:"omitempty,max=30"`
}

type EgresoCajaRequest struct {
	Monto       int64  `json:"monto"       validate:"required,gt=0"`
	Concepto    string `json:"concepto"    validate:"required,min=3"`
	Categoria   string `json:"categoria"   validate:"omitempty,max=30"`
	Autorizador string `json:"autorizador" validate:"required,min=2"`
}

type CerrarCajaRequest struct {
	MontoContado int64 `json:"monto_contado" validate:"min=0"`
	// Denominaciones: counted bills/coins, denomination → count. Informational.
	Denominaciones map[string]int `json:"denominaciones"`
	Observaciones  *string        `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoCajaResponse struct {
	ID          string  `json:"id"`
	Tipo        string  `json:"tipo"`
	Monto       int64   `json:"monto"`
	Concepto    string  `json:"concepto"`
	Categoria   string  `json:"categoria"`
	Autorizador *string `json:"autorizador,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type CajaResponse struct {
	ID            string  `json:"id"`
	Fecha         string  `json:"fecha"`
	Turno         string  `json:"turno"`
	Responsable   string  `json:"responsable"`
	MontoApertura int64   `json:"monto_apertura"`
	Estado        string  `json:"estado"`
	MontoEsperado int64   `json:"monto_esperado"`
	MontoContado  *int64  `json:"monto_contado,omitempty"`
	Descuadre     *int64  `json:"descuadre,omitempty"`
	Clasificacion *string `json:"clasificacion,omitempty"`
	Observaciones *string `json:"observaciones,omitempty"`
	OpenedAt      string  `json:"opened_at"`
	ClosedAt      *string `json:"closed_at,omitempty"`

	Movimientos []MovimientoCajaResponse `json:"movimientos,omitempty"`
}

type CajaListResponse struct {
	Data  []CajaResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
