package dto

import "github.com/shopspring/decimal"

// PeriodoFilter is bound from the query string of the reporting endpoints.
// Empty dates default to the current month.
type PeriodoFilter struct {
	Desde string `form:"desde"` // YYYY-MM-DD inclusive
	Hasta string `form:"hasta"` // YYYY-MM-DD inclusive
}

type ResumenPeriodoResponse struct {
	Desde          string          `json:"desde"`
	Hasta          string          `json:"hasta"`
	TotalVentas    int64           `json:"total_ventas"`
	TotalPagos     int64           `json:"total_pagos"`
	TotalImpuestos int64           `json:"total_impuestos"`
	Operaciones    int64           `json:"operaciones"`
	// VariacionPct compares against the immediately preceding period of equal
	// length: 100 when the prior period was zero and this one is positive,
	// 0 when both are zero.
	VariacionPct decimal.Decimal `json:"variacion_pct"`
}

type RankingBarberoResponse struct {
	BarberoID  string `json:"barbero_id"`
	Entradas   int64  `json:"entradas"`
	TotalBruto int64  `json:"total_bruto"`
	TotalNeto  int64  `json:"total_neto"`
}

type MedioPagoDesgloseResponse struct {
	Metodo     string          `json:"metodo"`
	Total      int64           `json:"total"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
}

type SerieDiariaPunto struct {
	Fecha string `json:"fecha"`
	Total int64  `json:"total"`
}
