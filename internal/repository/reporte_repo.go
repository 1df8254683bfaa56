package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Aggregate row types returned by the read-side queries. Kept close to the
// SQL shape; the service layer converts them into response DTOs.

type TotalesPeriodo struct {
	TotalVentas    int64
	TotalPagos     int64
	TotalImpuestos int64
	Operaciones    int64
}

type RankingBarberoRow struct {
	BarberoID  uuid.UUID
	Entradas   int64
	TotalBruto int64
	TotalNeto  int64
}

type MedioPagoRow struct {
	Metodo string
	Total  int64
}

type SerieDiariaRow struct {
	Fecha string
	Total int64
}

// ReporteRepository is the pure read side: every query aggregates over the
// sale/payment/commission history and has no side effects, so re-running any
// of them over the same snapshot yields identical results.
type ReporteRepository interface {
	Totales(ctx context.Context, tenantID uuid.UUID, desde, hasta string) (*TotalesPeriodo, error)
	RankingBarberos(ctx context.Context, tenantID uuid.UUID, desde, hasta string, limit int) ([]RankingBarberoRow, error)
	// DesgloseMedios aggregates per tender method over both revenue sources:
	// ventas by metodo_pago and booking settlements by tender line, so a split
	// payment contributes each of its medios and the per-method totals
	// reconcile with Totales.
	DesgloseMedios(ctx context.Context, tenantID uuid.UUID, desde, hasta string) ([]MedioPagoRow, error)
	// SerieDiaria sums sale and payment revenue per day.
	SerieDiaria(ctx context.Context, tenantID uuid.UUID, desde, hasta string) ([]SerieDiariaRow, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) Totales(ctx context.Context, tenantID uuid.UUID, desde, hasta string) (*TotalesPeriodo, error) {
	var t TotalesPeriodo

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total),0)    AS total_ventas,
		       COALESCE(SUM(impuesto),0) AS impuestos_ventas,
		       COUNT(*)                  AS ops_ventas
		FROM ventas
		WHERE tenant_id = ? AND DATE(created_at) BETWEEN ? AND ?`,
		tenantID, desde, hasta).
		Row().Scan(&t.TotalVentas, &t.TotalImpuestos, &t.Operaciones)
	if err != nil {
		return nil, err
	}

	var totalPagos, impuestosPagos, opsPagos int64
	err = r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total),0), COALESCE(SUM(impuesto),0), COUNT(*)
		FROM pagos
		WHERE tenant_id = ? AND DATE(created_at) BETWEEN ? AND ?`,
		tenantID, desde, hasta).
		Row().Scan(&totalPagos, &impuestosPagos, &opsPagos)
	if err != nil {
		return nil, err
	}

	t.TotalPagos = totalPagos
	t.TotalImpuestos += impuestosPagos
	t.Operaciones += opsPagos
	return &t, nil
}

func (r *reporteRepo) RankingBarberos(ctx context.Context, tenantID uuid.UUID, desde, hasta string, limit int) ([]RankingBarberoRow, error) {
	var rows []RankingBarberoRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT barbero_id,
		       COUNT(*)                       AS entradas,
		       COALESCE(SUM(monto_bruto),0)   AS total_bruto,
		       COALESCE(SUM(monto_barbero),0) AS total_neto
		FROM comisiones
		WHERE tenant_id = ? AND DATE(created_at) BETWEEN ? AND ?
		GROUP BY barbero_id
		ORDER BY total_neto DESC
		LIMIT ?`,
		tenantID, desde, hasta, limit).
		Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) DesgloseMedios(ctx context.Context, tenantID uuid.UUID, desde, hasta string) ([]MedioPagoRow, error) {
	var rows []MedioPagoRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT metodo, COALESCE(SUM(monto),0) AS total
		FROM (
			SELECT metodo_pago AS metodo, total AS monto
			FROM ventas
			WHERE tenant_id = ? AND DATE(created_at) BETWEEN ? AND ?
			UNION ALL
			SELECT mp.metodo, mp.monto
			FROM medios_pago mp
			JOIN pagos p ON p.id = mp.pago_id
			WHERE p.tenant_id = ? AND DATE(p.created_at) BETWEEN ? AND ?
		) ingresos
		GROUP BY metodo
		ORDER BY total DESC`,
		tenantID, desde, hasta, tenantID, desde, hasta).
		Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) SerieDiaria(ctx context.Context, tenantID uuid.UUID, desde, hasta string) ([]SerieDiariaRow, error) {
	var rows []SerieDiariaRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(dia, 'YYYY-MM-DD') AS fecha, SUM(monto) AS total
		FROM (
			SELECT DATE(created_at) AS dia, total AS monto
			FROM ventas
			WHERE tenant_id = ? AND DATE(created_at) BETWEEN ? AND ?
			UNION ALL
			SELECT DATE(created_at), total
			FROM pagos
			WHERE tenant_id = ? AND DATE(created_at) BETWEEN ? AND ?
		) ingresos
		GROUP BY dia
		ORDER BY fecha ASC`,
		tenantID, desde, hasta, tenantID, desde, hasta).
		Scan(&rows).Error
	return rows, err
}
