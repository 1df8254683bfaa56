package infra

import (
	"fmt"

	"barberpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Also used by
// integration tests against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Servicio{},
		&model.Producto{},
		&model.Reserva{},
		&model.Venta{},
		&model.VentaItem{},
		&model.Pago{},
		&model.PagoMedio{},
		&model.Caja{},
		&model.MovimientoCaja{},
		&model.MovimientoStock{},
		&model.Comision{},
		&model.ComisionAjuste{},
		&model.ConfigReparto{},
		&model.RepartoOverride{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot produce.
// Each statement is guarded by an existence check so re-running on an
// already-patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// The single-open-caja invariant. The service pre-checks for a nicer
		// error message, but only this index holds under concurrent opens.
		{"partial unique index: one open caja per tenant", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_cajas_tenant_abierta') THEN
    CREATE UNIQUE INDEX uq_cajas_tenant_abierta
        ON cajas (tenant_id)
        WHERE estado = 'abierta';
  END IF;
END $$`},
		// Commission listing and balance both filter by (tenant, barbero, estado).
		{"composite index for commission queries", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_comisiones_tenant_barbero_estado') THEN
    CREATE INDEX idx_comisiones_tenant_barbero_estado
        ON comisiones (tenant_id, barbero_id, estado);
  END IF;
END $$`},
		// Reporting aggregates scan by tenant + day.
		{"index for daily reporting scans over ventas", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_ventas_tenant_dia') THEN
    CREATE INDEX idx_ventas_tenant_dia
        ON ventas (tenant_id, (DATE(created_at)));
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
