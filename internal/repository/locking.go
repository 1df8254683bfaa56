package repository

import "gorm.io/gorm/clause"

// clauseLockForUpdate returns a SELECT … FOR UPDATE clause. Used by the
// read-modify-write paths (stock adjustment, caja close) to avoid lost
// updates when two settlements complete near-simultaneously.
func clauseLockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}
