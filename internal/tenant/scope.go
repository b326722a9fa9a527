package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForTenant returns a GORM scope that filters by tenant_id. Every
// tenant-scoped query must go through it; cross-tenant reads are a bug.
func ForTenant(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}
