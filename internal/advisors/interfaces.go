package advisors

import (
	"context"

	"github.com/investguard/investguard/internal/engine"
)

// AdvisorRepository defines the directory operations the service depends on.
// It extends the engine's registry contract with directory reads.
type AdvisorRepository interface {
	engine.AdvisorRegistry
	GetByLicense(ctx context.Context, licenseNumber string) (*Advisor, error)
	ListAdvisors(ctx context.Context, limit, offset int) ([]*Advisor, int64, error)
	GetDirectoryStats(ctx context.Context) (*DirectoryStats, error)
}
