package ports

import (
	"context"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
)

// ClosureOrchestrator closes a franchise: every store first, then the franchise itself.
type ClosureOrchestrator interface {
	CloseFranchise(ctx context.Context, franchiseID int64) (*domain.ClosureReport, error)
}
