package franchises

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/application"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
)

const (
	// FranchiseNotFoundErrorType marks failures Temporal must not retry.
	FranchiseNotFoundErrorType = "FranchiseNotFound"

	ListStoresActivityName      = "franchises.activities.ListStores"
	CloseStoreActivityName      = "franchises.activities.CloseStore"
	RemoveFranchiseActivityName = "franchises.activities.RemoveFranchise"
)

// CloseStoreInput identifies one store of a franchise being closed.
type CloseStoreInput struct {
	FranchiseID int64
	StoreID     int64
}

// Activities exposes the franchise closure steps to Temporal.
type Activities struct {
	closer *application.Closer
}

func NewActivities(closer *application.Closer) *Activities {
	return &Activities{closer: closer}
}

func (a *Activities) ListStores(ctx context.Context, franchiseID int64) ([]int64, error) {
	if a == nil || a.closer == nil {
		return nil, errors.New("franchise closure activities not initialized")
	}
	ids, err := a.closer.StoreIDs(ctx, franchiseID)
	if err != nil {
		activity.GetLogger(ctx).Error("ListStores failed", "franchiseId", franchiseID, "error", err)
		return nil, nonRetryableNotFound(err)
	}
	return ids, nil
}

func (a *Activities) CloseStore(ctx context.Context, input CloseStoreInput) error {
	if a == nil || a.closer == nil {
		return errors.New("franchise closure activities not initialized")
	}
	logger := activity.GetLogger(ctx)
	if err := a.closer.CloseStore(ctx, input.FranchiseID, input.StoreID); err != nil {
		logger.Error("CloseStore failed", "franchiseId", input.FranchiseID, "storeId", input.StoreID, "error", err)
		return err
	}
	logger.Info("store closed", "franchiseId", input.FranchiseID, "storeId", input.StoreID)
	return nil
}

func (a *Activities) RemoveFranchise(ctx context.Context, franchiseID int64) error {
	if a == nil || a.closer == nil {
		return errors.New("franchise closure activities not initialized")
	}
	if err := a.closer.RemoveFranchise(ctx, franchiseID); err != nil {
		activity.GetLogger(ctx).Error("RemoveFranchise failed", "franchiseId", franchiseID, "error", err)
		return nonRetryableNotFound(err)
	}
	return nil
}

// IsFranchiseNotFound reports whether a workflow error came from a missing franchise.
func IsFranchiseNotFound(err error) bool {
	var appErr *temporal.ApplicationError
	return errors.As(err, &appErr) && appErr.Type() == FranchiseNotFoundErrorType
}

func nonRetryableNotFound(err error) error {
	if errors.Is(err, ports.ErrNotFound) {
		return temporal.NewNonRetryableApplicationError(err.Error(), FranchiseNotFoundErrorType, err)
	}
	return err
}
