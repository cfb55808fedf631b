package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	franchiseactivities "github.com/Apurer/go-gin-pizza-service/internal/durable/temporal/activities/franchises"
)

// RunFranchiseClosureSequence closes every store of the franchise and then removes it.
func RunFranchiseClosureSequence(ctx workflow.Context, franchiseID int64) (*domain.ClosureReport, error) {
	logger := workflow.GetLogger(ctx)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{franchiseactivities.FranchiseNotFoundErrorType},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var storeIDs []int64
	if err := workflow.ExecuteActivity(ctx, franchiseactivities.ListStoresActivityName, franchiseID).Get(ctx, &storeIDs); err != nil {
		logger.Error("franchise closure failed to list stores", "franchiseId", franchiseID, "error", err)
		return nil, err
	}

	report := &domain.ClosureReport{FranchiseID: franchiseID, ClosedStores: make([]int64, 0, len(storeIDs))}
	for _, storeID := range storeIDs {
		input := franchiseactivities.CloseStoreInput{FranchiseID: franchiseID, StoreID: storeID}
		if err := workflow.ExecuteActivity(ctx, franchiseactivities.CloseStoreActivityName, input).Get(ctx, nil); err != nil {
			logger.Error("franchise closure failed to close store", "franchiseId", franchiseID, "storeId", storeID, "error", err)
			return nil, err
		}
		report.ClosedStores = append(report.ClosedStores, storeID)
	}

	if err := workflow.ExecuteActivity(ctx, franchiseactivities.RemoveFranchiseActivityName, franchiseID).Get(ctx, nil); err != nil {
		logger.Error("franchise closure failed to remove franchise", "franchiseId", franchiseID, "error", err)
		return nil, err
	}
	logger.Info("franchise closure sequence completed", "franchiseId", franchiseID, "stores", len(report.ClosedStores))
	return report, nil
}
