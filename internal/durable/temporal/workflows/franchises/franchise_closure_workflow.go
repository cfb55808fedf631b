package franchises

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/durable/temporal/sequences"
)

const (
	// FranchiseClosureWorkflowName is the public identifier for registering the workflow.
	FranchiseClosureWorkflowName = "franchises.workflows.Closure"
	// FranchiseClosureTaskQueue is the queue consumed by the worker processing closures.
	FranchiseClosureTaskQueue = "FRANCHISE_CLOSURE"
)

// FranchiseClosureWorkflowInput names the franchise to close.
type FranchiseClosureWorkflowInput struct {
	FranchiseID int64
	TraceID     string
}

// FranchiseClosureWorkflow removes a franchise after closing each of its stores.
func FranchiseClosureWorkflow(ctx workflow.Context, input FranchiseClosureWorkflowInput) (*domain.ClosureReport, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("FranchiseClosureWorkflow started", withTraceID(input.TraceID, "franchiseId", input.FranchiseID)...)
	report, err := sequences.RunFranchiseClosureSequence(ctx, input.FranchiseID)
	if err != nil {
		logger.Error("FranchiseClosureWorkflow failed", withTraceID(input.TraceID, "franchiseId", input.FranchiseID, "error", err)...)
		return nil, err
	}
	logger.Info("FranchiseClosureWorkflow completed", withTraceID(input.TraceID, "franchiseId", input.FranchiseID)...)
	return report, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
