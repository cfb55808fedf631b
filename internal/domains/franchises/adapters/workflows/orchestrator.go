package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	franchiseactivities "github.com/Apurer/go-gin-pizza-service/internal/durable/temporal/activities/franchises"
	franchiseworkflows "github.com/Apurer/go-gin-pizza-service/internal/durable/temporal/workflows/franchises"
)

var _ ports.ClosureOrchestrator = (*TemporalClosure)(nil)

// TemporalClosure runs franchise closures as Temporal workflows.
type TemporalClosure struct {
	client    client.Client
	taskQueue string
}

func NewTemporalClosure(c client.Client) *TemporalClosure {
	return &TemporalClosure{client: c, taskQueue: franchiseworkflows.FranchiseClosureTaskQueue}
}

// CloseFranchise starts the closure workflow and waits for its report. A closure
// already running for the franchise is joined instead of started twice.
func (o *TemporalClosure) CloseFranchise(ctx context.Context, franchiseID int64) (*domain.ClosureReport, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal franchise closure not configured")
	}
	workflowID := ClosureWorkflowID(franchiseID)
	run, err := o.client.ExecuteWorkflow(
		ctx,
		client.StartWorkflowOptions{ID: workflowID, TaskQueue: o.taskQueue},
		franchiseworkflows.FranchiseClosureWorkflow,
		franchiseworkflows.FranchiseClosureWorkflowInput{FranchiseID: franchiseID, TraceID: workflowTraceComponent(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var report domain.ClosureReport
	if err := run.Get(ctx, &report); err != nil {
		if franchiseactivities.IsFranchiseNotFound(err) {
			return nil, fmt.Errorf("%w: %d", ports.ErrNotFound, franchiseID)
		}
		return nil, err
	}
	return &report, nil
}

// ClosureWorkflowID is deterministic per franchise.
func ClosureWorkflowID(franchiseID int64) string {
	return fmt.Sprintf("franchise-closure-%d", franchiseID)
}

func workflowTraceComponent(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() && spanCtx.TraceID().IsValid() {
		return spanCtx.TraceID().String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
