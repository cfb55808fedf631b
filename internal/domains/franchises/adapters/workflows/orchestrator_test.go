package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	franchiseactivities "github.com/Apurer/go-gin-pizza-service/internal/durable/temporal/activities/franchises"
	franchiseworkflows "github.com/Apurer/go-gin-pizza-service/internal/durable/temporal/workflows/franchises"
)

func reportingRun(report domain.ClosureReport) *mocks.WorkflowRun {
	run := &mocks.WorkflowRun{}
	run.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(1).(*domain.ClosureReport) = report
	}).Return(nil)
	return run
}

func TestTemporalClosureStartsWorkflow(t *testing.T) {
	c := &mocks.Client{}
	run := reportingRun(domain.ClosureReport{FranchiseID: 2, ClosedStores: []int64{4, 5}})
	c.On("ExecuteWorkflow", mock.Anything, mock.MatchedBy(func(opts client.StartWorkflowOptions) bool {
		return opts.ID == "franchise-closure-2" && opts.TaskQueue == franchiseworkflows.FranchiseClosureTaskQueue
	}), mock.Anything, mock.Anything).Return(run, nil)

	report, err := NewTemporalClosure(c).CloseFranchise(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, report.ClosedStores)
	c.AssertExpectations(t)
}

func TestTemporalClosureJoinsRunningWorkflow(t *testing.T) {
	c := &mocks.Client{}
	run := reportingRun(domain.ClosureReport{FranchiseID: 3})
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("running", "", "run-1"))
	c.On("GetWorkflow", mock.Anything, "franchise-closure-3", "run-1").Return(run)

	report, err := NewTemporalClosure(c).CloseFranchise(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), report.FranchiseID)
}

func TestTemporalClosureMapsMissingFranchise(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	run.On("Get", mock.Anything, mock.Anything).
		Return(temporal.NewNonRetryableApplicationError("missing", franchiseactivities.FranchiseNotFoundErrorType, nil))
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(run, nil)

	_, err := NewTemporalClosure(c).CloseFranchise(context.Background(), 9)

	assert.ErrorIs(t, err, ports.ErrNotFound)
}
