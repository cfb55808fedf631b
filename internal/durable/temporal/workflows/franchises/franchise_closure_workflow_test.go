package franchises

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/adapters/memory"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/application"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	franchiseactivities "github.com/Apurer/go-gin-pizza-service/internal/durable/temporal/activities/franchises"
)

func newClosureEnv(t *testing.T) (*testsuite.TestWorkflowEnvironment, *memory.Repository) {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	repo := memory.NewRepository()
	repo.Reset(&domain.Franchise{
		ID:     2,
		Name:   "LotaPizza",
		Stores: []domain.Store{{ID: 4, Name: "Lehi"}, {ID: 5, Name: "Springville"}, {ID: 6, Name: "American Fork"}},
	})
	acts := franchiseactivities.NewActivities(application.NewCloser(repo))
	env.RegisterActivityWithOptions(acts.ListStores, activity.RegisterOptions{Name: franchiseactivities.ListStoresActivityName})
	env.RegisterActivityWithOptions(acts.CloseStore, activity.RegisterOptions{Name: franchiseactivities.CloseStoreActivityName})
	env.RegisterActivityWithOptions(acts.RemoveFranchise, activity.RegisterOptions{Name: franchiseactivities.RemoveFranchiseActivityName})
	return env, repo
}

func TestFranchiseClosureWorkflowClosesStoresThenFranchise(t *testing.T) {
	env, repo := newClosureEnv(t)

	env.ExecuteWorkflow(FranchiseClosureWorkflow, FranchiseClosureWorkflowInput{FranchiseID: 2})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var report domain.ClosureReport
	require.NoError(t, env.GetWorkflowResult(&report))
	assert.Equal(t, int64(2), report.FranchiseID)
	assert.Equal(t, []int64{4, 5, 6}, report.ClosedStores)

	_, err := repo.Get(context.Background(), 2)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestFranchiseClosureWorkflowMissingFranchise(t *testing.T) {
	env, _ := newClosureEnv(t)

	env.ExecuteWorkflow(FranchiseClosureWorkflow, FranchiseClosureWorkflowInput{FranchiseID: 99})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.True(t, franchiseactivities.IsFranchiseNotFound(err))
}
