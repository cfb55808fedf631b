//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-pizza-service/internal/clients/http/pizza"
	"github.com/Apurer/go-gin-pizza-service/internal/dashboard"
	pacttest "github.com/Apurer/go-gin-pizza-service/test/pact"
)

func TestAdminDashboardContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	problemContentType := matchers.Regex("application/problem+json", "application\\/problem\\+json.*")
	role := matchers.Map{"role": matchers.Term("admin", "admin|diner|franchisee")}
	user := matchers.Map{
		"id":    matchers.Like(1),
		"name":  matchers.Like("Admin User"),
		"email": matchers.Like("a@jwt.com"),
		"roles": matchers.EachLike(role, 1),
	}
	franchise := matchers.Map{
		"id":     matchers.Like(2),
		"name":   matchers.Like("LotaPizza"),
		"admins": matchers.EachLike(matchers.Map{"id": matchers.Like(2), "name": matchers.Like("Franchise Owner"), "email": matchers.Like("f@jwt.com")}, 1),
		"stores": matchers.EachLike(matchers.Map{"id": matchers.Like(4), "name": matchers.Like("Lehi"), "totalRevenue": matchers.Like(0)}, 1),
	}

	pact.AddInteraction().
		Given(pacttest.StateFixtures).
		UponReceiving("a first page of franchises").
		WithRequest("GET", "/api/franchise", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("page", matchers.S("0"))
			b.Query("limit", matchers.S(fmt.Sprint(dashboard.FranchisePageSize)))
			b.Query("name", matchers.S("*"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"franchises": matchers.EachLike(franchise, 1),
				"more":       matchers.Like(false),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateAdminSignedIn).
		UponReceiving("a first page of users for the admin").
		WithRequest("GET", "/api/user", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("page", matchers.S("0"))
			b.Query("limit", matchers.S(fmt.Sprint(dashboard.UserPageSize)))
			b.Query("name", matchers.S("*"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"users": matchers.EachLike(user, 1),
				"total": matchers.Like(12),
				"page":  matchers.Like(0),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateSignedOut).
		UponReceiving("a profile request without identity").
		WithRequest("GET", "/api/user/me").
		WillRespondWith(http.StatusUnauthorized, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"title":  matchers.S("Unauthorized"),
				"status": matchers.Like(http.StatusUnauthorized),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateAdminSignedIn).
		UponReceiving("a request to close an existing franchise").
		WithRequest("DELETE", fmt.Sprintf("/api/franchise/%d", pacttest.ExistingFranchiseID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"message": matchers.Like("franchise deleted")})
		})

	pact.AddInteraction().
		Given(pacttest.StateAdminSignedIn).
		UponReceiving("a request to close a missing franchise").
		WithRequest("DELETE", fmt.Sprintf("/api/franchise/%d", pacttest.MissingFranchiseID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := pizza.NewClient(fmt.Sprintf("http://%s:%d", host, config.Port), pizza.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		franchises, err := client.GetFranchises(ctx, 0, dashboard.FranchisePageSize, "*")
		if err != nil {
			return fmt.Errorf("list franchises: %w", err)
		}
		if len(franchises.Franchises) == 0 {
			return fmt.Errorf("expected at least one franchise")
		}

		users, err := client.GetUsers(ctx, 0, dashboard.UserPageSize, "*")
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		if len(users.Users) == 0 || users.Total == 0 {
			return fmt.Errorf("expected users, got %+v", users)
		}

		if _, err := client.Me(ctx); !pizza.IsUnauthorized(err) {
			return fmt.Errorf("expected 401 for anonymous profile, got %v", err)
		}

		if err := client.CloseFranchise(ctx, pacttest.ExistingFranchiseID); err != nil {
			return fmt.Errorf("close franchise: %w", err)
		}
		if err := client.CloseFranchise(ctx, pacttest.MissingFranchiseID); !pizza.IsNotFound(err) {
			return fmt.Errorf("expected 404 closing franchise %d, got %v", pacttest.MissingFranchiseID, err)
		}
		return nil
	})
	require.NoError(t, err)
}
