package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

// DefaultPageSize applies when a franchise list request omits its limit.
const DefaultPageSize = 10

// Service implements franchise use cases over a repository.
type Service struct {
	repo    ports.Repository
	admins  ports.AdminDirectory
	closure ports.ClosureOrchestrator
}

// NewService wires the franchise use cases. A nil closure orchestrator
// closes franchises inline.
func NewService(repo ports.Repository, admins ports.AdminDirectory, closure ports.ClosureOrchestrator) *Service {
	if closure == nil {
		closure = NewCloser(repo)
	}
	return &Service{repo: repo, admins: admins, closure: closure}
}

func (s *Service) List(ctx context.Context, query ports.ListQuery) (paging.Page[*domain.Franchise], error) {
	query.Page = query.Page.Normalize(DefaultPageSize)
	return s.repo.List(ctx, query)
}

// ListForUser returns the franchises administered by userID. Callers other
// than the user and admins get an empty list.
func (s *Service) ListForUser(ctx context.Context, actor ports.Actor, userID int64) ([]*domain.Franchise, error) {
	if !actor.Admin && actor.UserID != userID {
		return []*domain.Franchise{}, nil
	}
	return s.repo.ListByAdmin(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Franchise, error) {
	return s.repo.Get(ctx, id)
}

// Create registers a franchise. Every admin email must belong to a user.
func (s *Service) Create(ctx context.Context, actor ports.Actor, input ports.CreateInput) (*domain.Franchise, error) {
	if !actor.Admin {
		return nil, ports.ErrForbidden
	}
	admins := make([]domain.AdminRef, 0, len(input.AdminEmails))
	for _, email := range input.AdminEmails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		if s.admins == nil {
			return nil, fmt.Errorf("%w: %s", ports.ErrAdminNotFound, email)
		}
		ref, err := s.admins.ResolveAdmin(ctx, email)
		if err != nil {
			return nil, err
		}
		admins = append(admins, ref)
	}
	franchise, err := domain.NewFranchise(0, input.Name, admins...)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, franchise)
	if err != nil {
		return nil, mapError(err)
	}
	if s.admins != nil {
		for _, admin := range created.Admins {
			if err := s.admins.GrantFranchisee(ctx, admin.ID, created.ID); err != nil {
				return nil, err
			}
		}
	}
	return created, nil
}

// Close removes a franchise together with its stores.
func (s *Service) Close(ctx context.Context, actor ports.Actor, id int64) (*domain.ClosureReport, error) {
	if !actor.Admin {
		return nil, ports.ErrForbidden
	}
	return s.closure.CloseFranchise(ctx, id)
}

func (s *Service) CreateStore(ctx context.Context, actor ports.Actor, franchiseID int64, name string) (*domain.Store, error) {
	if err := s.authorize(ctx, actor, franchiseID); err != nil {
		return nil, err
	}
	store, err := domain.NewStore(0, name, 0)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.CreateStore(ctx, franchiseID, store)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (s *Service) CloseStore(ctx context.Context, actor ports.Actor, franchiseID, storeID int64) error {
	if err := s.authorize(ctx, actor, franchiseID); err != nil {
		return err
	}
	return s.repo.DeleteStore(ctx, franchiseID, storeID)
}

// authorize admits admins and the franchise's own admins.
func (s *Service) authorize(ctx context.Context, actor ports.Actor, franchiseID int64) error {
	if actor.Admin {
		return nil
	}
	franchise, err := s.repo.Get(ctx, franchiseID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ports.ErrForbidden
		}
		return err
	}
	if !franchise.AdministeredBy(actor.UserID) {
		return ports.ErrForbidden
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
