package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

// DefaultPageSize applies when a list request omits its limit.
const DefaultPageSize = 10

// Service exposes user bounded context use cases.
type Service struct {
	repo         ports.Repository
	sessions     ports.SessionStore
	tokens       ports.TokenIssuer
	passwordCost int
}

type Option func(*Service)

// WithPasswordCost overrides the bcrypt cost used for new hashes.
func WithPasswordCost(cost int) Option {
	return func(s *Service) { s.passwordCost = cost }
}

func NewService(repo ports.Repository, sessions ports.SessionStore, tokens ports.TokenIssuer, opts ...Option) *Service {
	s := &Service{repo: repo, sessions: sessions, tokens: tokens, passwordCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register creates a diner account and signs it in.
func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*ports.Session, error) {
	user, err := domain.NewUser(0, input.Name, input.Email, input.Password, s.passwordCost,
		domain.RoleAssignment{Role: domain.RoleDiner})
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return s.startSession(ctx, created)
}

func (s *Service) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, mapError(ports.ErrInvalidCredentials)
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	return s.startSession(ctx, user)
}

// Logout revokes the token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a bearer token to a live user.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, mapError(ports.ErrSessionNotFound)
	}
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	stored, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	if stored != id {
		return nil, mapError(ports.ErrSessionNotFound)
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, mapError(ports.ErrSessionNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) List(ctx context.Context, query ports.ListQuery) (paging.Page[*domain.User], error) {
	query.Page = query.Page.Normalize(DefaultPageSize)
	return s.repo.List(ctx, query)
}

// Update applies a partial patch. Roles are replaced only when provided.
func (s *Service) Update(ctx context.Context, id int64, input ports.UpdateInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		if err := user.SetName(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Password != nil && *input.Password != "" {
		if err := user.SetPassword(*input.Password, s.passwordCost); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Roles != nil {
		if err := user.SetRoles(input.Roles); err != nil {
			return nil, mapError(err)
		}
	}
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// Delete removes the user and revokes their sessions. Repeated deletes succeed.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.sessions.DeleteUser(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) startSession(ctx context.Context, user *domain.User) (*ports.Session, error) {
	token, err := s.tokens.Issue(Subject(user))
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, token, user.ID); err != nil {
		return nil, err
	}
	return &ports.Session{User: user, Token: token}, nil
}

// Subject projects the token claims of a user.
func Subject(user *domain.User) ports.TokenSubject {
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r.Role))
	}
	return ports.TokenSubject{ID: user.ID, Name: user.Name, Email: user.Email, Roles: roles}
}

var _ ports.Service = (*Service)(nil)
