package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userdomain "github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

const tracerName = "github.com/Apurer/go-gin-pizza-service/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) Register(ctx context.Context, input userports.RegisterInput) (*userports.Session, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register", trace.WithAttributes(attribute.String("user.email", input.Email)))
	defer span.End()
	session, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user", slog.String("email", input.Email))
	}
	s.metrics.registered.add(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "user registered", slog.Int64("userId", session.User.ID))
	return session, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*userports.Session, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login", trace.WithAttributes(attribute.String("user.email", email)))
	defer span.End()
	session, err := s.inner.Login(ctx, email, password)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "login failed", slog.String("email", email))
	}
	s.metrics.logins.add(ctx)
	return session, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Logout")
	defer span.End()
	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	return nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Authenticate")
	defer span.End()
	user, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int64("user.id", user.ID))
	return user, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Get", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()
	return s.inner.Get(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetByEmail", trace.WithAttributes(attribute.String("user.email", email)))
	defer span.End()
	return s.inner.GetByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context, query userports.ListQuery) (paging.Page[*userdomain.User], error) {
	ctx, span := s.tracer.Start(ctx, "UserService.List", trace.WithAttributes(
		attribute.Int("page", query.Page.Page),
		attribute.Int("limit", query.Page.Limit),
		attribute.String("filter", query.Filter.Term()),
	))
	defer span.End()
	page, err := s.inner.List(ctx, query)
	if err != nil {
		return page, s.handleError(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("total", page.Total))
	return page, nil
}

func (s *Service) Update(ctx context.Context, id int64, input userports.UpdateInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Update", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()
	user, err := s.inner.Update(ctx, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update user", slog.Int64("userId", id))
	}
	s.metrics.updated.add(ctx)
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Delete", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete user", slog.Int64("userId", id))
	}
	s.metrics.deleted.add(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "user deleted", slog.Int64("userId", id))
	return nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type counter struct {
	c metric.Int64Counter
}

func (c counter) add(ctx context.Context) {
	if c.c != nil {
		c.c.Add(ctx, 1)
	}
}

type serviceMetrics struct {
	registered counter
	logins     counter
	updated    counter
	deleted    counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("users.service.registered", metric.WithDescription("Number of users registered"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of successful logins"))
	updated, _ := m.Int64Counter("users.service.updated", metric.WithDescription("Number of users updated"))
	deleted, _ := m.Int64Counter("users.service.deleted", metric.WithDescription("Number of users deleted"))
	return serviceMetrics{
		registered: counter{registered},
		logins:     counter{logins},
		updated:    counter{updated},
		deleted:    counter{deleted},
	}
}

var _ userports.Service = (*Service)(nil)
