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

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

const tracerName = "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/adapters/observability/service"

// Service decorates the franchise service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	created metric.Int64Counter
	closed  metric.Int64Counter
	stores  metric.Int64UpDownCounter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.created, _ = m.Int64Counter("franchises.service.created", metric.WithDescription("Number of franchises created"))
		s.closed, _ = m.Int64Counter("franchises.service.closed", metric.WithDescription("Number of franchises closed"))
		s.stores, _ = m.Int64UpDownCounter("franchises.service.stores", metric.WithDescription("Net stores opened minus closed"))
	}
}

func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner}
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

func (s *Service) List(ctx context.Context, query ports.ListQuery) (paging.Page[*domain.Franchise], error) {
	ctx, span := s.tracer.Start(ctx, "FranchiseService.List", trace.WithAttributes(
		attribute.Int("page", query.Page.Page),
		attribute.Int("limit", query.Page.Limit),
		attribute.String("filter", query.Filter.Term()),
	))
	defer span.End()
	page, err := s.inner.List(ctx, query)
	if err != nil {
		return page, s.handleError(ctx, span, err, "failed to list franchises")
	}
	span.SetAttributes(attribute.Bool("more", page.More))
	return page, nil
}

func (s *Service) ListForUser(ctx context.Context, actor ports.Actor, userID int64) ([]*domain.Franchise, error) {
	ctx, span := s.tracer.Start(ctx, "FranchiseService.ListForUser", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()
	items, err := s.inner.ListForUser(ctx, actor, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list user franchises", slog.Int64("userId", userID))
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Franchise, error) {
	ctx, span := s.tracer.Start(ctx, "FranchiseService.Get", trace.WithAttributes(attribute.Int64("franchise.id", id)))
	defer span.End()
	return s.inner.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor ports.Actor, input ports.CreateInput) (*domain.Franchise, error) {
	ctx, span := s.tracer.Start(ctx, "FranchiseService.Create", trace.WithAttributes(attribute.String("franchise.name", input.Name)))
	defer span.End()
	franchise, err := s.inner.Create(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create franchise", slog.String("name", input.Name))
	}
	add(ctx, s.created, 1)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "franchise created",
		slog.Int64("franchiseId", franchise.ID), slog.Int("admins", len(franchise.Admins)))
	return franchise, nil
}

func (s *Service) Close(ctx context.Context, actor ports.Actor, id int64) (*domain.ClosureReport, error) {
	ctx, span := s.tracer.Start(ctx, "FranchiseService.Close", trace.WithAttributes(attribute.Int64("franchise.id", id)))
	defer span.End()
	report, err := s.inner.Close(ctx, actor, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to close franchise", slog.Int64("franchiseId", id))
	}
	add(ctx, s.closed, 1)
	if s.stores != nil {
		s.stores.Add(ctx, -int64(len(report.ClosedStores)))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "franchise closed",
		slog.Int64("franchiseId", id), slog.Int("stores", len(report.ClosedStores)))
	return report, nil
}

func (s *Service) CreateStore(ctx context.Context, actor ports.Actor, franchiseID int64, name string) (*domain.Store, error) {
	ctx, span := s.tracer.Start(ctx, "FranchiseService.CreateStore", trace.WithAttributes(attribute.Int64("franchise.id", franchiseID)))
	defer span.End()
	store, err := s.inner.CreateStore(ctx, actor, franchiseID, name)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create store", slog.Int64("franchiseId", franchiseID))
	}
	if s.stores != nil {
		s.stores.Add(ctx, 1)
	}
	return store, nil
}

func (s *Service) CloseStore(ctx context.Context, actor ports.Actor, franchiseID, storeID int64) error {
	ctx, span := s.tracer.Start(ctx, "FranchiseService.CloseStore", trace.WithAttributes(
		attribute.Int64("franchise.id", franchiseID),
		attribute.Int64("store.id", storeID),
	))
	defer span.End()
	if err := s.inner.CloseStore(ctx, actor, franchiseID, storeID); err != nil {
		return s.handleError(ctx, span, err, "failed to close store",
			slog.Int64("franchiseId", franchiseID), slog.Int64("storeId", storeID))
	}
	if s.stores != nil {
		s.stores.Add(ctx, -1)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "store closed", slog.Int64("franchiseId", franchiseID), slog.Int64("storeId", storeID))
	return nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

func add(ctx context.Context, c metric.Int64Counter, n int64) {
	if c != nil {
		c.Add(ctx, n)
	}
}

var _ ports.Service = (*Service)(nil)
