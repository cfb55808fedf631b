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

	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

const tracerName = "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	placed  metric.Int64Counter
	revenue metric.Float64Counter
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
		s.placed, _ = m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
		s.revenue, _ = m.Float64Counter("orders.service.revenue", metric.WithDescription("Order revenue"), metric.WithUnit("BTC"))
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

func (s *Service) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Menu")
	defer span.End()
	items, err := s.inner.Menu(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load menu")
	}
	return items, nil
}

func (s *Service) AddMenuItem(ctx context.Context, admin bool, item domain.MenuItem) ([]domain.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.AddMenuItem", trace.WithAttributes(attribute.String("menu.title", item.Title)))
	defer span.End()
	items, err := s.inner.AddMenuItem(ctx, admin, item)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add menu item", slog.String("title", item.Title))
	}
	return items, nil
}

func (s *Service) History(ctx context.Context, dinerID int64, page paging.Request) (*ports.History, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.History", trace.WithAttributes(
		attribute.Int64("diner.id", dinerID),
		attribute.Int("page", page.Page),
	))
	defer span.End()
	history, err := s.inner.History(ctx, dinerID, page)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order history", slog.Int64("dinerId", dinerID))
	}
	return history, nil
}

func (s *Service) Place(ctx context.Context, input ports.PlaceInput) (*ports.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Place", trace.WithAttributes(
		attribute.Int64("diner.id", input.DinerID),
		attribute.Int64("store.id", input.StoreID),
		attribute.Bool("idempotent", input.IdempotencyKey != ""),
	))
	defer span.End()
	receipt, err := s.inner.Place(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Int64("dinerId", input.DinerID))
	}
	if s.placed != nil {
		s.placed.Add(ctx, 1)
	}
	if s.revenue != nil {
		s.revenue.Add(ctx, receipt.Order.Total(), metric.WithAttributes(attribute.Int64("store.id", receipt.Order.StoreID)))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order placed",
		slog.Int64("orderId", receipt.Order.ID), slog.Int64("dinerId", input.DinerID), slog.Int("items", len(receipt.Order.Items)))
	return receipt, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

var _ ports.Service = (*Service)(nil)
