package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/shared/paging"
)

// DefaultPageSize is the number of orders in one history page.
const DefaultPageSize = 10

// Service orchestrates ordering use cases.
type Service struct {
	repo        ports.Repository
	signer      ports.ReceiptSigner
	idempotency ports.IdempotencyStore
	now         func() time.Time
}

type Option func(*Service)

// WithIdempotencyStore enables Idempotency-Key handling for Place.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

// WithClock overrides the order timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, signer ports.ReceiptSigner, opts ...Option) *Service {
	s := &Service{repo: repo, signer: signer, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.Menu(ctx)
}

// AddMenuItem appends an item and returns the whole menu.
func (s *Service) AddMenuItem(ctx context.Context, admin bool, item domain.MenuItem) ([]domain.MenuItem, error) {
	if !admin {
		return nil, ports.ErrForbidden
	}
	if err := item.Validate(); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.AddMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return s.repo.Menu(ctx)
}

// History lists a diner's orders. Pages are one-based; page 0 is read as 1.
func (s *Service) History(ctx context.Context, dinerID int64, page paging.Request) (*ports.History, error) {
	if page.Page < 1 {
		page.Page = 1
	}
	req := paging.Request{Page: page.Page - 1, Limit: page.Limit}.Normalize(DefaultPageSize)
	result, err := s.repo.ListByDiner(ctx, dinerID, req)
	if err != nil {
		return nil, err
	}
	return &ports.History{DinerID: dinerID, Orders: result.Items, Page: page.Page, More: result.More}, nil
}

// Place records the order and signs its receipt. A repeated Idempotency-Key
// with the same payload replays the original order.
func (s *Service) Place(ctx context.Context, input ports.PlaceInput) (*ports.Receipt, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	var fingerprint string
	if key != "" && s.idempotency != nil {
		var err error
		if fingerprint, err = FingerprintPlace(input); err != nil {
			return nil, err
		}
		existing, err := s.idempotency.Get(ctx, input.DinerID, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.replay(ctx, *existing, fingerprint)
		}
	}

	order, err := domain.NewOrder(input.DinerID, input.FranchiseID, input.StoreID, s.now(), input.Items)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	if fingerprint != "" {
		record := ports.IdempotencyRecord{Key: key, DinerID: input.DinerID, RequestHash: fingerprint, OrderID: saved.ID}
		stored, err := s.idempotency.Save(ctx, record)
		if err != nil {
			return nil, err
		}
		if stored != nil && stored.OrderID != saved.ID {
			return s.replay(ctx, *stored, fingerprint)
		}
	}
	return s.sign(saved)
}

func (s *Service) replay(ctx context.Context, record ports.IdempotencyRecord, fingerprint string) (*ports.Receipt, error) {
	if record.RequestHash != fingerprint {
		return nil, ports.ErrIdempotencyConflict
	}
	order, err := s.repo.GetByID(ctx, record.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("idempotent order %d missing: %w", record.OrderID, err)
		}
		return nil, err
	}
	return s.sign(order)
}

func (s *Service) sign(order *domain.Order) (*ports.Receipt, error) {
	if s.signer == nil {
		return &ports.Receipt{Order: order}, nil
	}
	token, err := s.signer.SignReceipt(order)
	if err != nil {
		return nil, err
	}
	return &ports.Receipt{Order: order, JWT: token}, nil
}

var _ ports.Service = (*Service)(nil)
