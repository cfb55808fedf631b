package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
)

// Closer runs the steps of a franchise closure. The Temporal activities
// call the steps one by one; Run executes them in-process.
type Closer struct {
	repo ports.Repository
}

func NewCloser(repo ports.Repository) *Closer {
	return &Closer{repo: repo}
}

// StoreIDs lists the stores a closure has to remove.
func (c *Closer) StoreIDs(ctx context.Context, franchiseID int64) ([]int64, error) {
	franchise, err := c.repo.Get(ctx, franchiseID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(franchise.Stores))
	for _, s := range franchise.Stores {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// CloseStore removes one store. A store that is already gone counts as closed.
func (c *Closer) CloseStore(ctx context.Context, franchiseID, storeID int64) error {
	err := c.repo.DeleteStore(ctx, franchiseID, storeID)
	if errors.Is(err, ports.ErrStoreNotFound) {
		return nil
	}
	return err
}

// RemoveFranchise deletes the franchise row once its stores are gone.
func (c *Closer) RemoveFranchise(ctx context.Context, franchiseID int64) error {
	return c.repo.Delete(ctx, franchiseID)
}

// Run closes every store and then the franchise.
func (c *Closer) Run(ctx context.Context, franchiseID int64) (*domain.ClosureReport, error) {
	ids, err := c.StoreIDs(ctx, franchiseID)
	if err != nil {
		return nil, err
	}
	report := &domain.ClosureReport{FranchiseID: franchiseID, ClosedStores: make([]int64, 0, len(ids))}
	for _, id := range ids {
		if err := c.CloseStore(ctx, franchiseID, id); err != nil {
			return nil, err
		}
		report.ClosedStores = append(report.ClosedStores, id)
	}
	if err := c.RemoveFranchise(ctx, franchiseID); err != nil {
		return nil, err
	}
	return report, nil
}

// CloseFranchise makes Closer usable as the in-process orchestrator.
func (c *Closer) CloseFranchise(ctx context.Context, franchiseID int64) (*domain.ClosureReport, error) {
	return c.Run(ctx, franchiseID)
}

var _ ports.ClosureOrchestrator = (*Closer)(nil)
