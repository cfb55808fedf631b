package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/domain"
)

// ErrInvalidInput signals the request violated a franchise invariant.
var ErrInvalidInput = errors.New("invalid franchise input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativeRevenue) ||
		errors.Is(err, domain.ErrDuplicateStoreID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
