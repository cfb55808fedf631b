package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/domain"
)

// ErrInvalidInput signals the order or menu item violated a domain invariant.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidFranchise) ||
		errors.Is(err, domain.ErrInvalidStore) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidMenuItem) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrEmptyTitle) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
