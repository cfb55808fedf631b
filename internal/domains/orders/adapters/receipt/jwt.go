// Package receipt signs order settlement tokens with the platform JWT manager.
package receipt

import (
	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-pizza-service/internal/platform/auth"
)

var _ ports.ReceiptSigner = (*Signer)(nil)

type Signer struct {
	tokens *auth.Manager
}

func NewSigner(tokens *auth.Manager) *Signer {
	return &Signer{tokens: tokens}
}

func (s *Signer) SignReceipt(order *domain.Order) (string, error) {
	return s.tokens.SignReceipt(auth.ReceiptClaims{
		DinerID: order.DinerID,
		OrderID: order.ID,
		StoreID: order.StoreID,
		Total:   order.Total(),
	})
}
