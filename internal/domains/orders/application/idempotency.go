package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/Apurer/go-gin-pizza-service/internal/domains/orders/ports"
)

type normalizedPlaceInput struct {
	DinerID     int64            `json:"dinerId"`
	FranchiseID int64            `json:"franchiseId"`
	StoreID     int64            `json:"storeId"`
	Items       []normalizedItem `json:"items"`
}

type normalizedItem struct {
	MenuID      int64   `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// FingerprintPlace hashes the order payload, excluding the idempotency key.
// Item order is significant.
func FingerprintPlace(input ports.PlaceInput) (string, error) {
	normalized := normalizedPlaceInput{
		DinerID:     input.DinerID,
		FranchiseID: input.FranchiseID,
		StoreID:     input.StoreID,
		Items:       make([]normalizedItem, 0, len(input.Items)),
	}
	for _, item := range input.Items {
		normalized.Items = append(normalized.Items, normalizedItem{
			MenuID:      item.MenuID,
			Description: item.Description,
			Price:       item.Price,
		})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
