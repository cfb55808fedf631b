// Package auth signs and verifies the HS256 tokens handed to pizza clients.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	userports "github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeReceipt = "receipt"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
)

// Claims carries the identity of an access token.
type Claims struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	TokenType string   `json:"typ"`
	jwt.RegisteredClaims
}

// ReceiptClaims describes a placed order for downstream settlement.
type ReceiptClaims struct {
	DinerID   int64   `json:"dinerId"`
	OrderID   int64   `json:"orderId"`
	StoreID   int64   `json:"storeId"`
	Total     float64 `json:"total"`
	TokenType string  `json:"typ"`
	jwt.RegisteredClaims
}

// Manager issues and validates tokens with a shared secret.
type Manager struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewManager(secret string, accessTTL time.Duration) *Manager {
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), accessTTL: accessTTL, now: time.Now}
}

// Issue implements the users TokenIssuer port.
func (m *Manager) Issue(subject userports.TokenSubject) (string, error) {
	now := m.now().UTC()
	claims := Claims{
		Name:      subject.Name,
		Email:     subject.Email,
		Roles:     subject.Roles,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(subject.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify returns the user id of a valid access token.
func (m *Manager) Verify(token string) (int64, error) {
	claims := &Claims{}
	if err := m.parse(token, claims); err != nil {
		return 0, err
	}
	if claims.TokenType != tokenTypeAccess {
		return 0, ErrInvalidTokenType
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// SignReceipt produces the settlement token returned with a placed order.
func (m *Manager) SignReceipt(receipt ReceiptClaims) (string, error) {
	now := m.now().UTC()
	receipt.TokenType = tokenTypeReceipt
	receipt.RegisteredClaims = jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Subject:  strconv.FormatInt(receipt.DinerID, 10),
		IssuedAt: jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, receipt).SignedString(m.secret)
}

// VerifyReceipt parses a settlement token.
func (m *Manager) VerifyReceipt(token string) (*ReceiptClaims, error) {
	claims := &ReceiptClaims{}
	if err := m.parse(token, claims); err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeReceipt {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

func (m *Manager) parse(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

var _ userports.TokenIssuer = (*Manager)(nil)
