package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Share token errors.
var (
	// ErrInvalidShareToken is returned when a share token fails
	// signature or claim validation.
	ErrInvalidShareToken = errors.New("invalid share token")

	// ErrExpiredShareToken is returned when a share token has expired.
	ErrExpiredShareToken = errors.New("share token expired")
)

// ShareClaims are the claims carried by a deck share-invite token.
type ShareClaims struct {
	DeckID    string `json:"deck_id"`
	Recipient string `json:"recipient"`
	jwt.RegisteredClaims
}

// ShareTokenIssuer mints and verifies signed share-invite tokens. A token
// binds one deck to one recipient so a share link cannot be replayed for a
// different deck or address.
type ShareTokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewShareTokenIssuer creates a ShareTokenIssuer with the given HMAC
// secret and token lifetime.
func NewShareTokenIssuer(secret string, ttl time.Duration) (*ShareTokenIssuer, error) {
	if len(secret) < 32 {
		return nil, errors.New("share token secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("share token TTL must be positive")
	}

	return &ShareTokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Issue creates a signed token granting the recipient access to the deck.
func (i *ShareTokenIssuer) Issue(deckID uuid.UUID, recipient string) (string, error) {
	now := time.Now().UTC()
	claims := ShareClaims{
		DeckID:    deckID.String(),
		Recipient: recipient,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns its claims.
func (i *ShareTokenIssuer) Verify(tokenString string) (*ShareClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&ShareClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.secret, nil
		},
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredShareToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidShareToken, err)
	}

	claims, ok := token.Claims.(*ShareClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidShareToken
	}
	return claims, nil
}
