package services

import "github.com/google/uuid"

// TokenIssuer mints opaque session tokens. Tokens carry no claims; the
// users table is the only authority on whether one is live.
type TokenIssuer interface {
	Issue() string
}

type uuidIssuer struct{}

func NewTokenIssuer() TokenIssuer { return uuidIssuer{} }

func (uuidIssuer) Issue() string { return uuid.NewString() }
