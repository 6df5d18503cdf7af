package services

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify reports whether plain matches hash. A mismatch is not an error.
	Verify(hash, plain string) (bool, error)
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher clamps cost into bcrypt's accepted range.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &bcryptHasher{cost: cost}
}

// prehash folds any password into 44 ASCII bytes, under bcrypt's 72-byte cap.
func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	out, err := bcrypt.GenerateFromPassword(prehash(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h *bcryptHasher) Verify(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), prehash(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
