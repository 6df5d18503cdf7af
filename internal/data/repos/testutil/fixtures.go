package testutil

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	types "github.com/yungbote/contactbook-backend/internal/domain"
)

// SeedUser inserts a user whose password is a plain bcrypt hash of password,
// which is enough for repo tests. Users that must log in go through
// services.UserService.Register instead. A non-empty token leaves the user
// logged in with it.
func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username, password, token string) *types.User {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	u := &types.User{
		Username: username,
		Password: string(hash),
		Name:     username,
	}
	if token != "" {
		u.Token = &token
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedContact(tb testing.TB, ctx context.Context, tx *gorm.DB, username, firstName string) *types.Contact {
	tb.Helper()
	last := "test"
	email := firstName + "@example.com"
	phone := "08123456789"
	c := &types.Contact{
		Username:  username,
		FirstName: firstName,
		LastName:  &last,
		Email:     &email,
		Phone:     &phone,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contact: %v", err)
	}
	return c
}

func SeedAddress(tb testing.TB, ctx context.Context, tx *gorm.DB, contactID uint) *types.Address {
	tb.Helper()
	street := "Jalan test"
	city := "Kota test"
	province := "Provinsi test"
	a := &types.Address{
		ContactID:  contactID,
		Street:     &street,
		City:       &city,
		Province:   &province,
		Country:    "Indonesia",
		PostalCode: "12345",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed address: %v", err)
	}
	return a
}

func StrPtr(s string) *string { return &s }
