package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"pg unique", &pgconn.PgError{Code: "23505"}, true},
		{"pg other", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite text", errors.New("UNIQUE constraint failed: users.username"), true},
		{"other", errors.New("connection reset"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDuplicateKey(tc.err); got != tc.want {
				t.Fatalf("got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, User: "app", Password: "p@ss", Name: "contacts"}
	want := "postgres://app:p%40ss@db:5432/contacts?sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("got=%q want=%q", got, want)
	}
	cfg.DSN = "postgres://override"
	if got := cfg.PostgresDSN(); got != "postgres://override" {
		t.Fatalf("DSN should win, got %q", got)
	}
}
