package services

import (
	"fmt"

	appdb "github.com/yungbote/contactbook-backend/internal/data/db"
	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
	"github.com/yungbote/contactbook-backend/internal/platform/dbctx"
)

// Lookup loads the child row id that belongs to parent.
type Lookup[P any, T any] func(dbc dbctx.Context, parent P, id uint) (*T, error)

// Gate turns a scoped lookup into an existence/ownership check. A missing
// row and a row owned by someone else are indistinguishable to callers.
type Gate[P any, T any] struct {
	lookup      Lookup[P, T]
	notFoundMsg string
}

func NewGate[P any, T any](lookup Lookup[P, T], notFoundMsg string) Gate[P, T] {
	return Gate[P, T]{lookup: lookup, notFoundMsg: notFoundMsg}
}

func (g Gate[P, T]) Check(dbc dbctx.Context, parent P, id uint) (*T, error) {
	row, err := g.lookup(dbc, parent, id)
	if err != nil {
		if appdb.IsNotFound(err) {
			return nil, apierr.NotFound(g.notFoundMsg)
		}
		return nil, apierr.Internal(fmt.Errorf("gate lookup: %w", err))
	}
	return row, nil
}
