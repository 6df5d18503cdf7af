package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/contactbook-backend/internal/platform/ctxutil"
	"github.com/yungbote/contactbook-backend/internal/platform/dbctx"
)

// TxRunner runs fn inside one transaction. fn sees the transaction through
// dbc; returning an error rolls it back.
type TxRunner interface {
	InTx(dbc dbctx.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(dbc dbctx.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return errors.New("tx runner: nil db")
	}
	// Nest into a caller's transaction as a savepoint.
	return dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctxutil.Default(dbc.Ctx), Tx: tx})
	})
}
