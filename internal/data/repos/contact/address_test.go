package contact

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/contactbook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/dbctx"
)

func TestAddressRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewAddressRepo(db, testutil.Logger(t))

	testutil.SeedUser(t, ctx, tx, "alice", "secret", "")
	c1 := testutil.SeedContact(t, ctx, tx, "alice", "Eko")
	c2 := testutil.SeedContact(t, ctx, tx, "alice", "Budi")

	created, err := repo.Create(dbc, &types.Address{ContactID: c1.ID, Country: "Indonesia", PostalCode: "11111"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second := testutil.SeedAddress(t, ctx, tx, c1.ID)

	got, err := repo.GetInContact(dbc, c1.ID, created.ID)
	if err != nil {
		t.Fatalf("GetInContact: %v", err)
	}
	if got.Street != nil || got.Country != "Indonesia" {
		t.Fatalf("GetInContact: unexpected result: %+v", got)
	}
	if _, err := repo.GetInContact(dbc, c2.ID, created.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetInContact (wrong contact): expected not found, got %v", err)
	}

	list, err := repo.ListByContact(dbc, c1.ID)
	if err != nil {
		t.Fatalf("ListByContact: %v", err)
	}
	if len(list) != 2 || list[0].ID != created.ID || list[1].ID != second.ID {
		t.Fatalf("ListByContact: unexpected result: %+v", list)
	}
	empty, err := repo.ListByContact(dbc, c2.ID)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("ListByContact (empty): %v %v", empty, err)
	}

	updated, err := repo.UpdateFields(dbc, c1.ID, created.ID, map[string]interface{}{"city": "Jakarta", "postal_code": "22222"})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if updated.City == nil || *updated.City != "Jakarta" || updated.PostalCode != "22222" || updated.Country != "Indonesia" {
		t.Fatalf("UpdateFields: unexpected result: %+v", updated)
	}

	if err := repo.Delete(dbc, c1.ID, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(dbc, c1.ID, created.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("Delete twice: expected not found, got %v", err)
	}
}
