package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	appdb "github.com/yungbote/contactbook-backend/internal/data/db"
	"github.com/yungbote/contactbook-backend/internal/data/repos"
	"github.com/yungbote/contactbook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
	"github.com/yungbote/contactbook-backend/internal/platform/dbctx"
	"github.com/yungbote/contactbook-backend/internal/validation"
)

type recordedEvents struct {
	mu     sync.Mutex
	events []string
}

func (r *recordedEvents) RecordAuthEvent(event, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event+":"+outcome)
}

type fixture struct {
	dbc       dbctx.Context
	users     UserService
	contacts  ContactService
	addresses AddressService
	userRepo  repos.UserRepo
	events    *recordedEvents
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(db, log)
	events := &recordedEvents{}
	contacts := NewContactService(log, repos.NewContactRepo(db, log))
	return &fixture{
		dbc:       dbctx.Context{Ctx: context.Background()},
		users:     NewUserService(log, userRepo, NewBcryptHasher(bcrypt.MinCost), NewTokenIssuer(), events),
		contacts:  contacts,
		addresses: NewAddressService(log, repos.NewAddressRepo(db, log), contacts, appdb.NewTxRunner(db)),
		userRepo:  userRepo,
		events:    events,
	}
}

func (f *fixture) login(t *testing.T, username string) *types.User {
	t.Helper()
	if _, err := f.users.Register(f.dbc, &validation.RegisterUserRequest{Username: username, Password: "secret", Name: username}); err != nil {
		t.Fatalf("Register(%s): %v", username, err)
	}
	res, err := f.users.Login(f.dbc, &validation.LoginUserRequest{Username: username, Password: "secret"})
	if err != nil {
		t.Fatalf("Login(%s): %v", username, err)
	}
	u, err := f.users.Authenticate(f.dbc, res.Token)
	if err != nil {
		t.Fatalf("Authenticate(%s): %v", username, err)
	}
	return u
}

func expectErr(t *testing.T, err error, status int, msg string) {
	t.Helper()
	var e *apierr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *apierr.Error, got %T (%v)", err, err)
	}
	if e.Status != status || (msg != "" && e.Message != msg) {
		t.Fatalf("got status=%d message=%q, want %d %q", e.Status, e.Message, status, msg)
	}
}

func strPtr(s string) *string { return &s }

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	res, err := f.users.Register(f.dbc, &validation.RegisterUserRequest{Username: "test", Password: "test", Name: "test"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Username != "test" || res.Name != "test" || res.Token != "" {
		t.Fatalf("Register: unexpected response: %+v", res)
	}

	stored, err := f.userRepo.GetByUsername(f.dbc, "test")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if stored.Password == "test" {
		t.Fatalf("password stored in plain text")
	}

	_, err = f.users.Register(f.dbc, &validation.RegisterUserRequest{Username: "test", Password: "other", Name: "other"})
	expectErr(t, err, 400, "username already registered")

	_, err = f.users.Register(f.dbc, &validation.RegisterUserRequest{})
	expectErr(t, err, 400, "")

	_, err = f.users.Login(f.dbc, &validation.LoginUserRequest{Username: "test", Password: "wrong"})
	expectErr(t, err, 401, "wrong username or password")
	_, err = f.users.Login(f.dbc, &validation.LoginUserRequest{Username: "ghost", Password: "test"})
	expectErr(t, err, 401, "wrong username or password")

	first, err := f.users.Login(f.dbc, &validation.LoginUserRequest{Username: "test", Password: "test"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if first.Token == "" || first.Username != "test" {
		t.Fatalf("Login: unexpected response: %+v", first)
	}
	second, err := f.users.Login(f.dbc, &validation.LoginUserRequest{Username: "test", Password: "test"})
	if err != nil {
		t.Fatalf("Login again: %v", err)
	}
	if second.Token == first.Token {
		t.Fatalf("Login must issue a fresh token")
	}
	_, err = f.users.Authenticate(f.dbc, first.Token)
	expectErr(t, err, 401, "Unauthorized")

	f.events.mu.Lock()
	defer f.events.mu.Unlock()
	want := []string{"register:success", "register:conflict", "register:invalid", "login:rejected", "login:rejected", "login:success", "login:success", "authenticate:rejected"}
	if len(f.events.events) != len(want) {
		t.Fatalf("events: got %v want %v", f.events.events, want)
	}
	for i := range want {
		if f.events.events[i] != want[i] {
			t.Fatalf("events: got %v want %v", f.events.events, want)
		}
	}
}

func TestUpdateAndLogout(t *testing.T) {
	f := newFixture(t)
	u := f.login(t, "test")

	got, err := f.users.Get(f.dbc, u)
	if err != nil || got.Username != "test" || got.Token != "" {
		t.Fatalf("Get: %+v %v", got, err)
	}

	_, err = f.users.Update(f.dbc, u, &validation.UpdateUserRequest{Name: strPtr("ab")})
	expectErr(t, err, 400, "")

	msg, err := f.users.Update(f.dbc, u, &validation.UpdateUserRequest{Name: strPtr("Budi")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !msg.Success || msg.Message != "Update User Successfully" {
		t.Fatalf("Update: unexpected response: %+v", msg)
	}
	stored, _ := f.userRepo.GetByUsername(f.dbc, "test")
	if stored.Name != "Budi" {
		t.Fatalf("Update: name not stored: %+v", stored)
	}

	if _, err := f.users.Update(f.dbc, u, &validation.UpdateUserRequest{Password: strPtr("newsecret")}); err != nil {
		t.Fatalf("Update password: %v", err)
	}
	if _, err := f.users.Login(f.dbc, &validation.LoginUserRequest{Username: "test", Password: "secret"}); err == nil {
		t.Fatalf("old password still accepted")
	}
	relogged, err := f.users.Login(f.dbc, &validation.LoginUserRequest{Username: "test", Password: "newsecret"})
	if err != nil {
		t.Fatalf("Login with new password: %v", err)
	}
	stored, _ = f.userRepo.GetByUsername(f.dbc, "test")
	if stored.Name != "Budi" {
		t.Fatalf("password update touched name: %+v", stored)
	}

	u, err = f.users.Authenticate(f.dbc, relogged.Token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	for i := 0; i < 2; i++ {
		msg, err := f.users.Logout(f.dbc, u)
		if err != nil {
			t.Fatalf("Logout #%d: %v", i+1, err)
		}
		if !msg.Success || msg.Message != "User Logged Out Successfully" {
			t.Fatalf("Logout #%d: unexpected response: %+v", i+1, msg)
		}
	}
	stored, _ = f.userRepo.GetByUsername(f.dbc, "test")
	if stored.Token != nil {
		t.Fatalf("token not cleared: %v", *stored.Token)
	}
	_, err = f.users.Authenticate(f.dbc, relogged.Token)
	expectErr(t, err, 401, "Unauthorized")
	_, err = f.users.Authenticate(f.dbc, "")
	expectErr(t, err, 401, "Unauthorized")
}

func TestStaleLogoutKeepsNewerSession(t *testing.T) {
	f := newFixture(t)
	stale := f.login(t, "test")

	fresh, err := f.users.Login(f.dbc, &validation.LoginUserRequest{Username: "test", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := f.users.Logout(f.dbc, stale); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := f.users.Authenticate(f.dbc, fresh.Token); err != nil {
		t.Fatalf("newer session was logged out: %v", err)
	}
}

func TestContactLifecycle(t *testing.T) {
	f := newFixture(t)
	alice := f.login(t, "alice")
	mallory := f.login(t, "mallory")

	created, err := f.contacts.Create(f.dbc, alice, &validation.CreateContactRequest{
		FirstName: "Eko",
		LastName:  strPtr("Khannedy"),
		Email:     strPtr("eko@example.com"),
		Phone:     strPtr("08999999999"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 || created.FirstName != "Eko" {
		t.Fatalf("Create: unexpected response: %+v", created)
	}

	_, err = f.contacts.Create(f.dbc, alice, &validation.CreateContactRequest{})
	expectErr(t, err, 400, "")

	got, err := f.contacts.Get(f.dbc, alice, &validation.GetContactRequest{ID: created.ID})
	if err != nil || got.ID != created.ID || *got.Email != "eko@example.com" || *got.LastName != "Khannedy" {
		t.Fatalf("Get: got=%+v err=%v", got, err)
	}

	_, err = f.contacts.Get(f.dbc, mallory, &validation.GetContactRequest{ID: created.ID})
	expectErr(t, err, 404, "Contact not found")
	_, err = f.contacts.Update(f.dbc, mallory, &validation.UpdateContactRequest{ID: created.ID, FirstName: strPtr("Hacked")})
	expectErr(t, err, 404, "Contact not found")
	_, err = f.contacts.Remove(f.dbc, mallory, &validation.GetContactRequest{ID: created.ID})
	expectErr(t, err, 404, "Contact not found")
	_, err = f.contacts.Get(f.dbc, alice, &validation.GetContactRequest{ID: 0})
	expectErr(t, err, 400, "")

	updated, err := f.contacts.Update(f.dbc, alice, &validation.UpdateContactRequest{ID: created.ID, Phone: strPtr("08111111111")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if *updated.Phone != "08111111111" || updated.FirstName != "Eko" || *updated.LastName != "Khannedy" || *updated.Email != "eko@example.com" {
		t.Fatalf("Update changed more than submitted: %+v", updated)
	}
	unchanged, err := f.contacts.Update(f.dbc, alice, &validation.UpdateContactRequest{ID: created.ID})
	if err != nil || *unchanged.Phone != "08111111111" {
		t.Fatalf("Update (empty): got=%+v err=%v", unchanged, err)
	}

	removed, err := f.contacts.Remove(f.dbc, alice, &validation.GetContactRequest{ID: created.ID})
	if err != nil || removed.ID != created.ID {
		t.Fatalf("Remove: got=%+v err=%v", removed, err)
	}
	_, err = f.contacts.Remove(f.dbc, alice, &validation.GetContactRequest{ID: created.ID})
	expectErr(t, err, 404, "Contact not found")
}

func TestContactSearchPaging(t *testing.T) {
	f := newFixture(t)
	alice := f.login(t, "alice")
	for i := 0; i < 15; i++ {
		if _, err := f.contacts.Create(f.dbc, alice, &validation.CreateContactRequest{FirstName: "Eko", Email: strPtr("eko@example.com")}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	page, err := f.contacts.Search(f.dbc, alice, &validation.SearchContactRequest{Page: 2, Size: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Data) != 5 || page.Paging != (Paging{CurrentPage: 2, TotalPages: 2, Size: 10}) {
		t.Fatalf("Search: len=%d paging=%+v", len(page.Data), page.Paging)
	}

	empty, err := f.contacts.Search(f.dbc, alice, &validation.SearchContactRequest{Name: "nobody", Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("Search(miss): %v", err)
	}
	if empty.Data == nil || len(empty.Data) != 0 || empty.Paging.TotalPages != 0 {
		t.Fatalf("Search(miss): %+v", empty)
	}

	_, err = f.contacts.Search(f.dbc, alice, &validation.SearchContactRequest{Page: 0, Size: 10})
	expectErr(t, err, 400, "")

	for _, p := range []int{3, math.MaxInt64/10 + 2, math.MaxInt} {
		past, err := f.contacts.Search(f.dbc, alice, &validation.SearchContactRequest{Page: p, Size: 10})
		if err != nil {
			t.Fatalf("Search(page %d): %v", p, err)
		}
		if len(past.Data) != 0 || past.Paging != (Paging{CurrentPage: p, TotalPages: 2, Size: 10}) {
			t.Fatalf("Search(page %d): len=%d paging=%+v", p, len(past.Data), past.Paging)
		}
	}
}

func TestLongAndMultibytePasswords(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		username string
		password string
	}{
		{"ascii100", strings.Repeat("p", 100)},
		{"multibyte", strings.Repeat("ü", 100)},
		{"sharedprefix", strings.Repeat("p", 72) + "tail"},
	}
	for _, tc := range cases {
		name := strings.Repeat("n", 100)
		if _, err := f.users.Register(f.dbc, &validation.RegisterUserRequest{Username: tc.username, Password: tc.password, Name: name}); err != nil {
			t.Fatalf("Register(%s): %v", tc.username, err)
		}
		res, err := f.users.Login(f.dbc, &validation.LoginUserRequest{Username: tc.username, Password: tc.password})
		if err != nil || res.Token == "" || res.Name != name {
			t.Fatalf("Login(%s): res=%+v err=%v", tc.username, res, err)
		}
	}

	// Passwords equal in their first 72 bytes must still be told apart.
	_, err := f.users.Login(f.dbc, &validation.LoginUserRequest{Username: "sharedprefix", Password: strings.Repeat("p", 72) + "other"})
	expectErr(t, err, 401, "wrong username or password")

	_, err = f.users.Register(f.dbc, &validation.RegisterUserRequest{Username: "toolong", Password: strings.Repeat("p", 101), Name: "x"})
	expectErr(t, err, 400, "")
	_, err = f.users.Register(f.dbc, &validation.RegisterUserRequest{Username: "toolong", Password: "p", Name: strings.Repeat("n", 101)})
	expectErr(t, err, 400, "")

	u, err := f.users.Authenticate(f.dbc, mustLogin(t, f, "ascii100", strings.Repeat("p", 100)))
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	longer := strings.Repeat("q", 100)
	if _, err := f.users.Update(f.dbc, u, &validation.UpdateUserRequest{Password: &longer}); err != nil {
		t.Fatalf("Update(password): %v", err)
	}
	mustLogin(t, f, "ascii100", longer)
}

func mustLogin(t *testing.T, f *fixture, username, password string) string {
	t.Helper()
	res, err := f.users.Login(f.dbc, &validation.LoginUserRequest{Username: username, Password: password})
	if err != nil {
		t.Fatalf("Login(%s): %v", username, err)
	}
	return res.Token
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	for _, plain := range []string{"", "secret", strings.Repeat("x", 200), strings.Repeat("界", 100)} {
		hash, err := h.Hash(plain)
		if err != nil {
			t.Fatalf("Hash(%d bytes): %v", len(plain), err)
		}
		ok, err := h.Verify(hash, plain)
		if err != nil || !ok {
			t.Fatalf("Verify(%d bytes): ok=%v err=%v", len(plain), ok, err)
		}
		ok, err = h.Verify(hash, plain+"!")
		if err != nil || ok {
			t.Fatalf("Verify(wrong, %d bytes): ok=%v err=%v", len(plain), ok, err)
		}
	}
}

func TestAddressLifecycle(t *testing.T) {
	f := newFixture(t)
	alice := f.login(t, "alice")
	mallory := f.login(t, "mallory")

	contact, err := f.contacts.Create(f.dbc, alice, &validation.CreateContactRequest{FirstName: "Eko"})
	if err != nil {
		t.Fatalf("Create contact: %v", err)
	}

	_, err = f.addresses.Create(f.dbc, alice, &validation.CreateAddressRequest{ContactID: contact.ID, Country: "Indonesia"})
	var e *apierr.Error
	if !errors.As(err, &e) || len(e.Fields) != 1 || e.Fields[0].Message != "Postal Code is required" {
		t.Fatalf("Create without postal code: %v", err)
	}

	_, err = f.addresses.Create(f.dbc, alice, &validation.CreateAddressRequest{ContactID: contact.ID, Country: "Indonesia", PostalCode: "123456"})
	if !errors.As(err, &e) || len(e.Fields) != 1 || e.Fields[0].Field != "postal_code" {
		t.Fatalf("Create with 6-char postal code: %v", err)
	}

	_, err = f.addresses.Create(f.dbc, alice, &validation.CreateAddressRequest{ContactID: contact.ID + 100, Country: "Indonesia", PostalCode: "12345"})
	expectErr(t, err, 404, "Contact not found")
	_, err = f.addresses.Create(f.dbc, mallory, &validation.CreateAddressRequest{ContactID: contact.ID, Country: "Indonesia", PostalCode: "12345"})
	expectErr(t, err, 404, "Contact not found")

	created, err := f.addresses.Create(f.dbc, alice, &validation.CreateAddressRequest{
		ContactID:  contact.ID,
		Street:     strPtr("Jalan"),
		Country:    "Indonesia",
		PostalCode: "12345",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.City != nil || *created.Street != "Jalan" {
		t.Fatalf("Create: unexpected response: %+v", created)
	}

	got, err := f.addresses.Get(f.dbc, alice, &validation.GetAddressRequest{ContactID: contact.ID, ID: created.ID})
	if err != nil || got.ID != created.ID {
		t.Fatalf("Get: got=%+v err=%v", got, err)
	}
	_, err = f.addresses.Get(f.dbc, mallory, &validation.GetAddressRequest{ContactID: contact.ID, ID: created.ID})
	expectErr(t, err, 404, "Contact not found")
	_, err = f.addresses.Get(f.dbc, alice, &validation.GetAddressRequest{ContactID: contact.ID, ID: created.ID + 100})
	expectErr(t, err, 404, "Address not found")

	updated, err := f.addresses.Update(f.dbc, alice, &validation.UpdateAddressRequest{
		ContactID:  contact.ID,
		ID:         created.ID,
		City:       strPtr("Jakarta"),
		Country:    "Malaysia",
		PostalCode: "54321",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if *updated.Street != "Jalan" || *updated.City != "Jakarta" || updated.Country != "Malaysia" || updated.PostalCode != "54321" {
		t.Fatalf("Update: unexpected response: %+v", updated)
	}

	list, err := f.addresses.List(f.dbc, alice, &validation.ListAddressRequest{ContactID: contact.ID})
	if err != nil || len(list) != 1 || list[0].ID != updated.ID || *list[0].City != "Jakarta" {
		t.Fatalf("List: got=%+v err=%v", list, err)
	}

	if _, err := f.addresses.Remove(f.dbc, alice, &validation.GetAddressRequest{ContactID: contact.ID, ID: created.ID}); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	_, err = f.addresses.Remove(f.dbc, alice, &validation.GetAddressRequest{ContactID: contact.ID, ID: created.ID})
	expectErr(t, err, 404, "Address not found")

	list, err = f.addresses.List(f.dbc, alice, &validation.ListAddressRequest{ContactID: contact.ID})
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("List (empty): got=%+v err=%v", list, err)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}
	for _, tc := range tests {
		if got := totalPages(tc.total, tc.size); got != tc.want {
			t.Fatalf("totalPages(%d,%d)=%d want %d", tc.total, tc.size, got, tc.want)
		}
	}
}
