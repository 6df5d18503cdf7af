package domain

import (
	"github.com/yungbote/contactbook-backend/internal/domain/contact"
	"github.com/yungbote/contactbook-backend/internal/domain/user"
)

type User = user.User

type Contact = contact.Contact
type Address = contact.Address

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{&User{}, &Contact{}, &Address{}}
}
