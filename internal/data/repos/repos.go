package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/contactbook-backend/internal/data/repos/contact"
	"github.com/yungbote/contactbook-backend/internal/data/repos/user"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type ContactRepo = contact.ContactRepo
type AddressRepo = contact.AddressRepo

type ContactFilter = contact.ContactFilter

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo {
	return user.NewUserRepo(db, log)
}

func NewContactRepo(db *gorm.DB, log *logger.Logger) ContactRepo {
	return contact.NewContactRepo(db, log)
}

func NewAddressRepo(db *gorm.DB, log *logger.Logger) AddressRepo {
	return contact.NewAddressRepo(db, log)
}
