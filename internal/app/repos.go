package app

import (
	"gorm.io/gorm"

	appdb "github.com/yungbote/contactbook-backend/internal/data/db"
	"github.com/yungbote/contactbook-backend/internal/data/repos"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type Repos struct {
	User    repos.UserRepo
	Contact repos.ContactRepo
	Address repos.AddressRepo
	Tx      appdb.TxRunner
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:    repos.NewUserRepo(db, log),
		Contact: repos.NewContactRepo(db, log),
		Address: repos.NewAddressRepo(db, log),
		Tx:      appdb.NewTxRunner(db),
	}
}
