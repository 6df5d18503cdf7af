package user

import (
	"time"

	"github.com/yungbote/contactbook-backend/internal/domain/contact"
)

type User struct {
	Username string `gorm:"primaryKey;size:100;column:username" json:"username"`
	Password string `gorm:"not null;size:100;column:password" json:"-"`
	Name     string `gorm:"not null;size:100;column:name" json:"name"`
	// Token is NULL while logged out. NULLs never collide on the unique index.
	Token *string `gorm:"uniqueIndex;size:100;column:token" json:"-"`

	Contacts []contact.Contact `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
