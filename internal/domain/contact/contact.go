package contact

import "time"

// Contact belongs to the user named by Username. The foreign key is declared
// on user.User.Contacts.
type Contact struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string  `gorm:"index;not null;size:100;column:username" json:"username"`
	FirstName string  `gorm:"not null;size:100;column:first_name" json:"first_name"`
	LastName  *string `gorm:"size:100;column:last_name" json:"last_name"`
	Email     *string `gorm:"size:200;column:email" json:"email"`
	Phone     *string `gorm:"size:20;column:phone" json:"phone"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Contact) TableName() string { return "contacts" }
