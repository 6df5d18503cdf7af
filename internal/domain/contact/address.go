package contact

import "time"

type Address struct {
	ID         uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	ContactID  uint     `gorm:"index;not null;column:contact_id" json:"contact_id"`
	Contact    *Contact `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContactID;references:ID" json:"-"`
	Street     *string  `gorm:"size:100;column:street" json:"street"`
	City       *string  `gorm:"size:100;column:city" json:"city"`
	Province   *string  `gorm:"size:100;column:province" json:"province"`
	Country    string   `gorm:"not null;size:100;column:country" json:"country"`
	PostalCode string   `gorm:"not null;size:10;column:postal_code" json:"postal_code"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Address) TableName() string { return "addresses" }
