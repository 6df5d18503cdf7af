package contact

import (
	"gorm.io/gorm"

	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/dbctx"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

// AddressRepo methods all scope by contact; ownership of the contact is
// checked by the caller.
type AddressRepo interface {
	Create(dbc dbctx.Context, address *types.Address) (*types.Address, error)
	GetInContact(dbc dbctx.Context, contactID, id uint) (*types.Address, error)
	ListByContact(dbc dbctx.Context, contactID uint) ([]*types.Address, error)
	UpdateFields(dbc dbctx.Context, contactID, id uint, updates map[string]interface{}) (*types.Address, error)
	Delete(dbc dbctx.Context, contactID, id uint) error
}

type addressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddressRepo(db *gorm.DB, baseLog *logger.Logger) AddressRepo {
	return &addressRepo{
		db:  db,
		log: baseLog.With("repo", "AddressRepo"),
	}
}

func (r *addressRepo) Create(dbc dbctx.Context, address *types.Address) (*types.Address, error) {
	transaction := dbc.DB(r.db)
	if err := transaction.Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

func (r *addressRepo) GetInContact(dbc dbctx.Context, contactID, id uint) (*types.Address, error) {
	transaction := dbc.DB(r.db)
	var a types.Address
	if err := transaction.
		Where("id = ? AND contact_id = ?", id, contactID).
		Take(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *addressRepo) ListByContact(dbc dbctx.Context, contactID uint) ([]*types.Address, error) {
	transaction := dbc.DB(r.db)
	out := []*types.Address{}
	if err := transaction.
		Where("contact_id = ?", contactID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *addressRepo) UpdateFields(dbc dbctx.Context, contactID, id uint, updates map[string]interface{}) (*types.Address, error) {
	transaction := dbc.DB(r.db)
	if len(updates) > 0 {
		res := transaction.
			Model(&types.Address{}).
			Where("id = ? AND contact_id = ?", id, contactID).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetInContact(dbc, contactID, id)
}

func (r *addressRepo) Delete(dbc dbctx.Context, contactID, id uint) error {
	transaction := dbc.DB(r.db)
	res := transaction.
		Where("id = ? AND contact_id = ?", id, contactID).
		Delete(&types.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
