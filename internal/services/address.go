package services

import (
	"fmt"

	appdb "github.com/yungbote/contactbook-backend/internal/data/db"
	"github.com/yungbote/contactbook-backend/internal/data/repos"
	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
	"github.com/yungbote/contactbook-backend/internal/platform/dbctx"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
	"github.com/yungbote/contactbook-backend/internal/validation"
)

type AddressService interface {
	Create(dbc dbctx.Context, current *types.User, req *validation.CreateAddressRequest) (*AddressResponse, error)
	Get(dbc dbctx.Context, current *types.User, req *validation.GetAddressRequest) (*AddressResponse, error)
	Update(dbc dbctx.Context, current *types.User, req *validation.UpdateAddressRequest) (*AddressResponse, error)
	Remove(dbc dbctx.Context, current *types.User, req *validation.GetAddressRequest) (*AddressResponse, error)
	List(dbc dbctx.Context, current *types.User, req *validation.ListAddressRequest) ([]AddressResponse, error)
	CheckExists(dbc dbctx.Context, contactID, id uint) (*types.Address, error)
}

type addressService struct {
	log         *logger.Logger
	addressRepo repos.AddressRepo
	contacts    ContactService
	tx          appdb.TxRunner
	exists      Gate[uint, types.Address]
}

func NewAddressService(log *logger.Logger, addressRepo repos.AddressRepo, contacts ContactService, tx appdb.TxRunner) AddressService {
	serviceLog := log.With("service", "AddressService")
	return &addressService{
		log:         serviceLog,
		addressRepo: addressRepo,
		contacts:    contacts,
		tx:          tx,
		exists:      NewGate[uint, types.Address](addressRepo.GetInContact, msgAddressNotFound),
	}
}

func (as *addressService) CheckExists(dbc dbctx.Context, contactID, id uint) (*types.Address, error) {
	return as.exists.Check(dbc, contactID, id)
}

// owned walks user -> contact -> address. id 0 stops at the contact.
func (as *addressService) owned(dbc dbctx.Context, current *types.User, contactID, id uint) (*types.Contact, *types.Address, error) {
	if current == nil {
		return nil, nil, apierr.Unauthorized(msgUnauthorized)
	}
	contact, err := as.contacts.CheckOwned(dbc, current.Username, contactID)
	if err != nil {
		return nil, nil, err
	}
	if id == 0 {
		return contact, nil, nil
	}
	address, err := as.CheckExists(dbc, contact.ID, id)
	if err != nil {
		return nil, nil, err
	}
	return contact, address, nil
}

func (as *addressService) Create(dbc dbctx.Context, current *types.User, req *validation.CreateAddressRequest) (*AddressResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	var address *types.Address
	err := as.tx.InTx(dbc, func(dbc dbctx.Context) error {
		contact, _, err := as.owned(dbc, current, req.ContactID, 0)
		if err != nil {
			return err
		}
		address = &types.Address{
			ContactID:  contact.ID,
			Street:     req.Street,
			City:       req.City,
			Province:   req.Province,
			Country:    req.Country,
			PostalCode: req.PostalCode,
		}
		if _, err := as.addressRepo.Create(dbc, address); err != nil {
			return apierr.Internal(fmt.Errorf("create address: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	res := toAddressResponse(address)
	return &res, nil
}

func (as *addressService) Get(dbc dbctx.Context, current *types.User, req *validation.GetAddressRequest) (*AddressResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	_, address, err := as.owned(dbc, current, req.ContactID, req.ID)
	if err != nil {
		return nil, err
	}
	res := toAddressResponse(address)
	return &res, nil
}

func (as *addressService) Update(dbc dbctx.Context, current *types.User, req *validation.UpdateAddressRequest) (*AddressResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"country":     req.Country,
		"postal_code": req.PostalCode,
	}
	if req.Street != nil {
		updates["street"] = *req.Street
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Province != nil {
		updates["province"] = *req.Province
	}

	var updated *types.Address
	err := as.tx.InTx(dbc, func(dbc dbctx.Context) error {
		contact, address, err := as.owned(dbc, current, req.ContactID, req.ID)
		if err != nil {
			return err
		}
		updated, err = as.addressRepo.UpdateFields(dbc, contact.ID, address.ID, updates)
		if err != nil {
			return as.storeErr("update address", err)
		}
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	res := toAddressResponse(updated)
	return &res, nil
}

func (as *addressService) Remove(dbc dbctx.Context, current *types.User, req *validation.GetAddressRequest) (*AddressResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	var removed *types.Address
	err := as.tx.InTx(dbc, func(dbc dbctx.Context) error {
		contact, address, err := as.owned(dbc, current, req.ContactID, req.ID)
		if err != nil {
			return err
		}
		if err := as.addressRepo.Delete(dbc, contact.ID, address.ID); err != nil {
			return as.storeErr("delete address", err)
		}
		removed = address
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	res := toAddressResponse(removed)
	return &res, nil
}

func (as *addressService) List(dbc dbctx.Context, current *types.User, req *validation.ListAddressRequest) ([]AddressResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	contact, _, err := as.owned(dbc, current, req.ContactID, 0)
	if err != nil {
		return nil, err
	}
	rows, err := as.addressRepo.ListByContact(dbc, contact.ID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list addresses: %w", err))
	}
	out := make([]AddressResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, toAddressResponse(a))
	}
	return out, nil
}

func (as *addressService) storeErr(op string, err error) error {
	if appdb.IsNotFound(err) {
		return apierr.NotFound(msgAddressNotFound)
	}
	return apierr.Internal(fmt.Errorf("%s: %w", op, err))
}
