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

type ContactService interface {
	Create(dbc dbctx.Context, current *types.User, req *validation.CreateContactRequest) (*ContactResponse, error)
	// CheckOwned returns the contact only if username owns it, else NotFound.
	CheckOwned(dbc dbctx.Context, username string, id uint) (*types.Contact, error)
	Get(dbc dbctx.Context, current *types.User, req *validation.GetContactRequest) (*ContactResponse, error)
	Update(dbc dbctx.Context, current *types.User, req *validation.UpdateContactRequest) (*ContactResponse, error)
	Remove(dbc dbctx.Context, current *types.User, req *validation.GetContactRequest) (*ContactResponse, error)
	Search(dbc dbctx.Context, current *types.User, req *validation.SearchContactRequest) (*ContactPage, error)
}

type contactService struct {
	log         *logger.Logger
	contactRepo repos.ContactRepo
	owned       Gate[string, types.Contact]
}

func NewContactService(log *logger.Logger, contactRepo repos.ContactRepo) ContactService {
	serviceLog := log.With("service", "ContactService")
	return &contactService{
		log:         serviceLog,
		contactRepo: contactRepo,
		owned:       NewGate[string, types.Contact](contactRepo.GetOwned, msgContactNotFound),
	}
}

func (cs *contactService) Create(dbc dbctx.Context, current *types.User, req *validation.CreateContactRequest) (*ContactResponse, error) {
	if current == nil {
		return nil, apierr.Unauthorized(msgUnauthorized)
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	contact := &types.Contact{
		Username:  current.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if _, err := cs.contactRepo.Create(dbc, contact); err != nil {
		return nil, apierr.Internal(fmt.Errorf("create contact: %w", err))
	}
	res := toContactResponse(contact)
	return &res, nil
}

func (cs *contactService) CheckOwned(dbc dbctx.Context, username string, id uint) (*types.Contact, error) {
	return cs.owned.Check(dbc, username, id)
}

func (cs *contactService) Get(dbc dbctx.Context, current *types.User, req *validation.GetContactRequest) (*ContactResponse, error) {
	if current == nil {
		return nil, apierr.Unauthorized(msgUnauthorized)
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	contact, err := cs.CheckOwned(dbc, current.Username, req.ID)
	if err != nil {
		return nil, err
	}
	res := toContactResponse(contact)
	return &res, nil
}

func (cs *contactService) Update(dbc dbctx.Context, current *types.User, req *validation.UpdateContactRequest) (*ContactResponse, error) {
	if current == nil {
		return nil, apierr.Unauthorized(msgUnauthorized)
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	contact, err := cs.CheckOwned(dbc, current.Username, req.ID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if len(updates) == 0 {
		res := toContactResponse(contact)
		return &res, nil
	}

	updated, err := cs.contactRepo.UpdateFields(dbc, current.Username, contact.ID, updates)
	if err != nil {
		return nil, cs.storeErr("update contact", err)
	}
	res := toContactResponse(updated)
	return &res, nil
}

func (cs *contactService) Remove(dbc dbctx.Context, current *types.User, req *validation.GetContactRequest) (*ContactResponse, error) {
	if current == nil {
		return nil, apierr.Unauthorized(msgUnauthorized)
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	contact, err := cs.CheckOwned(dbc, current.Username, req.ID)
	if err != nil {
		return nil, err
	}
	if err := cs.contactRepo.Delete(dbc, current.Username, contact.ID); err != nil {
		return nil, cs.storeErr("delete contact", err)
	}
	cs.log.WithContext(dbc.Ctx).Info("Contact removed", "username", current.Username, "contact_id", contact.ID)
	res := toContactResponse(contact)
	return &res, nil
}

func (cs *contactService) Search(dbc dbctx.Context, current *types.User, req *validation.SearchContactRequest) (*ContactPage, error) {
	if current == nil {
		return nil, apierr.Unauthorized(msgUnauthorized)
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	filter := repos.ContactFilter{Name: req.Name, Email: req.Email, Phone: req.Phone}
	rows, total, err := cs.contactRepo.Search(dbc, current.Username, filter, req.Page, req.Size)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("search contacts: %w", err))
	}
	data := make([]ContactResponse, 0, len(rows))
	for _, c := range rows {
		data = append(data, toContactResponse(c))
	}
	return &ContactPage{
		Data: data,
		Paging: Paging{
			CurrentPage: req.Page,
			TotalPages:  totalPages(total, req.Size),
			Size:        req.Size,
		},
	}, nil
}

// storeErr maps a row vanishing between the gate and the write to NotFound.
func (cs *contactService) storeErr(op string, err error) error {
	if appdb.IsNotFound(err) {
		return apierr.NotFound(msgContactNotFound)
	}
	return apierr.Internal(fmt.Errorf("%s: %w", op, err))
}

func totalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
