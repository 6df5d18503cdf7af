package contact

import (
	"strings"

	"gorm.io/gorm"

	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/dbctx"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

// ContactFilter holds optional substring filters; empty fields are ignored.
type ContactFilter struct {
	Name  string
	Email string
	Phone string
}

type ContactRepo interface {
	Create(dbc dbctx.Context, contact *types.Contact) (*types.Contact, error)
	GetOwned(dbc dbctx.Context, username string, id uint) (*types.Contact, error)
	UpdateFields(dbc dbctx.Context, username string, id uint, updates map[string]interface{}) (*types.Contact, error)
	Delete(dbc dbctx.Context, username string, id uint) error
	Search(dbc dbctx.Context, username string, filter ContactFilter, page, size int) ([]*types.Contact, int64, error)
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	return &contactRepo{
		db:  db,
		log: baseLog.With("repo", "ContactRepo"),
	}
}

func (r *contactRepo) Create(dbc dbctx.Context, contact *types.Contact) (*types.Contact, error) {
	transaction := dbc.DB(r.db)
	if err := transaction.Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *contactRepo) GetOwned(dbc dbctx.Context, username string, id uint) (*types.Contact, error) {
	transaction := dbc.DB(r.db)
	var c types.Contact
	if err := transaction.
		Where("id = ? AND username = ?", id, username).
		Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateFields applies updates to the owned contact and returns the stored row.
func (r *contactRepo) UpdateFields(dbc dbctx.Context, username string, id uint, updates map[string]interface{}) (*types.Contact, error) {
	transaction := dbc.DB(r.db)
	if len(updates) > 0 {
		res := transaction.
			Model(&types.Contact{}).
			Where("id = ? AND username = ?", id, username).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetOwned(dbc, username, id)
}

// Delete removes the contact and its addresses in one transaction.
func (r *contactRepo) Delete(dbc dbctx.Context, username string, id uint) error {
	transaction := dbc.DB(r.db)
	return transaction.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND username = ?", id, username).Delete(&types.Contact{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("contact_id = ?", id).Delete(&types.Address{}).Error
	})
}

// Search returns one page of matches plus the total match count. Pages past
// the last one are empty and never reach the row query.
func (r *contactRepo) Search(dbc dbctx.Context, username string, filter ContactFilter, page, size int) ([]*types.Contact, int64, error) {
	transaction := dbc.DB(r.db)

	var total int64
	if err := transaction.
		Model(&types.Contact{}).
		Scopes(ownedBy(username), matching(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	out := []*types.Contact{}
	if total == 0 || page < 1 || size < 1 {
		return out, total, nil
	}
	if lastPage := (total + int64(size) - 1) / int64(size); int64(page) > lastPage {
		return out, total, nil
	}
	// page <= lastPage, so the offset is below total and cannot overflow.
	offset := (page - 1) * size
	if err := transaction.
		Scopes(ownedBy(username), matching(filter)).
		Order("id ASC").
		Offset(offset).
		Limit(size).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func ownedBy(username string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("username = ?", username)
	}
}

func matching(filter ContactFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if name := likePattern(filter.Name); name != "" {
			q = q.Where(`(LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\')`, name, name)
		}
		if email := likePattern(filter.Email); email != "" {
			q = q.Where(`LOWER(email) LIKE ? ESCAPE '\'`, email)
		}
		if phone := likePattern(filter.Phone); phone != "" {
			q = q.Where(`LOWER(phone) LIKE ? ESCAPE '\'`, phone)
		}
		return q
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a substring pattern; wildcards in s match literally.
func likePattern(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
