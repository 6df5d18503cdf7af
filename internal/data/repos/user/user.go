package user

import (
	"gorm.io/gorm"

	types "github.com/yungbote/contactbook-backend/internal/domain"
	"github.com/yungbote/contactbook-backend/internal/platform/dbctx"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, user *types.User) (*types.User, error)
	GetByUsername(dbc dbctx.Context, username string) (*types.User, error)
	GetByToken(dbc dbctx.Context, token string) (*types.User, error)
	SetToken(dbc dbctx.Context, username string, token string) error
	ClearToken(dbc dbctx.Context, username string, token *string) (bool, error)
	UpdateFields(dbc dbctx.Context, username string, updates map[string]interface{}) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(dbc dbctx.Context, user *types.User) (*types.User, error) {
	transaction := dbc.DB(ur.db)
	if err := transaction.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername returns gorm.ErrRecordNotFound when no row matches.
func (ur *userRepo) GetByUsername(dbc dbctx.Context, username string) (*types.User, error) {
	transaction := dbc.DB(ur.db)
	var u types.User
	if err := transaction.
		Where("username = ?", username).
		Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *userRepo) GetByToken(dbc dbctx.Context, token string) (*types.User, error) {
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}
	transaction := dbc.DB(ur.db)
	var u types.User
	if err := transaction.
		Where("token = ?", token).
		Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *userRepo) SetToken(dbc dbctx.Context, username string, token string) error {
	transaction := dbc.DB(ur.db)
	res := transaction.
		Model(&types.User{}).
		Where("username = ?", username).
		Update("token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearToken nulls the token. With a non-nil token the update only applies
// while that token is still current, so a logout cannot wipe a newer login.
func (ur *userRepo) ClearToken(dbc dbctx.Context, username string, token *string) (bool, error) {
	transaction := dbc.DB(ur.db)
	q := transaction.
		Model(&types.User{}).
		Where("username = ?", username)
	if token != nil {
		q = q.Where("token = ?", *token)
	}
	res := q.Update("token", gorm.Expr("NULL"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (ur *userRepo) UpdateFields(dbc dbctx.Context, username string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	transaction := dbc.DB(ur.db)
	return transaction.
		Model(&types.User{}).
		Where("username = ?", username).
		Updates(updates).Error
}
