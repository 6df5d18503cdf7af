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

// AuthRecorder receives auth outcomes, e.g. for metrics.
type AuthRecorder interface {
	RecordAuthEvent(event, outcome string)
}

type UserService interface {
	Register(dbc dbctx.Context, req *validation.RegisterUserRequest) (*UserResponse, error)
	Login(dbc dbctx.Context, req *validation.LoginUserRequest) (*UserResponse, error)
	Get(dbc dbctx.Context, current *types.User) (*UserResponse, error)
	Update(dbc dbctx.Context, current *types.User, req *validation.UpdateUserRequest) (*MessageResponse, error)
	Logout(dbc dbctx.Context, current *types.User) (*MessageResponse, error)
	Authenticate(dbc dbctx.Context, token string) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	hasher   PasswordHasher
	tokens   TokenIssuer
	recorder AuthRecorder
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo, hasher PasswordHasher, tokens TokenIssuer, recorder AuthRecorder) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		log:      serviceLog,
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		recorder: recorder,
	}
}

func (us *userService) record(event, outcome string) {
	if us.recorder != nil {
		us.recorder.RecordAuthEvent(event, outcome)
	}
}

func (us *userService) Register(dbc dbctx.Context, req *validation.RegisterUserRequest) (*UserResponse, error) {
	if err := validation.Struct(req); err != nil {
		us.record("register", "invalid")
		return nil, err
	}
	hash, err := us.hasher.Hash(req.Password)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("hash password: %w", err))
	}
	user := &types.User{
		Username: req.Username,
		Password: hash,
		Name:     req.Name,
	}
	if _, err := us.userRepo.Create(dbc, user); err != nil {
		if appdb.IsDuplicateKey(err) {
			us.record("register", "conflict")
			return nil, apierr.Conflict(msgDuplicateUser)
		}
		us.log.WithContext(dbc.Ctx).Error("Failed to create user", "username", req.Username, "error", err)
		return nil, apierr.Internal(fmt.Errorf("create user: %w", err))
	}
	us.record("register", "success")
	us.log.WithContext(dbc.Ctx).Info("User registered", "username", user.Username)
	return toUserResponse(user), nil
}

func (us *userService) Login(dbc dbctx.Context, req *validation.LoginUserRequest) (*UserResponse, error) {
	if err := validation.Struct(req); err != nil {
		us.record("login", "invalid")
		return nil, err
	}
	user, err := us.userRepo.GetByUsername(dbc, req.Username)
	if err != nil {
		if appdb.IsNotFound(err) {
			us.record("login", "rejected")
			return nil, apierr.Unauthorized(msgBadCredentials)
		}
		return nil, apierr.Internal(fmt.Errorf("load user: %w", err))
	}
	match, err := us.hasher.Verify(user.Password, req.Password)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("verify password: %w", err))
	}
	if !match {
		us.record("login", "rejected")
		return nil, apierr.Unauthorized(msgBadCredentials)
	}

	token := us.tokens.Issue()
	if err := us.userRepo.SetToken(dbc, user.Username, token); err != nil {
		return nil, apierr.Internal(fmt.Errorf("store token: %w", err))
	}
	user.Token = &token
	us.record("login", "success")

	res := toUserResponse(user)
	res.Token = token
	return res, nil
}

func (us *userService) Get(dbc dbctx.Context, current *types.User) (*UserResponse, error) {
	if current == nil {
		return nil, apierr.Unauthorized(msgUnauthorized)
	}
	return toUserResponse(current), nil
}

func (us *userService) Update(dbc dbctx.Context, current *types.User, req *validation.UpdateUserRequest) (*MessageResponse, error) {
	if current == nil {
		return nil, apierr.Unauthorized(msgUnauthorized)
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Password != nil {
		hash, err := us.hasher.Hash(*req.Password)
		if err != nil {
			return nil, apierr.Internal(fmt.Errorf("hash password: %w", err))
		}
		updates["password"] = hash
	}
	if err := us.userRepo.UpdateFields(dbc, current.Username, updates); err != nil {
		return nil, apierr.Internal(fmt.Errorf("update user: %w", err))
	}

	if name, ok := updates["name"].(string); ok {
		current.Name = name
	}
	if hash, ok := updates["password"].(string); ok {
		current.Password = hash
	}
	return successMessage(msgUserUpdated), nil
}

// Logout clears the token the caller authenticated with. It reports success
// even when a concurrent logout or login already replaced it.
func (us *userService) Logout(dbc dbctx.Context, current *types.User) (*MessageResponse, error) {
	if current == nil {
		return nil, apierr.Unauthorized(msgUnauthorized)
	}
	cleared, err := us.userRepo.ClearToken(dbc, current.Username, current.Token)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("clear token: %w", err))
	}
	if !cleared {
		us.log.WithContext(dbc.Ctx).Debug("Logout found no live token", "username", current.Username)
	}
	current.Token = nil
	us.record("logout", "success")
	return successMessage(msgUserLoggedOut), nil
}

func (us *userService) Authenticate(dbc dbctx.Context, token string) (*types.User, error) {
	if token == "" {
		us.record("authenticate", "missing")
		return nil, apierr.Unauthorized(msgUnauthorized)
	}
	user, err := us.userRepo.GetByToken(dbc, token)
	if err != nil {
		if appdb.IsNotFound(err) {
			us.record("authenticate", "rejected")
			return nil, apierr.Unauthorized(msgUnauthorized)
		}
		return nil, apierr.Internal(fmt.Errorf("load user by token: %w", err))
	}
	return user, nil
}
