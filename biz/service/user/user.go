package user

import (
	"context"
	"strings"
	"time"

	"our_culture/be/biz/dal/repo"
	"our_culture/be/biz/db/sqldb"
	"our_culture/be/biz/metrics"
	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/model/errs"
	"our_culture/be/biz/util/encode"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type Service struct {
	users repo.UserRepository
}

func New(users repo.UserRepository) *Service {
	return &Service{users: users}
}

func NewDefault() *Service {
	return New(repo.NewUserRepositoryGorm(sqldb.GetDbConn()))
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, email, name, password string) (*domain.User, errs.Error) {
	return s.CreateUser(ctx, email, name, password, domain.RoleUser)
}

// CreateUser stores a new user with a freshly salted credential.
func (s *Service) CreateUser(ctx context.Context, email, name, password string, role domain.Role) (*domain.User, errs.Error) {
	if !role.Valid() {
		return nil, errs.ParamError.SetMsg("unknown role: " + string(role))
	}
	email = NormalizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		hlog.CtxErrorf(ctx, "find user by email err: %v", err)
		return nil, errs.ServerError
	}
	if existing != nil {
		return nil, errs.EmailDuplicated
	}

	cred, bizErr := newCredential(ctx, password)
	if bizErr != nil {
		return nil, bizErr
	}

	u := &domain.User{
		Email: email,
		Name:  strings.TrimSpace(name),
		Role:  role,
	}
	user, err := s.users.CreateWithCredential(ctx, u, cred)
	if err != nil {
		if errs.IsDuplicatedErr(err) {
			return nil, errs.EmailDuplicated
		}
		hlog.CtxErrorf(ctx, "create user err: %v", err)
		return nil, errs.ServerError
	}
	return user, nil
}

// Verify checks an email/password pair and returns the claim to issue. An
// unknown email and a wrong password both yield errs.InvalidCredentials, and
// both pay for one hash.
func (s *Service) Verify(ctx context.Context, email, password string) (domain.Claim, errs.Error) {
	claim, bizErr := s.verify(ctx, email, password)
	switch {
	case bizErr == nil:
		metrics.Login(metrics.LoginSuccess)
	case errs.ErrorEqual(bizErr, errs.InvalidCredentials):
		metrics.Login(metrics.LoginInvalid)
	default:
		metrics.Login(metrics.LoginError)
	}
	return claim, bizErr
}

func (s *Service) verify(ctx context.Context, email, password string) (domain.Claim, errs.Error) {
	u, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		hlog.CtxErrorf(ctx, "find user by email err: %v", err)
		return domain.Claim{}, errs.ServerError
	}
	if u == nil {
		burnHash(password)
		return domain.Claim{}, errs.InvalidCredentials
	}

	cred, err := s.users.FindCredential(ctx, u.UserID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find credential err: %v", err)
		return domain.Claim{}, errs.ServerError
	}
	if cred == nil {
		hlog.CtxErrorf(ctx, "user %s has no credential", u.UserID)
		burnHash(password)
		return domain.Claim{}, errs.InvalidCredentials
	}

	ok, bizErr := matches(ctx, cred, password)
	if bizErr != nil {
		return domain.Claim{}, bizErr
	}
	if !ok {
		return domain.Claim{}, errs.InvalidCredentials
	}

	claim, err := u.Claim()
	if err != nil {
		hlog.CtxErrorf(ctx, "build claim for user %s err: %v", u.UserID, err)
		return domain.Claim{}, errs.ServerError
	}
	return claim, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (*domain.User, errs.Error) {
	u, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find user by user_id err: %v", err)
		return nil, errs.ServerError
	}
	if u == nil {
		return nil, errs.UserNotExist
	}
	return u, nil
}

func (s *Service) UpdateInfo(ctx context.Context, userID string, info repo.UserInfo) (*domain.User, errs.Error) {
	if info.Name != nil {
		name := strings.TrimSpace(*info.Name)
		info.Name = &name
	}

	u, err := s.users.UpdateInfo(ctx, userID, info)
	if err != nil {
		hlog.CtxErrorf(ctx, "update user info err: %v", err)
		return nil, errs.ServerError
	}
	if u == nil {
		return nil, errs.UserNotExist
	}
	return u, nil
}

// UpdatePassword replaces the password after checking the old one and
// returns the new credential version.
func (s *Service) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) (uint, errs.Error) {
	cred, err := s.users.FindCredential(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find credential err: %v", err)
		return 0, errs.ServerError
	}
	if cred == nil {
		return 0, errs.UserNotExist
	}

	ok, bizErr := matches(ctx, cred, oldPassword)
	if bizErr != nil {
		return 0, bizErr
	}
	if !ok {
		return 0, errs.OldPasswordWrong
	}

	return s.setPassword(ctx, userID, newPassword)
}

// SetPassword rehashes the password of the user with the given email
// without knowing the old one.
func (s *Service) SetPassword(ctx context.Context, email, newPassword string) (*domain.User, errs.Error) {
	u, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		hlog.CtxErrorf(ctx, "find user by email err: %v", err)
		return nil, errs.ServerError
	}
	if u == nil {
		return nil, errs.UserNotExist
	}

	if _, bizErr := s.setPassword(ctx, u.UserID, newPassword); bizErr != nil {
		return nil, bizErr
	}
	return u, nil
}

func (s *Service) GetCredentialVersion(ctx context.Context, userID string) (uint, errs.Error) {
	cred, err := s.users.FindCredential(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find credential err: %v", err)
		return 0, errs.ServerError
	}
	if cred == nil {
		return 0, errs.UserNotExist
	}
	return cred.Version, nil
}

func (s *Service) setPassword(ctx context.Context, userID, password string) (uint, errs.Error) {
	next, bizErr := newCredential(ctx, password)
	if bizErr != nil {
		return 0, bizErr
	}

	cred, err := s.users.UpdateCredential(ctx, userID, next.Salt, next.Hash)
	if err != nil {
		hlog.CtxErrorf(ctx, "update credential err: %v", err)
		return 0, errs.ServerError
	}
	if cred == nil {
		return 0, errs.UserNotExist
	}
	return cred.Version, nil
}

func newCredential(ctx context.Context, password string) (*domain.Credential, errs.Error) {
	salt, err := encode.NewSalt()
	if err != nil {
		hlog.CtxErrorf(ctx, "generate salt err: %v", err)
		return nil, errs.ServerError
	}

	defer metrics.ObserveHash(time.Now())
	hash, err := encode.HashPassword(password, salt)
	if err != nil {
		hlog.CtxErrorf(ctx, "hash password err: %v", err)
		return nil, errs.ServerError
	}
	return &domain.Credential{Salt: salt, Hash: hash}, nil
}

func matches(ctx context.Context, cred *domain.Credential, password string) (bool, errs.Error) {
	defer metrics.ObserveHash(time.Now())
	hash, err := encode.HashPassword(password, cred.Salt)
	if err != nil {
		hlog.CtxErrorf(ctx, "hash password for user %s err: %v", cred.UserID, err)
		return false, errs.ServerError
	}
	return encode.Equal(hash, cred.Hash), nil
}

// burnHash spends the same work as a real verification so that an unknown
// email is not faster to reject than a wrong password.
func burnHash(password string) {
	defer metrics.ObserveHash(time.Now())
	_, _ = encode.HashPassword(password, throwawaySalt)
}

const throwawaySalt = "7c1d2f0e9a8b6c5d4e3f2a1b0c9d8e7f"
