package repo

import (
	"context"
	"errors"

	"our_culture/be/biz/model/convert"
	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/model/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository is the credential store. Lookups return (nil, nil) when the
// row does not exist.
type UserRepository interface {
	CreateWithCredential(ctx context.Context, u *domain.User, cred *domain.Credential) (*domain.User, error)
	FindByUserID(ctx context.Context, userID string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateInfo(ctx context.Context, userID string, info UserInfo) (*domain.User, error)

	FindCredential(ctx context.Context, userID string) (*domain.Credential, error)
	UpdateCredential(ctx context.Context, userID, salt string, hash []byte) (*domain.Credential, error)
}

// UserInfo holds the profile fields a user may change. Nil fields are kept.
type UserInfo struct {
	Name      *string
	Addresses *[]domain.Address
}

type UserRepositoryGorm struct {
	db *gorm.DB
}

func NewUserRepositoryGorm(db *gorm.DB) *UserRepositoryGorm {
	return &UserRepositoryGorm{db: db}
}

// CreateWithCredential inserts the user and its credential in one
// transaction, so a user never exists without its salt and hash.
func (r *UserRepositoryGorm) CreateWithCredential(ctx context.Context, u *domain.User, cred *domain.Credential) (*domain.User, error) {
	if u.UserID == "" {
		u.UserID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}

	userRecord, err := convert.UserDomainToRecord(u)
	if err != nil {
		return nil, err
	}
	credRecord := convert.CredentialDomainToRecord(cred)
	credRecord.UserId = u.UserID

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userRecord).Error; err != nil {
			return err
		}
		return tx.Create(credRecord).Error
	})
	if err != nil {
		return nil, err
	}

	return convert.UserRecordToDomain(userRecord)
}

func (r *UserRepositoryGorm) FindByUserID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, "user_id = ?", userID)
}

func (r *UserRepositoryGorm) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, "email = ?", email)
}

func (r *UserRepositoryGorm) UpdateInfo(ctx context.Context, userID string, info UserInfo) (*domain.User, error) {
	updates := make(map[string]interface{})
	if info.Name != nil {
		updates["name"] = *info.Name
	}
	if info.Addresses != nil {
		addresses, err := convert.AddressesToJSON(*info.Addresses)
		if err != nil {
			return nil, err
		}
		updates["addresses"] = addresses
	}

	if len(updates) > 0 {
		err := r.db.WithContext(ctx).Model(&storage.UserRecord{}).
			Where("user_id = ?", userID).
			Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}

	return r.FindByUserID(ctx, userID)
}

func (r *UserRepositoryGorm) findUser(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var m storage.UserRecord
	err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return convert.UserRecordToDomain(&m)
}
