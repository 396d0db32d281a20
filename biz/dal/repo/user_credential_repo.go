package repo

import (
	"context"
	"encoding/hex"
	"errors"

	"our_culture/be/biz/model/convert"
	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/model/storage"

	"gorm.io/gorm"
)

func (r *UserRepositoryGorm) FindCredential(ctx context.Context, userID string) (*domain.Credential, error) {
	return findCredential(r.db.WithContext(ctx), userID)
}

// UpdateCredential replaces salt and hash together and bumps the credential
// version. It returns (nil, nil) when the user has no credential row.
func (r *UserRepositoryGorm) UpdateCredential(ctx context.Context, userID, salt string, hash []byte) (*domain.Credential, error) {
	var cred *domain.Credential
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&storage.UserCredentialRecord{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"password_salt":      salt,
				"password_hash":      hex.EncodeToString(hash),
				"credential_version": gorm.Expr("credential_version + ?", 1),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		var err error
		cred, err = findCredential(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cred, nil
}

func findCredential(db *gorm.DB, userID string) (*domain.Credential, error) {
	var m storage.UserCredentialRecord
	err := db.Where("user_id = ?", userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return convert.CredentialRecordToDomain(&m)
}
