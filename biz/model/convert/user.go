package convert

import (
	"encoding/hex"
	"encoding/json"

	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/model/storage"

	"gorm.io/datatypes"
)

func UserDomainToRecord(u *domain.User) (*storage.UserRecord, error) {
	if u == nil {
		return nil, nil
	}
	addresses, err := AddressesToJSON(u.Addresses)
	if err != nil {
		return nil, err
	}
	return &storage.UserRecord{
		GormModel: storage.GormModel{
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		UserId:    u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Addresses: addresses,
	}, nil
}

func UserRecordToDomain(m *storage.UserRecord) (*domain.User, error) {
	if m == nil {
		return nil, nil
	}
	var addresses []domain.Address
	if len(m.Addresses) > 0 {
		if err := json.Unmarshal(m.Addresses, &addresses); err != nil {
			return nil, err
		}
	}
	return &domain.User{
		UserID:    m.UserId,
		Email:     m.Email,
		Name:      m.Name,
		Role:      domain.Role(m.Role),
		Addresses: addresses,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func AddressesToJSON(addresses []domain.Address) (datatypes.JSON, error) {
	if addresses == nil {
		addresses = []domain.Address{}
	}
	b, err := json.Marshal(addresses)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func CredentialDomainToRecord(c *domain.Credential) *storage.UserCredentialRecord {
	if c == nil {
		return nil
	}
	return &storage.UserCredentialRecord{
		UserId:            c.UserID,
		PasswordSalt:      c.Salt,
		PasswordHash:      hex.EncodeToString(c.Hash),
		CredentialVersion: c.Version,
	}
}

func CredentialRecordToDomain(m *storage.UserCredentialRecord) (*domain.Credential, error) {
	if m == nil {
		return nil, nil
	}
	hash, err := hex.DecodeString(m.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &domain.Credential{
		UserID:  m.UserId,
		Salt:    m.PasswordSalt,
		Hash:    hash,
		Version: m.CredentialVersion,
	}, nil
}
