package repo

import (
	"context"
	"testing"

	"our_culture/be/biz/config"
	"our_culture/be/biz/db/sqldb"
	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/model/errs"
	"our_culture/be/biz/model/storage"
	"our_culture/be/biz/util/random"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := sqldb.Open(config.DBConf{
		Driver: sqldb.DriverSQLite,
		DBName: "file:repo_" + random.RandStr(12) + "?mode=memory&cache=shared",
	})
	assert.NoError(t, err)
	assert.NoError(t, sqldb.Migrate(db))
	return db
}

func newUser(email string) (*domain.User, *domain.Credential) {
	return &domain.User{Email: email, Name: "test_name"},
		&domain.Credential{Salt: "00112233445566778899aabbccddeeff", Hash: []byte{1, 2, 3, 4}}
}

func TestUserRepository_CreateWithCredential(t *testing.T) {
	db := setupTestDB(t)
	r := NewUserRepositoryGorm(db)
	ctx := context.Background()

	u, cred := newUser("a@x.com")
	created, err := r.CreateWithCredential(ctx, u, cred)
	assert.NoError(t, err)
	assert.NotEmpty(t, created.UserID)
	assert.Equal(t, domain.RoleUser, created.Role)
	assert.Equal(t, "a@x.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())

	var m storage.UserCredentialRecord
	assert.NoError(t, db.First(&m, "user_id = ?", created.UserID).Error)
	assert.Equal(t, "01020304", m.PasswordHash)
	assert.Equal(t, uint(0), m.CredentialVersion)
}

func TestUserRepository_DuplicateEmailRollsBack(t *testing.T) {
	db := setupTestDB(t)
	r := NewUserRepositoryGorm(db)
	ctx := context.Background()

	u, cred := newUser("a@x.com")
	_, err := r.CreateWithCredential(ctx, u, cred)
	assert.NoError(t, err)

	u2, cred2 := newUser("a@x.com")
	_, err = r.CreateWithCredential(ctx, u2, cred2)
	assert.Error(t, err)
	assert.True(t, errs.IsDuplicatedErr(err))

	var n int64
	db.Model(&storage.UserCredentialRecord{}).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository_Find(t *testing.T) {
	db := setupTestDB(t)
	r := NewUserRepositoryGorm(db)
	ctx := context.Background()

	u, cred := newUser("a@x.com")
	u.UserID = "test_user_id"
	u.Role = domain.RoleAdmin
	u.Addresses = []domain.Address{{Name: "home", Street: "1 Main St", City: "Pune"}}
	_, err := r.CreateWithCredential(ctx, u, cred)
	assert.NoError(t, err)

	found, err := r.FindByUserID(ctx, "test_user_id")
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", found.Email)
	assert.Equal(t, domain.RoleAdmin, found.Role)
	assert.Equal(t, u.Addresses, found.Addresses)

	found, err = r.FindByEmail(ctx, "a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, "test_user_id", found.UserID)

	found, err = r.FindByUserID(ctx, "non_existent")
	assert.NoError(t, err)
	assert.Nil(t, found)

	found, err = r.FindByEmail(ctx, "b@x.com")
	assert.NoError(t, err)
	assert.Nil(t, found)

	c, err := r.FindCredential(ctx, "test_user_id")
	assert.NoError(t, err)
	assert.Equal(t, cred.Salt, c.Salt)
	assert.Equal(t, cred.Hash, c.Hash)

	c, err = r.FindCredential(ctx, "non_existent")
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestUserRepository_UpdateInfo(t *testing.T) {
	db := setupTestDB(t)
	r := NewUserRepositoryGorm(db)
	ctx := context.Background()

	u, cred := newUser("a@x.com")
	created, err := r.CreateWithCredential(ctx, u, cred)
	assert.NoError(t, err)

	name := "new_name"
	updated, err := r.UpdateInfo(ctx, created.UserID, UserInfo{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "new_name", updated.Name)
	assert.Empty(t, updated.Addresses)

	addresses := []domain.Address{{Name: "office", Street: "2 Park Rd", City: "Delhi", PinCode: "110001"}}
	updated, err = r.UpdateInfo(ctx, created.UserID, UserInfo{Addresses: &addresses})
	assert.NoError(t, err)
	assert.Equal(t, "new_name", updated.Name)
	assert.Equal(t, addresses, updated.Addresses)

	updated, err = r.UpdateInfo(ctx, "non_existent", UserInfo{Name: &name})
	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUserRepository_UpdateCredential(t *testing.T) {
	db := setupTestDB(t)
	r := NewUserRepositoryGorm(db)
	ctx := context.Background()

	u, cred := newUser("a@x.com")
	created, err := r.CreateWithCredential(ctx, u, cred)
	assert.NoError(t, err)

	c, err := r.UpdateCredential(ctx, created.UserID, "ffeeddccbbaa99887766554433221100", []byte{9, 9})
	assert.NoError(t, err)
	assert.Equal(t, "ffeeddccbbaa99887766554433221100", c.Salt)
	assert.Equal(t, []byte{9, 9}, c.Hash)
	assert.Equal(t, uint(1), c.Version)

	c, err = r.UpdateCredential(ctx, created.UserID, "00", []byte{1})
	assert.NoError(t, err)
	assert.Equal(t, uint(2), c.Version)

	c, err = r.UpdateCredential(ctx, "non_existent", "00", []byte{1})
	assert.NoError(t, err)
	assert.Nil(t, c)
}
