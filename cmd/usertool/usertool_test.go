package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"our_culture/be/biz/middleware/jwt"
	"our_culture/be/biz/model/domain"
	"our_culture/be/biz/model/errs"
	"our_culture/be/biz/service/user"
	"our_culture/be/biz/util/testenv"

	"github.com/stretchr/testify/assert"
)

func stubPasswords(t *testing.T, answers ...string) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more input")
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
}

func TestPromptPassword(t *testing.T) {
	var out bytes.Buffer

	stubPasswords(t, "secret123", "secret123")
	pwd, err := promptPassword(&out)
	assert.NoError(t, err)
	assert.Equal(t, "secret123", pwd)
	assert.Contains(t, out.String(), "Enter password: ")

	stubPasswords(t, "secret123", "other")
	_, err = promptPassword(&out)
	assert.ErrorIs(t, err, errPasswordMismatch)

	pwd, err = passwordOrPrompt("given", &out)
	assert.NoError(t, err)
	assert.Equal(t, "given", pwd)
}

func TestCreateAndSetPassword(t *testing.T) {
	testenv.SetupWithDB(t, "jwt:\n  access_token_secret: \"s\"\n  refresh_token_secret: \"r\"\n")
	ctx := context.Background()
	svc := user.NewDefault()
	var out bytes.Buffer

	assert.NoError(t, runCreate(ctx, svc, &out, "Admin@x.com", "root", domain.RoleAdmin, "secret123"))
	assert.Contains(t, out.String(), "created admin user admin@x.com")

	err := runCreate(ctx, svc, &out, "admin@x.com", "", domain.RoleAdmin, "secret123")
	assert.True(t, errs.ErrorEqual(errs.EmailDuplicated, err.(errs.Error)))

	assert.Error(t, runCreate(ctx, svc, &out, "b@x.com", "", domain.RoleUser, "123"))

	claim, bizErr := svc.Verify(ctx, "admin@x.com", "secret123")
	assert.Nil(t, bizErr)
	assert.Equal(t, domain.RoleAdmin, claim.Role)

	token, _, err := jwt.NewDefaultIssuer().Issue(ctx, claim)
	assert.NoError(t, err)

	assert.NoError(t, runSetPassword(ctx, svc, &out, "admin@x.com", "rotated-pass"))
	_, bizErr = svc.Verify(ctx, "admin@x.com", "secret123")
	assert.True(t, errs.ErrorEqual(errs.InvalidCredentials, bizErr))
	_, bizErr = svc.Verify(ctx, "admin@x.com", "rotated-pass")
	assert.Nil(t, bizErr)

	_, err = jwt.NewDefaultIssuer().Verify(ctx, token)
	assert.ErrorIs(t, err, jwt.ErrJwtRevoked)

	err = runSetPassword(ctx, svc, &out, "nobody@x.com", "rotated-pass")
	assert.True(t, errs.ErrorEqual(errs.UserNotExist, err.(errs.Error)))
}
