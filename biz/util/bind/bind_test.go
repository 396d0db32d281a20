package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=8"`
}

func TestValidate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, Validate(&loginReq{Email: "a@x.com", Password: "secret"}))
	})

	t.Run("missing fields", func(t *testing.T) {
		err := Validate(&loginReq{})
		assert.EqualError(t, err, "email is required; password is required")
	})

	t.Run("bad email and long password", func(t *testing.T) {
		err := Validate(&loginReq{Email: "nope", Password: "123456789"})
		assert.EqualError(t, err, "email must be a valid email; password must be at most 8 characters")
	})
}
