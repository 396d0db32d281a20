package domain

import (
	"errors"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type Address struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	PinCode string `json:"pinCode,omitempty"`
}

type User struct {
	UserID    string
	Email     string
	Name      string
	Role      Role
	Addresses []Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credential holds the derived password material of a user. Salt and Hash are
// only ever written together.
type Credential struct {
	UserID  string
	Salt    string
	Hash    []byte
	Version uint
}

var (
	ErrClaimIDEmpty    = errors.New("claim id is empty")
	ErrClaimRoleUnknow = errors.New("claim role is unknown")
)

// Claim is the identity carried by a token or a session.
type Claim struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func NewClaim(id string, role Role) (Claim, error) {
	if id == "" {
		return Claim{}, ErrClaimIDEmpty
	}
	if !role.Valid() {
		return Claim{}, ErrClaimRoleUnknow
	}
	return Claim{ID: id, Role: role}, nil
}

func (u *User) Claim() (Claim, error) {
	return NewClaim(u.UserID, u.Role)
}
