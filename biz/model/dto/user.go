package dto

type RegisterReq struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Name     string `json:"name" validate:"max=64"`
}

type RegisterResp struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type LoginResp struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

type RefreshTokenReq struct {
}

type RefreshTokenResp struct {
	AccessToken      string `json:"access_token"`
	ExpiresAt        int64  `json:"expires_at"`
	RefreshToken     string `json:"refresh_token"`
	RefreshExpiresAt int64  `json:"refresh_expires_at"`
}

type CheckResp struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type LogoutReq struct{}

type LogoutResp struct{}

type Address struct {
	Name    string `json:"name" validate:"required,max=64"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
	Phone   string `json:"phone" validate:"max=32"`
	Street  string `json:"street" validate:"required,max=255"`
	City    string `json:"city" validate:"required,max=64"`
	State   string `json:"state" validate:"max=64"`
	PinCode string `json:"pinCode" validate:"max=16"`
}

type GetUserInfoResp struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Addresses []Address `json:"addresses"`
	CreatedAt int64     `json:"created_at"`
	UpdatedAt int64     `json:"updated_at"`
}

type UpdateInfoReq struct {
	Name      *string    `json:"name" validate:"omitempty,max=64"`
	Addresses *[]Address `json:"addresses" validate:"omitempty,max=20,dive"`
}

type UpdateInfoResp struct{}

type UpdatePasswordReq struct {
	OldPassword string `json:"old_password" validate:"required,max=128"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=128"`
}

type UpdatePasswordResp struct{}
