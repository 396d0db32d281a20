package storage

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

type GormModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt soft_delete.DeletedAt
}

type UserRecord struct {
	GormModel
	UserId    string         `gorm:"size:64;not null;uniqueIndex"`             // 用户唯一索引
	Email     string         `gorm:"size:255;not null;uniqueIndex"`            // 登录邮箱，已归一化
	Name      string         `gorm:"size:64;not null;default:''"`              // 用户姓名
	Role      string         `gorm:"type:varchar(16);not null;default:'user'"` // 用户角色
	Addresses datatypes.JSON // 收货地址列表
}

func (UserRecord) TableName() string {
	return "users"
}

type UserCredentialRecord struct {
	GormModel
	UserId            string `gorm:"size:64;not null;uniqueIndex"` // 用户唯一索引
	PasswordSalt      string `gorm:"size:64;not null"`             // hex
	PasswordHash      string `gorm:"size:128;not null"`            // hex
	CredentialVersion uint   `gorm:"default:0;not null"`           // 密码凭证版本
}

func (UserCredentialRecord) TableName() string {
	return "user_credentials"
}
