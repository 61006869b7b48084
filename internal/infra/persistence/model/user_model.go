package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. The optional client address is
// flattened into nullable columns. ShopID is only set for shop owners.
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string     `gorm:"type:varchar(50);not null"`
	Email        string     `gorm:"type:varchar(255);unique;not null"`
	Phone        string     `gorm:"type:varchar(20)"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(32);not null;index"`
	ShopID       *uuid.UUID `gorm:"type:uuid;index"`
	Street       *string    `gorm:"type:varchar(255)"`
	City         *string    `gorm:"type:varchar(100)"`
	PostalCode   *string    `gorm:"type:varchar(10)"`
	Active       bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Shop *ShopModel `gorm:"foreignKey:ShopID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}