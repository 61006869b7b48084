package model

import (
	"time"

	"github.com/google/uuid"
)

// ShopModel mirrors the 'shops' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type ShopModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	Image       string    `gorm:"type:text"`
	Phone       string    `gorm:"type:varchar(20)"`
	Email       string    `gorm:"type:varchar(255);unique;not null"`
	Active      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categories []*CategoryModel `gorm:"many2many:shop_categories"`
}

// TableName explicitly sets the table name for GORM.
func (ShopModel) TableName() string {
	return "shops"
}