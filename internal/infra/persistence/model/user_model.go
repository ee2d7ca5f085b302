// Package model holds the GORM persistence models. They are exported so the GORM Gen tool can use them.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs are generated by the application (UUIDv7).
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string    `gorm:"type:varchar(255)"`
	Role         string     `gorm:"type:varchar(20);not null;index"`
	Status       string     `gorm:"type:varchar(20);not null"`
	Name         string     `gorm:"type:varchar(100)"`
	Phone        string     `gorm:"type:varchar(32)"`
	Avatar       *ImageData `gorm:"type:jsonb;serializer:json"`
	AuthProvider string     `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
