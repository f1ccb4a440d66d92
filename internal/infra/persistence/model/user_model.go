// Package model contains the GORM persistence models. Nested sub-records are
// stored as jsonb documents rather than joined tables: the analytics layer
// reads whole records, and cross-entity references are logical identifiers
// with no foreign-key enforcement.
package model

import (
	"time"

	"lens/internal/domain/entity"
)

// UserModel mirrors the 'users' table. The logical user_id is the primary
// key; email carries its own unique index so duplicate writes fail at the
// store instead of overwriting.
type UserModel struct {
	UserID           string             `gorm:"column:user_id;type:varchar(64);primaryKey"`
	Email            string             `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash     string             `gorm:"type:varchar(255);not null"`
	FirstName        string             `gorm:"type:varchar(100)"`
	LastName         string             `gorm:"type:varchar(100)"`
	Role             string             `gorm:"type:varchar(20);index"`
	RegistrationDate time.Time
	LastLogin        *time.Time
	Preferences      entity.Preferences `gorm:"serializer:json;type:jsonb"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
