package model

import (
	"time"

	"lens/internal/domain/entity"
)

// CustomerProfileModel mirrors the 'customer_profiles' table. user_id is
// unique (one profile per customer) but deliberately NOT a foreign key into
// users: the profile's lifecycle is independent of any identity record.
type CustomerProfileModel struct {
	UserID      string                     `gorm:"column:user_id;type:varchar(64);primaryKey"`
	Demographic entity.Demographic         `gorm:"serializer:json;type:jsonb"`
	Behavior    entity.Behavior            `gorm:"serializer:json;type:jsonb"`
	Engagement  entity.Engagement          `gorm:"serializer:json;type:jsonb"`
	Lifecycle   entity.Lifecycle           `gorm:"serializer:json;type:jsonb"`
	Preferences entity.CustomerPreferences `gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerProfileModel) TableName() string {
	return "customer_profiles"
}
