package model

import (
	"time"

	"github.com/google/uuid"
)

// UserGroupModel mirrors the 'user_groups' table. OwnerID is the creator and
// administrator; membership is a many-to-many link back to owners.
type UserGroupModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"type:varchar(100);not null"`

	Members []*OwnerModel `gorm:"many2many:group_members"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserGroupModel) TableName() string {
	return "user_groups"
}
