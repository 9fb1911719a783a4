package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemModel mirrors the 'items' table. The surrogate ID stays internal; the
// key column is the stable identifier handed out to clients. Ownership is a
// many-to-many link so a shared item appears on several owners' lists.
type ItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Key       string    `gorm:"type:varchar(64);not null;unique"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Body      string    `gorm:"type:text"`
	Shareable bool      `gorm:"not null;default:false"`

	Version      int64     `gorm:"not null;default:0"`
	LastModified time.Time `gorm:"autoUpdateTime"`

	SharedWith []*UserGroupModel `gorm:"many2many:item_shared_groups"`
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}
