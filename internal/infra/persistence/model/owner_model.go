package model

import (
	"time"

	"github.com/google/uuid"
)

// OwnerModel mirrors the 'owners' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
//
// Uniqueness of username and email is scoped to the active flag: a
// deactivated row keeps its values but no longer blocks a new active owner
// from claiming them.
type OwnerModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username    string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_owners_username_active"`
	Password    string    `gorm:"type:varchar(255)"`
	Phonenumber string    `gorm:"type:varchar(32)"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex:uq_owners_email_active"`
	Active      bool      `gorm:"not null;default:true;uniqueIndex:uq_owners_username_active;uniqueIndex:uq_owners_email_active"`

	// Home location split into its raw components plus the derived WKT point
	// used by spatial predicates. All nullable: an owner may have no home.
	HomeLongitude      *float64 `gorm:"type:decimal(11,8)"`
	HomeLatitude       *float64 `gorm:"type:decimal(10,8)"`
	HomeLongitudeDelta *float64 `gorm:"type:decimal(11,8)"`
	HomeLatitudeDelta  *float64 `gorm:"type:decimal(10,8)"`
	HomePosition       *string  `gorm:"type:varchar(2048)"`

	VerificationCode     string     `gorm:"type:varchar(16)"`
	VerificationCodeSent *time.Time

	Version   int64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items      []*ItemModel     `gorm:"many2many:owner_items"`
	AreaPoints []AreaPointModel `gorm:"foreignKey:OwnerID"`
}

// TableName explicitly sets the table name for GORM.
func (OwnerModel) TableName() string {
	return "owners"
}

// AreaPointModel mirrors the 'owner_area_points' table: one ordered polygon
// vertex of an owner's interested area. Position is the vertex index.
type AreaPointModel struct {
	OwnerID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position       int       `gorm:"primaryKey"`
	Longitude      float64   `gorm:"type:decimal(11,8);not null"`
	Latitude       float64   `gorm:"type:decimal(10,8);not null"`
	LongitudeDelta float64   `gorm:"type:decimal(11,8);not null;default:0"`
	LatitudeDelta  float64   `gorm:"type:decimal(10,8);not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (AreaPointModel) TableName() string {
	return "owner_area_points"
}
