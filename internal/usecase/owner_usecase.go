// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"shoplist/internal/domain/entity"

	"github.com/google/uuid"
)

// OwnerUsecase defines the interface for owner-related business operations.
type OwnerUsecase interface {
	RegisterOwner(ctx context.Context, input *RegisterOwnerInput) (*entity.Owner, error)
	GetOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Owner, error)
	GetOwnerByUsername(ctx context.Context, username string) (*entity.Owner, error)
	ListOwners(ctx context.Context) ([]*entity.Owner, error)
	UpdateProfile(ctx context.Context, ownerID uuid.UUID, input *UpdateProfileInput) (*entity.Owner, error)
	AttachItem(ctx context.Context, ownerID uuid.UUID, input *ItemInput) (*entity.Item, error)
	UpdateOwnerItem(ctx context.Context, ownerID uuid.UUID, input *ItemInput) (*entity.Item, error)
	SetInterestedArea(ctx context.Context, ownerID uuid.UUID, points []CoordinateInput) error
	DeactivateOwner(ctx context.Context, ownerID uuid.UUID) error
}

// --- Input DTOs ---

// CoordinateInput defines a geographic point with its map extent.
type CoordinateInput struct {
	Longitude      float64 `json:"longitude"`
	Latitude       float64 `json:"latitude"`
	LongitudeDelta float64 `json:"longitude_delta"`
	LatitudeDelta  float64 `json:"latitude_delta"`
}

// ToCoordinate converts the input to a domain coordinate.
func (c *CoordinateInput) ToCoordinate() *entity.Coordinate {
	if c == nil {
		return nil
	}
	coord := entity.NewCoordinate(c.Longitude, c.Latitude, c.LongitudeDelta, c.LatitudeDelta)

	return &coord
}

// ToCoordinates converts a slice of inputs to domain coordinates, preserving
// the vertex order.
func ToCoordinates(inputs []CoordinateInput) []entity.Coordinate {
	coords := make([]entity.Coordinate, 0, len(inputs))
	for i := range inputs {
		coords = append(coords, *inputs[i].ToCoordinate())
	}

	return coords
}

// RegisterOwnerInput defines the data required to register a new owner.
type RegisterOwnerInput struct {
	Username    string           `json:"username"`
	Phonenumber string           `json:"phonenumber,omitempty"`
	Email       string           `json:"email,omitempty"`
	Home        *CoordinateInput `json:"home,omitempty"`
}

// UpdateProfileInput defines the data accepted for a profile update. Only
// username, phone number and home may change this way.
type UpdateProfileInput struct {
	Username    string           `json:"username"`
	Phonenumber string           `json:"phonenumber,omitempty"`
	Home        *CoordinateInput `json:"home,omitempty"`
}

// ItemInput defines the data for creating or updating a list item.
type ItemInput struct {
	Key       string `json:"key,omitempty"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	Shareable bool   `json:"shareable,omitempty"`
}
