package repository

import (
	"context"
	"errors"

	"shoplist/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrGroupNotFound is a domain-specific error returned when a group is not found.
var ErrGroupNotFound = errors.New("user group not found")

// UserGroupRepository defines the standard operations for user-group persistence.
type UserGroupRepository interface {
	// FindByID retrieves a group by ID, with members loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UserGroup, error)

	// FindByOwner lists the groups created by the given owner.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.UserGroup, error)

	// Create persists a new group, including its initial member list.
	Create(ctx context.Context, group *entity.UserGroup) error

	// Update saves the group and replaces its member associations.
	Update(ctx context.Context, group *entity.UserGroup) error
}
