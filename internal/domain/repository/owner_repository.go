// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"shoplist/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOwnerNotFound is a domain-specific error returned when an owner is not found.
var ErrOwnerNotFound = errors.New("owner not found")

// OwnerRepository defines the standard operations for owner persistence.
// The application layer depends on this interface, not the concrete implementation.
type OwnerRepository interface {
	// FindByID retrieves a single owner by its surrogate ID, with items,
	// shared groups and the interested area loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error)

	// FindActiveByUsername retrieves the active owner with the given username.
	FindActiveByUsername(ctx context.Context, username string) (*entity.Owner, error)

	// FindActiveByEmail retrieves the active owner with the given email.
	FindActiveByEmail(ctx context.Context, email string) (*entity.Owner, error)

	// FindAllActive lists all active owners.
	FindAllActive(ctx context.Context) ([]*entity.Owner, error)

	// FindWithinArea lists active owners whose stored home position falls
	// within the given WKT polygon.
	FindWithinArea(ctx context.Context, polygon string) ([]*entity.Owner, error)

	// Create persists a new owner aggregate.
	Create(ctx context.Context, owner *entity.Owner) error

	// Update saves the aggregate with an optimistic version check: the save is
	// rejected with ErrConcurrentModification when the loaded version no
	// longer matches the stored one. On success the version token on the
	// entity is advanced.
	Update(ctx context.Context, owner *entity.Owner) error
}
