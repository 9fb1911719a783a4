package repository

import (
	"context"
	"errors"

	"shoplist/internal/domain/entity"
)

// ErrItemNotFound is a domain-specific error returned when an item is not found.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository defines the standard operations for item persistence. Items
// live independently of owners; the owner↔item link is maintained through the
// owner aggregate.
type ItemRepository interface {
	// FindByKey retrieves an item by its persistent key, with shared groups loaded.
	FindByKey(ctx context.Context, key string) (*entity.Item, error)

	// Create persists a new item.
	Create(ctx context.Context, item *entity.Item) error

	// Update saves the item with an optimistic version check, mirroring
	// OwnerRepository.Update.
	Update(ctx context.Context, item *entity.Item) error
}
