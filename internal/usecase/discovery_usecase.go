package usecase

import (
	"context"

	"shoplist/internal/domain/entity"

	"github.com/google/uuid"
)

// DiscoveryUsecase defines the interface for spatial owner discovery.
type DiscoveryUsecase interface {
	// FindNearbyOwners returns the active owners whose home lies inside the
	// requesting owner's area of interest.
	FindNearbyOwners(ctx context.Context, ownerID uuid.UUID) ([]*entity.Owner, error)

	// FindOwnersWithinArea returns the active owners whose home lies inside
	// the polygon spanned by the given vertices.
	FindOwnersWithinArea(ctx context.Context, area []CoordinateInput) ([]*entity.Owner, error)
}
