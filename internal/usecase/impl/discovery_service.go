package impl

import (
	"context"
	"log/slog"

	deliverycontext "shoplist/internal/delivery/context"
	"shoplist/internal/domain/entity"
	domainerrors "shoplist/internal/domain/errors"
	"shoplist/internal/domain/repository"
	"shoplist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// discoveryService implements the DiscoveryUsecase interface.
type discoveryService struct {
	ownerRepo repository.OwnerRepository
	logger    *slog.Logger
}

// DiscoveryServiceParams holds dependencies for discoveryService, injected by Fx.
type DiscoveryServiceParams struct {
	fx.In

	OwnerRepo repository.OwnerRepository
	Logger    *slog.Logger
}

// NewDiscoveryService is the constructor for discoveryService.
func NewDiscoveryService(params DiscoveryServiceParams) usecase.DiscoveryUsecase {
	return &discoveryService{
		ownerRepo: params.OwnerRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *discoveryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// FindNearbyOwners returns the active owners whose home lies inside the
// requesting owner's area of interest. The requester is excluded from the
// result.
func (srv *discoveryService) FindNearbyOwners(ctx context.Context, ownerID uuid.UUID) ([]*entity.Owner, error) {
	srv.log(ctx).Debug("Finding nearby owners", slog.String("ownerID", ownerID.String()))

	owner, err := srv.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return nil, domainerrors.ErrOwnerNotFound.WrapMessage("owner " + ownerID.String() + " not found")
		}

		return nil, errors.Wrap(err, "failed to find owner")
	}

	polygon, err := owner.AreaOfInterest()
	if err != nil {
		return nil, err
	}

	found, err := srv.ownerRepo.FindWithinArea(ctx, polygon)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search area")
	}

	nearby := make([]*entity.Owner, 0, len(found))
	for _, candidate := range found {
		if candidate.ID == owner.ID {
			continue
		}
		nearby = append(nearby, candidate)
	}
	srv.log(ctx).Debug("nearby owners found", slog.Int("count", len(nearby)))

	return nearby, nil
}

// FindOwnersWithinArea returns the active owners whose home lies inside the
// polygon spanned by the given vertices.
func (srv *discoveryService) FindOwnersWithinArea(ctx context.Context, area []usecase.CoordinateInput) ([]*entity.Owner, error) {
	srv.log(ctx).Debug("Finding owners within area", slog.Int("points", len(area)))

	polygon, err := entity.ToPolygonString(usecase.ToCoordinates(area))
	if err != nil {
		return nil, err
	}

	found, err := srv.ownerRepo.FindWithinArea(ctx, polygon)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search area")
	}

	return found, nil
}
