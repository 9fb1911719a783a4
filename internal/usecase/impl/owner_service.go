// Package impl contains the implementation of the application's business logic.
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

// ownerService implements the OwnerUsecase interface.
type ownerService struct {
	txManager repository.TransactionManager
	ownerRepo repository.OwnerRepository
	logger    *slog.Logger
}

// OwnerServiceParams holds dependencies for ownerService, injected by Fx.
type OwnerServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OwnerRepo repository.OwnerRepository
	Logger    *slog.Logger
}

// NewOwnerService is the constructor for ownerService.
func NewOwnerService(params OwnerServiceParams) usecase.OwnerUsecase {
	return &ownerService{
		txManager: params.TxManager,
		ownerRepo: params.OwnerRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *ownerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterOwner creates a new active owner after checking that the username
// and email are free among active owners. The storage layer enforces the same
// uniqueness again, so a race between two registrations loses cleanly there.
func (srv *ownerService) RegisterOwner(ctx context.Context, input *usecase.RegisterOwnerInput) (*entity.Owner, error) {
	srv.log(ctx).Info("Registering owner", slog.String("username", input.Username))

	var created *entity.Owner

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.OwnerRepo()

		if err := srv.checkAvailability(ctx, ownerRepo, input.Username, input.Email); err != nil {
			return err
		}

		owner := entity.NewOwner(entity.OwnerConfig{
			Username:    input.Username,
			Phonenumber: input.Phonenumber,
			Email:       input.Email,
			Home:        input.Home.ToCoordinate(),
		})

		if err := ownerRepo.Create(ctx, owner); err != nil {
			return errors.Wrap(err, "failed to create owner")
		}
		created = owner

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to register owner")
	}
	srv.log(ctx).Debug("owner registered", slog.String("ownerID", created.ID.String()))

	return created, nil
}

// checkAvailability ensures no active owner already claims the username or email.
func (srv *ownerService) checkAvailability(ctx context.Context, ownerRepo repository.OwnerRepository, username, email string) error {
	if _, err := ownerRepo.FindActiveByUsername(ctx, username); err == nil {
		return domainerrors.ErrOwnerAlreadyExists.WrapMessage("username " + username + " is taken by an active owner")
	} else if !errors.Is(err, repository.ErrOwnerNotFound) {
		return errors.Wrap(err, "failed to check username availability")
	}

	if email == "" {
		return nil
	}

	if _, err := ownerRepo.FindActiveByEmail(ctx, email); err == nil {
		return domainerrors.ErrOwnerAlreadyExists.WrapMessage("email " + email + " is taken by an active owner")
	} else if !errors.Is(err, repository.ErrOwnerNotFound) {
		return errors.Wrap(err, "failed to check email availability")
	}

	return nil
}

// GetOwner retrieves one owner aggregate by ID.
func (srv *ownerService) GetOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Owner, error) {
	owner, err := srv.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return nil, domainerrors.ErrOwnerNotFound.WrapMessage("owner " + ownerID.String() + " not found")
		}

		return nil, errors.Wrap(err, "failed to find owner")
	}

	return owner, nil
}

// GetOwnerByUsername retrieves the active owner with the given username.
func (srv *ownerService) GetOwnerByUsername(ctx context.Context, username string) (*entity.Owner, error) {
	owner, err := srv.ownerRepo.FindActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return nil, domainerrors.ErrOwnerNotFound.WrapMessage("no active owner named " + username)
		}

		return nil, errors.Wrap(err, "failed to find owner by username")
	}

	return owner, nil
}

// ListOwners lists all active owners.
func (srv *ownerService) ListOwners(ctx context.Context) ([]*entity.Owner, error) {
	owners, err := srv.ownerRepo.FindAllActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list owners")
	}

	return owners, nil
}

// UpdateProfile applies the narrow profile update (username, phone number,
// home) to an owner. A username change re-checks availability first.
func (srv *ownerService) UpdateProfile(ctx context.Context, ownerID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Owner, error) {
	srv.log(ctx).Info("Updating owner profile", slog.String("ownerID", ownerID.String()))

	var updated *entity.Owner

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.OwnerRepo()

		owner, err := findOwner(ctx, ownerRepo, ownerID)
		if err != nil {
			return err
		}

		if input.Username != owner.Username {
			if _, err := ownerRepo.FindActiveByUsername(ctx, input.Username); err == nil {
				return domainerrors.ErrOwnerAlreadyExists.WrapMessage("username " + input.Username + " is taken by an active owner")
			} else if !errors.Is(err, repository.ErrOwnerNotFound) {
				return errors.Wrap(err, "failed to check username availability")
			}
		}

		owner.CopyFrom(entity.OwnerProfile{
			Username:    input.Username,
			Phonenumber: input.Phonenumber,
			Home:        input.Home.ToCoordinate(),
		})

		if err := ownerRepo.Update(ctx, owner); err != nil {
			return errors.Wrap(err, "failed to save owner")
		}
		updated = owner

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to update owner profile")
	}

	return updated, nil
}

// AttachItem links a new item to the owner. The key must not already be
// linked; an omitted key gets a generated one.
func (srv *ownerService) AttachItem(ctx context.Context, ownerID uuid.UUID, input *usecase.ItemInput) (*entity.Item, error) {
	srv.log(ctx).Info("Attaching item", slog.String("ownerID", ownerID.String()), slog.String("title", input.Title))

	var attached *entity.Item

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.OwnerRepo()
		itemRepo := repoFactory.ItemRepo()

		owner, err := findOwner(ctx, ownerRepo, ownerID)
		if err != nil {
			return err
		}

		item := entity.NewItem(entity.ItemConfig{
			Key:       input.Key,
			Title:     input.Title,
			Body:      input.Body,
			Shareable: input.Shareable,
		})

		if !owner.AddItem(item) {
			return domainerrors.ErrItemAlreadyAttached.WrapMessage("item key " + item.Key + " is already attached")
		}

		if err := itemRepo.Create(ctx, item); err != nil {
			return errors.Wrap(err, "failed to create item")
		}
		if err := ownerRepo.Update(ctx, owner); err != nil {
			return errors.Wrap(err, "failed to link item to owner")
		}
		attached = item

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to attach item")
	}

	return attached, nil
}

// UpdateOwnerItem updates one of the owner's items in place, identified by
// the item key carried in the input.
func (srv *ownerService) UpdateOwnerItem(ctx context.Context, ownerID uuid.UUID, input *usecase.ItemInput) (*entity.Item, error) {
	srv.log(ctx).Info("Updating item", slog.String("ownerID", ownerID.String()), slog.String("key", input.Key))

	var updated *entity.Item

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.OwnerRepo()
		itemRepo := repoFactory.ItemRepo()

		owner, err := findOwner(ctx, ownerRepo, ownerID)
		if err != nil {
			return err
		}

		incoming := entity.NewItem(entity.ItemConfig{
			Key:       input.Key,
			Title:     input.Title,
			Body:      input.Body,
			Shareable: input.Shareable,
		})

		if err := owner.UpdateItem(incoming); err != nil {
			return err
		}

		item, _ := owner.GetItem(input.Key)
		if err := itemRepo.Update(ctx, item); err != nil {
			return errors.Wrap(err, "failed to save item")
		}
		updated = item

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to update item")
	}

	return updated, nil
}

// SetInterestedArea replaces the owner's discovery polygon. The vertices must
// form a usable polygon; fewer than three distinct points are rejected. An
// empty slice clears the area so discovery falls back to the home box.
func (srv *ownerService) SetInterestedArea(ctx context.Context, ownerID uuid.UUID, points []usecase.CoordinateInput) error {
	srv.log(ctx).Info("Setting interested area", slog.String("ownerID", ownerID.String()), slog.Int("points", len(points)))

	coords := usecase.ToCoordinates(points)
	if len(coords) > 0 {
		if _, err := entity.ToPolygonString(coords); err != nil {
			return err
		}
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.OwnerRepo()

		owner, err := findOwner(ctx, ownerRepo, ownerID)
		if err != nil {
			return err
		}

		owner.SetInterestedArea(coords)

		if err := ownerRepo.Update(ctx, owner); err != nil {
			return errors.Wrap(err, "failed to save owner")
		}

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to set interested area")
	}

	return nil
}

// DeactivateOwner soft-deletes the owner, freeing the username and email for
// a future active registration.
func (srv *ownerService) DeactivateOwner(ctx context.Context, ownerID uuid.UUID) error {
	srv.log(ctx).Info("Deactivating owner", slog.String("ownerID", ownerID.String()))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.OwnerRepo()

		owner, err := findOwner(ctx, ownerRepo, ownerID)
		if err != nil {
			return err
		}

		owner.Deactivate()

		if err := ownerRepo.Update(ctx, owner); err != nil {
			return errors.Wrap(err, "failed to save owner")
		}

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to deactivate owner")
	}

	return nil
}

// findOwner loads an owner inside a transaction, mapping the repository
// sentinel to the domain error.
func findOwner(ctx context.Context, ownerRepo repository.OwnerRepository, ownerID uuid.UUID) (*entity.Owner, error) {
	owner, err := ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return nil, domainerrors.ErrOwnerNotFound.WrapMessage("owner " + ownerID.String() + " not found")
		}

		return nil, errors.Wrap(err, "failed to find owner")
	}

	return owner, nil
}
