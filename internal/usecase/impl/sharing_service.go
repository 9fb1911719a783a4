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

// sharingService implements the SharingUsecase interface.
type sharingService struct {
	txManager repository.TransactionManager
	groupRepo repository.UserGroupRepository
	logger    *slog.Logger
}

// SharingServiceParams holds dependencies for sharingService, injected by Fx.
type SharingServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	GroupRepo repository.UserGroupRepository
	Logger    *slog.Logger
}

// NewSharingService is the constructor for sharingService.
func NewSharingService(params SharingServiceParams) usecase.SharingUsecase {
	return &sharingService{
		txManager: params.TxManager,
		groupRepo: params.GroupRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sharingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateGroup creates a group administered by the given owner. Initial
// members are resolved by ID; an unknown member fails the whole creation.
func (srv *sharingService) CreateGroup(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateGroupInput) (*entity.UserGroup, error) {
	srv.log(ctx).Info("Creating group", slog.String("ownerID", ownerID.String()), slog.String("name", input.Name))

	var created *entity.UserGroup

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.OwnerRepo()
		groupRepo := repoFactory.GroupRepo()

		creator, err := findOwner(ctx, ownerRepo, ownerID)
		if err != nil {
			return err
		}

		members := make([]*entity.Owner, 0, len(input.MemberIDs))
		for _, memberID := range input.MemberIDs {
			member, err := findOwner(ctx, ownerRepo, memberID)
			if err != nil {
				return err
			}
			members = append(members, member)
		}

		group := entity.NewUserGroup(creator.ID, input.Name, members)

		if err := groupRepo.Create(ctx, group); err != nil {
			return errors.Wrap(err, "failed to create group")
		}
		created = group

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to create group")
	}
	srv.log(ctx).Debug("group created", slog.String("groupID", created.ID.String()))

	return created, nil
}

// GetGroup retrieves a group with its members.
func (srv *sharingService) GetGroup(ctx context.Context, groupID uuid.UUID) (*entity.UserGroup, error) {
	group, err := srv.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, domainerrors.ErrGroupNotFound.WrapMessage("group " + groupID.String() + " not found")
		}

		return nil, errors.Wrap(err, "failed to find group")
	}

	return group, nil
}

// ListGroups lists the groups created by the given owner.
func (srv *sharingService) ListGroups(ctx context.Context, ownerID uuid.UUID) ([]*entity.UserGroup, error) {
	groups, err := srv.groupRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list groups")
	}

	return groups, nil
}

// AddMember adds an owner to a group. Only the group's creator may change
// membership; adding an existing member is a no-op.
func (srv *sharingService) AddMember(ctx context.Context, actorID, groupID, memberID uuid.UUID) (*entity.UserGroup, error) {
	srv.log(ctx).Info("Adding group member",
		slog.String("groupID", groupID.String()), slog.String("memberID", memberID.String()))

	var updated *entity.UserGroup

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.OwnerRepo()
		groupRepo := repoFactory.GroupRepo()

		group, err := findGroup(ctx, groupRepo, groupID)
		if err != nil {
			return err
		}
		if group.OwnerID != actorID {
			return domainerrors.ErrForbidden.WrapMessage("only the group creator may add members")
		}

		member, err := findOwner(ctx, ownerRepo, memberID)
		if err != nil {
			return err
		}

		if !group.AddMember(member) {
			srv.log(ctx).Debug("member already in group", slog.String("memberID", memberID.String()))
			updated = group

			return nil
		}

		if err := groupRepo.Update(ctx, group); err != nil {
			return errors.Wrap(err, "failed to save group")
		}
		updated = group

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to add group member")
	}

	return updated, nil
}

// ShareItem grants a group access to one of the actor's items. The actor must
// hold the item, the item must be marked shareable, and the actor must belong
// to the group (as its creator or a member).
func (srv *sharingService) ShareItem(ctx context.Context, actorID uuid.UUID, itemKey string, groupID uuid.UUID) (*entity.Item, error) {
	srv.log(ctx).Info("Sharing item",
		slog.String("ownerID", actorID.String()), slog.String("key", itemKey), slog.String("groupID", groupID.String()))

	var shared *entity.Item

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.OwnerRepo()
		groupRepo := repoFactory.GroupRepo()
		itemRepo := repoFactory.ItemRepo()

		owner, err := findOwner(ctx, ownerRepo, actorID)
		if err != nil {
			return err
		}

		item, ok := owner.GetItem(itemKey)
		if !ok {
			return domainerrors.ErrItemNotFound.WrapMessage("owner holds no item with key " + itemKey)
		}
		if !item.Shareable {
			return domainerrors.ErrForbidden.WrapMessage("item " + itemKey + " is not shareable")
		}

		group, err := findGroup(ctx, groupRepo, groupID)
		if err != nil {
			return err
		}
		if !groupIncludes(group, actorID) {
			return domainerrors.ErrForbidden.WrapMessage("owner does not belong to group " + groupID.String())
		}

		if !item.ShareWith(group) {
			srv.log(ctx).Debug("item already shared with group", slog.String("groupID", groupID.String()))
			shared = item

			return nil
		}

		if err := itemRepo.Update(ctx, item); err != nil {
			return errors.Wrap(err, "failed to save item")
		}
		shared = item

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to share item")
	}

	return shared, nil
}

// groupIncludes reports whether the owner is the group's creator or one of
// its members.
func groupIncludes(group *entity.UserGroup, ownerID uuid.UUID) bool {
	if group.OwnerID == ownerID {
		return true
	}
	for _, member := range group.Members {
		if member.ID == ownerID {
			return true
		}
	}

	return false
}

// findGroup loads a group inside a transaction, mapping the repository
// sentinel to the domain error.
func findGroup(ctx context.Context, groupRepo repository.UserGroupRepository, groupID uuid.UUID) (*entity.UserGroup, error) {
	group, err := groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, domainerrors.ErrGroupNotFound.WrapMessage("group " + groupID.String() + " not found")
		}

		return nil, errors.Wrap(err, "failed to find group")
	}

	return group, nil
}
