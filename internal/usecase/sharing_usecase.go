package usecase

import (
	"context"

	"shoplist/internal/domain/entity"

	"github.com/google/uuid"
)

// SharingUsecase defines the interface for group and item-sharing operations.
type SharingUsecase interface {
	CreateGroup(ctx context.Context, ownerID uuid.UUID, input *CreateGroupInput) (*entity.UserGroup, error)
	GetGroup(ctx context.Context, groupID uuid.UUID) (*entity.UserGroup, error)
	ListGroups(ctx context.Context, ownerID uuid.UUID) ([]*entity.UserGroup, error)

	// AddMember adds an owner to a group. Only the group's creator may do so.
	AddMember(ctx context.Context, actorID, groupID, memberID uuid.UUID) (*entity.UserGroup, error)

	// ShareItem grants a group access to one of the actor's items. The item
	// must be marked shareable.
	ShareItem(ctx context.Context, actorID uuid.UUID, itemKey string, groupID uuid.UUID) (*entity.Item, error)
}

// CreateGroupInput defines the data required to create a user group.
type CreateGroupInput struct {
	Name      string      `json:"name"`
	MemberIDs []uuid.UUID `json:"member_ids,omitempty"`
}
