package postgres

import (
	"context"

	"shoplist/internal/domain/entity"
	domainerrors "shoplist/internal/domain/errors"
	"shoplist/internal/domain/repository"
	"shoplist/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userGroupRepository implements the domain.UserGroupRepository interface using GORM.
type userGroupRepository struct {
	db *gorm.DB
}

// NewUserGroupRepository is the constructor for userGroupRepository.
func NewUserGroupRepository(db *gorm.DB) repository.UserGroupRepository {
	return &userGroupRepository{db: db}
}

// FindByID retrieves a group by ID, with members loaded.
func (repo *userGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserGroup, error) {
	var groupM model.UserGroupModel
	err := repo.db.WithContext(ctx).
		Preload("Members").
		First(&groupM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGroupNotFound
		}

		return nil, errors.Wrap(err, "failed to find group by id")
	}

	return toUserGroupDomain(&groupM), nil
}

// FindByOwner lists the groups created by the given owner.
func (repo *userGroupRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.UserGroup, error) {
	var groupMs []*model.UserGroupModel
	err := repo.db.WithContext(ctx).
		Preload("Members").
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&groupMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list groups by owner")
	}

	groups := make([]*entity.UserGroup, 0, len(groupMs))
	for _, groupM := range groupMs {
		groups = append(groups, toUserGroupDomain(groupM))
	}

	return groups, nil
}

// Create persists a new group, then links its initial members. Member rows are
// referenced by ID only so creating a group never mutates owner records.
func (repo *userGroupRepository) Create(ctx context.Context, group *entity.UserGroup) error {
	groupM := fromUserGroupDomain(group)

	if err := repo.db.WithContext(ctx).Omit("Members").Create(groupM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required group information")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("group references an unknown owner")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create group")
	}

	group.ID = groupM.ID
	group.CreatedAt = groupM.CreatedAt
	group.UpdatedAt = groupM.UpdatedAt

	return repo.syncMembers(ctx, group)
}

// Update saves the group and replaces its member associations.
func (repo *userGroupRepository) Update(ctx context.Context, group *entity.UserGroup) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserGroupModel{}).
		Where("id = ?", group.ID).
		Updates(map[string]any{"name": group.Name})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update group")
	}
	if result.RowsAffected == 0 {
		return repository.ErrGroupNotFound
	}

	return repo.syncMembers(ctx, group)
}

// syncMembers replaces the group's membership links with the aggregate's
// current set.
func (repo *userGroupRepository) syncMembers(ctx context.Context, group *entity.UserGroup) error {
	memberMs := make([]*model.OwnerModel, 0, len(group.Members))
	for _, member := range group.Members {
		memberMs = append(memberMs, &model.OwnerModel{ID: member.ID})
	}

	groupRef := &model.UserGroupModel{ID: group.ID}
	if err := repo.db.WithContext(ctx).Model(groupRef).Association("Members").Replace(memberMs); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to sync group members")
	}

	return nil
}

// toUserGroupDomain converts a GORM UserGroupModel to a domain UserGroup entity.
func toUserGroupDomain(data *model.UserGroupModel) *entity.UserGroup {
	if data == nil {
		return nil
	}

	group := &entity.UserGroup{
		ID:        data.ID,
		OwnerID:   data.OwnerID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}

	for _, memberM := range data.Members {
		group.Members = append(group.Members, toOwnerDomain(memberM))
	}

	return group
}

// fromUserGroupDomain converts a domain UserGroup entity to a GORM UserGroupModel.
func fromUserGroupDomain(data *entity.UserGroup) *model.UserGroupModel {
	if data == nil {
		return nil
	}

	groupM := &model.UserGroupModel{
		ID:      data.ID,
		OwnerID: data.OwnerID,
		Name:    data.Name,
	}

	for _, member := range data.Members {
		groupM.Members = append(groupM.Members, &model.OwnerModel{ID: member.ID})
	}

	return groupM
}
