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

// itemRepository implements the domain.ItemRepository interface using GORM.
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository is the constructor for itemRepository.
func NewItemRepository(db *gorm.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

// FindByKey retrieves an item by its persistent key, with shared groups loaded.
func (repo *itemRepository) FindByKey(ctx context.Context, key string) (*entity.Item, error) {
	var itemM model.ItemModel
	err := repo.db.WithContext(ctx).
		Preload("SharedWith").
		First(&itemM, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item by key")
	}

	return toItemDomain(&itemM), nil
}

// Create persists a new item.
func (repo *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrItemAlreadyAttached.WrapMessage("item key " + item.Key + " already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required item information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create item")
	}

	item.ID = itemM.ID
	item.Version = itemM.Version
	item.LastModified = itemM.LastModified

	return nil
}

// Update saves the item with an optimistic version check, keyed on the stable
// item key. On success the shared-group links are replaced with the current set.
func (repo *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	updates := map[string]any{
		"title":     item.Title,
		"body":      item.Body,
		"shareable": item.Shareable,
		"version":   gorm.Expr("version + 1"),
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("key = ? AND version = ?", item.Key, item.Version).
		Updates(updates)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update item")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).Model(&model.ItemModel{}).Where("key = ?", item.Key).Count(&count).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check item existence")
		}
		if count == 0 {
			return repository.ErrItemNotFound
		}

		return domainerrors.ErrConcurrentModification.WrapMessage("item " + item.Key + " was modified concurrently")
	}
	item.Version++

	return repo.syncSharedGroups(ctx, item)
}

// syncSharedGroups replaces the item's shared-group links with the aggregate's
// current set.
func (repo *itemRepository) syncSharedGroups(ctx context.Context, item *entity.Item) error {
	groupMs := make([]*model.UserGroupModel, 0, len(item.SharedWith))
	for _, group := range item.SharedWith {
		groupMs = append(groupMs, &model.UserGroupModel{ID: group.ID, OwnerID: group.OwnerID, Name: group.Name})
	}

	itemRef := &model.ItemModel{ID: item.ID}
	if itemRef.ID == uuid.Nil {
		// The aggregate may have been loaded without the surrogate ID; look it up.
		var itemM model.ItemModel
		if err := repo.db.WithContext(ctx).Select("id").First(&itemM, "key = ?", item.Key).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to resolve item id")
		}
		itemRef.ID = itemM.ID
		item.ID = itemM.ID
	}

	if err := repo.db.WithContext(ctx).Model(itemRef).Association("SharedWith").Replace(groupMs); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to sync item shared groups")
	}

	return nil
}

// toItemDomain converts a GORM ItemModel to a domain Item entity.
func toItemDomain(data *model.ItemModel) *entity.Item {
	if data == nil {
		return nil
	}

	item := &entity.Item{
		ID:           data.ID,
		Key:          data.Key,
		Title:        data.Title,
		Body:         data.Body,
		Shareable:    data.Shareable,
		Version:      data.Version,
		LastModified: data.LastModified,
	}

	for _, groupM := range data.SharedWith {
		item.SharedWith = append(item.SharedWith, toUserGroupDomain(groupM))
	}

	return item
}

// fromItemDomain converts a domain Item entity to a GORM ItemModel. Shared
// groups are not carried along; their links are maintained separately.
func fromItemDomain(data *entity.Item) *model.ItemModel {
	if data == nil {
		return nil
	}

	return &model.ItemModel{
		ID:        data.ID,
		Key:       data.Key,
		Title:     data.Title,
		Body:      data.Body,
		Shareable: data.Shareable,
		Version:   data.Version,
	}
}
