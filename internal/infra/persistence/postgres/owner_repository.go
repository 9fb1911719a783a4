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

// ownerRepository implements the domain.OwnerRepository interface using GORM.
type ownerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository is the constructor for ownerRepository.
// It returns the repository as a domain.OwnerRepository interface, adhering to dependency inversion.
func NewOwnerRepository(db *gorm.DB) repository.OwnerRepository {
	return &ownerRepository{db: db}
}

// withAggregate preloads the associations that make up the owner aggregate:
// the linked items with their shared groups, and the ordered area vertices.
func (repo *ownerRepository) withAggregate(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.SharedWith").
		Preload("AreaPoints", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("owner_area_points.position ASC")
		})
}

// FindByID retrieves a single owner by its surrogate ID.
func (repo *ownerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error) {
	var ownerM model.OwnerModel
	if err := repo.withAggregate(ctx).First(&ownerM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOwnerNotFound
		}

		return nil, errors.Wrap(err, "failed to find owner by id")
	}

	return toOwnerDomain(&ownerM), nil
}

// FindActiveByUsername retrieves the active owner with the given username.
func (repo *ownerRepository) FindActiveByUsername(ctx context.Context, username string) (*entity.Owner, error) {
	var ownerM model.OwnerModel
	err := repo.withAggregate(ctx).
		Where("username = ? AND active = ?", username, true).
		First(&ownerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOwnerNotFound
		}

		return nil, errors.Wrap(err, "failed to find owner by username")
	}

	return toOwnerDomain(&ownerM), nil
}

// FindActiveByEmail retrieves the active owner with the given email.
func (repo *ownerRepository) FindActiveByEmail(ctx context.Context, email string) (*entity.Owner, error) {
	var ownerM model.OwnerModel
	err := repo.withAggregate(ctx).
		Where("email = ? AND active = ?", email, true).
		First(&ownerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOwnerNotFound
		}

		return nil, errors.Wrap(err, "failed to find owner by email")
	}

	return toOwnerDomain(&ownerM), nil
}

// FindAllActive lists all active owners with their aggregates loaded.
func (repo *ownerRepository) FindAllActive(ctx context.Context) ([]*entity.Owner, error) {
	var ownerMs []*model.OwnerModel
	err := repo.withAggregate(ctx).
		Where("active = ?", true).
		Order("username ASC").
		Find(&ownerMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active owners")
	}

	owners := make([]*entity.Owner, 0, len(ownerMs))
	for _, ownerM := range ownerMs {
		owners = append(owners, toOwnerDomain(ownerM))
	}

	return owners, nil
}

// FindWithinArea lists active owners whose stored home position falls within
// the given WKT polygon. The containment check runs in PostGIS against the
// persisted point geometry.
func (repo *ownerRepository) FindWithinArea(ctx context.Context, polygon string) ([]*entity.Owner, error) {
	var ownerMs []*model.OwnerModel
	err := repo.db.WithContext(ctx).
		Where("active = ?", true).
		Where("home_position IS NOT NULL").
		Where("ST_Within(ST_GeomFromText(home_position, 4326), ST_GeomFromText(?, 4326))", polygon).
		Find(&ownerMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search owners within area")
	}

	owners := make([]*entity.Owner, 0, len(ownerMs))
	for _, ownerM := range ownerMs {
		owners = append(owners, toOwnerDomain(ownerM))
	}

	return owners, nil
}

// Create persists a new owner aggregate.
func (repo *ownerRepository) Create(ctx context.Context, owner *entity.Owner) error {
	ownerM := fromOwnerDomain(owner)

	if err := repo.db.WithContext(ctx).Create(ownerM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrOwnerAlreadyExists.WrapMessage("username or email already taken by an active owner")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required owner information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create owner")
	}

	// Update the owner entity with the generated ID and timestamps
	owner.ID = ownerM.ID
	owner.Version = ownerM.Version
	owner.CreatedAt = ownerM.CreatedAt
	owner.UpdatedAt = ownerM.UpdatedAt

	return nil
}

// Update saves the aggregate with an optimistic version check. The row is only
// touched when the stored version still matches the one the aggregate was
// loaded with; the version column advances atomically in the same statement.
func (repo *ownerRepository) Update(ctx context.Context, owner *entity.Owner) error {
	ownerM := fromOwnerDomain(owner)

	updates := map[string]any{
		"username":               ownerM.Username,
		"password":               ownerM.Password,
		"phonenumber":            ownerM.Phonenumber,
		"email":                  ownerM.Email,
		"active":                 ownerM.Active,
		"home_longitude":         ownerM.HomeLongitude,
		"home_latitude":          ownerM.HomeLatitude,
		"home_longitude_delta":   ownerM.HomeLongitudeDelta,
		"home_latitude_delta":    ownerM.HomeLatitudeDelta,
		"home_position":          ownerM.HomePosition,
		"verification_code":      ownerM.VerificationCode,
		"verification_code_sent": ownerM.VerificationCodeSent,
		"version":                gorm.Expr("version + 1"),
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OwnerModel{}).
		Where("id = ? AND version = ?", owner.ID, owner.Version).
		Updates(updates)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrOwnerAlreadyExists.WrapMessage("username or email already taken by an active owner")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update owner")
	}

	if result.RowsAffected == 0 {
		// Distinguish a vanished row from a lost version race.
		var count int64
		if err := repo.db.WithContext(ctx).Model(&model.OwnerModel{}).Where("id = ?", owner.ID).Count(&count).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to check owner existence")
		}
		if count == 0 {
			return repository.ErrOwnerNotFound
		}

		return domainerrors.ErrConcurrentModification.WrapMessage("owner " + owner.ID.String() + " was modified concurrently")
	}
	owner.Version++

	if err := repo.syncItems(ctx, owner); err != nil {
		return err
	}

	return repo.syncAreaPoints(ctx, owner)
}

// syncItems replaces the owner's item links with the aggregate's current set.
func (repo *ownerRepository) syncItems(ctx context.Context, owner *entity.Owner) error {
	itemMs := make([]*model.ItemModel, 0, len(owner.Items))
	for _, item := range owner.Items {
		itemMs = append(itemMs, fromItemDomain(item))
	}

	ownerRef := &model.OwnerModel{ID: owner.ID}
	if err := repo.db.WithContext(ctx).Model(ownerRef).Association("Items").Replace(itemMs); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to sync owner items")
	}

	return nil
}

// syncAreaPoints rewrites the owner's interested-area vertices. Delete and
// recreate keeps the vertex order stable via the position column.
func (repo *ownerRepository) syncAreaPoints(ctx context.Context, owner *entity.Owner) error {
	tx := repo.db.WithContext(ctx)

	if err := tx.Where("owner_id = ?", owner.ID).Delete(&model.AreaPointModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear area points")
	}

	if len(owner.InterestedArea) == 0 {
		return nil
	}

	pointMs := make([]model.AreaPointModel, 0, len(owner.InterestedArea))
	for i, coord := range owner.InterestedArea {
		pointMs = append(pointMs, model.AreaPointModel{
			OwnerID:        owner.ID,
			Position:       i,
			Longitude:      coord.Longitude,
			Latitude:       coord.Latitude,
			LongitudeDelta: coord.LongitudeDelta,
			LatitudeDelta:  coord.LatitudeDelta,
		})
	}

	if err := tx.Create(&pointMs).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save area points")
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toOwnerDomain converts a GORM OwnerModel to a domain Owner entity. The home
// position geometry is recomputed from the stored components so entity and
// geometry can never drift apart.
func toOwnerDomain(data *model.OwnerModel) *entity.Owner {
	if data == nil {
		return nil
	}

	owner := &entity.Owner{
		ID:                   data.ID,
		Username:             data.Username,
		Password:             data.Password,
		Phonenumber:          data.Phonenumber,
		Email:                data.Email,
		Active:               data.Active,
		VerificationCode:     data.VerificationCode,
		VerificationCodeSent: data.VerificationCodeSent,
		Version:              data.Version,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}

	if data.HomeLongitude != nil && data.HomeLatitude != nil {
		home := entity.NewCoordinate(
			*data.HomeLongitude,
			*data.HomeLatitude,
			derefFloat(data.HomeLongitudeDelta),
			derefFloat(data.HomeLatitudeDelta),
		)
		owner.SetHome(&home)
	}

	items := make([]*entity.Item, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, toItemDomain(itemM))
	}
	owner.Items = items

	area := make([]entity.Coordinate, 0, len(data.AreaPoints))
	for _, pointM := range data.AreaPoints {
		area = append(area, entity.NewCoordinate(pointM.Longitude, pointM.Latitude, pointM.LongitudeDelta, pointM.LatitudeDelta))
	}
	owner.InterestedArea = area

	return owner
}

// fromOwnerDomain converts a domain Owner entity to a GORM OwnerModel for persistence.
func fromOwnerDomain(data *entity.Owner) *model.OwnerModel {
	if data == nil {
		return nil
	}

	ownerM := &model.OwnerModel{
		ID:                   data.ID,
		Username:             data.Username,
		Password:             data.Password,
		Phonenumber:          data.Phonenumber,
		Email:                data.Email,
		Active:               data.Active,
		VerificationCode:     data.VerificationCode,
		VerificationCodeSent: data.VerificationCodeSent,
		Version:              data.Version,
	}

	if data.Home != nil {
		home := *data.Home
		position := home.PositionString()
		ownerM.HomeLongitude = &home.Longitude
		ownerM.HomeLatitude = &home.Latitude
		ownerM.HomeLongitudeDelta = &home.LongitudeDelta
		ownerM.HomeLatitudeDelta = &home.LatitudeDelta
		ownerM.HomePosition = &position
	}

	for _, item := range data.Items {
		ownerM.Items = append(ownerM.Items, fromItemDomain(item))
	}

	for i, coord := range data.InterestedArea {
		ownerM.AreaPoints = append(ownerM.AreaPoints, model.AreaPointModel{
			OwnerID:        data.ID,
			Position:       i,
			Longitude:      coord.Longitude,
			Latitude:       coord.Latitude,
			LongitudeDelta: coord.LongitudeDelta,
			LatitudeDelta:  coord.LatitudeDelta,
		})
	}

	return ownerM
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}
