package impl

import (
	"context"
	"testing"

	"shoplist/internal/domain/entity"
	domainerrors "shoplist/internal/domain/errors"
	"shoplist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscoveryServiceForTest(f *fixtures) usecase.DiscoveryUsecase {
	return NewDiscoveryService(DiscoveryServiceParams{
		OwnerRepo: f.owners,
		Logger:    discardLogger(),
	})
}

func TestFindNearbyOwners_UsesInterestedArea(t *testing.T) {
	f := newFixtures()
	seeker := f.seedOwner("seeker")
	neighbor := f.seedOwner("neighbor")

	area := []entity.Coordinate{
		entity.NewCoordinate(9.0, 48.0, 0, 0),
		entity.NewCoordinate(9.5, 48.0, 0, 0),
		entity.NewCoordinate(9.5, 48.5, 0, 0),
	}
	f.owners.owners[seeker.ID].InterestedArea = area
	f.owners.withinArea = []*entity.Owner{seeker, neighbor}

	srv := newDiscoveryServiceForTest(f)

	nearby, err := srv.FindNearbyOwners(context.Background(), seeker.ID)

	require.NoError(t, err)
	require.Len(t, nearby, 1, "the seeker is excluded from its own result")
	assert.Equal(t, neighbor.ID, nearby[0].ID)

	wantPolygon, err := entity.ToPolygonString(area)
	require.NoError(t, err)
	assert.Equal(t, wantPolygon, f.owners.lastPolygon)
}

func TestFindNearbyOwners_FallsBackToHomeBox(t *testing.T) {
	f := newFixtures()
	seeker := f.seedOwner("seeker")
	f.owners.withinArea = []*entity.Owner{}

	srv := newDiscoveryServiceForTest(f)

	_, err := srv.FindNearbyOwners(context.Background(), seeker.ID)

	require.NoError(t, err)
	wantPolygon, err := entity.ToPolygonString(seeker.Home.BoundingPolygon())
	require.NoError(t, err)
	assert.Equal(t, wantPolygon, f.owners.lastPolygon)
}

func TestFindNearbyOwners_NoGeometry(t *testing.T) {
	f := newFixtures()
	seeker := f.owners.add(entity.NewOwner(entity.OwnerConfig{Username: "nomad"}))

	srv := newDiscoveryServiceForTest(f)

	_, err := srv.FindNearbyOwners(context.Background(), seeker.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidGeometry))
}

func TestFindNearbyOwners_OwnerNotFound(t *testing.T) {
	f := newFixtures()
	srv := newDiscoveryServiceForTest(f)

	_, err := srv.FindNearbyOwners(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOwnerNotFound))
}

func TestFindOwnersWithinArea(t *testing.T) {
	f := newFixtures()
	resident := f.seedOwner("resident")
	f.owners.withinArea = []*entity.Owner{resident}

	srv := newDiscoveryServiceForTest(f)

	area := []usecase.CoordinateInput{
		{Longitude: 9.0, Latitude: 48.0},
		{Longitude: 9.5, Latitude: 48.0},
		{Longitude: 9.5, Latitude: 48.5},
	}
	found, err := srv.FindOwnersWithinArea(context.Background(), area)

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, resident.ID, found[0].ID)

	wantPolygon, err := entity.ToPolygonString(usecase.ToCoordinates(area))
	require.NoError(t, err)
	assert.Equal(t, wantPolygon, f.owners.lastPolygon)
}

func TestFindOwnersWithinArea_TooFewPoints(t *testing.T) {
	f := newFixtures()
	srv := newDiscoveryServiceForTest(f)

	_, err := srv.FindOwnersWithinArea(context.Background(), []usecase.CoordinateInput{
		{Longitude: 9.0, Latitude: 48.0},
		{Longitude: 9.5, Latitude: 48.0},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidGeometry))
	assert.Empty(t, f.owners.lastPolygon, "no query may be issued for invalid geometry")
}
