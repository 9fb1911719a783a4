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

func newSharingServiceForTest(f *fixtures) usecase.SharingUsecase {
	return NewSharingService(SharingServiceParams{
		TxManager: f.tx,
		GroupRepo: f.groups,
		Logger:    discardLogger(),
	})
}

func TestCreateGroup(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	anna := f.seedOwner("anna")
	srv := newSharingServiceForTest(f)

	group, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{
		Name:      "Family",
		MemberIDs: []uuid.UUID{anna.ID},
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, group.ID)
	assert.Equal(t, heiko.ID, group.OwnerID)
	assert.Equal(t, "Family", group.Name)
	require.Len(t, group.Members, 1)
	assert.Equal(t, anna.ID, group.Members[0].ID)
}

func TestCreateGroup_UnknownMember(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	srv := newSharingServiceForTest(f)

	_, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{
		Name:      "Family",
		MemberIDs: []uuid.UUID{uuid.New()},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOwnerNotFound))
}

func TestGetGroup_NotFound(t *testing.T) {
	f := newFixtures()
	srv := newSharingServiceForTest(f)

	_, err := srv.GetGroup(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrGroupNotFound))
}

func TestListGroups_OnlyCreators(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	anna := f.seedOwner("anna")
	srv := newSharingServiceForTest(f)

	_, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{Name: "Family"})
	require.NoError(t, err)
	_, err = srv.CreateGroup(context.Background(), anna.ID, &usecase.CreateGroupInput{Name: "Neighbors"})
	require.NoError(t, err)

	groups, err := srv.ListGroups(context.Background(), heiko.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Family", groups[0].Name)
}

func TestAddMember(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	anna := f.seedOwner("anna")
	srv := newSharingServiceForTest(f)

	group, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{Name: "Family"})
	require.NoError(t, err)

	updated, err := srv.AddMember(context.Background(), heiko.ID, group.ID, anna.ID)

	require.NoError(t, err)
	require.Len(t, updated.Members, 1)
	assert.Equal(t, anna.ID, updated.Members[0].ID)
}

func TestAddMember_Idempotent(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	anna := f.seedOwner("anna")
	srv := newSharingServiceForTest(f)

	group, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{
		Name:      "Family",
		MemberIDs: []uuid.UUID{anna.ID},
	})
	require.NoError(t, err)

	updated, err := srv.AddMember(context.Background(), heiko.ID, group.ID, anna.ID)

	require.NoError(t, err)
	assert.Len(t, updated.Members, 1)
}

func TestAddMember_OnlyCreatorMayAdd(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	anna := f.seedOwner("anna")
	srv := newSharingServiceForTest(f)

	group, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{Name: "Family"})
	require.NoError(t, err)

	_, err = srv.AddMember(context.Background(), anna.ID, group.ID, anna.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestAddMember_UnknownMember(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	srv := newSharingServiceForTest(f)

	group, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{Name: "Family"})
	require.NoError(t, err)

	_, err = srv.AddMember(context.Background(), heiko.ID, group.ID, uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOwnerNotFound))
}

func TestShareItem(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	f.attachItem(heiko.ID, "eggs", "Groceries", true)
	srv := newSharingServiceForTest(f)

	group, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{Name: "Family"})
	require.NoError(t, err)

	shared, err := srv.ShareItem(context.Background(), heiko.ID, "eggs", group.ID)

	require.NoError(t, err)
	require.Len(t, shared.SharedWith, 1)
	assert.Equal(t, group.ID, shared.SharedWith[0].ID)

	stored, err := f.items.FindByKey(context.Background(), "eggs")
	require.NoError(t, err)
	assert.Len(t, stored.SharedWith, 1)
}

func TestShareItem_Idempotent(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	f.attachItem(heiko.ID, "eggs", "Groceries", true)
	srv := newSharingServiceForTest(f)

	group, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{Name: "Family"})
	require.NoError(t, err)

	_, err = srv.ShareItem(context.Background(), heiko.ID, "eggs", group.ID)
	require.NoError(t, err)
	shared, err := srv.ShareItem(context.Background(), heiko.ID, "eggs", group.ID)

	require.NoError(t, err)
	assert.Len(t, shared.SharedWith, 1)
}

func TestShareItem_MemberMayShare(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	anna := f.seedOwner("anna")
	f.attachItem(anna.ID, "eggs", "Groceries", true)
	srv := newSharingServiceForTest(f)

	group, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{
		Name:      "Family",
		MemberIDs: []uuid.UUID{anna.ID},
	})
	require.NoError(t, err)

	shared, err := srv.ShareItem(context.Background(), anna.ID, "eggs", group.ID)

	require.NoError(t, err)
	assert.Len(t, shared.SharedWith, 1)
}

func TestShareItem_OutsiderForbidden(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	outsider := f.seedOwner("outsider")
	f.attachItem(outsider.ID, "eggs", "Groceries", true)
	srv := newSharingServiceForTest(f)

	group, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{Name: "Family"})
	require.NoError(t, err)

	_, err = srv.ShareItem(context.Background(), outsider.ID, "eggs", group.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestShareItem_NotShareable(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	f.attachItem(heiko.ID, "diary", "Private notes", false)
	srv := newSharingServiceForTest(f)

	group, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{Name: "Family"})
	require.NoError(t, err)

	_, err = srv.ShareItem(context.Background(), heiko.ID, "diary", group.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestShareItem_ItemNotHeld(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	srv := newSharingServiceForTest(f)

	group, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{Name: "Family"})
	require.NoError(t, err)

	_, err = srv.ShareItem(context.Background(), heiko.ID, "missing", group.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrItemNotFound))
}

func TestShareItem_GroupNotFound(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	f.attachItem(heiko.ID, "eggs", "Groceries", true)
	srv := newSharingServiceForTest(f)

	_, err := srv.ShareItem(context.Background(), heiko.ID, "eggs", uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrGroupNotFound))
}

// Guard against regressions in ShareWith set semantics when the same group is
// referenced through different loads.
func TestShareItem_SameGroupDifferentLoads(t *testing.T) {
	f := newFixtures()
	heiko := f.seedOwner("heiko")
	item := f.attachItem(heiko.ID, "eggs", "Groceries", true)
	srv := newSharingServiceForTest(f)

	group, err := srv.CreateGroup(context.Background(), heiko.ID, &usecase.CreateGroupInput{Name: "Family"})
	require.NoError(t, err)

	item.SharedWith = append(item.SharedWith, &entity.UserGroup{ID: group.ID, OwnerID: heiko.ID, Name: "Family"})

	shared, err := srv.ShareItem(context.Background(), heiko.ID, "eggs", group.ID)

	require.NoError(t, err)
	assert.Len(t, shared.SharedWith, 1)
}
