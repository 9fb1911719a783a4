package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMember_SetSemantics(t *testing.T) {
	creator := newTestOwner()
	creator.ID = uuid.New()
	group := NewUserGroup(creator.ID, "Family", nil)

	member := newTestOwner()
	member.ID = uuid.New()

	assert.True(t, group.AddMember(member))
	assert.False(t, group.AddMember(member))
	require.Len(t, group.Members, 1)
	assert.Same(t, member, group.Members[0])
}

func TestShareWith_SavedGroupsCompareByID(t *testing.T) {
	item := NewItem(ItemConfig{Title: "Title", Body: "1 x Eggs", Shareable: true})

	group := NewUserGroup(uuid.New(), "Family", nil)
	group.ID = uuid.New()
	sameGroupReloaded := &UserGroup{ID: group.ID, OwnerID: group.OwnerID, Name: "renamed"}

	assert.True(t, item.ShareWith(group))
	assert.False(t, item.ShareWith(sameGroupReloaded), "the same persisted group must not be added twice")
	assert.Len(t, item.SharedWith, 1)
}

func TestShareWith_UnsavedGroupsCompareByCreatorAndName(t *testing.T) {
	item := NewItem(ItemConfig{Title: "Title", Shareable: true})
	ownerID := uuid.New()

	assert.True(t, item.ShareWith(NewUserGroup(ownerID, "Family", nil)))
	assert.False(t, item.ShareWith(NewUserGroup(ownerID, "Family", nil)))
	assert.True(t, item.ShareWith(NewUserGroup(ownerID, "Friends", nil)))
	assert.Len(t, item.SharedWith, 2)
}
