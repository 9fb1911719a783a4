package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserGroup is a named collection of owners used as a sharing target for
// items. The creating owner administers the group; members are the
// collaborators who gain access to items shared with it.
type UserGroup struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID // The creator and administrator of the group.
	Name      string
	Members   []*Owner // May be empty at creation; membership is added later.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUserGroup constructs a group for the given creator. members may be nil.
func NewUserGroup(ownerID uuid.UUID, name string, members []*Owner) *UserGroup {
	return &UserGroup{
		OwnerID: ownerID,
		Name:    name,
		Members: members,
	}
}

// AddMember adds an owner to the group. Returns false when the owner is
// already a member.
func (g *UserGroup) AddMember(member *Owner) bool {
	for _, m := range g.Members {
		if m.ID == member.ID {
			return false
		}
	}
	g.Members = append(g.Members, member)

	return true
}

// sameGroup reports whether two group references denote the same group. The
// surrogate ID decides when both sides have one; unsaved groups fall back to
// creator+name.
func (g *UserGroup) sameGroup(other *UserGroup) bool {
	if g.ID != uuid.Nil && other.ID != uuid.Nil {
		return g.ID == other.ID
	}

	return g.OwnerID == other.OwnerID && g.Name == other.Name
}
