package entity

import (
	"time"

	"github.com/google/uuid"
)

// Item is a single note on a shopping/task list. Identity for external callers
// is the persistent Key; the surrogate ID is internal to storage. Items are
// never owned exclusively: the same Item may be linked to multiple owners once
// shared, and SharedWith records which groups were granted access.
type Item struct {
	ID           uuid.UUID    // Surrogate identifier, internal to the persistence layer.
	Key          string       // Stable external identifier, distinct from the surrogate ID.
	Title        string       // Short headline of the note.
	Body         string       // Free-form note content, e.g. "1 x Eggs".
	Shareable    bool         // Whether this item may be shared with groups at all.
	SharedWith   []*UserGroup // Groups whose members gain visibility of this item.
	Version      int64        // Optimistic concurrency token, incremented by the store on save.
	LastModified time.Time    // Timestamp of the last modification.
}

// ItemConfig carries the fields for constructing an Item.
type ItemConfig struct {
	Key       string // Optional; a fresh key is generated when empty.
	Title     string
	Body      string
	Shareable bool
}

// NewItem constructs an Item from the supplied configuration.
func NewItem(cfg ItemConfig) *Item {
	key := cfg.Key
	if key == "" {
		key = uuid.NewString()
	}

	return &Item{
		Key:       key,
		Title:     cfg.Title,
		Body:      cfg.Body,
		Shareable: cfg.Shareable,
	}
}

// CopyFrom replaces the mutable fields of the item with those of src, keeping
// identity (ID, Key) and the version token intact so the optimistic check at
// save time still sees the loaded version.
func (i *Item) CopyFrom(src *Item) {
	i.Title = src.Title
	i.Body = src.Body
	i.Shareable = src.Shareable
	i.SharedWith = src.SharedWith
}

// ShareWith grants the group access to this item. Returns false when the
// group is already present (set semantics).
func (i *Item) ShareWith(group *UserGroup) bool {
	for _, g := range i.SharedWith {
		if g.sameGroup(group) {
			return false
		}
	}
	i.SharedWith = append(i.SharedWith, group)

	return true
}
