package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	domainerrors "shoplist/internal/domain/errors"
)

// Owner is the registered participant of the system: the holder of items and
// the user of the account. Owners are never physically deleted; deactivation
// via the Active flag frees the username and email for reuse by a new active
// account (the storage layer enforces uniqueness of (username, active) and
// (email, active)).
type Owner struct {
	ID          uuid.UUID
	Username    string // Required; unique among active owners.
	Password    string // Hash of the account password; empty until the account is claimed.
	Phonenumber string
	Email       string // Unique among active owners.
	Active      bool   // Soft-delete flag; new owners start active.

	// Home is the owner's home location; HomePosition is the point geometry
	// derived from it for spatial predicates. The two are kept consistent by
	// SetHome: whenever Home changes, HomePosition is recomputed before the
	// aggregate can be persisted.
	Home         *Coordinate
	HomePosition *orb.Point

	VerificationCode     string     // Last issued verification code, empty when none is pending.
	VerificationCodeSent *time.Time // When the pending code was issued.

	Items          []*Item      // Shared ownership: the same item may be linked to several owners.
	InterestedArea []Coordinate // Ordered polygon vertices of the owner's area of interest.

	Version   int64 // Optimistic concurrency token, incremented by the store on save.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerConfig carries the construction-time fields of an Owner.
type OwnerConfig struct {
	Username         string
	Phonenumber      string
	Email            string
	Home             *Coordinate
	VerificationCode string
}

// OwnerProfile is the narrow external representation accepted by CopyFrom.
type OwnerProfile struct {
	Username    string
	Phonenumber string
	Home        *Coordinate
}

// NewOwner constructs an active Owner from the supplied configuration. When a
// verification code is supplied the sent-timestamp is stamped immediately,
// i.e. construction counts as issuance.
func NewOwner(cfg OwnerConfig) *Owner {
	o := &Owner{
		Username:    cfg.Username,
		Phonenumber: cfg.Phonenumber,
		Email:       cfg.Email,
		Active:      true,
	}
	o.SetHome(cfg.Home)

	if cfg.VerificationCode != "" {
		now := time.Now()
		o.VerificationCode = cfg.VerificationCode
		o.VerificationCodeSent = &now
	}

	return o
}

// SetHome replaces the home location and synchronously recomputes the derived
// position geometry. All home mutations must go through here so the two stay
// consistent.
func (o *Owner) SetHome(home *Coordinate) {
	o.Home = home
	if home == nil {
		o.HomePosition = nil

		return
	}

	point := home.Point()
	o.HomePosition = &point
}

// SetPhonenumber replaces the owner's phone number.
func (o *Owner) SetPhonenumber(phonenumber string) {
	o.Phonenumber = phonenumber
}

// GetItem looks up an item by its persistent key. Absence is a normal,
// non-error result.
func (o *Owner) GetItem(key string) (*Item, bool) {
	for _, item := range o.Items {
		if item.Key == key {
			return item, true
		}
	}

	return nil, false
}

// AddItem links the item to this owner. Returns false when an item with the
// same persistent key is already linked (set semantics, no error).
func (o *Owner) AddItem(item *Item) bool {
	if _, ok := o.GetItem(item.Key); ok {
		return false
	}
	o.Items = append(o.Items, item)

	return true
}

// UpdateItem locates the owner's item with the incoming item's persistent key
// and copies the mutable fields onto it in place, preserving identity and the
// version token. Fails with ErrItemNotFound when no such item is linked.
func (o *Owner) UpdateItem(incoming *Item) error {
	existing, ok := o.GetItem(incoming.Key)
	if !ok {
		return domainerrors.ErrItemNotFound.WrapMessage("owner holds no item with key " + incoming.Key)
	}
	existing.CopyFrom(incoming)

	return nil
}

// SetInterestedArea replaces the owner's area-of-interest vertices. The order
// of the sequence is the polygon vertex order.
func (o *Owner) SetInterestedArea(points []Coordinate) {
	o.InterestedArea = points
}

// CopyFrom bulk-replaces username, phone number and home from an external
// representation. Deliberately narrow: items, groups, verification state,
// email and the active flag are untouched.
func (o *Owner) CopyFrom(profile OwnerProfile) {
	o.Username = profile.Username
	o.Phonenumber = profile.Phonenumber
	o.SetHome(profile.Home)
}

// VerificationSent records that a code was issued to the owner: the code and
// the phone number it went to are stored and the sent-timestamp is stamped.
// A new code supersedes any pending one.
func (o *Owner) VerificationSent(v Verification) {
	now := time.Now()
	o.VerificationCode = v.Code
	o.Phonenumber = v.Phonenumber
	o.VerificationCodeSent = &now
}

// Verify checks the candidate verification against the stored code. A
// mismatch and an expired code are distinct failures so callers can allow a
// fresh code request on expiry while treating a mismatch as a typo or an
// attack. On success the owner is returned unchanged; transitioning to a
// verified state (setting a password, clearing the code) is the caller's job.
func (o *Owner) Verify(v Verification, now time.Time) (*Owner, error) {
	if !v.CodeEquals(o.VerificationCode) {
		return nil, domainerrors.ErrVerificationMismatch.WrapMessage("verification failed for owner " + o.Username)
	}
	if v.ExpiredAt(o.VerificationCodeSent, now) {
		return nil, domainerrors.ErrVerificationExpired.WrapMessage("verification failed for owner " + o.Username)
	}

	return o, nil
}

// ClearVerification removes the pending code after it has been accepted.
func (o *Owner) ClearVerification() {
	o.VerificationCode = ""
	o.VerificationCodeSent = nil
}

// Deactivate soft-deletes the owner. The row survives; the username and email
// become available to a new active owner.
func (o *Owner) Deactivate() {
	o.Active = false
}

// AreaOfInterest builds the polygon predicate advertising where the owner can
// be discovered: the interested-area vertices when at least three are set,
// otherwise the bounding box around the home location. Fails with
// ErrInvalidGeometry when neither yields a polygon.
func (o *Owner) AreaOfInterest() (string, error) {
	if len(o.InterestedArea) >= 3 {
		return ToPolygonString(o.InterestedArea)
	}
	if o.Home != nil {
		return ToPolygonString(o.Home.BoundingPolygon())
	}

	return "", domainerrors.ErrInvalidGeometry.WrapMessage("owner " + o.Username + " has neither an interested area nor a home location")
}
