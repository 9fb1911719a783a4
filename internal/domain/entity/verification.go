package entity

import "time"

// DefaultCodeTTL is the expiry window applied when a Verification carries no
// explicit TTL. Callers that load the window from configuration must apply it
// consistently across issue and check.
const DefaultCodeTTL = 15 * time.Minute

// Verification is a request-scoped value carrying a candidate code and the
// phone number it was sent to. It is never persisted on its own; the owner
// aggregate stores the issued code and its timestamp.
type Verification struct {
	Code        string
	Phonenumber string
	TTL         time.Duration
}

// CodeEquals compares the candidate code against the stored one. The match is
// exact: no case folding, no partial match.
func (v Verification) CodeEquals(code string) bool {
	return v.Code == code
}

// ExpiredAt reports whether a code sent at sentAt has expired by now. A nil
// sentAt counts as expired since no code was ever issued. Expiry is computed
// on demand; there is no stored "expired" state.
func (v Verification) ExpiredAt(sentAt *time.Time, now time.Time) bool {
	if sentAt == nil {
		return true
	}

	ttl := v.TTL
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}

	return now.Sub(*sentAt) > ttl
}
