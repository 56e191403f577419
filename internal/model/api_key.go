package model

import "time"

// APIKey is a pre-provisioned bearer secret belonging to a user. Only the
// SHA-256 hash of the secret is stored.
type APIKey struct {
	ID        int64      `json:"id"`
	OwnerID   int64      `json:"owner_id"`
	KeyHash   string     `json:"-"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Expired reports whether the key is past its expiry at the given time.
// Keys without an expiry never expire.
func (k *APIKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && !now.Before(*k.ExpiresAt)
}
