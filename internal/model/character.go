package model

import "time"

// FoundryIDLength is the exact length of a character's public identifier.
const FoundryIDLength = 16

// Character is the owner of the stored assets. FoundryID is the public
// handle used in URLs; ID keys the asset store.
type Character struct {
	ID        int64     `json:"id"`
	FoundryID string    `json:"foundry_id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}
