package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/garrison-vtt/garrison/internal/model"
)

// APIKeyService resolves bearer secrets to the user that owns them.
type APIKeyService struct {
	db  DB
	now func() time.Time
}

// NewAPIKeyService creates a new APIKeyService.
func NewAPIKeyService(db DB) *APIKeyService {
	return &APIKeyService{db: db, now: time.Now}
}

// HashKey returns the hex SHA-256 digest stored in api_keys.key_hash.
func HashKey(secret string) string {
	hash := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(hash[:])
}

// Resolve looks up the principal owning secret. An unknown or expired key
// yields a KindNotFound error; more than one key with the same hash is treated
// as an internal fault.
func (s *APIKeyService) Resolve(ctx context.Context, secret string) (*model.Principal, error) {
	rows, err := s.db.Query(ctx,
		`SELECT k.id, k.expires_at, u.id, u.user_name
		 FROM api_keys k JOIN users u ON u.id = k.owner_id
		 WHERE k.key_hash = $1 LIMIT 2`, HashKey(secret),
	)
	if err != nil {
		return nil, Internal("lookup api key", err)
	}
	defer rows.Close()

	type match struct {
		key       model.APIKey
		principal model.Principal
	}
	var matches []match
	for rows.Next() {
		var m match
		if err := rows.Scan(&m.key.ID, &m.key.ExpiresAt, &m.principal.ID, &m.principal.Name); err != nil {
			return nil, Internal("scan api key", err)
		}
		m.key.OwnerID = m.principal.ID
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, Internal("iterate api keys", err)
	}

	switch {
	case len(matches) == 0:
		return nil, NotFound("Invalid Bearer token")
	case len(matches) > 1:
		return nil, Internal("api key hash matched more than one key", nil)
	}

	if matches[0].key.Expired(s.now()) {
		return nil, NotFound("Invalid Bearer token")
	}
	p := matches[0].principal
	return &p, nil
}
