package core

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/garrison-vtt/garrison/internal/model"
)

var validate = validator.New()

// CharacterService looks characters up by their public foundry id.
type CharacterService struct {
	db DB
}

// NewCharacterService creates a new CharacterService.
func NewCharacterService(db DB) *CharacterService {
	return &CharacterService{db: db}
}

// ValidateFoundryID checks the shape of a public identifier. field names the
// parameter in the returned message. Length is counted in runes and is
// checked before charset.
func ValidateFoundryID(field, id string) error {
	if err := validate.Var(id, "len=16"); err != nil {
		return InvalidInput("%s must be exactly %d characters", field, model.FoundryIDLength)
	}
	if err := validate.Var(id, "alphanum"); err != nil {
		return InvalidInput("%s must be alphanumeric", field)
	}
	return nil
}

// ResolveFoundryID validates id and then fetches the matching character.
// Malformed ids never reach the database.
func (s *CharacterService) ResolveFoundryID(ctx context.Context, field, id string) (*model.Character, error) {
	if err := ValidateFoundryID(field, id); err != nil {
		return nil, err
	}

	var c model.Character
	err := s.db.QueryRow(ctx,
		`SELECT id, foundry_id, name, owner_id, created_at FROM characters WHERE foundry_id = $1`, id,
	).Scan(&c.ID, &c.FoundryID, &c.Name, &c.OwnerID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFound("No such character")
		}
		return nil, Internal("get character "+id, err)
	}
	return &c, nil
}
