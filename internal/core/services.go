package core

// Services groups the record-store services used by the API.
type Services struct {
	APIKey    *APIKeyService
	Character *CharacterService
}

func NewServices(db DB) *Services {
	return &Services{
		APIKey:    NewAPIKeyService(db),
		Character: NewCharacterService(db),
	}
}
