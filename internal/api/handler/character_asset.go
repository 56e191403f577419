package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/garrison-vtt/garrison/internal/api/response"
	"github.com/garrison-vtt/garrison/internal/asset"
	"github.com/garrison-vtt/garrison/internal/core"
	"github.com/garrison-vtt/garrison/internal/model"
)

// FoundryIDParam is the route parameter carrying a character's public id.
const FoundryIDParam = "foundryId"

// CharacterResolver finds a character by its public identifier.
type CharacterResolver interface {
	ResolveFoundryID(ctx context.Context, field, id string) (*model.Character, error)
}

// Authenticator resolves the caller of a request from its Authorization header.
type Authenticator interface {
	AuthenticateRequest(r *http.Request) (*model.Principal, error)
}

// AssetStore persists and serves character assets.
type AssetStore interface {
	Write(ctx context.Context, up asset.Upload) error
	TryRead(ctx context.Context, c *model.Character, kind asset.Kind) (*asset.StoredAsset, bool, error)
}

// CharacterAsset serves the token, portrait and json blobs of a character.
type CharacterAsset struct {
	characters CharacterResolver
	auth       Authenticator
	store      AssetStore
	logger     zerolog.Logger
}

// NewCharacterAsset creates a new CharacterAsset handler.
func NewCharacterAsset(characters CharacterResolver, auth Authenticator, store AssetStore, logger zerolog.Logger) *CharacterAsset {
	return &CharacterAsset{
		characters: characters,
		auth:       auth,
		store:      store,
		logger:     logger.With().Str("component", "character-asset-handler").Logger(),
	}
}

// Read returns a handler that streams the stored blob of the given kind.
func (h *CharacterAsset) Read(kind asset.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		character, err := h.characters.ResolveFoundryID(r.Context(), FoundryIDParam, chi.URLParam(r, FoundryIDParam))
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		if kind.ReadProtected {
			if _, err := h.auth.AuthenticateRequest(r); err != nil {
				h.writeError(w, r, err)
				return
			}
		}

		stored, ok, err := h.store.TryRead(r.Context(), character, kind)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if !ok {
			h.writeError(w, r, core.NotFound(kind.MissingDetail()))
			return
		}
		defer stored.Body.Close()

		w.Header().Set("Content-Type", stored.MimeType)
		if stored.Size >= 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(stored.Size, 10))
		}
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, stored.Body); err != nil {
			h.requestLogger(r).Warn().Err(err).
				Str("foundry_id", character.FoundryID).
				Str("kind", kind.Name).
				Msg("stream character asset")
		}
	}
}

// Write returns a handler that replaces the stored blob of the given kind.
func (h *CharacterAsset) Write(kind asset.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		character, err := h.characters.ResolveFoundryID(r.Context(), FoundryIDParam, chi.URLParam(r, FoundryIDParam))
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		principal, err := h.auth.AuthenticateRequest(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		err = h.store.Write(r.Context(), asset.Upload{
			Character: character,
			Kind:      kind,
			Principal: principal,
			Body:      r.Body,
			Length:    r.ContentLength,
		})
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func (h *CharacterAsset) writeError(w http.ResponseWriter, r *http.Request, err error) {
	response.WriteServiceError(w, h.requestLogger(r), err)
}

// requestLogger prefers the request-scoped logger installed by the request
// logging middleware.
func (h *CharacterAsset) requestLogger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &h.logger
}
