package asset

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/garrison-vtt/garrison/internal/core"
	"github.com/garrison-vtt/garrison/internal/metrics"
	"github.com/garrison-vtt/garrison/internal/model"
	"github.com/garrison-vtt/garrison/internal/storage"
)

// Upload is one asset write. Principal is the authenticated caller; it is
// recorded in logs only, since any valid key may write any character.
type Upload struct {
	Character *model.Character
	Kind      Kind
	Principal *model.Principal
	Body      io.Reader
	// Length is the declared body length, or -1 when unknown.
	Length int64
}

// StoredAsset is an open stored blob. Callers must close Body.
type StoredAsset struct {
	Kind     Kind
	MimeType string
	Size     int64
	Body     io.ReadCloser
}

// Store keeps at most one blob per (character, kind) in a storage backend.
type Store struct {
	backend storage.Backend
	logger  zerolog.Logger
}

// NewStore creates a Store on top of backend.
func NewStore(backend storage.Backend, logger zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger.With().Str("component", "asset-store").Str("backend", backend.Name()).Logger(),
	}
}

// Write validates, normalizes and stores an upload, replacing any previous
// blob for the same character and kind. The declared length is checked
// against the kind's ceiling before any buffer is allocated, and nothing is
// stored unless the whole body was read.
func (s *Store) Write(ctx context.Context, up Upload) error {
	err := s.write(ctx, up)
	result := "stored"
	if err != nil {
		result = "rejected"
		if core.KindOf(err) == core.KindInternal {
			result = "failed"
		}
	}
	metrics.AssetWrites.WithLabelValues(up.Kind.Name, result).Inc()
	return err
}

func (s *Store) write(ctx context.Context, up Upload) error {
	kind := up.Kind
	switch {
	case up.Length < 0:
		return core.InvalidInput("Content-Length header is required")
	case up.Length > kind.MaxBytes:
		return core.InvalidInput("%s", kind.TooLargeDetail())
	case up.Length == 0:
		return core.InvalidInput("request body is empty")
	}

	buf := make([]byte, up.Length)
	if _, err := io.ReadFull(up.Body, buf); err != nil {
		return core.Internal("read "+kind.Name+" upload", err)
	}
	if err := ctx.Err(); err != nil {
		return core.Internal("read "+kind.Name+" upload", err)
	}

	data, err := prepare(buf, kind)
	if err != nil {
		return err
	}

	key := storage.ObjectKey(up.Character.ID, kind.Name)
	if err := s.backend.Put(ctx, key, data, kind.MimeType); err != nil {
		return core.Internal("store "+kind.Name, err)
	}

	metrics.AssetStoredBytes.WithLabelValues(kind.Name).Observe(float64(len(data)))
	event := s.logger.Info().
		Int64("character_id", up.Character.ID).
		Str("foundry_id", up.Character.FoundryID).
		Str("kind", kind.Name).
		Int64("upload_bytes", up.Length).
		Int("stored_bytes", len(data))
	if up.Principal != nil {
		event = event.Int64("principal_id", up.Principal.ID)
	}
	event.Msg("stored character asset")
	return nil
}

func prepare(buf []byte, kind Kind) ([]byte, error) {
	if kind.IsImage() {
		return Normalize(buf, kind)
	}
	if !json.Valid(buf) {
		return nil, core.UnsupportedMedia("body must be a JSON document", nil)
	}
	return buf, nil
}

// TryRead opens the stored blob for a character and kind. A missing blob is
// reported as ok == false with a nil error; backend faults are errors.
func (s *Store) TryRead(ctx context.Context, c *model.Character, kind Kind) (*StoredAsset, bool, error) {
	obj, err := s.backend.Open(ctx, storage.ObjectKey(c.ID, kind.Name))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.AssetReads.WithLabelValues(kind.Name, "miss").Inc()
			return nil, false, nil
		}
		metrics.AssetReads.WithLabelValues(kind.Name, "failed").Inc()
		return nil, false, core.Internal("open "+kind.Name, err)
	}

	metrics.AssetReads.WithLabelValues(kind.Name, "hit").Inc()
	return &StoredAsset{
		Kind:     kind,
		MimeType: kind.MimeType,
		Size:     obj.Size,
		Body:     obj.Body,
	}, true, nil
}

// Ping reports backend availability when the backend supports it.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.backend.(storage.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// BackendName identifies the underlying storage backend.
func (s *Store) BackendName() string {
	return s.backend.Name()
}
