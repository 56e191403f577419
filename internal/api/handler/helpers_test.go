package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	mw "github.com/garrison-vtt/garrison/internal/api/middleware"
	"github.com/garrison-vtt/garrison/internal/asset"
	"github.com/garrison-vtt/garrison/internal/core"
	"github.com/garrison-vtt/garrison/internal/model"
	"github.com/garrison-vtt/garrison/internal/storage"
)

const (
	knownFoundryID   = "ZX98CV76BN54ML32"
	unknownFoundryID = "AB12CD34EF56GH78"
	validSecret      = "0123456789abcdef0123456789abcdef"
	unknownSecret    = "ffffffffffffffffffffffffffffffff"
)

// withChiURLParam adds a chi URL parameter to the request context.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeErrorResponse parses the JSON error response body into a map.
func decodeErrorResponse(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

// fakeCharacters validates ids like the real service and resolves from a map.
type fakeCharacters struct {
	byFoundryID map[string]*model.Character
	lookups     int
}

func (f *fakeCharacters) ResolveFoundryID(_ context.Context, field, id string) (*model.Character, error) {
	if err := core.ValidateFoundryID(field, id); err != nil {
		return nil, err
	}
	f.lookups++
	if c, ok := f.byFoundryID[id]; ok {
		return c, nil
	}
	return nil, core.NotFound("No such character")
}

// fakeResolver maps bearer secrets to principals and counts lookups.
type fakeResolver struct {
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, secret string) (*model.Principal, error) {
	f.calls++
	if secret == validSecret {
		return &model.Principal{ID: 1, Name: "gm-alice"}, nil
	}
	return nil, core.NotFound("Invalid Bearer token")
}

// countingStore wraps an asset.Store and counts calls.
type countingStore struct {
	*asset.Store
	writes int
	reads  int
}

func (s *countingStore) Write(ctx context.Context, up asset.Upload) error {
	s.writes++
	return s.Store.Write(ctx, up)
}

func (s *countingStore) TryRead(ctx context.Context, c *model.Character, kind asset.Kind) (*asset.StoredAsset, bool, error) {
	s.reads++
	return s.Store.TryRead(ctx, c, kind)
}

type fixture struct {
	handler    *CharacterAsset
	characters *fakeCharacters
	resolver   *fakeResolver
	store      *countingStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend, err := storage.NewFileBackend(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	f := &fixture{
		characters: &fakeCharacters{byFoundryID: map[string]*model.Character{
			knownFoundryID: {ID: 3, FoundryID: knownFoundryID, Name: "Thorin", OwnerID: 1},
		}},
		resolver: &fakeResolver{},
		store:    &countingStore{Store: asset.NewStore(backend, zerolog.Nop())},
	}
	f.handler = NewCharacterAsset(f.characters, mw.NewGate(f.resolver), f.store, zerolog.Nop())
	return f
}

func (f *fixture) do(h http.HandlerFunc, method, foundryID, secret string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/character/foundry/"+foundryID, bytes.NewReader(body))
	if secret != "" {
		req.Header.Set("Authorization", "Bearer "+secret)
	}
	req = withChiURLParam(req, FoundryIDParam, foundryID)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
