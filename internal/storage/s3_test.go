package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is a minimal path-style S3 endpoint keeping objects in memory.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3(t *testing.T) (*fakeS3, *httptest.Server) {
	t.Helper()
	f := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		f.objects[p] = data
		f.types[p] = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := f.objects[p]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	case http.MethodHead:
		if p == "assets" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestS3Backend(t *testing.T, bucket, prefix string) (*S3Backend, *fakeS3) {
	f, srv := newFakeS3(t)
	b := NewS3Backend(S3Options{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		Bucket:    bucket,
		Prefix:    prefix,
		AccessKey: "test-access",
		SecretKey: "test-secret",
	}, zerolog.Nop())
	return b, f
}

func TestS3Backend_PutOpen(t *testing.T) {
	b, f := newTestS3Backend(t, "assets", "/prod/")
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, ObjectKey(5, "token"), []byte("token-bytes"), "image/webp"))

	f.mu.Lock()
	assert.Equal(t, []byte("token-bytes"), f.objects["assets/prod/characters/5/token"])
	assert.Equal(t, "image/webp", f.types["assets/prod/characters/5/token"])
	f.mu.Unlock()

	assert.Equal(t, []byte("token-bytes"), readObject(t, b, ObjectKey(5, "token")))
}

func TestS3Backend_OpenMissing(t *testing.T) {
	b, _ := newTestS3Backend(t, "assets", "")

	_, err := b.Open(context.Background(), ObjectKey(5, "portrait"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3Backend_Ping(t *testing.T) {
	b, _ := newTestS3Backend(t, "assets", "")
	assert.NoError(t, b.Ping(context.Background()))
	assert.Equal(t, "s3:assets", b.Name())

	missing, _ := newTestS3Backend(t, "missing", "")
	assert.Error(t, missing.Ping(context.Background()))
}

func TestS3Backend_ObjectKey(t *testing.T) {
	b := NewS3Backend(S3Options{Region: "us-east-1", Bucket: "assets"}, zerolog.Nop())
	assert.Equal(t, "characters/1/json", b.objectKey("characters/1/json"))

	b = NewS3Backend(S3Options{Region: "us-east-1", Bucket: "assets", Prefix: "a/b/"}, zerolog.Nop())
	assert.Equal(t, "a/b/characters/1/json", b.objectKey("characters/1/json"))
}
