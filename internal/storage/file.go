package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FileBackend stores objects as files below a base directory.
type FileBackend struct {
	baseDir string
	logger  zerolog.Logger
}

// NewFileBackend creates the base directory if needed and returns a backend
// rooted there.
func NewFileBackend(baseDir string, logger zerolog.Logger) (*FileBackend, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset directory: %w", err)
	}
	return &FileBackend{
		baseDir: baseDir,
		logger:  logger.With().Str("component", "file-backend").Logger(),
	}, nil
}

// Open opens the file stored for key.
func (b *FileBackend) Open(_ context.Context, key string) (*Object, error) {
	f, err := os.Open(b.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", key, err)
	}
	return &Object{Body: f, Size: info.Size()}, nil
}

// Put writes data to a temporary file next to the target and renames it into
// place, so concurrent readers never observe a partial object.
func (b *FileBackend) Put(ctx context.Context, key string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := b.path(key)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", key, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(target)+"."+uuid.NewString()+".tmp")
	if err := writeFileSync(tmp, data); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", key, err)
	}

	b.logger.Debug().Str("key", key).Int("size", len(data)).Msg("stored object")
	return nil
}

// Ping checks that the base directory is still reachable.
func (b *FileBackend) Ping(_ context.Context) error {
	if _, err := os.Stat(b.baseDir); err != nil {
		return fmt.Errorf("asset directory unavailable: %w", err)
	}
	return nil
}

func (b *FileBackend) Name() string {
	return "file:" + b.baseDir
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.baseDir, filepath.FromSlash(key))
}

func writeFileSync(name string, data []byte) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
