package catalog

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	DefaultFilePath = "products.json"

	filePerm = 0o644
	dirPerm  = 0o755
)

// FileStore keeps the catalog in a single pretty-printed JSON file.
type FileStore struct {
	path string
	log  *zap.Logger
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	if path == "" {
		path = DefaultFilePath
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Read(ctx context.Context) ([]Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, &StoreError{Op: "read", Err: err}
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("product file not found, creating an empty one", zap.String("path", s.path))
		if err := s.Write(ctx, nil); err != nil {
			return nil, err
		}
		return []Bundle{}, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "read", Err: err}
	}

	out, err := decodeBundles(data)
	if err != nil {
		s.log.Error("product file is not valid json", zap.String("path", s.path), zap.Error(err))
		return nil, err
	}
	s.log.Debug("product file read", zap.String("path", s.path), zap.Int("products", len(out)))
	return out, nil
}

// Write replaces the file through a temp file and rename, so a failed write
// never leaves a truncated document behind.
func (s *FileStore) Write(ctx context.Context, bundles []Bundle) error {
	if err := ctx.Err(); err != nil {
		return &StoreError{Op: "write", Err: err}
	}

	data, err := encodeBundles(bundles)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return &StoreError{Op: "mkdir", Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &StoreError{Op: "write", Err: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &StoreError{Op: "write", Err: err}
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return &StoreError{Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StoreError{Op: "write", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return &StoreError{Op: "rename", Err: err}
	}

	s.log.Debug("product file written", zap.String("path", s.path), zap.Int("products", len(bundles)))
	return nil
}
