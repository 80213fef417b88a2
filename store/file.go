package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"agenda-backend/apperrors"
	"agenda-backend/models"
)

// FileCatalogStore keeps the catalog in a local CSV file.
type FileCatalogStore struct {
	Path string
}

func NewFileCatalogStore(path string) *FileCatalogStore {
	return &FileCatalogStore{Path: path}
}

func (s *FileCatalogStore) ReadAll(_ context.Context) (models.Catalog, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Catalog{}, apperrors.ErrStoreNotFound
		}
		return models.Catalog{}, &apperrors.StoreError{Op: "read", Err: err}
	}

	catalog, err := decodeCatalog(data)
	if err != nil {
		return models.Catalog{}, &apperrors.StoreError{Op: "read", Err: err}
	}
	return catalog, nil
}

func (s *FileCatalogStore) WriteAll(_ context.Context, catalog models.Catalog) error {
	data, err := encodeCatalog(catalog)
	if err != nil {
		return &apperrors.StoreError{Op: "write", Err: err}
	}
	if err := writeFileAtomic(s.Path, data); err != nil {
		return &apperrors.StoreError{Op: "write", Err: err}
	}
	return nil
}

// FileLogStore appends confirmed appointments to a local CSV file.
type FileLogStore struct {
	Path string
}

func NewFileLogStore(path string) *FileLogStore {
	return &FileLogStore{Path: path}
}

func (s *FileLogStore) Append(_ context.Context, entry models.AppointmentLogEntry) error {
	existing, err := os.ReadFile(s.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &apperrors.StoreError{Op: "read", Err: err}
	}

	data, err := encodeLog(existing, entry)
	if err != nil {
		return &apperrors.StoreError{Op: "write", Err: err}
	}
	if err := writeFileAtomic(s.Path, data); err != nil {
		return &apperrors.StoreError{Op: "write", Err: err}
	}
	return nil
}

// writeFileAtomic replaces path via a temp file and rename, so a failed
// write never clobbers the previous contents.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".agenda-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
