package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// FileBackend stores images on the local
// file system. Writes go to a temporary file
// next to the target that is renamed over it
// once complete.
type FileBackend struct{}

func (*FileBackend) Load(_ context.Context, loc *url.URL) ([]byte, error) {
	data, err := os.ReadFile(filePath(loc))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

func (*FileBackend) Store(_ context.Context, loc *url.URL, data []byte) error {
	path := filePath(loc)

	temp, err := os.CreateTemp(filepath.Dir(path), fmt.Sprintf(".%s-*", filepath.Base(path)))
	if err != nil {
		return fmt.Errorf("create temp file for image: %w", err)
	}

	if _, err = temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(temp.Name())
		return fmt.Errorf("write image to temp file: %w", err)
	}

	if err = temp.Close(); err != nil {
		_ = os.Remove(temp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Chmod(temp.Name(), 0644); err != nil {
		_ = os.Remove(temp.Name())
		return fmt.Errorf("set image file mode: %w", err)
	}

	if err = os.Rename(temp.Name(), path); err != nil {
		_ = os.Remove(temp.Name())
		return fmt.Errorf("move temp file into place: %w", err)
	}

	return nil
}

func filePath(loc *url.URL) string {
	if len(loc.Host) > 0 {
		return filepath.FromSlash(loc.Host + loc.Path)
	}

	return filepath.FromSlash(loc.Path)
}
