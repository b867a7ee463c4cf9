// Package storage loads and stores encoded
// GBL images by location. A location is a
// plain path, a file:// URL, an s3://bucket/key
// URL or, for loading only, an http(s):// URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

var (
	// ErrUnsupportedScheme is returned for
	// locations without a registered Backend.
	ErrUnsupportedScheme = errors.New("unsupported location scheme")

	// ErrReadOnly is returned when storing
	// to a Backend that can only load.
	ErrReadOnly = errors.New("location is read only")
)

// Backend loads and stores the
// raw bytes found at a location.
type Backend interface {
	Load(ctx context.Context, loc *url.URL) ([]byte, error)
	Store(ctx context.Context, loc *url.URL, data []byte) error
}

// Storage dispatches locations to the
// Backend registered for their scheme.
type Storage struct {
	lock     sync.RWMutex
	backends map[string]Backend
}

// New returns a Storage with the file,
// s3 and http(s) backends registered.
func New() *Storage {
	httpBackend := new(HTTPBackend)

	return &Storage{
		backends: map[string]Backend{
			"file":  new(FileBackend),
			"s3":    new(S3Backend),
			"http":  httpBackend,
			"https": httpBackend,
		},
	}
}

var defaultStorage = New()

// Register sets the Backend used for
// locations with the supplied scheme.
func (storage *Storage) Register(scheme string, backend Backend) {
	storage.lock.Lock()
	defer storage.lock.Unlock()

	storage.backends[strings.ToLower(scheme)] = backend
}

// Load returns the bytes found at location.
func (storage *Storage) Load(ctx context.Context, location string) ([]byte, error) {
	backend, loc, err := storage.resolve(location)
	if err != nil {
		return nil, err
	}

	data, err := backend.Load(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", location, err)
	}

	return data, nil
}

// Store writes data to location, replacing
// anything already stored there.
func (storage *Storage) Store(ctx context.Context, location string, data []byte) error {
	backend, loc, err := storage.resolve(location)
	if err != nil {
		return err
	}

	if err = backend.Store(ctx, loc, data); err != nil {
		return fmt.Errorf("store %s: %w", location, err)
	}

	return nil
}

func (storage *Storage) resolve(location string) (Backend, *url.URL, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, nil, err
	}

	storage.lock.RLock()
	backend, ok := storage.backends[loc.Scheme]
	storage.lock.RUnlock()

	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", loc.Scheme, ErrUnsupportedScheme)
	}

	return backend, loc, nil
}

// ParseLocation parses location into a URL,
// anything without a scheme is a file path.
func ParseLocation(location string) (*url.URL, error) {
	if len(location) == 0 {
		return nil, errors.New("empty location")
	}

	scheme, _, found := strings.Cut(location, "://")
	// Single letter schemes are Windows drive letters.
	if !found || len(scheme) <= 1 {
		return &url.URL{Scheme: "file", Path: location}, nil
	}

	loc, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse location: %w", err)
	}

	loc.Scheme = strings.ToLower(loc.Scheme)
	return loc, nil
}

// Load returns the bytes found at location
// using the default Storage.
func Load(ctx context.Context, location string) ([]byte, error) {
	return defaultStorage.Load(ctx, location)
}

// Store writes data to location
// using the default Storage.
func Store(ctx context.Context, location string, data []byte) error {
	return defaultStorage.Store(ctx, location, data)
}
