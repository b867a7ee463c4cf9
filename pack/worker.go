// Package pack assembles GBL images
// described by a pack manifest.
package pack

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/KatelynHaworth/gbl-helper/config"
	"github.com/KatelynHaworth/gbl-helper/gbl/container"
	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
)

// Store writes an encoded image
// to a location.
type Store interface {
	Store(ctx context.Context, location string, data []byte) error
}

// Worker builds a single image of a
// manifest and stores the result.
type Worker struct {
	target config.Image
	store  Store
	logger zerolog.Logger

	tags      []tags.Tag
	imageHash string
	imageSize int
}

// NewWorker resolves every tag of the target
// image up front so manifest mistakes are
// reported before anything is written.
func NewWorker(target config.Image, baseDir string, store Store, logger zerolog.Logger) (*Worker, error) {
	worker := &Worker{
		target: target,
		store:  store,
		logger: logger,
	}

	if len(target.Output) == 0 {
		return nil, fmt.Errorf("image doesn't declare an output")
	}

	for i, spec := range target.Tags {
		tag, err := spec.Build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("build tag %d: %w", i, err)
		}

		worker.tags = append(worker.tags, tag)
	}

	return worker, nil
}

func (worker *Worker) Logger() zerolog.Logger {
	return worker.logger
}

// Output returns the location
// the image is stored to.
func (worker *Worker) Output() string {
	return worker.target.Output
}

// ImageHash returns the hex encoded SHA-256
// of the stored image, empty until Run
// has completed.
func (worker *Worker) ImageHash() string {
	return worker.imageHash
}

func (worker *Worker) ImageSize() int {
	return worker.imageSize
}

// Assemble builds the image through a
// TagContainer and returns its encoding.
// A Header tag is only accepted as the
// first tag, where it replaces the
// default Header.
func (worker *Worker) Assemble() ([]byte, error) {
	image := container.New()
	if err := image.Create(); err != nil {
		return nil, fmt.Errorf("create container: %w", err)
	}

	pending := worker.tags
	if len(pending) > 0 && pending[0].Kind() == tags.KindHeader {
		worker.logger.Debug().Str("tag", pending[0].ID().String()).Msg("Using custom image header")

		if err := image.Load(pending[:1]); err != nil {
			return nil, fmt.Errorf("load image header: %w", err)
		}

		pending = pending[1:]
	}

	for i, tag := range pending {
		worker.logger.Debug().Str("tag", tag.ID().String()).Uint32("length", tag.Length()).Msg("Adding tag to image")

		if err := image.Add(tag); err != nil {
			return nil, fmt.Errorf("add tag %d (%s): %w", i, tag.Kind(), err)
		}
	}

	return image.BuildToBytes()
}

// Run assembles the image and
// stores it to its output.
func (worker *Worker) Run(ctx context.Context) error {
	worker.logger.Info().Int("tags", len(worker.tags)).Msg("Assembling image")

	data, err := worker.Assemble()
	if err != nil {
		return fmt.Errorf("assemble image: %w", err)
	}

	if err = worker.store.Store(ctx, worker.target.Output, data); err != nil {
		return fmt.Errorf("store image: %w", err)
	}

	hash := sha256.Sum256(data)
	worker.imageHash = hex.EncodeToString(hash[:])
	worker.imageSize = len(data)

	worker.logger.Info().Int("size", worker.imageSize).Str("sha256", worker.imageHash).Msg("Image stored")
	return nil
}
