package pack

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/KatelynHaworth/gbl-helper/config"
)

// Run builds every image of cfg in parallel,
// one Worker per image. The returned workers
// hold the result of each image even when an
// error is returned.
func Run(ctx context.Context, cfg *config.ConfigurationV2, store Store, logger zerolog.Logger) ([]*Worker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}

	images := cfg.GetImages()
	wkrs := make([]*Worker, 0, len(images))
	for _, image := range images {
		wLogger := logger.With().Str("output", image.Output).Logger()
		wLogger.Info().Msg("Spawning pack worker")

		wkr, err := NewWorker(image, cfg.BaseDir, store, wLogger)
		if err != nil {
			return nil, fmt.Errorf("spawn worker for %s: %w", image.Output, err)
		}

		wkrs = append(wkrs, wkr)
	}

	group, gCtx := errgroup.WithContext(ctx)
	for _, wkr := range wkrs {
		wkr := wkr
		group.Go(func() error {
			return wkr.Run(gCtx)
		})
	}

	return wkrs, group.Wait()
}
