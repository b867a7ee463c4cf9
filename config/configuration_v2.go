package config

import (
	"errors"
	"fmt"
)

// ConfigurationV2 describes any number
// of images to be packed in one run.
type ConfigurationV2 struct {
	ConfigVersion int     `json:"config_version" yaml:"config_version"`
	Images        []Image `json:"images" yaml:"images"`

	// BaseDir is the directory relative
	// data files are resolved against.
	BaseDir string `json:"-" yaml:"-"`
}

func (config *ConfigurationV2) GetImages() []Image {
	return config.Images
}

// Validate checks every image names an
// output and every tag a known type.
func (config *ConfigurationV2) Validate() error {
	if len(config.Images) == 0 {
		return errors.New("configuration doesn't declare any images")
	}

	for i, image := range config.Images {
		if len(image.Output) == 0 {
			return fmt.Errorf("image %d: missing output", i)
		}

		for j, spec := range image.Tags {
			if _, err := spec.Kind(); err != nil {
				return fmt.Errorf("image %d tag %d: %w", i, j, err)
			}
		}
	}

	return nil
}
