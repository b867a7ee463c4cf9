package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type ConfigFormat uint8

const (
	ConfigFormatJSON ConfigFormat = iota
	ConfigFormatYAML
)

// FormatForFile picks the ConfigFormat
// matching the extension of file, JSON
// unless it ends in .yaml or .yml.
func FormatForFile(file string) ConfigFormat {
	if ext := filepath.Ext(file); ext == ".yaml" || ext == ".yml" {
		return ConfigFormatYAML
	}

	return ConfigFormatJSON
}

func (format ConfigFormat) decode(src io.Reader, dst any) error {
	switch format {
	case ConfigFormatJSON:
		return json.NewDecoder(src).Decode(dst)

	case ConfigFormatYAML:
		return yaml.NewDecoder(src).Decode(dst)

	default:
		return errors.New("unsupported config format")
	}
}

var ErrUnsupportedVersion = errors.New("unsupported configuration version")

type configuration interface {
	GetImages() []Image
}

// Image describes a single GBL image
// to assemble, tags are added in order.
type Image struct {
	Output string    `json:"output" yaml:"output"`
	Tags   []TagSpec `json:"tags" yaml:"tags"`
}

type configVersion struct {
	ConfigVersion int `json:"config_version" yaml:"config_version"`
}

func (ver *configVersion) getTargetType() (configuration, error) {
	switch ver.ConfigVersion {
	case 0, 1:
		return new(ConfigurationV1), nil

	case 2:
		return new(ConfigurationV2), nil

	default:
		return nil, ErrUnsupportedVersion
	}
}

// LoadConfigurationFromFile decodes a pack
// manifest of any supported version and
// upgrades it to a ConfigurationV2.
//
// Relative data file paths in the manifest
// are resolved against the directory of
// srcFile.
func LoadConfigurationFromFile(srcFile string, format ConfigFormat) (*ConfigurationV2, error) {
	src, err := os.OpenFile(srcFile, os.O_RDONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open configuration file: %w", err)
	}
	defer src.Close()

	var configVer configVersion
	if err = format.decode(src, &configVer); err != nil {
		return nil, fmt.Errorf("decode config version: %w", err)
	} else if _, err = src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to start of config: %w", err)
	}

	config, err := configVer.getTargetType()
	if err != nil {
		return nil, err
	} else if err = format.decode(src, config); err != nil {
		return nil, fmt.Errorf("decode configuration file: %w", err)
	}

	var upgraded *ConfigurationV2
	switch t := config.(type) {
	case *ConfigurationV1:
		upgraded = t.ToV2()

	case *ConfigurationV2:
		upgraded = t

	default:
		return nil, ErrUnsupportedVersion
	}

	upgraded.BaseDir = filepath.Dir(srcFile)
	return upgraded, nil
}
