package config

// ConfigurationV1 is the original manifest
// layout describing a single image.
type ConfigurationV1 struct {
	Output string    `json:"output" yaml:"output"`
	Tags   []TagSpec `json:"tags" yaml:"tags"`
}

func (config *ConfigurationV1) GetImages() []Image {
	return []Image{{Output: config.Output, Tags: config.Tags}}
}

func (config *ConfigurationV1) ToV2() *ConfigurationV2 {
	return &ConfigurationV2{
		ConfigVersion: 2,
		Images:        config.GetImages(),
	}
}
