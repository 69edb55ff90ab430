package models

// GlobalConfig holds system-wide settings read from .wgconfig via Viper.
type GlobalConfig struct {
	// StoreFile is the snapshot document name inside the base path.
	StoreFile string `yaml:"store_file" mapstructure:"store_file"`
	// DefaultPriority is assigned to new items when no --priority is given.
	DefaultPriority Priority `yaml:"default_priority" mapstructure:"default_priority"`
	// BlockedPreview is the number of blocked items reported by "wg next".
	BlockedPreview int `yaml:"blocked_preview" mapstructure:"blocked_preview"`
	// AllowPause permits the in_progress -> not_started transition.
	AllowPause bool `yaml:"allow_pause" mapstructure:"allow_pause"`
	// DotBinary is the external graph-layout executable used for image output.
	DotBinary string `yaml:"dot_binary" mapstructure:"dot_binary"`
	// MaxSlugLen caps the title-derived portion of generated item ids.
	MaxSlugLen int `yaml:"max_slug_len" mapstructure:"max_slug_len"`
}
