package core

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/valter-silva-au/workgraph/pkg/models"
)

// ConfigurationManager loads and validates configuration from the .wgconfig
// file in the base path.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading the YAML configuration file.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager reading
// configuration relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with sensible defaults.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		StoreFile:       "workgraph.yaml",
		DefaultPriority: models.PriorityMedium,
		BlockedPreview:  3,
		AllowPause:      false,
		DotBinary:       "dot",
		MaxSlugLen:      24,
	}
}

// LoadGlobalConfig reads the .wgconfig file from the base path using Viper.
// A missing file is not an error: defaults are returned.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(".wgconfig")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("store.file", cfg.StoreFile)
	v.SetDefault("defaults.priority", string(cfg.DefaultPriority))
	v.SetDefault("scheduler.blocked_preview", cfg.BlockedPreview)
	v.SetDefault("transitions.allow_pause", cfg.AllowPause)
	v.SetDefault("render.dot_binary", cfg.DotBinary)
	v.SetDefault("id.max_slug_len", cfg.MaxSlugLen)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .wgconfig: %w", err)
	}

	cfg.StoreFile = v.GetString("store.file")
	cfg.DefaultPriority = models.Priority(v.GetString("defaults.priority"))
	cfg.BlockedPreview = v.GetInt("scheduler.blocked_preview")
	cfg.AllowPause = v.GetBool("transitions.allow_pause")
	cfg.DotBinary = v.GetString("render.dot_binary")
	cfg.MaxSlugLen = v.GetInt("id.max_slug_len")

	if !cfg.DefaultPriority.IsValid() {
		return nil, fmt.Errorf("reading .wgconfig: invalid defaults.priority %q", cfg.DefaultPriority)
	}
	if cfg.StoreFile == "" {
		return nil, fmt.Errorf("reading .wgconfig: store.file must not be empty")
	}

	return cfg, nil
}
