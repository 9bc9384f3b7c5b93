// Package config loads and watches the user-facing TOML configuration.
//
// Configuration is read from <user config dir>/loom-wm/config.toml.
// Files outside the config directory are refused, as are files over
// the size cap; a missing file silently yields the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	pkgerrors "loom/pkg/errors"
)

// maxConfigSize caps the config file size to prevent resource
// exhaustion from a hostile or corrupted file (1 MiB)
const maxConfigSize = 1024 * 1024

// apiKeyEnvVar overrides the configured AI API key when set
const apiKeyEnvVar = "LOOM_AI_API_KEY"

// Config is the root of the user configuration
type Config struct {
	General     GeneralConfig `toml:"general"`
	Canvas      CanvasConfig  `toml:"canvas"`
	AI          AIConfig      `toml:"ai"`
	Theme       Theme         `toml:"theme"`
	Keybindings []Keybinding  `toml:"keybindings"`
}

// GeneralConfig holds general compositor settings
type GeneralConfig struct {
	// Debug enables debug logging
	Debug bool `toml:"debug"`
	// Terminal is the default terminal application
	Terminal string `toml:"terminal"`
	// Launcher is the default launcher command
	Launcher string `toml:"launcher"`
}

// CanvasConfig holds canvas interaction settings
type CanvasConfig struct {
	// InitialZoom is the zoom level at startup
	InitialZoom float64 `toml:"initial_zoom" validate:"gte=0.1,lte=10"`
	// ZoomSensitivity scales mouse-wheel zoom steps
	ZoomSensitivity float64 `toml:"zoom_sensitivity" validate:"gt=0,lte=1"`
	// PanSensitivity scales pointer pan deltas
	PanSensitivity float64 `toml:"pan_sensitivity" validate:"gt=0,lte=10"`
	// ShowGrid draws the background grid
	ShowGrid bool `toml:"show_grid"`
	// GridSpacing is the grid cell size in pixels
	GridSpacing float64 `toml:"grid_spacing" validate:"gt=0"`
}

// AIConfig holds assistant settings. The API key may live here in
// plaintext but the environment variable takes precedence.
type AIConfig struct {
	// Enabled turns AI features on
	Enabled bool `toml:"enabled"`
	// ServiceURL points at a remote model service
	ServiceURL string `toml:"service_url" validate:"omitempty,url"`
	// APIKey authenticates against the remote service
	APIKey string `toml:"api_key"`
	// UseLocal prefers a local model over the remote service
	UseLocal bool `toml:"use_local"`
	// LocalModelPath locates the local model
	LocalModelPath string `toml:"local_model_path"`
}

// String renders the AI config with the API key redacted, so the
// config can be logged safely
func (c AIConfig) String() string {
	key := ""
	if c.APIKey != "" {
		key = "[REDACTED]"
	}
	return fmt.Sprintf("AIConfig{enabled: %t, service_url: %q, api_key: %s, use_local: %t, local_model_path: %q}",
		c.Enabled, c.ServiceURL, key, c.UseLocal, c.LocalModelPath)
}

// ResolveAPIKey returns the API key, preferring the environment
// variable over the config file
func (c AIConfig) ResolveAPIKey() string {
	if key := os.Getenv(apiKeyEnvVar); key != "" {
		return key
	}
	return c.APIKey
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			Debug:    false,
			Terminal: "foot",
		},
		Canvas: CanvasConfig{
			InitialZoom:     1.0,
			ZoomSensitivity: 0.1,
			PanSensitivity:  1.0,
			ShowGrid:        true,
			GridSpacing:     50.0,
		},
		AI: AIConfig{
			Enabled: true,
		},
		Theme:       DefaultTheme(),
		Keybindings: DefaultKeybindings(),
	}
}

// Dir returns the configuration directory path
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "loom-wm")
}

// File returns the default config file path
func File() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, falling back to defaults when it does
// not exist
func Load(logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	path := File()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info("No config file found, using defaults")
		return DefaultConfig(), nil
	}
	return LoadFrom(path, logger)
}

// LoadFrom reads a config file from an explicit path. The path must
// resolve to a location inside the config directory.
func LoadFrom(path string, logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	if err := ensureInConfigDir(resolved); err != nil {
		return nil, err
	}

	logger.Debug("Loading config", zap.String("path", resolved))

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, pkgerrors.NewSecurityError("cannot stat config file").WithCause(err)
	}
	if info.Size() > maxConfigSize {
		return nil, pkgerrors.NewSecurityError(
			fmt.Sprintf("config file exceeds maximum size of %d bytes", maxConfigSize))
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, pkgerrors.NewParseError("cannot read config file").WithCause(err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, pkgerrors.NewParseError("cannot parse config file").WithCause(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the default path, creating the config
// directory if needed
func (c *Config) Save(logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	path := File()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return pkgerrors.NewSecurityError("cannot create config directory").WithCause(err)
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return pkgerrors.NewParseError("cannot encode config").WithCause(err)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return pkgerrors.NewSecurityError("cannot write config file").WithCause(err)
	}

	logger.Info("Config saved", zap.String("path", path))
	return nil
}

// Validate checks numeric ranges and keybinding rules
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return pkgerrors.NewValidationError("invalid configuration").WithCause(err)
	}

	if len(c.Keybindings) > maxKeybindings {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("too many keybindings: %d exceeds %d", len(c.Keybindings), maxKeybindings))
	}
	for _, kb := range c.Keybindings {
		if err := kb.Validate(); err != nil {
			return err
		}
	}
	return nil
}

var validate = validator.New()

// resolvePath canonicalizes a path, following symlinks
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", pkgerrors.NewSecurityError("cannot resolve config path").WithCause(err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", pkgerrors.NewSecurityError("cannot resolve config path").WithCause(err)
	}
	return resolved, nil
}

// ensureInConfigDir refuses paths that escape the config directory
func ensureInConfigDir(resolved string) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pkgerrors.NewSecurityError("cannot create config directory").WithCause(err)
	}

	canonicalDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return pkgerrors.NewSecurityError("cannot resolve config directory").WithCause(err)
	}

	rel, err := filepath.Rel(canonicalDir, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return pkgerrors.NewSecurityError(
			fmt.Sprintf("config file must be within %s", canonicalDir))
	}
	return nil
}
