package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"democat/internal/launcher"
)

// Config holds the application configuration
type Config struct {
	Catalog     string `koanf:"catalog" yaml:"catalog"`                   // Path to the catalog manifest
	CatalogDir  string `koanf:"catalog_dir" yaml:"catalog_dir,omitempty"` // Directory of manifests (optional)
	CatalogGlob string `koanf:"catalog_glob" yaml:"catalog_glob"`         // Manifest pattern inside CatalogDir
	Locale      string `koanf:"locale" yaml:"locale,omitempty"`           // Collation locale, empty = $LANG
	Transition  string `koanf:"transition" yaml:"transition"`             // Default transition preset
	HistoryPath string `koanf:"history_path" yaml:"history_path"`         // SQLite launch history
	PrefsPath   string `koanf:"prefs_path" yaml:"prefs_path"`             // Per-entry preferences
	LogPath     string `koanf:"log_path" yaml:"log_path"`                 // Log file used while browsing
	Debug       bool   `koanf:"debug" yaml:"debug"`                       // Debug logging
	Watch       bool   `koanf:"watch" yaml:"watch"`                       // Reload when manifests change
	Editor      string `koanf:"editor" yaml:"editor"`                     // "auto", code, cursor, zed or a command line
	FirstRun    bool   `koanf:"-" yaml:"-"`                               // No config file was found
	path        string
}

// configFileName is the name of the config file
const configFileName = "config.yaml"

// envPrefix is the prefix for environment overrides
const envPrefix = "DEMOCAT_"

// keys lists every configuration key. Env and flag names outside this set are ignored.
var keys = map[string]bool{
	"catalog":      true,
	"catalog_dir":  true,
	"catalog_glob": true,
	"locale":       true,
	"transition":   true,
	"history_path": true,
	"prefs_path":   true,
	"log_path":     true,
	"debug":        true,
	"watch":        true,
	"editor":       true,
}

// Default returns the default configuration
func Default() *Config {
	dir := ConfigDir()

	return &Config{
		Catalog:     filepath.Join(dir, "catalog.yaml"),
		CatalogGlob: "**/*.{yaml,yml}",
		Transition:  string(launcher.TransitionNone),
		HistoryPath: filepath.Join(dir, "history.db"),
		PrefsPath:   filepath.Join(dir, "prefs.yaml"),
		LogPath:     filepath.Join(dir, "democat.log"),
		Watch:       true,
		Editor:      "auto",
		FirstRun:    true,
		path:        ConfigPath(),
	}
}

// ConfigDir returns the directory containing democat files
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "democat")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// Load loads configuration from file, environment variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// An empty cfgFile means ConfigPath(), which may be absent.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	def := Default()

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"catalog":      def.Catalog,
		"catalog_dir":  def.CatalogDir,
		"catalog_glob": def.CatalogGlob,
		"locale":       def.Locale,
		"transition":   def.Transition,
		"history_path": def.HistoryPath,
		"prefs_path":   def.PrefsPath,
		"log_path":     def.LogPath,
		"debug":        def.Debug,
		"watch":        def.Watch,
		"editor":       def.Editor,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	explicit := cfgFile != ""
	if !explicit {
		cfgFile = ConfigPath()
	}
	firstRun := true
	if _, err := os.Stat(cfgFile); err == nil {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
		firstRun = false
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
	}

	// 3. Environment: DEMOCAT_CATALOG_DIR -> catalog_dir
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		if !keys[key] {
			return ""
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !keys[key] {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FirstRun = firstRun
	cfg.path = cfgFile

	cfg.Catalog = expandHome(cfg.Catalog)
	cfg.CatalogDir = expandHome(cfg.CatalogDir)
	cfg.HistoryPath = expandHome(cfg.HistoryPath)
	cfg.PrefsPath = expandHome(cfg.PrefsPath)
	cfg.LogPath = expandHome(cfg.LogPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be caught by decoding
func (c *Config) Validate() error {
	if _, err := launcher.ParseTransition(c.Transition); err != nil {
		return fmt.Errorf("invalid transition: %w", err)
	}
	if c.CatalogDir != "" && !doublestar.ValidatePattern(c.CatalogGlob) {
		return fmt.Errorf("invalid catalog_glob %q", c.CatalogGlob)
	}
	return nil
}

// Path returns the file this config was loaded from or will be saved to
func (c *Config) Path() string {
	if c.path == "" {
		return ConfigPath()
	}
	return c.path
}

// DefaultTransition returns the configured default preset
func (c *Config) DefaultTransition() launcher.Transition {
	t, err := launcher.ParseTransition(c.Transition)
	if err != nil {
		return launcher.TransitionNone
	}
	return t
}

// Save saves the configuration to file
func (c *Config) Save() error {
	configPath := c.Path()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := yamlv3.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return err
	}
	c.FirstRun = false
	return nil
}

// EnsureDirectories creates the directories holding democat state
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.HistoryPath),
		filepath.Dir(c.PrefsPath),
		filepath.Dir(c.LogPath),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
