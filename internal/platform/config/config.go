package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	RenderModeText   = "text"
	RenderModePlugin = "plugin"

	FileName = "drill.toml"
)

const (
	KeyExercisesDir     = "exercises.dir"
	KeyExercisesWatch   = "exercises.watch"
	KeyMaxParallelReads = "ingest.max_parallel_reads"
	KeyWatchDebounce    = "ingest.watch_debounce"
	KeyShuffleSeed      = "shuffle.seed"
	KeyRenderMode       = "render.mode"
	KeyPluginBinary     = "render.plugin_binary"
	KeyRenderCacheSize  = "render.cache_size"
	KeyViewer           = "render.viewer"
	KeyLogLevel         = "log.level"
	KeyLogFile          = "log.file"
)

type Config struct {
	ExercisesDir     string
	Watch            bool
	MaxParallelReads int
	WatchDebounce    time.Duration
	ShuffleSeed      uint64
	RenderMode       string
	PluginBinary     string
	RenderCacheSize  int
	// Viewer opens rendered diagram files; empty means $BROWSER or the
	// platform default.
	Viewer           string
	LogLevel         string
	LogFile          string
	// Source is the config file that was read, empty when only defaults,
	// env and flags apply.
	Source string
}

// SetDefaults registers every known key so env overrides resolve.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyExercisesDir, "")
	v.SetDefault(KeyExercisesWatch, false)
	v.SetDefault(KeyMaxParallelReads, 8)
	v.SetDefault(KeyWatchDebounce, "300ms")
	v.SetDefault(KeyShuffleSeed, 0)
	v.SetDefault(KeyRenderMode, RenderModeText)
	v.SetDefault(KeyPluginBinary, "")
	v.SetDefault(KeyRenderCacheSize, 64)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
}

// Load reads drill.toml (explicit path first, then the working directory and
// the user config dir), applies DRILL_* env overrides and validates.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)
	v.SetConfigType("toml")
	v.SetEnvPrefix("DRILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "drill"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return New(v)
}

// New builds a Config from already-populated viper state.
func New(v *viper.Viper) (Config, error) {
	cfg := Config{
		ExercisesDir:     v.GetString(KeyExercisesDir),
		Watch:            v.GetBool(KeyExercisesWatch),
		MaxParallelReads: v.GetInt(KeyMaxParallelReads),
		WatchDebounce:    v.GetDuration(KeyWatchDebounce),
		ShuffleSeed:      v.GetUint64(KeyShuffleSeed),
		RenderMode:       strings.ToLower(strings.TrimSpace(v.GetString(KeyRenderMode))),
		PluginBinary:     v.GetString(KeyPluginBinary),
		RenderCacheSize:  v.GetInt(KeyRenderCacheSize),
		Viewer:           strings.TrimSpace(v.GetString(KeyViewer)),
		LogLevel:         strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFile:          v.GetString(KeyLogFile),
		Source:           v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxParallelReads < 1 {
		return fmt.Errorf("%s must be at least 1", KeyMaxParallelReads)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("%s must not be negative", KeyWatchDebounce)
	}
	if c.RenderCacheSize < 1 {
		return fmt.Errorf("%s must be at least 1", KeyRenderCacheSize)
	}
	switch c.RenderMode {
	case RenderModeText:
	case RenderModePlugin:
		if strings.TrimSpace(c.PluginBinary) == "" {
			return fmt.Errorf("%s is required when %s is %q", KeyPluginBinary, KeyRenderMode, RenderModePlugin)
		}
	default:
		return fmt.Errorf("unsupported %s %q", KeyRenderMode, c.RenderMode)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported %s %q", KeyLogLevel, c.LogLevel)
	}
	if c.Watch && strings.TrimSpace(c.ExercisesDir) == "" {
		return fmt.Errorf("%s requires %s", KeyExercisesWatch, KeyExercisesDir)
	}
	return nil
}

type fileSchema struct {
	Exercises struct {
		Dir   string `toml:"dir"`
		Watch bool   `toml:"watch"`
	} `toml:"exercises"`
	Ingest struct {
		MaxParallelReads int    `toml:"max_parallel_reads"`
		WatchDebounce    string `toml:"watch_debounce"`
	} `toml:"ingest"`
	Shuffle struct {
		Seed uint64 `toml:"seed"`
	} `toml:"shuffle"`
	Render struct {
		Mode         string `toml:"mode"`
		PluginBinary string `toml:"plugin_binary"`
		CacheSize    int    `toml:"cache_size"`
		Viewer       string `toml:"viewer"`
	} `toml:"render"`
	Log struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
}

// WriteDefault writes a drill.toml holding the default values. An existing
// file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	v := viper.New()
	SetDefaults(v)

	var schema fileSchema
	schema.Exercises.Dir = v.GetString(KeyExercisesDir)
	schema.Exercises.Watch = v.GetBool(KeyExercisesWatch)
	schema.Ingest.MaxParallelReads = v.GetInt(KeyMaxParallelReads)
	schema.Ingest.WatchDebounce = v.GetString(KeyWatchDebounce)
	schema.Shuffle.Seed = v.GetUint64(KeyShuffleSeed)
	schema.Render.Mode = v.GetString(KeyRenderMode)
	schema.Render.PluginBinary = v.GetString(KeyPluginBinary)
	schema.Render.CacheSize = v.GetInt(KeyRenderCacheSize)
	schema.Render.Viewer = v.GetString(KeyViewer)
	schema.Log.Level = v.GetString(KeyLogLevel)
	schema.Log.File = v.GetString(KeyLogFile)

	raw, err := toml.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
