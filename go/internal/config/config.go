package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mcdev12/clicker/go/internal/leaderboard"
	"github.com/mcdev12/clicker/go/internal/round"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Audio   AudioConfig   `yaml:"audio"`
}

// GameConfig holds board geometry and the timing policy
type GameConfig struct {
	BoardSize      float64       `yaml:"board_size"`
	TargetSize     float64       `yaml:"target_size"`
	Policy         string        `yaml:"policy"`
	TickInterval   time.Duration `yaml:"tick_interval"`
	RoundDuration  time.Duration `yaml:"round_duration"`
	TargetLifetime time.Duration `yaml:"target_lifetime"`
	MinLifetime    time.Duration `yaml:"min_lifetime"`
	MaxLifetime    time.Duration `yaml:"max_lifetime"`
	LateWindow     time.Duration `yaml:"late_window"`
}

// StorageConfig locates the leaderboard slot
type StorageConfig struct {
	Dir  string `yaml:"dir"`
	Key  string `yaml:"key"`
	Size int    `yaml:"size"`
}

// LogConfig controls the global logger
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// AudioConfig toggles the hit sound
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration
func Default() Config {
	rc := round.DefaultConfig()
	return Config{
		Game: GameConfig{
			BoardSize:      rc.BoardSize,
			TargetSize:     rc.TargetSize,
			Policy:         rc.Policy,
			TickInterval:   rc.TickInterval,
			RoundDuration:  rc.RoundDuration,
			TargetLifetime: rc.TargetLifetime,
			MinLifetime:    rc.MinLifetime,
			MaxLifetime:    rc.MaxLifetime,
			LateWindow:     rc.LateWindow,
		},
		Storage: StorageConfig{
			Dir:  defaultDataDir(),
			Key:  leaderboard.DefaultKey,
			Size: leaderboard.DefaultSize,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults (skipped when path is empty),
// then applies CLICKER_* environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Round().Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.Storage.Dir, "clicker.log")
	}
	return cfg, nil
}

// Round converts the game section into round controller settings
func (c Config) Round() round.Config {
	return round.Config{
		BoardSize:      c.Game.BoardSize,
		TargetSize:     c.Game.TargetSize,
		Policy:         c.Game.Policy,
		TickInterval:   c.Game.TickInterval,
		RoundDuration:  c.Game.RoundDuration,
		TargetLifetime: c.Game.TargetLifetime,
		MinLifetime:    c.Game.MinLifetime,
		MaxLifetime:    c.Game.MaxLifetime,
		LateWindow:     c.Game.LateWindow,
	}
}

func (c *Config) applyEnv() error {
	c.Game.Policy = getEnv("CLICKER_POLICY", c.Game.Policy)
	c.Storage.Dir = getEnv("CLICKER_DATA_DIR", c.Storage.Dir)
	c.Storage.Key = getEnv("CLICKER_STORAGE_KEY", c.Storage.Key)
	c.Log.Level = getEnv("CLICKER_LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("CLICKER_LOG_FILE", c.Log.File)

	var err error
	if c.Game.BoardSize, err = getEnvAsFloat("CLICKER_BOARD_SIZE", c.Game.BoardSize); err != nil {
		return err
	}
	if c.Game.TargetSize, err = getEnvAsFloat("CLICKER_TARGET_SIZE", c.Game.TargetSize); err != nil {
		return err
	}
	if c.Game.TickInterval, err = getEnvAsDuration("CLICKER_TICK_INTERVAL", c.Game.TickInterval); err != nil {
		return err
	}
	if c.Game.RoundDuration, err = getEnvAsDuration("CLICKER_ROUND_DURATION", c.Game.RoundDuration); err != nil {
		return err
	}
	if c.Audio.Enabled, err = getEnvAsBool("CLICKER_AUDIO", c.Audio.Enabled); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return f, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return d, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return b, nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "osu-clicker")
	}
	return ".osu-clicker"
}
