// Package config loads the collision and logger settings from viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/go-playground/validator.v9"
)

// Config is the whole configuration of an application embedding the collision registry
type Config struct {
	Collision CollisionConfig
	Logger    LoggerConfig
}

// CollisionConfig holds the registry settings
type CollisionConfig struct {
	// Capacity preallocates room for that many colliders per collection
	Capacity int `validate:"gte=0"`
	// SegmentThickness is the distance under which a 2D segment touches a point or another segment
	SegmentThickness float64 `validate:"gte=0"`
	// PlaneThickness is the distance under which a 3D point touches a plane
	PlaneThickness float64 `validate:"gte=0"`
}

// LoggerConfig holds the logger settings
type LoggerConfig struct {
	Level string `validate:"oneof=debug info warn error"`
	// Dir prefixes the log file name, no file is written when empty
	Dir      string
	Rotation bool
	Stdout   bool

	// lumberjack settings, used when Rotation is set
	MaxSize    int `validate:"gte=0"`
	MaxAge     int `validate:"gte=0"`
	MaxBackups int `validate:"gte=0"`
	Compress   bool
}

// Default returns the default configuration: exact narrow phase, info logs on stdout
func Default() Config {
	return Config{
		Collision: CollisionConfig{
			Capacity:         64,
			SegmentThickness: 0,
			PlaneThickness:   0,
		},
		Logger: LoggerConfig{
			Level:      "info",
			Stdout:     true,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers the default values in v, so that a partial config file is enough
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("collision.capacity", d.Collision.Capacity)
	v.SetDefault("collision.segmentthickness", d.Collision.SegmentThickness)
	v.SetDefault("collision.planethickness", d.Collision.PlaneThickness)

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.dir", d.Logger.Dir)
	v.SetDefault("logger.rotation", d.Logger.Rotation)
	v.SetDefault("logger.stdout", d.Logger.Stdout)
	v.SetDefault("logger.maxsize", d.Logger.MaxSize)
	v.SetDefault("logger.maxage", d.Logger.MaxAge)
	v.SetDefault("logger.maxbackups", d.Logger.MaxBackups)
	v.SetDefault("logger.compress", d.Logger.Compress)
}

// Load reads the configuration from v, missing keys taking their default value
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		Collision: CollisionConfig{
			Capacity:         v.GetInt("collision.capacity"),
			SegmentThickness: v.GetFloat64("collision.segmentthickness"),
			PlaneThickness:   v.GetFloat64("collision.planethickness"),
		},
		Logger: LoggerConfig{
			Level:      strings.ToLower(v.GetString("logger.level")),
			Dir:        v.GetString("logger.dir"),
			Rotation:   v.GetBool("logger.rotation"),
			Stdout:     v.GetBool("logger.stdout"),
			MaxSize:    v.GetInt("logger.maxsize"),
			MaxAge:     v.GetInt("logger.maxage"),
			MaxBackups: v.GetInt("logger.maxbackups"),
			Compress:   v.GetBool("logger.compress"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFile reads a config file (any format viper understands)
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	return Load(v)
}

var validate = validator.New()

// Validate checks the ranges of every field
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
