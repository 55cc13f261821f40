// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration for hioload-vec tools, layered defaults < config
// file < VECTOOL_* environment < flags, resolved through viper.

package control

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/storage"
)

// Allocator names accepted in Config.Allocator.
const (
	AllocatorSlab = "slab"
	AllocatorHeap = "heap"
)

// Config keys.
const (
	KeyInitialCapacity = "initial_capacity"
	KeyRingCapacity    = "ring_capacity"
	KeyIgnoreCase      = "ignore_case"
	KeyDelimiters      = "delimiters"
	KeyAllocator       = "allocator"
	KeyPoolDepth       = "pool_depth"
)

// Config holds container tuning knobs.
type Config struct {
	InitialCapacity int    `mapstructure:"initial_capacity"`
	RingCapacity    int    `mapstructure:"ring_capacity"`
	IgnoreCase      bool   `mapstructure:"ignore_case"`
	Delimiters      string `mapstructure:"delimiters"`
	Allocator       string `mapstructure:"allocator"`
	PoolDepth       int    `mapstructure:"pool_depth"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyInitialCapacity, storage.DefaultCapacity)
	v.SetDefault(KeyRingCapacity, 1024)
	v.SetDefault(KeyIgnoreCase, false)
	v.SetDefault(KeyDelimiters, "")
	v.SetDefault(KeyAllocator, AllocatorSlab)
	v.SetDefault(KeyPoolDepth, 64)
}

// NewViper returns a viper instance with defaults and env binding set up.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("VECTOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (when non-empty) into v and decodes the result.
func Load(v *viper.Viper, file string) (Config, error) {
	var cfg Config
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return cfg, err
			}
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.InitialCapacity < 0 || c.InitialCapacity > api.MaxSlots:
		return api.NewError(api.ErrCodeInvalidArgument, "config: initial_capacity out of range").
			WithContext(KeyInitialCapacity, c.InitialCapacity)
	case c.RingCapacity < 2 || c.RingCapacity > api.MaxSlots:
		return api.NewError(api.ErrCodeInvalidArgument, "config: ring_capacity must be at least 2").
			WithContext(KeyRingCapacity, c.RingCapacity)
	case c.Allocator != AllocatorSlab && c.Allocator != AllocatorHeap:
		return api.NewError(api.ErrCodeInvalidArgument, "config: unknown allocator").
			WithContext(KeyAllocator, c.Allocator)
	case c.PoolDepth < 0:
		return api.NewError(api.ErrCodeInvalidArgument, "config: pool_depth must not be negative").
			WithContext(KeyPoolDepth, c.PoolDepth)
	}
	return nil
}
