// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all safecircle configuration.
type Config struct {
	Emergency Emergency `yaml:"emergency"`
	Profile   Profile   `yaml:"profile"`
	Map       Map       `yaml:"map"`
	Logging   Logging   `yaml:"logging"`
}

// Emergency holds the protected roster entry seeded at startup.
type Emergency struct {
	Name   string `yaml:"name"`
	Number string `yaml:"number"`
}

// Profile holds the static details shown on the profile pane.
type Profile struct {
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
}

// Map holds the initial map region and the fixed position reported by the
// static locator.
type Map struct {
	Latitude   float64 `yaml:"latitude"`
	Longitude  float64 `yaml:"longitude"`
	Permission bool    `yaml:"permission"` // Whether location permission is granted.
	FixLat     float64 `yaml:"fix_latitude"`
	FixLon     float64 `yaml:"fix_longitude"`
}

// Logging holds logger settings. An empty File disables logging.
type Logging struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
	File  string `yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Emergency: Emergency{
			Name:   "Police of India",
			Number: "100",
		},
		Profile: Profile{
			Name:  "Tira Saha",
			Phone: "+91 9193226780",
		},
		Map: Map{
			Latitude:   37.78825,
			Longitude:  -122.4324,
			Permission: true,
			FixLat:     37.78825,
			FixLon:     -122.4324,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Parse decodes data as a single config layer over the defaults and
// validates the result. name is used in error messages.
func Parse(name string, data []byte) (*Config, error) {
	cfg := DefaultConfig()
	layer, err := decodeLayer(name, data)
	if err != nil {
		return nil, err
	}
	if layer != nil {
		cfg.merge(layer)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Emergency.Name) == "" {
		return errors.New("config: emergency.name cannot be empty")
	}
	if strings.TrimSpace(c.Emergency.Number) == "" {
		return errors.New("config: emergency.number cannot be empty")
	}
	if err := checkCoord("map.latitude", c.Map.Latitude, 90); err != nil {
		return err
	}
	if err := checkCoord("map.longitude", c.Map.Longitude, 180); err != nil {
		return err
	}
	if err := checkCoord("map.fix_latitude", c.Map.FixLat, 90); err != nil {
		return err
	}
	if err := checkCoord("map.fix_longitude", c.Map.FixLon, 180); err != nil {
		return err
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

func checkCoord(name string, v, limit float64) error {
	if v < -limit || v > limit {
		return fmt.Errorf("config: %s must be within ±%v, got %v", name, limit, v)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: SAFECIRCLE_EMERGENCY_NUMBER, SAFECIRCLE_LOG_LEVEL,
// SAFECIRCLE_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("SAFECIRCLE_EMERGENCY_NUMBER"); v != "" {
		c.Emergency.Number = v
	}
	if v := os.Getenv("SAFECIRCLE_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("SAFECIRCLE_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Emergency *rawEmergency `yaml:"emergency"`
	Profile   *rawProfile   `yaml:"profile"`
	Map       *rawMap       `yaml:"map"`
	Logging   *rawLogging   `yaml:"logging"`
}

type rawEmergency struct {
	Name   *string `yaml:"name"`
	Number *string `yaml:"number"`
}

type rawProfile struct {
	Name  *string `yaml:"name"`
	Phone *string `yaml:"phone"`
}

type rawMap struct {
	Latitude   *float64 `yaml:"latitude"`
	Longitude  *float64 `yaml:"longitude"`
	Permission *bool    `yaml:"permission"`
	FixLat     *float64 `yaml:"fix_latitude"`
	FixLon     *float64 `yaml:"fix_longitude"`
}

type rawLogging struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	return decodeLayer(path, data)
}

// decodeLayer decodes one layer. name is used in error messages. Empty or
// comment-only input yields nil.
func decodeLayer(name string, data []byte) (*rawConfig, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", name, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if e := layer.Emergency; e != nil {
		setString(&c.Emergency.Name, e.Name)
		setString(&c.Emergency.Number, e.Number)
	}
	if p := layer.Profile; p != nil {
		setString(&c.Profile.Name, p.Name)
		setString(&c.Profile.Phone, p.Phone)
	}
	if m := layer.Map; m != nil {
		setFloat(&c.Map.Latitude, m.Latitude)
		setFloat(&c.Map.Longitude, m.Longitude)
		setFloat(&c.Map.FixLat, m.FixLat)
		setFloat(&c.Map.FixLon, m.FixLon)
		if m.Permission != nil {
			c.Map.Permission = *m.Permission
		}
	}
	if l := layer.Logging; l != nil {
		setString(&c.Logging.Level, l.Level)
		setString(&c.Logging.File, l.File)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
