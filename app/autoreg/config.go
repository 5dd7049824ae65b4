package autoreg

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/usnistgov/ndn-autoreg/core/netrange"
	"github.com/usnistgov/ndn-autoreg/core/nnduration"
	"github.com/usnistgov/ndn-autoreg/ndn"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Limits and defaults.
const (
	DefaultCost           = 255
	MaxCost               = 65535
	DefaultCommandTimeout = 10 * time.Second
	MaxCommandTimeout     = time.Hour
)

// Error conditions.
var (
	ErrNoPrefix     = errors.New("at least one autoreg or all-faces prefix is required")
	ErrInvalidRange = errors.New("invalid network range")
)

var validate = validator.New()

// ConfigError indicates the configuration is invalid.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config contains route auto-registration configuration.
type Config struct {
	// AutoregPrefixes are registered on non-local on-demand faces that pass the network filters.
	AutoregPrefixes []ndn.Name `json:"autoregPrefixes,omitempty"`

	// AllFacesPrefixes are registered on every non-local unicast face.
	AllFacesPrefixes []ndn.Name `json:"allFacesPrefixes,omitempty"`

	// Cost is the route cost.
	// Default is DefaultCost when initialized by DefaultConfig.
	Cost int `json:"cost" validate:"gte=0,lte=65535"`

	// Whitelist contains networks where AutoregPrefixes may be registered.
	// If empty, every IPv4 and IPv6 address is whitelisted.
	Whitelist netrange.List `json:"whitelist,omitempty"`

	// Blacklist contains networks where AutoregPrefixes must not be registered.
	Blacklist netrange.List `json:"blacklist,omitempty"`

	// CommandTimeout is the timeout of each registration command.
	// Default is DefaultCommandTimeout.
	CommandTimeout nnduration.Milliseconds `json:"commandTimeout,omitempty" validate:"lte=3600000"`
}

// DefaultConfig returns a Config with default cost and timeout.
func DefaultConfig() Config {
	return Config{
		Cost:           DefaultCost,
		CommandTimeout: nnduration.Milliseconds(DefaultCommandTimeout / time.Millisecond),
	}
}

// ApplyDefaults removes duplicate prefixes and fills in defaults.
func (cfg *Config) ApplyDefaults() {
	cfg.AutoregPrefixes = dedupNames(cfg.AutoregPrefixes)
	cfg.AllFacesPrefixes = dedupNames(cfg.AllFacesPrefixes)
	if len(cfg.Whitelist) == 0 {
		cfg.Whitelist = netrange.List{netrange.MaxRangeV4(), netrange.MaxRangeV6()}
	}
	if cfg.CommandTimeout == 0 {
		cfg.CommandTimeout = nnduration.Milliseconds(DefaultCommandTimeout / time.Millisecond)
	}
}

// Validate checks the configuration.
// It returns *ConfigError that combines every problem found.
func (cfg Config) Validate() (e error) {
	if len(cfg.AutoregPrefixes)+len(cfg.AllFacesPrefixes) == 0 {
		e = multierr.Append(e, ErrNoPrefix)
	}

	if ve := validate.Struct(cfg); ve != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(ve, &fieldErrors) {
			for _, fe := range fieldErrors {
				e = multierr.Append(e, fmt.Errorf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			}
		} else {
			e = multierr.Append(e, ve)
		}
	}

	for _, list := range []netrange.List{cfg.Whitelist, cfg.Blacklist} {
		for _, r := range list {
			if !r.Valid() {
				e = multierr.Append(e, ErrInvalidRange)
			}
		}
	}

	if e != nil {
		return &ConfigError{Err: e}
	}
	return nil
}

// LogFields returns effective configuration as log fields.
func (cfg Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.Strings("autoreg-prefixes", nameStrings(cfg.AutoregPrefixes)),
		zap.Strings("all-faces-prefixes", nameStrings(cfg.AllFacesPrefixes)),
		zap.Int("cost", cfg.Cost),
		zap.Strings("whitelist", cfg.Whitelist.Strings()),
		zap.Strings("blacklist", cfg.Blacklist.Strings()),
		zap.Duration("command-timeout", cfg.CommandTimeout.Duration()),
	}
}

func nameKey(name ndn.Name) string {
	wire, _ := name.MarshalBinary()
	return string(wire)
}

func dedupNames(input []ndn.Name) (output []ndn.Name) {
	seen := map[string]bool{}
	for _, name := range input {
		key := nameKey(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		output = append(output, name)
	}
	return output
}

func nameStrings(names []ndn.Name) (a []string) {
	for _, name := range names {
		a = append(a, name.String())
	}
	return a
}
