// Package config loads lociprox settings from defaults, an optional YAML
// file, LOCIPROX_* environment variables and bound command-line flags, in
// increasing order of precedence, and validates the result.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// LOCIPROX_DISTANCE_THRESHOLD.
const EnvPrefix = "LOCIPROX"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full set of settings.
type Config struct {
	Log      Log      `mapstructure:"log"`
	Distance Distance `mapstructure:"distance"`
	Analyze  Analyze  `mapstructure:"analyze"`
	Sweep    Sweep    `mapstructure:"sweep"`
	Report   Report   `mapstructure:"report"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// Distance configures edge generation.
type Distance struct {
	Threshold float64 `mapstructure:"threshold" validate:"gt=0"`
	Dialect   string  `mapstructure:"dialect" validate:"omitempty,oneof=euchr h3k4 h3k4me3"`
	Strategy  string  `mapstructure:"strategy" validate:"omitempty,oneof=auto indexed kdtree bruteforce brute-force brute"`
}

// Analyze configures a single graph analysis.
type Analyze struct {
	Threshold           float64 `mapstructure:"threshold" validate:"gte=0"`
	NodeMode            string  `mapstructure:"node_mode" validate:"required"`
	GenerationThreshold float64 `mapstructure:"generation_threshold" validate:"gte=0"`
	OutDir              string  `mapstructure:"out_dir"`
}

// Sweep configures a multi-threshold analysis.
type Sweep struct {
	Thresholds []string `mapstructure:"thresholds" validate:"dive,numeric"`
	Workers    int      `mapstructure:"workers" validate:"gte=1,lte=256"`
}

// Report configures run artefacts.
type Report struct {
	File            string `mapstructure:"file"`
	MetricsTextfile string `mapstructure:"metrics_textfile"`
}

// ThresholdValues parses Sweep.Thresholds, dropping duplicates and sorting
// ascending.
func (s Sweep) ThresholdValues() ([]float64, error) {
	seen := make(map[float64]bool, len(s.Thresholds))
	out := make([]float64, 0, len(s.Thresholds))
	for _, raw := range s.Thresholds {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || !(v > 0) {
			return nil, fmt.Errorf("%w: threshold %q", ErrInvalidConfig, raw)
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Float64s(out)

	return out, nil
}

// New returns a viper instance carrying the defaults and the environment
// binding. Commands bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("distance.threshold", 5.0)
	v.SetDefault("distance.dialect", "")
	v.SetDefault("distance.strategy", "auto")
	v.SetDefault("analyze.threshold", 0.0)
	v.SetDefault("analyze.node_mode", "leq_thr_endpoints")
	v.SetDefault("analyze.generation_threshold", 0.0)
	v.SetDefault("analyze.out_dir", ".")
	v.SetDefault("sweep.thresholds", []string{"1.5", "1.75", "2.0", "2.25", "2.5"})
	v.SetDefault("sweep.workers", 4)
	v.SetDefault("report.file", "")
	v.SetDefault("report.metrics_textfile", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional YAML file at path into v, decodes and validates.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
