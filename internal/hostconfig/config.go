// Package hostconfig loads the judge host's YAML settings file, grounded
// on the teacher's internal/cli/config.Load: read the file, unmarshal with
// yaml.v3, then apply defaults for anything left zero.
package hostconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fouguai/judgecore/internal/model"
)

const (
	DefaultThreadCount      = 1
	DefaultTimeLimitSeconds = 2.0
	DefaultMemoryLimitMB    = 256
	DefaultGlobalIOMode     = "auto"
)

// ProblemOverride is the per-problem settings override, all fields
// optional (zero value means "use global").
type ProblemOverride struct {
	TimeLimitSeconds float64 `yaml:"time_limit"`
	MemoryLimitMB    int     `yaml:"memory_limit"`
	IOMode           string  `yaml:"io_mode"`
}

// Config is the judge host's settings schema, per §6.
type Config struct {
	ThreadCount      int                        `yaml:"thread_count"`
	GlobalTimeLimit  float64                    `yaml:"global_time_limit"`
	GlobalMemoryMB   int                        `yaml:"global_memory_limit"`
	GlobalIOMode     string                     `yaml:"global_io_mode"`
	ContestantsRoot  string                     `yaml:"contestants_root"`
	ProblemsRoot     string                     `yaml:"problems_root"`
	ProblemOverrides map[string]ProblemOverride `yaml:"problem_overrides"`
}

// Load reads and parses the config file at path, applying defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ThreadCount <= 0 {
		cfg.ThreadCount = DefaultThreadCount
	}
	if cfg.GlobalTimeLimit <= 0 {
		cfg.GlobalTimeLimit = DefaultTimeLimitSeconds
	}
	if cfg.GlobalMemoryMB <= 0 {
		cfg.GlobalMemoryMB = DefaultMemoryLimitMB
	}
	if cfg.GlobalIOMode == "" {
		cfg.GlobalIOMode = DefaultGlobalIOMode
	}
}

// GlobalSettings converts the parsed global fields into a ProblemSettings
// value usable as the base for ResolveSettings.
func (c Config) GlobalSettings() model.ProblemSettings {
	return model.ProblemSettings{
		TimeLimitSeconds: c.GlobalTimeLimit,
		MemoryLimitMB:    c.GlobalMemoryMB,
		IOMode:           model.ParseIOMode(c.GlobalIOMode),
	}
}

// OverrideFor looks up a problem's override, if any, as a *ProblemSettings
// suitable for ResolveSettings.
func (c Config) OverrideFor(problemID string) *model.ProblemSettings {
	o, ok := c.ProblemOverrides[problemID]
	if !ok {
		return nil
	}
	ioMode := model.IOModeUnset
	if o.IOMode != "" {
		ioMode = model.ParseIOMode(o.IOMode)
	}
	settings := model.ProblemSettings{
		TimeLimitSeconds: o.TimeLimitSeconds,
		MemoryLimitMB:    o.MemoryLimitMB,
		IOMode:           ioMode,
	}
	return &settings
}
