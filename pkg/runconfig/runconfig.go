package runconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/cuemby/swanling/pkg/types"
	"gopkg.in/yaml.v3"
)

// Config is a run's full configuration, loaded from YAML.
type Config struct {
	Host      string  `yaml:"host"`
	Users     int     `yaml:"users"`
	HatchRate float64 `yaml:"hatch_rate"`
	RunTime   string  `yaml:"run_time"`

	CoMitigation string `yaml:"co_mitigation"`
	RequestLog   string `yaml:"request_log"`
	SwanlingLog  string `yaml:"swanling_log"`
	Verbose      bool   `yaml:"verbose"`
	ReportFile   string `yaml:"report_file"`
}

// Default returns a Config with sane zero-value-safe defaults: one user,
// a 1/s hatch rate, co-mitigation disabled, running until stopped.
func Default() Config {
	return Config{
		Users:        1,
		HatchRate:    1,
		CoMitigation: "disabled",
	}
}

// Load reads and parses the YAML file at path, filling in Default()'s
// values for anything the file leaves unset. A field the file sets
// explicitly, even to a zero value, replaces the default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports a configuration error without touching the
// filesystem or network — callers use this for flag-sourced configs too.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("runconfig: host is required")
	}
	if c.Users < 1 {
		return fmt.Errorf("runconfig: users must be >= 1, got %d", c.Users)
	}
	if _, ok := cadencePolicies[c.CoMitigation]; !ok {
		return fmt.Errorf("runconfig: co_mitigation %q is not one of disabled|average|minimum|maximum", c.CoMitigation)
	}
	if c.RunTime != "" {
		if _, err := time.ParseDuration(c.RunTime); err != nil {
			return fmt.Errorf("runconfig: invalid run_time %q: %w", c.RunTime, err)
		}
	}
	return nil
}

var cadencePolicies = map[string]types.CadencePolicy{
	"disabled": types.CadenceDisabled,
	"average":  types.CadenceAverage,
	"minimum":  types.CadenceMinimum,
	"maximum":  types.CadenceMaximum,
}

// CadencePolicy maps CoMitigation to the cadence package's policy type.
// Validate must have already confirmed CoMitigation is a known value.
func (c Config) CadencePolicy() types.CadencePolicy {
	return cadencePolicies[c.CoMitigation]
}

// RunTimeDuration parses RunTime, returning 0 (run until stopped) if it
// is unset.
func (c Config) RunTimeDuration() (time.Duration, error) {
	if c.RunTime == "" {
		return 0, nil
	}
	return time.ParseDuration(c.RunTime)
}
