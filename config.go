package dieselcmd

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// MaxInlineUpdateSize is the largest region UpdateBuffer accepts, in bytes.
const MaxInlineUpdateSize = 65536

// Limits bounds the values the builder accepts. In a device, zero fields mean
// "use the default"; in a Config they mean "no further restriction".
type Limits struct {
	MaxUpdateSize     uint64    `yaml:"max_update_size"`
	MaxViewports      uint32    `yaml:"max_viewports"`
	MaxWorkGroupCount [3]uint32 `yaml:"max_work_group_count,flow"`
}

// DefaultLimits returns the minimum limits every Vulkan implementation guarantees.
func DefaultLimits() Limits {
	return Limits{
		MaxUpdateSize:     MaxInlineUpdateSize,
		MaxViewports:      1,
		MaxWorkGroupCount: [3]uint32{65535, 65535, 65535},
	}
}

func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.MaxUpdateSize == 0 || l.MaxUpdateSize > MaxInlineUpdateSize {
		l.MaxUpdateSize = def.MaxUpdateSize
	}
	if l.MaxViewports == 0 {
		l.MaxViewports = def.MaxViewports
	}
	for i := range l.MaxWorkGroupCount {
		if l.MaxWorkGroupCount[i] == 0 {
			l.MaxWorkGroupCount[i] = def.MaxWorkGroupCount[i]
		}
	}
	return l
}

// Log file destinations. Empty paths discard the corresponding log
type LogConfig struct {
	Info  string `yaml:"info"`
	Warn  string `yaml:"warn"`
	Error string `yaml:"error"`
}

// Core configuration, normally read from a YAML document:
//
//	name: Render
//	elide_redundant_state: true
//	logs:
//	  info: info_log.txt
//	limits:
//	  max_update_size: 65536
//	  max_viewports: 16
type Config struct {
	Name                string    `yaml:"name"`
	Logs                LogConfig `yaml:"logs"`
	Limits              Limits    `yaml:"limits"`
	ElideRedundantState bool      `yaml:"elide_redundant_state"`
}

func DefaultConfig() Config {
	return Config{
		Name:                "dieselcmd",
		ElideRedundantState: true,
	}
}

// ParseConfig decodes a YAML document on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	return ParseConfig(data)
}

func (c Config) Validate() error {
	if c.Limits.MaxUpdateSize > MaxInlineUpdateSize {
		return errors.Newf("config: max_update_size %d exceeds %d", c.Limits.MaxUpdateSize, MaxInlineUpdateSize)
	}
	if c.Limits.MaxUpdateSize%4 != 0 {
		return errors.Newf("config: max_update_size %d is not a multiple of 4", c.Limits.MaxUpdateSize)
	}
	return nil
}
