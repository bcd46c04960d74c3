package dieselcmd

import (
	"io"
	"log"
	"os"

	"github.com/cockroachdb/errors"
)

// Base command recording core. Holds the device binding, the configuration and the
// info/warn/error loggers shared by every pool and builder created from it.
// Recoverable builder errors are returned to callers and never logged here
type BaseCore struct {
	name      string
	device    *CoreDevice
	config    Config
	info_log  *log.Logger
	warn_log  *log.Logger
	error_log *log.Logger
	files     []*os.File
}

// Instantiates a new core for the device. The device limits are narrowed by the configured limits
func NewBaseCore(device *CoreDevice, config Config) (*BaseCore, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	var core BaseCore
	core.name = config.Name
	core.device = device
	core.config = config

	var err error
	if core.info_log, err = core.openLog(config.Logs.Info, "INFO: "); err != nil {
		return nil, err
	}
	if core.warn_log, err = core.openLog(config.Logs.Warn, "WARNING: "); err != nil {
		core.Destroy()
		return nil, err
	}
	if core.error_log, err = core.openLog(config.Logs.Error, "ERROR: "); err != nil {
		core.Destroy()
		return nil, err
	}
	return &core, nil
}

func (core *BaseCore) openLog(path string, prefix string) (*log.Logger, error) {
	if path == "" {
		return log.New(io.Discard, prefix, 0), nil
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, errors.Wrapf(err, "open log %s", path)
	}
	core.files = append(core.files, file)
	return log.New(file, prefix, log.Ldate|log.Ltime|log.Lshortfile), nil
}

func (core *BaseCore) Device() *CoreDevice { return core.device }
func (core *BaseCore) Config() Config      { return core.config }

// Effective limits, the device limits narrowed by the non-zero configured limits
func (core *BaseCore) Limits() Limits {
	out := core.device.Limits()
	cfg := core.config.Limits
	if cfg.MaxUpdateSize != 0 && cfg.MaxUpdateSize < out.MaxUpdateSize {
		out.MaxUpdateSize = cfg.MaxUpdateSize
	}
	if cfg.MaxViewports != 0 && cfg.MaxViewports < out.MaxViewports {
		out.MaxViewports = cfg.MaxViewports
	}
	for i, n := range cfg.MaxWorkGroupCount {
		if n != 0 && n < out.MaxWorkGroupCount[i] {
			out.MaxWorkGroupCount[i] = n
		}
	}
	return out
}

// NewBuilder creates a builder recording through enc. The builder takes
// exclusive ownership of enc.
func (core *BaseCore) NewBuilder(pool *CorePool, enc Encoder, secondary bool) *Builder {
	if pool.device.ID() != core.device.ID() {
		contractViolation("pool of device %s used with core of device %s", pool.device.ID(), core.device.ID())
	}
	b := newBuilder(core, pool, enc, secondary)
	core.info_log.Printf("%s: builder %s created on queue family %d (secondary=%t)", core.name, b.id, pool.family.Index, secondary)
	return b
}

// NewNativeBuilder allocates a vulkan command buffer from the pool, begins it
// and returns a builder recording into it.
func (core *BaseCore) NewNativeBuilder(pool *CorePool, secondary bool) (*Builder, error) {
	enc, err := pool.newNativeEncoder(secondary)
	if err != nil {
		core.error_log.Print(err)
		return nil, err
	}
	return core.NewBuilder(pool, enc, secondary), nil
}

// Closes the log files opened by the core
func (core *BaseCore) Destroy() {
	for _, f := range core.files {
		f.Close()
	}
	core.files = nil
}
