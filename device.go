package dieselcmd

import (
	"github.com/google/uuid"
	vk "github.com/vulkan-go/vulkan"
)

// DeviceID identifies a logical device. Resources and builders compare
// DeviceIDs to detect cross-device use.
type DeviceID uuid.UUID

func (id DeviceID) String() string { return uuid.UUID(id).String() }

// Logical device binding. Device creation and capability enumeration happen outside of this
// package, CoreDevice only carries the identity and limits the command builder needs
type CoreDevice struct {
	id     DeviceID
	handle vk.Device
	name   string
	limits Limits
}

// Wraps an externally created logical device. Zero limits are taken from DefaultLimits()
func WrapDevice(handle vk.Device, name string, limits Limits) *CoreDevice {
	return &CoreDevice{
		id:     DeviceID(uuid.New()),
		handle: handle,
		name:   name,
		limits: limits.withDefaults(),
	}
}

func (d *CoreDevice) ID() DeviceID      { return d.id }
func (d *CoreDevice) Handle() vk.Device { return d.handle }
func (d *CoreDevice) Name() string      { return d.name }
func (d *CoreDevice) Limits() Limits    { return d.limits }

// LimitsFromProperties extracts the command recording limits from physical
// device properties. The properties must have been dereferenced.
func LimitsFromProperties(props *vk.PhysicalDeviceProperties) Limits {
	l := props.Limits
	l.Deref()
	return Limits{
		MaxUpdateSize:     MaxInlineUpdateSize,
		MaxViewports:      l.MaxViewports,
		MaxWorkGroupCount: l.MaxComputeWorkGroupCount,
	}
}
