package dieselcmd

import (
	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Command pool bound to a single queue family. Builders created from the pool inherit
// its device and queue family capabilities
type CorePool struct {
	pool    vk.CommandPool
	device  *CoreDevice
	family  QueueFamily
	manager *CommandBufferManager
}

func NewCorePool(device *CoreDevice, family QueueFamily) (*CorePool, error) {
	var cmdPool vk.CommandPool
	ret := vk.CreateCommandPool(device.Handle(), &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: family.Index,
		// ResetCommandBufferBit allows command buffers to be reset individually.
		Flags: vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}, nil, &cmdPool)
	if isError(ret) {
		return nil, errors.Wrap(NewError(ret), "create command pool")
	}
	return WrapPool(device, cmdPool, family), nil
}

// Wraps an externally created command pool
func WrapPool(device *CoreDevice, pool vk.CommandPool, family QueueFamily) *CorePool {
	return &CorePool{
		pool:    pool,
		device:  device,
		family:  family,
		manager: NewCommandBufferManager(device.Handle(), pool),
	}
}

func (c *CorePool) Device() *CoreDevice    { return c.device }
func (c *CorePool) Family() QueueFamily    { return c.family }
func (c *CorePool) Handle() vk.CommandPool { return c.pool }

func (c *CorePool) newNativeEncoder(secondary bool) (*NativeEncoder, error) {
	level := vk.CommandBufferLevelPrimary
	if secondary {
		level = vk.CommandBufferLevelSecondary
	}
	cb, err := c.manager.NewCommandBuffer(level)
	if err != nil {
		return nil, err
	}
	begin := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if secondary {
		begin.PInheritanceInfo = []vk.CommandBufferInheritanceInfo{{
			SType: vk.StructureTypeCommandBufferInheritanceInfo,
		}}
	}
	if ret := vk.BeginCommandBuffer(cb, &begin); isError(ret) {
		c.manager.Recycle(cb, level)
		return nil, errors.Wrap(NewError(ret), "begin command buffer")
	}
	return &NativeEncoder{cb: cb, level: level, recycle: c.manager.Recycle}, nil
}

func (c *CorePool) Destroy() {
	c.manager.Destroy()
	vk.DestroyCommandPool(c.device.Handle(), c.pool, nil)
}
