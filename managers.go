package dieselcmd

import (
	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// CommandBufferManager allocates command buffers from a pool and recycles the
// ones handed back after execution or abandonment.
// The manager is not thread-safe, use one pool per recording thread.
type CommandBufferManager struct {
	device vk.Device
	pool   vk.CommandPool
	free   map[vk.CommandBufferLevel][]vk.CommandBuffer
	all    []vk.CommandBuffer
	reset  func(vk.CommandBuffer) vk.Result
}

func resetCommandBuffer(buf vk.CommandBuffer) vk.Result {
	return vk.ResetCommandBuffer(buf, vk.CommandBufferResetFlags(vk.CommandBufferResetReleaseResourcesBit))
}

func NewCommandBufferManager(device vk.Device, pool vk.CommandPool) *CommandBufferManager {
	return &CommandBufferManager{
		device: device,
		pool:   pool,
		free:   make(map[vk.CommandBufferLevel][]vk.CommandBuffer, 2),
		reset:  resetCommandBuffer,
	}
}

// NewCommandBuffer returns a fresh or recycled command buffer in the reset state.
func (c *CommandBufferManager) NewCommandBuffer(level vk.CommandBufferLevel) (vk.CommandBuffer, error) {
	if n := len(c.free[level]); n > 0 {
		buf := c.free[level][n-1]
		c.free[level] = c.free[level][:n-1]
		// A buffer that fails to reset stays on the free list, Destroy frees it.
		if ret := c.reset(buf); isError(ret) {
			c.free[level] = append(c.free[level], buf)
			return nil, errors.Wrap(NewError(ret), "reset command buffer")
		}
		return buf, nil
	}
	bufs := make([]vk.CommandBuffer, 1)
	ret := vk.AllocateCommandBuffers(c.device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        c.pool,
		Level:              level,
		CommandBufferCount: 1,
	}, bufs)
	if isError(ret) {
		return nil, errors.Wrap(NewError(ret), "allocate command buffer")
	}
	c.all = append(c.all, bufs[0])
	return bufs[0], nil
}

// Recycle hands a command buffer of the given level back for reuse.
func (c *CommandBufferManager) Recycle(buf vk.CommandBuffer, level vk.CommandBufferLevel) {
	c.free[level] = append(c.free[level], buf)
}

func (c *CommandBufferManager) Destroy() {
	if len(c.all) > 0 {
		vk.FreeCommandBuffers(c.device, c.pool, uint32(len(c.all)), c.all)
	}
	c.all = nil
	c.free = nil
}
