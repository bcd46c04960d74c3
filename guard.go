package dieselcmd

import (
	vk "github.com/vulkan-go/vulkan"
)

// mustSameDevice panics when any object was created on another device than
// the builder's. Mixing devices is never a legitimate runtime state.
func (b *Builder) mustSameDevice(objs ...DeviceObject) {
	want := b.device.ID()
	for _, o := range objs {
		if got := o.Device(); got != want {
			contractViolation("object %s belongs to device %s, builder records for device %s", o.Object(), got, want)
		}
	}
}

func (b *Builder) withinRenderPass() bool { return b.state.WithinRenderPass }

func (b *Builder) family() QueueFamily { return b.pool.family }

func transferSrc(buf Buffer) bool { return hasBufferUsage(buf, vk.BufferUsageTransferSrcBit) }
func transferDst(buf Buffer) bool { return hasBufferUsage(buf, vk.BufferUsageTransferDstBit) }

// supportsBindPoint reports whether the pool's queue family can execute
// pipelines bound at point.
func supportsBindPoint(q QueueFamily, point BindPoint) bool {
	if point == BindCompute {
		return q.SupportsCompute()
	}
	return q.SupportsGraphics()
}

// inExtent reports whether rect lies inside extent, with overflow checked.
func inExtent(rect Rect, extent vk.Extent2D) bool {
	if rect.X < 0 || rect.Y < 0 {
		return false
	}
	if _, ok := end(uint64(rect.X), uint64(rect.Width), uint64(extent.Width)); !ok {
		return false
	}
	_, ok := end(uint64(rect.Y), uint64(rect.Height), uint64(extent.Height))
	return ok
}
