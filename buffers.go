package dieselcmd

import (
	vk "github.com/vulkan-go/vulkan"
)

// DeviceObject is a resource created on a device with an identity of its own.
type DeviceObject interface {
	Resource
	Object() ObjectID
	Device() DeviceID
}

// Buffer is the view of a device buffer the builder validates against.
type Buffer interface {
	DeviceObject
	Size() uint64
	Usage() vk.BufferUsageFlags
	Handle() vk.Buffer
}

// BufferSlice is a byte range of a buffer.
type BufferSlice struct {
	Buffer Buffer
	Offset uint64
	Size   uint64
}

// Whole returns a slice covering all of buf.
func Whole(buf Buffer) BufferSlice {
	return BufferSlice{Buffer: buf, Size: buf.Size()}
}

// Common part of the wrapped device objects, the shared reference and the identities
type coreObject struct {
	ref    *Ref
	object ObjectID
	device DeviceID
}

func newCoreObject(device *CoreDevice, destroy func()) coreObject {
	return coreObject{ref: NewRef(destroy), object: newObjectID(), device: device.ID()}
}

func (o *coreObject) Retain()          { o.ref.Retain() }
func (o *coreObject) Release()         { o.ref.Release() }
func (o *coreObject) Object() ObjectID { return o.object }
func (o *coreObject) Device() DeviceID { return o.device }

// Live reports whether the underlying handle is still alive.
func (o *coreObject) Live() bool { return o.ref.Live() }

// shared returns a second owner of the same object.
func (o *coreObject) shared() coreObject {
	o.ref.Retain()
	return *o
}

// Device buffer wrapper. The vulkan buffer is destroyed when the last reference is released,
// memory binding is owned by the caller
type CoreBuffer struct {
	coreObject
	buffer vk.Buffer
	size   uint64
	usage  vk.BufferUsageFlags
	name   string
}

// Wraps an externally created buffer. The returned wrapper holds the only reference
func WrapBuffer(device *CoreDevice, handle vk.Buffer, size uint64, usage vk.BufferUsageFlags, name string) *CoreBuffer {
	dev := device.Handle()
	return &CoreBuffer{
		coreObject: newCoreObject(device, func() {
			if handle != vk.NullBuffer {
				vk.DestroyBuffer(dev, handle, nil)
			}
		}),
		buffer: handle,
		size:   size,
		usage:  usage,
		name:   name,
	}
}

// Creates a buffer of bytes_size with the given usage. Memory must be bound by the caller
func NewCoreBuffer(device *CoreDevice, bytes_size uint64, usage vk.BufferUsageFlags, name string) (*CoreBuffer, error) {
	var buffer vk.Buffer
	ret := vk.CreateBuffer(device.Handle(), &vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(bytes_size),
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}, nil, &buffer)
	if isError(ret) {
		return nil, NewError(ret)
	}
	return WrapBuffer(device, buffer, bytes_size, usage, name), nil
}

// Share returns another owner of the same buffer object, e.g. to hand the
// buffer to a second subsystem. Both wrappers report the same Object.
func (b *CoreBuffer) Share() *CoreBuffer {
	c := *b
	c.coreObject = b.shared()
	return &c
}

func (b *CoreBuffer) Size() uint64               { return b.size }
func (b *CoreBuffer) Usage() vk.BufferUsageFlags { return b.usage }
func (b *CoreBuffer) Handle() vk.Buffer          { return b.buffer }
func (b *CoreBuffer) Name() string               { return b.name }

func (b *CoreBuffer) Slice(offset, size uint64) BufferSlice {
	return BufferSlice{Buffer: b, Offset: offset, Size: size}
}

func hasBufferUsage(buf Buffer, bit vk.BufferUsageFlagBits) bool {
	return buf.Usage()&vk.BufferUsageFlags(bit) == vk.BufferUsageFlags(bit)
}
