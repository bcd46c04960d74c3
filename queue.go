package dieselcmd

import (
	vk "github.com/vulkan-go/vulkan"
)

// Queue family index and the operation categories its queues support
type QueueFamily struct {
	Index uint32
	Flags vk.QueueFlags
}

func (q QueueFamily) has(bit vk.QueueFlagBits) bool {
	return q.Flags&vk.QueueFlags(bit) == vk.QueueFlags(bit)
}

func (q QueueFamily) SupportsGraphics() bool { return q.has(vk.QueueGraphicsBit) }
func (q QueueFamily) SupportsCompute() bool  { return q.has(vk.QueueComputeBit) }

// SupportsTransfer reports transfer support. Graphics and compute queues
// support transfer implicitly.
func (q QueueFamily) SupportsTransfer() bool {
	return q.has(vk.QueueTransferBit) || q.SupportsGraphics() || q.SupportsCompute()
}

// Device Queue families, constructed from the physical device properties
type CoreQueue struct {
	families []QueueFamily
}

// List queue families available for a physical device
func NewCoreQueue(gpu vk.PhysicalDevice) *CoreQueue {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, nil)
	if count == 0 {
		return nil
	}
	properties := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, properties)
	return NewCoreQueueFromProperties(properties)
}

func NewCoreQueueFromProperties(properties []vk.QueueFamilyProperties) *CoreQueue {
	var q CoreQueue
	q.families = make([]QueueFamily, len(properties))
	for index := range properties {
		props := properties[index]
		props.Deref()
		q.families[index] = QueueFamily{Index: uint32(index), Flags: props.QueueFlags}
	}
	return &q
}

func (q *CoreQueue) Families() []QueueFamily {
	out := make([]QueueFamily, len(q.families))
	copy(out, q.families)
	return out
}

// Finds the first family supporting every bit in flag_bits
func (q *CoreQueue) FindSuitableQueue(flag_bits vk.QueueFlags) (QueueFamily, bool) {
	for _, family := range q.families {
		if family.Flags&flag_bits == flag_bits {
			return family, true
		}
	}
	return QueueFamily{}, false
}

// Finds a transfer capable family without graphics support, falling back to any transfer capable family
func (q *CoreQueue) FindTransferQueue() (QueueFamily, bool) {
	for _, family := range q.families {
		if family.has(vk.QueueTransferBit) && !family.SupportsGraphics() {
			return family, true
		}
	}
	for _, family := range q.families {
		if family.SupportsTransfer() {
			return family, true
		}
	}
	return QueueFamily{}, false
}
