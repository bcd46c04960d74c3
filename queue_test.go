package dieselcmd

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestQueueFamilies(t *testing.T) {
	q := NewCoreQueueFromProperties([]vk.QueueFamilyProperties{
		{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit), QueueCount: 1},
		{QueueFlags: vk.QueueFlags(vk.QueueComputeBit), QueueCount: 2},
		{QueueFlags: vk.QueueFlags(vk.QueueTransferBit), QueueCount: 1},
	})
	if len(q.Families()) != 3 {
		t.Fatalf("families %v", q.Families())
	}
	if fam, ok := q.FindSuitableQueue(vk.QueueFlags(vk.QueueComputeBit)); !ok || fam.Index != 0 {
		t.Fatalf("compute family %v %v", fam, ok)
	}
	if fam, ok := q.FindTransferQueue(); !ok || fam.Index != 2 {
		t.Fatalf("transfer family %v %v", fam, ok)
	}
	if _, ok := q.FindSuitableQueue(vk.QueueFlags(vk.QueueSparseBindingBit)); ok {
		t.Fatal("found a sparse family")
	}
	compute := q.Families()[1]
	if compute.SupportsGraphics() || !compute.SupportsCompute() || !compute.SupportsTransfer() {
		t.Fatalf("capabilities of %v", compute)
	}
}
