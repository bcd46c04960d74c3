package dieselcmd

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestCommandBufferManagerResetFailure(t *testing.T) {
	m := NewCommandBufferManager(nil, nil)
	m.reset = func(vk.CommandBuffer) vk.Result { return vk.ErrorOutOfDeviceMemory }
	m.Recycle(nil, vk.CommandBufferLevelPrimary)

	if _, err := m.NewCommandBuffer(vk.CommandBufferLevelPrimary); err == nil {
		t.Fatal("expected the reset error")
	}
	if n := len(m.free[vk.CommandBufferLevelPrimary]); n != 1 {
		t.Fatalf("free list holds %d buffers, want 1", n)
	}

	m.reset = func(vk.CommandBuffer) vk.Result { return vk.Success }
	if _, err := m.NewCommandBuffer(vk.CommandBufferLevelPrimary); err != nil {
		t.Fatal(err)
	}
	if n := len(m.free[vk.CommandBufferLevelPrimary]); n != 0 {
		t.Fatalf("free list holds %d buffers, want 0", n)
	}
}
