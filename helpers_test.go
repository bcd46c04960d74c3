package dieselcmd

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

// command is one call seen by recorder.
type command struct {
	name string
	args []interface{}
}

// recorder is an Encoder keeping every call in order, standing in for a
// native command buffer.
type recorder struct {
	cmds  []command
	ended bool
	freed int
	err   error
}

func (r *recorder) add(name string, args ...interface{}) {
	r.cmds = append(r.cmds, command{name: name, args: args})
}

func (r *recorder) names() []string {
	out := make([]string, len(r.cmds))
	for i, c := range r.cmds {
		out[i] = c.name
	}
	return out
}

func (r *recorder) CopyBuffer(src, dst Buffer, regions []BufferCopy) {
	r.add("copy", src, dst, regions)
}
func (r *recorder) FillBuffer(dst Buffer, offset, size uint64, data uint32) {
	r.add("fill", dst, offset, size, data)
}
func (r *recorder) UpdateBuffer(dst Buffer, offset uint64, data []byte) {
	r.add("update", dst, offset, data)
}
func (r *recorder) BindPipeline(p Pipeline) { r.add("bind_pipeline", p) }
func (r *recorder) BindDescriptorSets(point BindPoint, layout vk.PipelineLayout, first uint32, sets []DescriptorSet, dynamicOffsets []uint32) {
	r.add("bind_sets", point, first, sets, dynamicOffsets)
}
func (r *recorder) BindVertexBuffers(first uint32, bufs []Buffer, offsets []uint64) {
	r.add("bind_vertex", first, bufs, offsets)
}
func (r *recorder) BindIndexBuffer(buf Buffer, offset uint64, typ IndexType) {
	r.add("bind_index", buf, offset, typ)
}
func (r *recorder) SetViewport(first uint32, vps []Viewport) { r.add("viewport", first, vps) }
func (r *recorder) SetScissor(first uint32, rects []Rect)    { r.add("scissor", first, rects) }
func (r *recorder) SetLineWidth(width float32)               { r.add("line_width", width) }
func (r *recorder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	r.add("draw", vertexCount, instanceCount, firstVertex, firstInstance)
}
func (r *recorder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	r.add("draw_indexed", indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
}
func (r *recorder) Dispatch(x, y, z uint32) { r.add("dispatch", x, y, z) }
func (r *recorder) BeginRenderPass(pass RenderPass, fb Framebuffer, area Rect, clear []ClearValue) {
	r.add("begin_pass", pass, fb, area, clear)
}
func (r *recorder) NextSubpass()   { r.add("next_subpass") }
func (r *recorder) EndRenderPass() { r.add("end_pass") }
func (r *recorder) ClearAttachments(atts []ClearAttachment, rects []ClearRect) {
	r.add("clear", atts, rects)
}
func (r *recorder) End() error {
	r.ended = true
	return r.err
}
func (r *recorder) Free()                    { r.freed++ }
func (r *recorder) Handle() vk.CommandBuffer { return nil }

const allQueues = vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit)

type fixture struct {
	t      *testing.T
	device *CoreDevice
	core   *BaseCore
	pool   *CorePool
	enc    *recorder
	b      *Builder
}

func newFixture(t *testing.T, flags vk.QueueFlags) *fixture {
	t.Helper()
	return newFixtureConfig(t, flags, DefaultConfig())
}

func newFixtureConfig(t *testing.T, flags vk.QueueFlags, cfg Config) *fixture {
	t.Helper()
	return newFixtureDevice(t, WrapDevice(nil, "test", Limits{MaxViewports: 4}), flags, cfg)
}

func newFixtureDevice(t *testing.T, device *CoreDevice, flags vk.QueueFlags, cfg Config) *fixture {
	t.Helper()
	core, err := NewBaseCore(device, cfg)
	if err != nil {
		t.Fatalf("NewBaseCore: %v", err)
	}
	t.Cleanup(core.Destroy)
	f := &fixture{t: t, device: device, core: core, enc: &recorder{}}
	f.pool = WrapPool(device, vk.NullCommandPool, QueueFamily{Index: 0, Flags: flags})
	f.b = core.NewBuilder(f.pool, f.enc, false)
	return f
}

func (f *fixture) buffer(size uint64, usage vk.BufferUsageFlagBits) *CoreBuffer {
	return WrapBuffer(f.device, vk.NullBuffer, size, vk.BufferUsageFlags(usage), "buf")
}

func (f *fixture) transferBuffer(size uint64) *CoreBuffer {
	return f.buffer(size, vk.BufferUsageTransferSrcBit|vk.BufferUsageTransferDstBit)
}

func (f *fixture) renderTarget(width, height uint32, attachments, subpasses int) (*CoreRenderPass, *CoreFramebuffer) {
	pass := WrapRenderPass(f.device, vk.NullRenderPass, attachments, subpasses)
	views := make([]Image, attachments)
	for i := range views {
		views[i] = WrapImageView(f.device, vk.NullImageView, width, height, vk.ImageAspectFlags(vk.ImageAspectColorBit))
	}
	fb := WrapFramebuffer(f.device, vk.NullFramebuffer, pass, views, width, height, 1)
	return pass, fb
}

// beginPass opens a single subpass render pass over a 64x64 target.
func (f *fixture) beginPass() {
	f.t.Helper()
	pass, fb := f.renderTarget(64, 64, 1, 1)
	if err := f.b.BeginRenderPass(pass, fb, Rect{Width: 64, Height: 64}, nil); err != nil {
		f.t.Fatalf("BeginRenderPass: %v", err)
	}
}

func mustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
}
