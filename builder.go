package dieselcmd

import (
	"sync"

	"github.com/google/uuid"
	vk "github.com/vulkan-go/vulkan"
)

// Builder records commands for one device and one command pool.
//
// Every append either succeeds completely, recording exactly one native
// command (or none for a legal no-op) and retaining the resources it uses, or
// returns an error and leaves the builder untouched. A Builder is not safe for
// concurrent use.
type Builder struct {
	id     uuid.UUID
	core   *BaseCore
	device *CoreDevice
	pool   *CorePool
	enc    Encoder
	limits Limits
	elide  bool

	keep  keepAlive
	state State

	graphics    Pipeline
	compute     Pipeline
	pass        RenderPass
	framebuffer Framebuffer
	recorded    int
	consumed    bool
}

func newBuilder(core *BaseCore, pool *CorePool, enc Encoder, secondary bool) *Builder {
	return &Builder{
		id:     uuid.New(),
		core:   core,
		device: pool.device,
		pool:   pool,
		enc:    enc,
		limits: core.Limits(),
		elide:  core.config.ElideRedundantState,
		state:  State{Secondary: secondary},
	}
}

func (b *Builder) ID() uuid.UUID         { return b.id }
func (b *Builder) Device() *CoreDevice   { return b.device }
func (b *Builder) Pool() *CorePool       { return b.pool }
func (b *Builder) Secondary() bool       { return b.state.Secondary }
func (b *Builder) KeepAliveLen() int     { return b.keep.len() }
func (b *Builder) RecordedCommands() int { return b.recorded }

// State returns a copy of the current recording state.
func (b *Builder) State() State {
	s := b.state
	s.Dynamic = b.state.Dynamic.clone()
	return s
}

// commit retains res and counts one recorded command. It must only be called
// once every check of the append has passed.
func (b *Builder) commit(res ...Resource) {
	b.keep.push(res...)
	b.recorded++
}

// CopyBuffer records a copy of regions from src to dst. Zero sized regions
// are skipped; if none remain nothing is recorded.
//
// It panics if a buffer belongs to another device.
func (b *Builder) CopyBuffer(src, dst Buffer, regions []BufferCopy) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if b.withinRenderPass() {
		return CopyForbiddenWithinRenderPass
	}
	b.mustSameDevice(src, dst)
	if !transferSrc(src) || !transferDst(dst) {
		return CopyWrongUsageFlag
	}
	valid, err := ValidateCopyRegions(src.Size(), dst.Size(), src.Object() == dst.Object(), regions)
	if err != nil {
		return err
	}
	if len(valid) == 0 {
		return nil
	}
	b.commit(src, dst)
	b.enc.CopyBuffer(src, dst, valid)
	return nil
}

// FillBuffer records a fill of dst with repeated copies of data. Offset and
// size must be multiples of 4. An empty slice records nothing.
//
// It panics if the buffer belongs to another device.
func (b *Builder) FillBuffer(dst BufferSlice, data uint32) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if b.withinRenderPass() {
		return FillForbiddenWithinRenderPass
	}
	b.mustSameDevice(dst.Buffer)
	if !transferDst(dst.Buffer) {
		return FillWrongUsageFlag
	}
	if err := ValidateFillRegion(dst.Buffer.Size(), dst.Offset, dst.Size); err != nil {
		return err
	}
	if dst.Size == 0 {
		return nil
	}
	if q := b.family(); !q.SupportsGraphics() && !q.SupportsCompute() {
		return FillNotSupportedByQueueFamily
	}
	b.commit(dst.Buffer)
	b.enc.FillBuffer(dst.Buffer, dst.Offset, dst.Size, data)
	return nil
}

// UpdateBuffer records an inline write of data into dst. Only the first
// dst.Size bytes of data are used; a shorter data slice is an error.
//
// It panics if the buffer belongs to another device.
func (b *Builder) UpdateBuffer(dst BufferSlice, data []byte) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if b.withinRenderPass() {
		return &BufferUpdateError{Kind: UpdateForbiddenWithinRenderPass}
	}
	b.mustSameDevice(dst.Buffer)
	if !transferDst(dst.Buffer) {
		return &BufferUpdateError{Kind: UpdateWrongUsageFlag}
	}
	err := ValidateUpdateRegion(dst.Buffer.Size(), dst.Offset, dst.Size, len(data), b.limits.MaxUpdateSize)
	if err != nil {
		return err
	}
	if dst.Size == 0 {
		return nil
	}
	// Encoders may hold on to the bytes until End.
	inline := make([]byte, dst.Size)
	copy(inline, data)
	b.commit(dst.Buffer)
	b.enc.UpdateBuffer(dst.Buffer, dst.Offset, inline)
	return nil
}

// CommandBuffer is a finished command sequence together with the resources
// it uses. The caller keeps it until execution completed and then calls
// Release.
type CommandBuffer struct {
	id       uuid.UUID
	enc      Encoder
	keep     []Resource
	commands int
	once     sync.Once
}

func (c *CommandBuffer) ID() uuid.UUID            { return c.id }
func (c *CommandBuffer) Handle() vk.CommandBuffer { return c.enc.Handle() }
func (c *CommandBuffer) Commands() int            { return c.commands }

// Resources returns the resources kept alive by the command buffer, in the
// order they were first used.
func (c *CommandBuffer) Resources() []Resource {
	out := make([]Resource, len(c.keep))
	copy(out, c.keep)
	return out
}

// Release drops every kept resource and gives the native command buffer back
// to its pool. Calls after the first have no effect.
func (c *CommandBuffer) Release() {
	c.once.Do(func() {
		k := keepAlive{list: c.keep}
		k.releaseAll()
		c.keep = nil
		c.enc.Free()
	})
}

// Build finishes recording and returns the command buffer. The builder can't
// be used afterwards.
func (b *Builder) Build() (*CommandBuffer, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	if b.state.WithinRenderPass {
		return nil, ErrRenderPassNotEnded
	}
	if err := b.enc.End(); err != nil {
		b.core.error_log.Printf("builder %s: %v", b.id, err)
		return nil, err
	}
	b.consumed = true
	cb := &CommandBuffer{
		id:       b.id,
		enc:      b.enc,
		keep:     b.keep.list,
		commands: b.recorded,
	}
	b.keep = keepAlive{}
	b.core.info_log.Printf("builder %s: built %d commands keeping %d resources", b.id, cb.commands, len(cb.keep))
	return cb, nil
}

// Discard abandons the builder, releasing everything it retained. It is safe
// to call at any time, including after Build, where it has no effect.
func (b *Builder) Discard() {
	if b.consumed {
		return
	}
	b.consumed = true
	b.keep.releaseAll()
	b.enc.Free()
	b.core.info_log.Printf("builder %s: discarded after %d commands", b.id, b.recorded)
}
