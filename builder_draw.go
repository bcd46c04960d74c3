package dieselcmd

import (
	vk "github.com/vulkan-go/vulkan"
)

// BindPipeline binds p at its bind point. Binding a graphics pipeline drops
// the dynamic states the pipeline declares static, since their values become
// undefined. Rebinding the current pipeline records nothing when redundant
// state elision is enabled.
//
// It panics if the pipeline belongs to another device.
func (b *Builder) BindPipeline(p Pipeline) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	b.mustSameDevice(p)
	point := p.BindPoint()
	if !supportsBindPoint(b.family(), point) {
		return BindNotSupportedByQueueFamily
	}
	current := &b.state.GraphicsPipeline
	if point == BindCompute {
		current = &b.state.ComputePipeline
	}
	if b.elide && *current == p.Object() {
		return nil
	}

	b.commit(p)
	*current = p.Object()
	if point == BindCompute {
		b.compute = p
	} else {
		b.graphics = p
		dyn := p.Dynamic()
		if dyn&DynamicViewport == 0 {
			b.state.Dynamic.Viewports = nil
		}
		if dyn&DynamicScissor == 0 {
			b.state.Dynamic.Scissors = nil
		}
		if dyn&DynamicLineWidth == 0 {
			b.state.Dynamic.LineWidth, b.state.Dynamic.LineWidthSet = 0, false
		}
	}
	b.enc.BindPipeline(p)
	return nil
}

// BindDescriptorSets binds sets starting at set number first, using the
// layout of the pipeline currently bound at point.
//
// It panics if a set belongs to another device.
func (b *Builder) BindDescriptorSets(point BindPoint, first uint32, sets []DescriptorSet, dynamicOffsets []uint32) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	p := b.graphics
	if point == BindCompute {
		p = b.compute
	}
	if p == nil {
		return BindNoPipelineBound
	}
	objs := make([]DeviceObject, len(sets))
	res := make([]Resource, len(sets))
	for i, s := range sets {
		objs[i], res[i] = s, s
	}
	b.mustSameDevice(objs...)
	if len(sets) == 0 {
		return nil
	}
	b.commit(res...)
	b.enc.BindDescriptorSets(point, p.Layout(), first, sets, dynamicOffsets)
	return nil
}

// BindVertexBuffers binds bufs to the vertex input bindings starting at
// first. offsets holds one byte offset per buffer.
//
// It panics if a buffer belongs to another device.
func (b *Builder) BindVertexBuffers(first uint32, bufs []Buffer, offsets []uint64) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if len(bufs) != len(offsets) {
		return BindCountMismatch
	}
	if !b.family().SupportsGraphics() {
		return BindNotSupportedByQueueFamily
	}
	objs := make([]DeviceObject, len(bufs))
	res := make([]Resource, len(bufs))
	for i, buf := range bufs {
		objs[i], res[i] = buf, buf
	}
	b.mustSameDevice(objs...)
	for i, buf := range bufs {
		if !hasBufferUsage(buf, vk.BufferUsageVertexBufferBit) {
			return BindWrongUsageFlag
		}
		if offsets[i] >= buf.Size() {
			return BindOutOfRange
		}
	}
	if len(bufs) == 0 {
		return nil
	}
	b.commit(res...)
	b.enc.BindVertexBuffers(first, bufs, offsets)
	return nil
}

// BindIndexBuffer binds buf as index buffer. offset must be a multiple of the
// index size.
//
// It panics if the buffer belongs to another device.
func (b *Builder) BindIndexBuffer(buf Buffer, offset uint64, typ IndexType) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if !b.family().SupportsGraphics() {
		return BindNotSupportedByQueueFamily
	}
	b.mustSameDevice(buf)
	if !hasBufferUsage(buf, vk.BufferUsageIndexBufferBit) {
		return BindWrongUsageFlag
	}
	if offset%typ.Size() != 0 {
		return BindWrongAlignment
	}
	if offset >= buf.Size() {
		return BindOutOfRange
	}
	b.commit(buf)
	b.state.IndexBound = true
	b.enc.BindIndexBuffer(buf, offset, typ)
	return nil
}

func (b *Builder) checkDynamicCount(first uint32, n int) error {
	if n == 0 {
		return &DynamicStateError{Kind: DynamicEmpty}
	}
	if last := uint64(first) + uint64(n); last > uint64(b.limits.MaxViewports) {
		return &DynamicStateError{Kind: DynamicTooMany, Requested: last, Max: uint64(b.limits.MaxViewports)}
	}
	return nil
}

// SetViewport sets the viewports starting at index first.
func (b *Builder) SetViewport(first uint32, vps []Viewport) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if err := b.checkDynamicCount(first, len(vps)); err != nil {
		return err
	}
	cur := b.state.Dynamic.Viewports
	if b.elide && cur != nil {
		same := true
		for i, v := range vps {
			if old, ok := cur[first+uint32(i)]; !ok || old != v {
				same = false
				break
			}
		}
		if same {
			return nil
		}
	}
	if cur == nil {
		cur = make(map[uint32]Viewport, len(vps))
		b.state.Dynamic.Viewports = cur
	}
	for i, v := range vps {
		cur[first+uint32(i)] = v
	}
	b.commit()
	b.enc.SetViewport(first, vps)
	return nil
}

// SetScissor sets the scissor rectangles starting at index first.
func (b *Builder) SetScissor(first uint32, rects []Rect) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if err := b.checkDynamicCount(first, len(rects)); err != nil {
		return err
	}
	cur := b.state.Dynamic.Scissors
	if b.elide && cur != nil {
		same := true
		for i, r := range rects {
			if old, ok := cur[first+uint32(i)]; !ok || old != r {
				same = false
				break
			}
		}
		if same {
			return nil
		}
	}
	if cur == nil {
		cur = make(map[uint32]Rect, len(rects))
		b.state.Dynamic.Scissors = cur
	}
	for i, r := range rects {
		cur[first+uint32(i)] = r
	}
	b.commit()
	b.enc.SetScissor(first, rects)
	return nil
}

func (b *Builder) SetLineWidth(width float32) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if !(width > 0) {
		return &DynamicStateError{Kind: DynamicInvalidLineWidth}
	}
	d := &b.state.Dynamic
	if b.elide && d.LineWidthSet && d.LineWidth == width {
		return nil
	}
	d.LineWidth, d.LineWidthSet = width, true
	b.commit()
	b.enc.SetLineWidth(width)
	return nil
}

func (b *Builder) checkDraw() error {
	if !b.withinRenderPass() {
		return DrawForbiddenOutsideRenderPass
	}
	if b.graphics == nil {
		return DrawNoPipelineBound
	}
	if !b.state.Dynamic.satisfies(b.graphics.Dynamic()) {
		return DrawDynamicStateNotSet
	}
	return nil
}

// Draw records a non-indexed draw. Zero vertices or instances record nothing.
func (b *Builder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if err := b.checkDraw(); err != nil {
		return err
	}
	if vertexCount == 0 || instanceCount == 0 {
		return nil
	}
	b.commit()
	b.enc.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
	return nil
}

// DrawIndexed records an indexed draw using the bound index buffer.
func (b *Builder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if err := b.checkDraw(); err != nil {
		return err
	}
	if !b.state.IndexBound {
		return DrawNoIndexBuffer
	}
	if indexCount == 0 || instanceCount == 0 {
		return nil
	}
	b.commit()
	b.enc.DrawIndexed(indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
	return nil
}

// Dispatch records a compute dispatch of x*y*z work groups. A zero count
// records nothing.
func (b *Builder) Dispatch(x, y, z uint32) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if b.withinRenderPass() {
		return &DispatchError{Kind: DispatchForbiddenWithinRenderPass}
	}
	if b.compute == nil {
		return &DispatchError{Kind: DispatchNoPipelineBound}
	}
	if !b.family().SupportsCompute() {
		return &DispatchError{Kind: DispatchNotSupportedByQueueFamily}
	}
	for i, n := range [3]uint32{x, y, z} {
		if limit := b.limits.MaxWorkGroupCount[i]; n > limit {
			return &DispatchError{Kind: DispatchLimitExceeded, Requested: uint64(n), Max: uint64(limit)}
		}
	}
	if x == 0 || y == 0 || z == 0 {
		return nil
	}
	b.commit()
	b.enc.Dispatch(x, y, z)
	return nil
}
