package dieselcmd

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Encoder appends validated commands to a native command sequence. It trusts
// its caller completely and performs no validation of its own.
type Encoder interface {
	CopyBuffer(src, dst Buffer, regions []BufferCopy)
	FillBuffer(dst Buffer, offset, size uint64, data uint32)
	UpdateBuffer(dst Buffer, offset uint64, data []byte)
	BindPipeline(p Pipeline)
	BindDescriptorSets(point BindPoint, layout vk.PipelineLayout, first uint32, sets []DescriptorSet, dynamicOffsets []uint32)
	BindVertexBuffers(first uint32, bufs []Buffer, offsets []uint64)
	BindIndexBuffer(buf Buffer, offset uint64, typ IndexType)
	SetViewport(first uint32, vps []Viewport)
	SetScissor(first uint32, rects []Rect)
	SetLineWidth(width float32)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32)
	Dispatch(x, y, z uint32)
	BeginRenderPass(pass RenderPass, fb Framebuffer, area Rect, clear []ClearValue)
	NextSubpass()
	EndRenderPass()
	ClearAttachments(atts []ClearAttachment, rects []ClearRect)

	// End finishes recording.
	End() error
	// Free gives the native sequence back to its pool.
	Free()
	// Handle returns the native command buffer, if any.
	Handle() vk.CommandBuffer
}

// NativeEncoder records into a vulkan command buffer.
type NativeEncoder struct {
	cb      vk.CommandBuffer
	level   vk.CommandBufferLevel
	recycle func(vk.CommandBuffer, vk.CommandBufferLevel)
}

// NewNativeEncoder wraps a command buffer that is already in the recording
// state. recycle, if set, is called by Free.
func NewNativeEncoder(cb vk.CommandBuffer, level vk.CommandBufferLevel, recycle func(vk.CommandBuffer, vk.CommandBufferLevel)) *NativeEncoder {
	return &NativeEncoder{cb: cb, level: level, recycle: recycle}
}

func (e *NativeEncoder) Handle() vk.CommandBuffer { return e.cb }

func (e *NativeEncoder) CopyBuffer(src, dst Buffer, regions []BufferCopy) {
	native := make([]vk.BufferCopy, len(regions))
	for i, r := range regions {
		native[i] = vk.BufferCopy{
			SrcOffset: vk.DeviceSize(r.SrcOffset),
			DstOffset: vk.DeviceSize(r.DstOffset),
			Size:      vk.DeviceSize(r.Size),
		}
	}
	vk.CmdCopyBuffer(e.cb, src.Handle(), dst.Handle(), uint32(len(native)), native)
}

func (e *NativeEncoder) FillBuffer(dst Buffer, offset, size uint64, data uint32) {
	vk.CmdFillBuffer(e.cb, dst.Handle(), vk.DeviceSize(offset), vk.DeviceSize(size), data)
}

func (e *NativeEncoder) UpdateBuffer(dst Buffer, offset uint64, data []byte) {
	vk.CmdUpdateBuffer(e.cb, dst.Handle(), vk.DeviceSize(offset), vk.DeviceSize(len(data)), (*uint32)(unsafe.Pointer(&data[0])))
}

func (e *NativeEncoder) BindPipeline(p Pipeline) {
	vk.CmdBindPipeline(e.cb, p.BindPoint().native(), p.Handle())
}

func (e *NativeEncoder) BindDescriptorSets(point BindPoint, layout vk.PipelineLayout, first uint32, sets []DescriptorSet, dynamicOffsets []uint32) {
	handles := make([]vk.DescriptorSet, len(sets))
	for i, s := range sets {
		handles[i] = s.Handle()
	}
	vk.CmdBindDescriptorSets(e.cb, point.native(), layout, first,
		uint32(len(handles)), handles, uint32(len(dynamicOffsets)), dynamicOffsets)
}

func (e *NativeEncoder) BindVertexBuffers(first uint32, bufs []Buffer, offsets []uint64) {
	handles := make([]vk.Buffer, len(bufs))
	offs := make([]vk.DeviceSize, len(offsets))
	for i := range bufs {
		handles[i] = bufs[i].Handle()
		offs[i] = vk.DeviceSize(offsets[i])
	}
	vk.CmdBindVertexBuffers(e.cb, first, uint32(len(handles)), handles, offs)
}

func (e *NativeEncoder) BindIndexBuffer(buf Buffer, offset uint64, typ IndexType) {
	index := vk.IndexTypeUint16
	if typ == IndexUint32 {
		index = vk.IndexTypeUint32
	}
	vk.CmdBindIndexBuffer(e.cb, buf.Handle(), vk.DeviceSize(offset), index)
}

func (e *NativeEncoder) SetViewport(first uint32, vps []Viewport) {
	native := make([]vk.Viewport, len(vps))
	for i, v := range vps {
		native[i] = vk.Viewport{
			X:        v.X,
			Y:        v.Y,
			Width:    v.Width,
			Height:   v.Height,
			MinDepth: v.MinDepth,
			MaxDepth: v.MaxDepth,
		}
	}
	vk.CmdSetViewport(e.cb, first, uint32(len(native)), native)
}

func nativeRect(r Rect) vk.Rect2D {
	return vk.Rect2D{
		Offset: vk.Offset2D{X: r.X, Y: r.Y},
		Extent: vk.Extent2D{Width: r.Width, Height: r.Height},
	}
}

func (e *NativeEncoder) SetScissor(first uint32, rects []Rect) {
	native := make([]vk.Rect2D, len(rects))
	for i, r := range rects {
		native[i] = nativeRect(r)
	}
	vk.CmdSetScissor(e.cb, first, uint32(len(native)), native)
}

func (e *NativeEncoder) SetLineWidth(width float32) {
	vk.CmdSetLineWidth(e.cb, width)
}

func (e *NativeEncoder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	vk.CmdDraw(e.cb, vertexCount, instanceCount, firstVertex, firstInstance)
}

func (e *NativeEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	vk.CmdDrawIndexed(e.cb, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
}

func (e *NativeEncoder) Dispatch(x, y, z uint32) {
	vk.CmdDispatch(e.cb, x, y, z)
}

func nativeClearValue(v ClearValue) vk.ClearValue {
	if v.DepthStencil {
		return vk.NewClearDepthStencil(v.Depth, v.Stencil)
	}
	return vk.NewClearValue(v.Color[:])
}

func (e *NativeEncoder) BeginRenderPass(pass RenderPass, fb Framebuffer, area Rect, clear []ClearValue) {
	values := make([]vk.ClearValue, len(clear))
	for i, c := range clear {
		values[i] = nativeClearValue(c)
	}
	vk.CmdBeginRenderPass(e.cb, &vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		RenderPass:      pass.Handle(),
		Framebuffer:     fb.Handle(),
		RenderArea:      nativeRect(area),
		ClearValueCount: uint32(len(values)),
		PClearValues:    values,
	}, vk.SubpassContentsInline)
}

func (e *NativeEncoder) NextSubpass() {
	vk.CmdNextSubpass(e.cb, vk.SubpassContentsInline)
}

func (e *NativeEncoder) EndRenderPass() {
	vk.CmdEndRenderPass(e.cb)
}

func (e *NativeEncoder) ClearAttachments(atts []ClearAttachment, rects []ClearRect) {
	native := make([]vk.ClearAttachment, len(atts))
	for i, a := range atts {
		aspect := vk.ImageAspectFlags(vk.ImageAspectColorBit)
		if a.Value.DepthStencil {
			aspect = vk.ImageAspectFlags(vk.ImageAspectDepthBit | vk.ImageAspectStencilBit)
		}
		native[i] = vk.ClearAttachment{
			AspectMask:      aspect,
			ColorAttachment: a.Attachment,
			ClearValue:      nativeClearValue(a.Value),
		}
	}
	nativeRects := make([]vk.ClearRect, len(rects))
	for i, r := range rects {
		nativeRects[i] = vk.ClearRect{
			Rect:           nativeRect(r.Rect),
			BaseArrayLayer: r.BaseLayer,
			LayerCount:     r.Layers,
		}
	}
	vk.CmdClearAttachments(e.cb, uint32(len(native)), native, uint32(len(nativeRects)), nativeRects)
}

func (e *NativeEncoder) End() error {
	if ret := vk.EndCommandBuffer(e.cb); isError(ret) {
		return errors.Wrap(NewError(ret), "end command buffer")
	}
	return nil
}

func (e *NativeEncoder) Free() {
	if e.recycle != nil && e.cb != nil {
		e.recycle(e.cb, e.level)
	}
	e.cb = nil
}
