package dieselcmd

import (
	"fmt"
	"runtime"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

func isError(ret vk.Result) bool {
	return ret != vk.Success
}

// Wraps a native vulkan result into an error carrying the calling frame. Returns nil on vk.Success
func NewError(ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return errors.Newf("vulkan error: %s (%d)", vk.Error(ret).Error(), ret)
	}
	frame := runtime.FuncForPC(pc)
	return errors.Newf("vulkan error: %s (%d) on %s", vk.Error(ret).Error(), ret, frame.Name())
}

// Contract violations (mixing devices, retaining a released resource) are caller bugs
// and never part of a recoverable error set.
func contractViolation(format string, args ...interface{}) {
	panic(errors.AssertionFailedf(format, args...))
}

var (
	// ErrBuilderConsumed is returned by every append once Build or Discard was called.
	ErrBuilderConsumed = errors.New("dieselcmd: builder already built or discarded")

	// ErrRenderPassNotEnded is returned by Build while a render pass is still open.
	ErrRenderPassNotEnded = errors.New("dieselcmd: render pass not ended")
)

// BufferCopyError is the error set of Builder.CopyBuffer.
type BufferCopyError int

const (
	CopyForbiddenWithinRenderPass BufferCopyError = iota + 1
	CopyOutOfRange
	CopyWrongUsageFlag
	CopyOverlappingRegions
)

func (e BufferCopyError) Error() string {
	switch e {
	case CopyForbiddenWithinRenderPass:
		return "buffer copy: can't copy buffers from within a render pass"
	case CopyOutOfRange:
		return "buffer copy: one of the regions is out of range of the buffer"
	case CopyWrongUsageFlag:
		return "buffer copy: one of the buffers doesn't have the correct usage flag"
	case CopyOverlappingRegions:
		return "buffer copy: some regions are overlapping"
	}
	return fmt.Sprintf("buffer copy: unknown error %d", int(e))
}

// BufferFillError is the error set of Builder.FillBuffer.
type BufferFillError int

const (
	FillForbiddenWithinRenderPass BufferFillError = iota + 1
	FillNotSupportedByQueueFamily
	FillWrongUsageFlag
	FillWrongAlignment
	FillOutOfRange
)

func (e BufferFillError) Error() string {
	switch e {
	case FillForbiddenWithinRenderPass:
		return "buffer fill: can't fill buffers from within a render pass"
	case FillNotSupportedByQueueFamily:
		return "buffer fill: the queue family of the command pool does not support this operation"
	case FillWrongUsageFlag:
		return "buffer fill: the buffer doesn't have the transfer destination usage flag"
	case FillWrongAlignment:
		return "buffer fill: the offset and size must be multiples of 4"
	case FillOutOfRange:
		return "buffer fill: the region is out of range of the buffer"
	}
	return fmt.Sprintf("buffer fill: unknown error %d", int(e))
}

// UpdateErrorKind identifies a member of the Builder.UpdateBuffer error set.
// A kind is itself an error so that errors.Is(err, UpdateRegionTooLarge) works.
type UpdateErrorKind int

const (
	UpdateForbiddenWithinRenderPass UpdateErrorKind = iota + 1
	UpdateWrongUsageFlag
	UpdateWrongAlignment
	UpdateOutOfRange
	UpdateRegionTooLarge
	UpdateDataTooSmall
)

func (k UpdateErrorKind) Error() string {
	switch k {
	case UpdateForbiddenWithinRenderPass:
		return "buffer update: can't update buffers from within a render pass"
	case UpdateWrongUsageFlag:
		return "buffer update: the buffer doesn't have the transfer destination usage flag"
	case UpdateWrongAlignment:
		return "buffer update: the offset and size must be multiples of 4"
	case UpdateOutOfRange:
		return "buffer update: the region is out of range of the buffer"
	case UpdateRegionTooLarge:
		return "buffer update: the size of the region exceeds the allowed limits"
	case UpdateDataTooSmall:
		return "buffer update: the data is smaller than the region to copy to"
	}
	return fmt.Sprintf("buffer update: unknown error %d", int(k))
}

// BufferUpdateError is the error returned by Builder.UpdateBuffer.
// Requested and Max are set for UpdateRegionTooLarge (region size, limit)
// and UpdateDataTooSmall (region size, data length).
type BufferUpdateError struct {
	Kind      UpdateErrorKind
	Requested uint64
	Max       uint64
}

func (e *BufferUpdateError) Error() string {
	switch e.Kind {
	case UpdateRegionTooLarge, UpdateDataTooSmall:
		return fmt.Sprintf("%s (requested %d, max %d)", e.Kind.Error(), e.Requested, e.Max)
	}
	return e.Kind.Error()
}

func (e *BufferUpdateError) Is(target error) bool {
	k, ok := target.(UpdateErrorKind)
	return ok && k == e.Kind
}

// BindError is the error set of the Bind* methods of Builder.
type BindError int

const (
	BindWrongUsageFlag BindError = iota + 1
	BindOutOfRange
	BindWrongAlignment
	BindNoPipelineBound
	BindNotSupportedByQueueFamily
	BindCountMismatch
)

func (e BindError) Error() string {
	switch e {
	case BindWrongUsageFlag:
		return "bind: the buffer doesn't have the correct usage flag"
	case BindOutOfRange:
		return "bind: the offset is out of range of the buffer"
	case BindWrongAlignment:
		return "bind: the offset is not aligned to the index size"
	case BindNoPipelineBound:
		return "bind: no pipeline is bound at this bind point"
	case BindNotSupportedByQueueFamily:
		return "bind: the queue family of the command pool does not support this bind point"
	case BindCountMismatch:
		return "bind: the number of buffers and offsets differ"
	}
	return fmt.Sprintf("bind: unknown error %d", int(e))
}

// DynamicStateErrorKind identifies a member of the dynamic state error set.
type DynamicStateErrorKind int

const (
	DynamicEmpty DynamicStateErrorKind = iota + 1
	DynamicTooMany
	DynamicInvalidLineWidth
)

func (k DynamicStateErrorKind) Error() string {
	switch k {
	case DynamicEmpty:
		return "dynamic state: at least one viewport or scissor is required"
	case DynamicTooMany:
		return "dynamic state: too many viewports or scissors"
	case DynamicInvalidLineWidth:
		return "dynamic state: line width must be positive"
	}
	return fmt.Sprintf("dynamic state: unknown error %d", int(k))
}

// DynamicStateError is returned by SetViewport, SetScissor and SetLineWidth.
type DynamicStateError struct {
	Kind      DynamicStateErrorKind
	Requested uint64
	Max       uint64
}

func (e *DynamicStateError) Error() string {
	if e.Kind == DynamicTooMany {
		return fmt.Sprintf("%s (requested %d, max %d)", e.Kind.Error(), e.Requested, e.Max)
	}
	return e.Kind.Error()
}

func (e *DynamicStateError) Is(target error) bool {
	k, ok := target.(DynamicStateErrorKind)
	return ok && k == e.Kind
}

// DrawError is the error set of Draw and DrawIndexed.
type DrawError int

const (
	DrawForbiddenOutsideRenderPass DrawError = iota + 1
	DrawNoPipelineBound
	DrawDynamicStateNotSet
	DrawNoIndexBuffer
)

func (e DrawError) Error() string {
	switch e {
	case DrawForbiddenOutsideRenderPass:
		return "draw: draw commands must be recorded within a render pass"
	case DrawNoPipelineBound:
		return "draw: no graphics pipeline is bound"
	case DrawDynamicStateNotSet:
		return "draw: the bound pipeline requires dynamic state that was never set"
	case DrawNoIndexBuffer:
		return "draw: no index buffer is bound"
	}
	return fmt.Sprintf("draw: unknown error %d", int(e))
}

// DispatchErrorKind identifies a member of the Dispatch error set.
type DispatchErrorKind int

const (
	DispatchForbiddenWithinRenderPass DispatchErrorKind = iota + 1
	DispatchNoPipelineBound
	DispatchNotSupportedByQueueFamily
	DispatchLimitExceeded
)

func (k DispatchErrorKind) Error() string {
	switch k {
	case DispatchForbiddenWithinRenderPass:
		return "dispatch: can't dispatch from within a render pass"
	case DispatchNoPipelineBound:
		return "dispatch: no compute pipeline is bound"
	case DispatchNotSupportedByQueueFamily:
		return "dispatch: the queue family of the command pool does not support compute"
	case DispatchLimitExceeded:
		return "dispatch: work group count exceeds the device limit"
	}
	return fmt.Sprintf("dispatch: unknown error %d", int(k))
}

// DispatchError is returned by Builder.Dispatch.
type DispatchError struct {
	Kind      DispatchErrorKind
	Requested uint64
	Max       uint64
}

func (e *DispatchError) Error() string {
	if e.Kind == DispatchLimitExceeded {
		return fmt.Sprintf("%s (requested %d, max %d)", e.Kind.Error(), e.Requested, e.Max)
	}
	return e.Kind.Error()
}

func (e *DispatchError) Is(target error) bool {
	k, ok := target.(DispatchErrorKind)
	return ok && k == e.Kind
}

// RenderPassError is the error set of BeginRenderPass, NextSubpass and EndRenderPass.
type RenderPassError int

const (
	PassAlreadyWithinRenderPass RenderPassError = iota + 1
	PassNotWithinRenderPass
	PassForbiddenInSecondary
	PassNotSupportedByQueueFamily
	PassIncompatibleFramebuffer
	PassClearValueCountMismatch
	PassRenderAreaOutOfRange
	PassNoSubpassRemaining
	PassSubpassesRemaining
)

func (e RenderPassError) Error() string {
	switch e {
	case PassAlreadyWithinRenderPass:
		return "render pass: a render pass is already in progress"
	case PassNotWithinRenderPass:
		return "render pass: no render pass is in progress"
	case PassForbiddenInSecondary:
		return "render pass: secondary command buffers can't begin render passes"
	case PassNotSupportedByQueueFamily:
		return "render pass: the queue family of the command pool does not support graphics"
	case PassIncompatibleFramebuffer:
		return "render pass: the framebuffer was not created for this render pass"
	case PassClearValueCountMismatch:
		return "render pass: the number of clear values doesn't match the attachments"
	case PassRenderAreaOutOfRange:
		return "render pass: the render area exceeds the framebuffer"
	case PassNoSubpassRemaining:
		return "render pass: already in the last subpass"
	case PassSubpassesRemaining:
		return "render pass: not all subpasses were recorded"
	}
	return fmt.Sprintf("render pass: unknown error %d", int(e))
}

// ClearError is the error set of Builder.ClearAttachments.
type ClearError int

const (
	ClearForbiddenOutsideRenderPass ClearError = iota + 1
	ClearAttachmentOutOfRange
	ClearRectOutOfRange
)

func (e ClearError) Error() string {
	switch e {
	case ClearForbiddenOutsideRenderPass:
		return "clear: attachments can only be cleared within a render pass"
	case ClearAttachmentOutOfRange:
		return "clear: the attachment index exceeds the framebuffer attachments"
	case ClearRectOutOfRange:
		return "clear: a rectangle exceeds the framebuffer"
	}
	return fmt.Sprintf("clear: unknown error %d", int(e))
}
