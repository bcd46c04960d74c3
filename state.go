package dieselcmd

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Viewport mirrors VkViewport.
type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

// Rect is a 2D rectangle in framebuffer coordinates.
type Rect struct {
	X, Y          int32
	Width, Height uint32
}

func (r Rect) empty() bool { return r.Width == 0 || r.Height == 0 }

// IndexType is the format of the indices of an index buffer.
type IndexType int

const (
	IndexUint16 IndexType = iota
	IndexUint32
)

// Size returns the size of one index in bytes.
func (t IndexType) Size() uint64 {
	if t == IndexUint32 {
		return 4
	}
	return 2
}

// ClearValue is the value an attachment is cleared to. Color is used for
// color attachments, Depth and Stencil when DepthStencil is set.
type ClearValue struct {
	Color        mgl32.Vec4
	Depth        float32
	Stencil      uint32
	DepthStencil bool
}

// ClearColor returns a color clear value.
func ClearColor(r, g, b, a float32) ClearValue {
	return ClearValue{Color: mgl32.Vec4{r, g, b, a}}
}

// ClearDepthStencil returns a depth/stencil clear value.
func ClearDepthStencil(depth float32, stencil uint32) ClearValue {
	return ClearValue{Depth: depth, Stencil: stencil, DepthStencil: true}
}

// ClearAttachment selects an attachment of the current subpass to clear.
// Attachment is the color attachment index; it is ignored for depth/stencil
// values.
type ClearAttachment struct {
	Attachment uint32
	Value      ClearValue
}

// ClearRect is a region of layers to clear.
type ClearRect struct {
	Rect      Rect
	BaseLayer uint32
	Layers    uint32
}

// DynamicState is the last value set by each dynamic state command.
type DynamicState struct {
	Viewports    map[uint32]Viewport
	Scissors     map[uint32]Rect
	LineWidth    float32
	LineWidthSet bool
}

func (d DynamicState) clone() DynamicState {
	out := d
	if d.Viewports != nil {
		out.Viewports = make(map[uint32]Viewport, len(d.Viewports))
		for k, v := range d.Viewports {
			out.Viewports[k] = v
		}
	}
	if d.Scissors != nil {
		out.Scissors = make(map[uint32]Rect, len(d.Scissors))
		for k, v := range d.Scissors {
			out.Scissors[k] = v
		}
	}
	return out
}

// satisfies reports whether every state in flags has been set.
func (d DynamicState) satisfies(flags DynamicFlags) bool {
	if flags&DynamicViewport != 0 && len(d.Viewports) == 0 {
		return false
	}
	if flags&DynamicScissor != 0 && len(d.Scissors) == 0 {
		return false
	}
	if flags&DynamicLineWidth != 0 && !d.LineWidthSet {
		return false
	}
	return true
}

// State is a snapshot of the recording state of a Builder.
type State struct {
	WithinRenderPass bool
	Subpass          int
	GraphicsPipeline ObjectID
	ComputePipeline  ObjectID
	IndexBound       bool
	Secondary        bool
	Dynamic          DynamicState
}
