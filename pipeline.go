package dieselcmd

import (
	vk "github.com/vulkan-go/vulkan"
)

// BindPoint selects the pipeline binding point a pipeline is bound to.
type BindPoint int

const (
	BindGraphics BindPoint = iota
	BindCompute
)

func (p BindPoint) String() string {
	if p == BindCompute {
		return "compute"
	}
	return "graphics"
}

func (p BindPoint) native() vk.PipelineBindPoint {
	if p == BindCompute {
		return vk.PipelineBindPointCompute
	}
	return vk.PipelineBindPointGraphics
}

// DynamicFlags is the set of pipeline states left to dynamic state commands.
type DynamicFlags uint32

const (
	DynamicViewport DynamicFlags = 1 << iota
	DynamicScissor
	DynamicLineWidth
)

// Pipeline is the view of a pipeline the builder binds.
type Pipeline interface {
	DeviceObject
	BindPoint() BindPoint
	// Dynamic returns the states that must be set before drawing.
	Dynamic() DynamicFlags
	Handle() vk.Pipeline
	Layout() vk.PipelineLayout
}

// Pipeline wrapper. Creation of pipelines and layouts happens elsewhere; the pipeline is destroyed
// with its last reference, the layout stays with the caller
type CorePipeline struct {
	coreObject
	pipeline vk.Pipeline
	layout   vk.PipelineLayout
	point    BindPoint
	dynamic  DynamicFlags
}

func WrapPipeline(device *CoreDevice, handle vk.Pipeline, layout vk.PipelineLayout, point BindPoint, dynamic DynamicFlags) *CorePipeline {
	dev := device.Handle()
	return &CorePipeline{
		coreObject: newCoreObject(device, func() {
			if handle != vk.NullPipeline {
				vk.DestroyPipeline(dev, handle, nil)
			}
		}),
		pipeline: handle,
		layout:   layout,
		point:    point,
		dynamic:  dynamic,
	}
}

func (p *CorePipeline) BindPoint() BindPoint      { return p.point }
func (p *CorePipeline) Dynamic() DynamicFlags     { return p.dynamic }
func (p *CorePipeline) Handle() vk.Pipeline       { return p.pipeline }
func (p *CorePipeline) Layout() vk.PipelineLayout { return p.layout }

// DescriptorSet is the view of a descriptor set the builder binds.
type DescriptorSet interface {
	DeviceObject
	Handle() vk.DescriptorSet
}

// Descriptor set wrapper. Sets are freed with their pool, so the last release only
// runs the optional free callback
type CoreDescriptorSet struct {
	coreObject
	set vk.DescriptorSet
}

func WrapDescriptorSet(device *CoreDevice, handle vk.DescriptorSet, free func()) *CoreDescriptorSet {
	return &CoreDescriptorSet{
		coreObject: newCoreObject(device, free),
		set:        handle,
	}
}

func (s *CoreDescriptorSet) Handle() vk.DescriptorSet { return s.set }
