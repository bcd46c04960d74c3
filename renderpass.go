package dieselcmd

import (
	vk "github.com/vulkan-go/vulkan"
)

// RenderPass is the view of a render pass the builder begins.
type RenderPass interface {
	DeviceObject
	Handle() vk.RenderPass
	Attachments() int
	Subpasses() int
}

// Framebuffer is the view of a framebuffer the builder renders into.
type Framebuffer interface {
	DeviceObject
	Handle() vk.Framebuffer
	RenderPass() RenderPass
	Extent() vk.Extent2D
	Layers() uint32
	Attachments() int
}

// Render pass wrapper. The attachment and subpass counts describe the pass the handle was
// created from
type CoreRenderPass struct {
	coreObject
	renderPass  vk.RenderPass
	attachments int
	subpasses   int
}

func WrapRenderPass(device *CoreDevice, handle vk.RenderPass, attachments, subpasses int) *CoreRenderPass {
	dev := device.Handle()
	if subpasses < 1 {
		subpasses = 1
	}
	return &CoreRenderPass{
		coreObject: newCoreObject(device, func() {
			if handle != vk.NullRenderPass {
				vk.DestroyRenderPass(dev, handle, nil)
			}
		}),
		renderPass:  handle,
		attachments: attachments,
		subpasses:   subpasses,
	}
}

func (c *CoreRenderPass) Handle() vk.RenderPass { return c.renderPass }
func (c *CoreRenderPass) Attachments() int      { return c.attachments }
func (c *CoreRenderPass) Subpasses() int        { return c.subpasses }

// Framebuffer wrapper. The framebuffer retains its render pass and attachments until it is destroyed
type CoreFramebuffer struct {
	coreObject
	framebuffer vk.Framebuffer
	pass        RenderPass
	attachments []Image
	extent      vk.Extent2D
	layers      uint32
}

func WrapFramebuffer(device *CoreDevice, handle vk.Framebuffer, pass RenderPass, attachments []Image, width, height, layers uint32) *CoreFramebuffer {
	dev := device.Handle()
	pass.Retain()
	held := make([]Image, len(attachments))
	copy(held, attachments)
	for _, a := range held {
		a.Retain()
	}
	if layers == 0 {
		layers = 1
	}
	return &CoreFramebuffer{
		coreObject: newCoreObject(device, func() {
			if handle != vk.NullFramebuffer {
				vk.DestroyFramebuffer(dev, handle, nil)
			}
			for i := len(held) - 1; i >= 0; i-- {
				held[i].Release()
			}
			pass.Release()
		}),
		framebuffer: handle,
		pass:        pass,
		attachments: held,
		extent:      vk.Extent2D{Width: width, Height: height},
		layers:      layers,
	}
}

// Creates a framebuffer for pass over the attachment views
func NewCoreFramebuffer(device *CoreDevice, pass RenderPass, attachments []Image, width, height uint32) (*CoreFramebuffer, error) {
	views := make([]vk.ImageView, len(attachments))
	for i, a := range attachments {
		views[i] = a.Handle()
	}
	var framebuffer vk.Framebuffer
	ret := vk.CreateFramebuffer(device.Handle(), &vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      pass.Handle(),
		AttachmentCount: uint32(len(views)),
		PAttachments:    views,
		Width:           width,
		Height:          height,
		Layers:          1,
	}, nil, &framebuffer)
	if isError(ret) {
		return nil, NewError(ret)
	}
	return WrapFramebuffer(device, framebuffer, pass, attachments, width, height, 1), nil
}

func (f *CoreFramebuffer) Handle() vk.Framebuffer { return f.framebuffer }
func (f *CoreFramebuffer) RenderPass() RenderPass { return f.pass }
func (f *CoreFramebuffer) Extent() vk.Extent2D    { return f.extent }
func (f *CoreFramebuffer) Layers() uint32         { return f.layers }
func (f *CoreFramebuffer) Attachments() int       { return len(f.attachments) }
