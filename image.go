package dieselcmd

import vk "github.com/vulkan-go/vulkan"

// Image is the view of a device image used as a framebuffer attachment.
type Image interface {
	DeviceObject
	Handle() vk.ImageView
	Extent() vk.Extent2D
	Aspect() vk.ImageAspectFlags
}

// Image view wrapper, the view is destroyed with the last reference. The image itself
// and its memory stay with the caller
type CoreImage struct {
	coreObject
	view   vk.ImageView
	extent vk.Extent2D
	aspect vk.ImageAspectFlags
}

func WrapImageView(device *CoreDevice, view vk.ImageView, width, height uint32, aspect vk.ImageAspectFlags) *CoreImage {
	dev := device.Handle()
	return &CoreImage{
		coreObject: newCoreObject(device, func() {
			if view != vk.NullImageView {
				vk.DestroyImageView(dev, view, nil)
			}
		}),
		view:   view,
		extent: vk.Extent2D{Width: width, Height: height},
		aspect: aspect,
	}
}

func (i *CoreImage) Handle() vk.ImageView        { return i.view }
func (i *CoreImage) Extent() vk.Extent2D         { return i.extent }
func (i *CoreImage) Aspect() vk.ImageAspectFlags { return i.aspect }
