package dieselcmd

// BeginRenderPass starts pass on fb. clear holds either no value or one
// value per attachment of the pass.
//
// It panics if pass or fb belong to another device.
func (b *Builder) BeginRenderPass(pass RenderPass, fb Framebuffer, area Rect, clear []ClearValue) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if b.withinRenderPass() {
		return PassAlreadyWithinRenderPass
	}
	if b.state.Secondary {
		return PassForbiddenInSecondary
	}
	if !b.family().SupportsGraphics() {
		return PassNotSupportedByQueueFamily
	}
	b.mustSameDevice(pass, fb)
	if fb.RenderPass().Object() != pass.Object() {
		return PassIncompatibleFramebuffer
	}
	if len(clear) != 0 && len(clear) != pass.Attachments() {
		return PassClearValueCountMismatch
	}
	if !inExtent(area, fb.Extent()) {
		return PassRenderAreaOutOfRange
	}

	b.commit(pass, fb)
	b.state.WithinRenderPass = true
	b.state.Subpass = 0
	b.pass, b.framebuffer = pass, fb
	b.enc.BeginRenderPass(pass, fb, area, clear)
	return nil
}

// subpasses is the subpass count of the current pass, at least one.
func (b *Builder) subpasses() int {
	if n := b.pass.Subpasses(); n > 1 {
		return n
	}
	return 1
}

func (b *Builder) NextSubpass() error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if !b.withinRenderPass() {
		return PassNotWithinRenderPass
	}
	if b.state.Subpass+1 >= b.subpasses() {
		return PassNoSubpassRemaining
	}
	b.commit()
	b.state.Subpass++
	b.enc.NextSubpass()
	return nil
}

// EndRenderPass ends the current render pass. Every subpass must have been
// entered.
func (b *Builder) EndRenderPass() error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if !b.withinRenderPass() {
		return PassNotWithinRenderPass
	}
	if b.state.Subpass != b.subpasses()-1 {
		return PassSubpassesRemaining
	}
	b.commit()
	b.state.WithinRenderPass = false
	b.state.Subpass = 0
	b.pass, b.framebuffer = nil, nil
	b.enc.EndRenderPass()
	return nil
}

// ClearAttachments clears regions of attachments of the current subpass.
// Rectangles with no area or no layers are skipped; if no attachment or
// rectangle remains nothing is recorded.
func (b *Builder) ClearAttachments(atts []ClearAttachment, rects []ClearRect) error {
	if b.consumed {
		return ErrBuilderConsumed
	}
	if !b.withinRenderPass() {
		return ClearForbiddenOutsideRenderPass
	}
	fb := b.framebuffer
	for _, a := range atts {
		if !a.Value.DepthStencil && int(a.Attachment) >= fb.Attachments() {
			return ClearAttachmentOutOfRange
		}
	}
	valid := make([]ClearRect, 0, len(rects))
	for _, r := range rects {
		if !inExtent(r.Rect, fb.Extent()) {
			return ClearRectOutOfRange
		}
		if _, ok := end(uint64(r.BaseLayer), uint64(r.Layers), uint64(fb.Layers())); !ok {
			return ClearRectOutOfRange
		}
		if r.Rect.empty() || r.Layers == 0 {
			continue
		}
		valid = append(valid, r)
	}
	if len(atts) == 0 || len(valid) == 0 {
		return nil
	}
	b.commit()
	b.enc.ClearAttachments(atts, valid)
	return nil
}
