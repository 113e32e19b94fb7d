// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ripplecanvas

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ripple"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("ripplecanvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("ripplecanvas: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("ripplecanvas: nil DeviceProvider")
)

// textureDestroyer matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Canvas binds a ripple region to a gogpu texture. It renders the ripple
// into an offscreen pixmap and uploads it to the GPU on demand, so the
// ripple overlay can be composited on top of application content.
//
// Canvas is NOT safe for concurrent use. Drive it from the render
// goroutine, or use external synchronization.
type Canvas struct {
	region     *ripple.Region
	pixmap     *ripple.Pixmap
	provider   gpucontext.DeviceProvider
	texture    any  // Lazy-created texture (*gogpu.Texture)
	oldTexture any  // Previous texture awaiting deferred destruction
	dirty      bool // Needs GPU upload
	width      int
	height     int
	closed     bool
}

// New creates a Canvas hosting a ripple region of the given size.
// The provider should come from gogpu.App.GPUContextProvider().
//
// The region clip shape and options are passed through to ripple.Attach.
// A nil shape means the ripple is clipped only by its own mask.
//
// Returns error if dimensions are invalid or provider is nil.
func New(provider gpucontext.DeviceProvider, width, height int, shape ripple.Shape, color ripple.RGBA, opts ...ripple.Option) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	// Share GPU device with accelerator if registered.
	// Error is non-fatal: accelerator may not support device sharing or
	// provider may not implement HalProvider. GPU will initialize its own device.
	_ = ripple.SetAcceleratorDeviceProvider(provider)

	return &Canvas{
		region:   ripple.Attach(float64(width), float64(height), shape, color, opts...),
		pixmap:   ripple.NewPixmap(width, height),
		provider: provider,
		width:    width,
		height:   height,
		dirty:    true, // first Flush creates the texture
	}, nil
}

// MustNew is like New but panics on error.
// Use only when errors are programming mistakes (e.g., hardcoded dimensions).
func MustNew(provider gpucontext.DeviceProvider, width, height int, shape ripple.Shape, color ripple.RGBA, opts ...ripple.Option) *Canvas {
	c, err := New(provider, width, height, shape, color, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Region returns the hosted ripple region. Route touch input through
// its Model (or a gesture.Recognizer attached with ForRegion).
//
// Returns nil if the canvas is closed.
func (c *Canvas) Region() *ripple.Region {
	if c.closed {
		return nil
	}
	return c.region
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Advance steps the ripple animation by dt and re-renders the pixmap
// if anything is visible or animating. Call once per frame.
//
// Returns true if the canvas content changed and needs a GPU upload.
func (c *Canvas) Advance(dt time.Duration) bool {
	if c.closed {
		return false
	}
	w := c.region.Widget
	wasVisible := w.Visible()
	w.Advance(dt)
	if !w.Visible() && !wasVisible {
		return false
	}
	c.pixmap.Clear(ripple.Transparent)
	c.region.Render(c.pixmap)
	c.dirty = true
	return true
}

// MarkDirty flags the canvas for GPU upload on next Flush().
// Call this after rendering into the pixmap directly.
func (c *Canvas) MarkDirty() {
	c.dirty = true
}

// IsDirty returns true if the canvas has pending changes
// that need to be uploaded to the GPU.
func (c *Canvas) IsDirty() bool {
	return c.dirty
}

// Pixmap returns the offscreen pixel buffer the ripple renders into.
// Callers may composite additional content before Flush; call MarkDirty
// afterwards.
func (c *Canvas) Pixmap() *ripple.Pixmap {
	if c.closed {
		return nil
	}
	return c.pixmap
}

// Flush uploads the canvas content to a GPU texture if dirty.
// Returns the texture for manual drawing if needed.
//
// The texture is created lazily on first Flush().
// Subsequent calls only upload data if the dirty flag is set.
//
// Returns error if texture update fails, or if the canvas is closed.
func (c *Canvas) Flush() (any, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}

	if !c.dirty && c.texture != nil {
		return c.texture, nil
	}

	data := c.pixmap.Data()

	// Create texture if needed (lazy initialization).
	// The real GPU texture is created during RenderTo when a
	// TextureCreator is available; until then we hold a placeholder.
	if c.texture == nil {
		c.texture = &pendingTexture{width: c.width, height: c.height, data: data}
		c.dirty = false
		return c.texture, nil
	}

	if updater, ok := c.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(data); err != nil {
			return nil, fmt.Errorf("ripplecanvas: texture update failed: %w", err)
		}
	}

	c.dirty = false
	return c.texture, nil
}

// Texture returns the current GPU texture without flushing.
// Returns nil if the texture hasn't been created yet.
func (c *Canvas) Texture() any {
	return c.texture
}

// Provider returns the DeviceProvider associated with this canvas.
// Returns nil if the canvas is closed.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	return c.provider
}

// Close releases all resources associated with the Canvas.
// After Close, the Canvas should not be used.
// Close is idempotent - multiple calls are safe.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if c.oldTexture != nil {
		if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		c.oldTexture = nil
	}
	if c.texture != nil {
		if destroyer, ok := c.texture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		c.texture = nil
	}

	c.region = nil
	c.pixmap = nil
	c.provider = nil
	return nil
}

// pendingTexture is a placeholder for texture creation. It holds the
// data needed to create a real texture when a TextureCreator becomes
// available (during RenderTo).
type pendingTexture struct {
	width  int
	height int
	data   []byte
}
