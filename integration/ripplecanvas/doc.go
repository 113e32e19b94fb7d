// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ripplecanvas hosts a ripple region inside a gogpu
// GPU-accelerated window.
//
// The ripple overlay is rendered on the CPU (or via the registered GPU
// accelerator) into an offscreen pixmap, then uploaded as a texture and
// composited over application content. The data flow is:
//
//	ripple.Region (render) -> Pixmap (CPU) -> GPU Texture -> Window
//
// # Usage
//
// Basic usage with gogpu:
//
//	canvas, err := ripplecanvas.New(app.GPUContextProvider(), 400, 300,
//	    ripple.RoundedRect{W: 400, H: 300, CornerR: 12},
//	    ripple.RGB(0.2, 0.4, 0.9).WithAlpha(0.3))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer canvas.Close()
//
//	// Route input through the region's view model:
//	canvas.Region().Model.BeginTouch(ripple.Pt(x, y))
//
//	// Per frame:
//	canvas.Advance(dt)
//	canvas.RenderTo(dc.AsTextureDrawer())
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use. Drive it from the render
// goroutine, or use external synchronization.
//
// # Integration Without Circular Imports
//
// This package uses gpucontext interfaces to avoid importing gogpu
// directly: gpucontext.DeviceProvider for device access and
// gpucontext.TextureDrawer/TextureCreator for texture upload and drawing.
package ripplecanvas
