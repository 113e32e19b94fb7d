//go:build !nogpu

// Package gpu provides the GPU-accelerated ripple rasterizer.
//
// This is an internal package used by the ripple library for GPU
// rendering. It leverages WebGPU for hardware-accelerated compositing
// via the gogpu/wgpu Pure Go WebGPU implementation (zero CGO), which
// supports Vulkan, Metal, and DX12 backends depending on the platform.
//
// # Architecture Overview
//
// The ripple mask is a single analytically-known shape (a rounded
// rectangle expanding into a circle), so the whole pipeline is one
// compute stage:
//
//	FillMask -> batch queue -> Flush -> compute dispatch (SDF coverage + blend) -> readback
//
// Key components:
//
//   - Accelerator: implements ripple.GPUAccelerator over wgpu/hal
//   - ripple.wgsl: SDF coverage + source-over blend compute shader
//   - compileShaderToSPIRV: WGSL -> SPIR-V via gogpu/naga
//
// Masks submitted between frames are accumulated and dispatched in one
// command encoder, one pass per mask, with a single submit and fence
// wait. Storage buffer barriers between passes keep compositing order.
package gpu
