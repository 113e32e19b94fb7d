//go:build !nogpu

// Package gpu registers the GPU accelerator for hardware-accelerated
// ripple mask rendering.
//
// Import this package to fill ripple masks with wgpu/hal compute shaders
// instead of the CPU rasterizer. If GPU initialization fails (no Vulkan
// available), the registration is kept but every call reports a fallback
// and rendering continues on the CPU.
//
// Usage:
//
//	import _ "github.com/gogpu/ripple/gpu" // enable GPU acceleration
package gpu

import (
	"github.com/gogpu/ripple"
	gpuimpl "github.com/gogpu/ripple/internal/gpu"
)

func init() {
	accel := gpuimpl.NewAccelerator()
	if err := ripple.RegisterAccelerator(accel); err != nil {
		ripple.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider configures the GPU accelerator to use a shared GPU
// device from an external provider (e.g., gogpu). This avoids creating a
// separate GPU instance and enables efficient device sharing.
//
// The provider should be a gpucontext.DeviceProvider that also implements
// gpucontext.HalProvider for direct HAL access.
func SetDeviceProvider(provider any) error {
	return ripple.SetAcceleratorDeviceProvider(provider)
}
