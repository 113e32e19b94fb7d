//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"errors"
	"testing"
	"unsafe"

	"github.com/gogpu/ripple"
)

func TestGPUStructLayouts(t *testing.T) {
	// Layouts must match the WGSL structs in shaders/ripple.wgsl.
	if got := unsafe.Sizeof(maskData{}); got != 48 {
		t.Errorf("sizeof(maskData) = %d, want 48 (12 f32)", got)
	}
	if got := unsafe.Sizeof(frameParams{}); got != 16 {
		t.Errorf("sizeof(frameParams) = %d, want 16 (4 u32)", got)
	}
}

func TestMakeFrameParams(t *testing.T) {
	b := makeFrameParams(640, 480, 3)
	if len(b) != 16 {
		t.Fatalf("len = %d, want 16", len(b))
	}
	if got := binary.LittleEndian.Uint32(b[0:]); got != 640 {
		t.Errorf("target_width = %d, want 640", got)
	}
	if got := binary.LittleEndian.Uint32(b[4:]); got != 480 {
		t.Errorf("target_height = %d, want 480", got)
	}
	if got := binary.LittleEndian.Uint32(b[8:]); got != 3 {
		t.Errorf("mask_index = %d, want 3", got)
	}
}

func TestPackUnpackPixelsRoundTrip(t *testing.T) {
	src := []uint8{
		0x11, 0x22, 0x33, 0x44,
		0xAA, 0xBB, 0xCC, 0xDD,
		0x00, 0xFF, 0x7F, 0x80,
	}
	packed := packPixelsForGPU(src, 3)
	if len(packed) != len(src) {
		t.Fatalf("packed len = %d, want %d", len(packed), len(src))
	}

	dst := make([]uint8, len(src))
	unpackPixelsFromGPU(packed, dst, 3)
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, dst[i], src[i])
		}
	}
}

func TestPackMasksData(t *testing.T) {
	a := &Accelerator{}
	a.pending = append(a.pending, maskData{
		CenterX: 1, CenterY: 2, HalfW: 3, HalfH: 4, Radius: 5,
		ColorR: 0.5, ColorG: 0.25, ColorB: 0.125, ColorA: 1,
	})
	a.pending = append(a.pending, maskData{CenterX: 9})

	out := a.packMasksData()
	if want := 2 * 48; len(out) != want {
		t.Fatalf("len = %d, want %d", len(out), want)
	}
	// First float of the first record.
	if got := binary.LittleEndian.Uint32(out[0:]); got != 0x3F800000 { // 1.0f
		t.Errorf("first float bits = %#x, want 0x3F800000", got)
	}
	// First float of the second record, 48 bytes in.
	if got := binary.LittleEndian.Uint32(out[48:]); got != 0x41100000 { // 9.0f
		t.Errorf("second record first float bits = %#x, want 0x41100000", got)
	}
}

func TestFillMaskWithoutGPUFallsBack(t *testing.T) {
	a := NewAccelerator() // never initialized: gpuReady stays false
	target := ripple.GPURenderTarget{Data: make([]uint8, 4*4*4), Width: 4, Height: 4, Stride: 16}
	err := a.FillMask(target, ripple.RRect{HalfW: 1, HalfH: 1}, ripple.RGBA{A: 1})
	if !errors.Is(err, ripple.ErrFallbackToCPU) {
		t.Errorf("FillMask without GPU = %v, want ErrFallbackToCPU", err)
	}
	if got := a.PendingCount(); got != 0 {
		t.Errorf("PendingCount() = %d, want 0", got)
	}
}

func TestFlushEmptyBatch(t *testing.T) {
	a := NewAccelerator()
	target := ripple.GPURenderTarget{Data: make([]uint8, 16), Width: 2, Height: 2, Stride: 8}
	if err := a.Flush(target); err != nil {
		t.Errorf("Flush() with no pending masks = %v, want nil", err)
	}
}

func TestAcceleratorName(t *testing.T) {
	if got := NewAccelerator().Name(); got != "wgpu" {
		t.Errorf("Name() = %q, want %q", got, "wgpu")
	}
}
