//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/ripple"
)

//go:embed shaders/ripple.wgsl
var rippleShaderSource string

// maskData is the GPU-side mask record. Must match the Mask struct in
// ripple.wgsl: 12 f32 fields, 48 bytes.
type maskData struct {
	CenterX, CenterY float32
	HalfW, HalfH     float32
	Radius           float32
	ColorR, ColorG   float32
	ColorB, ColorA   float32
	Pad0, Pad1, Pad2 float32
}

// frameParams is the per-dispatch uniform. Must match FrameParams in
// ripple.wgsl: 16 bytes.
type frameParams struct {
	TargetWidth  uint32
	TargetHeight uint32
	MaskIndex    uint32
	Pad          uint32
}

// Accelerator renders ripple masks on the GPU using wgpu/hal compute
// shaders. It implements the ripple.GPUAccelerator interface.
//
// Masks submitted via FillMask are accumulated into a batch and
// dispatched in a single GPU submit on Flush(). This avoids per-mask
// fence waits and buffer allocations.
type Accelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	pending       []maskData
	pendingTarget *ripple.GPURenderTarget // nil if no pending masks

	gpuReady       bool
	externalDevice bool // true when using shared device (don't destroy on Close)
}

var _ ripple.GPUAccelerator = (*Accelerator)(nil)

// NewAccelerator creates an uninitialized GPU accelerator.
func NewAccelerator() *Accelerator {
	return &Accelerator{}
}

// Name returns the accelerator identifier.
func (a *Accelerator) Name() string { return "wgpu" }

// SetLogger receives the logger propagated from ripple.SetLogger.
func (a *Accelerator) SetLogger(l *slog.Logger) { setLogger(l) }

// Init creates GPU resources. A failed init is not an error: the
// accelerator stays registered and reports ErrFallbackToCPU per call,
// so rendering continues on the CPU.
func (a *Accelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.initGPU(); err != nil {
		slogger().Warn("ripple-gpu: GPU init failed, using CPU fallback", "err", err)
	}
	return nil
}

// Close releases all GPU resources.
func (a *Accelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = nil
	a.pendingTarget = nil
	a.destroyPipelines()
	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
			a.device = nil
		}
		if a.instance != nil {
			a.instance.Destroy()
			a.instance = nil
		}
	} else {
		// Don't destroy shared resources — we don't own them
		a.device = nil
		a.instance = nil
	}
	a.queue = nil
	a.gpuReady = false
	a.externalDevice = false
}

// SetDeviceProvider switches the accelerator to use a shared GPU device
// from an external provider (e.g., gogpu). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func (a *Accelerator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("ripple-gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("ripple-gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("ripple-gpu: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Destroy own resources if we created them
	a.destroyPipelines()
	if !a.externalDevice && a.device != nil {
		a.device.Destroy()
	}
	if a.instance != nil {
		a.instance.Destroy()
		a.instance = nil
	}

	a.device = device
	a.queue = queue
	a.externalDevice = true

	if err := a.createPipelines(); err != nil {
		a.gpuReady = false
		return fmt.Errorf("ripple-gpu: create pipelines with shared device: %w", err)
	}
	a.gpuReady = true
	slogger().Info("ripple-gpu: switched to shared GPU device")
	return nil
}

// FillMask accumulates a mask for batch dispatch.
// The actual GPU work happens on Flush().
func (a *Accelerator) FillMask(target ripple.GPURenderTarget, mask ripple.RRect, color ripple.RGBA) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady {
		return ripple.ErrFallbackToCPU
	}
	return a.queueMask(target, mask, color)
}

// Flush dispatches all pending masks in a single GPU submit.
// Returns nil if there are no pending masks.
func (a *Accelerator) Flush(target ripple.GPURenderTarget) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flushLocked(target)
}

// PendingCount returns the number of masks waiting for dispatch (for testing).
func (a *Accelerator) PendingCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

func (a *Accelerator) flushLocked(target ripple.GPURenderTarget) error {
	if len(a.pending) == 0 {
		return nil
	}
	n := len(a.pending)
	err := a.dispatchBatch(target)
	a.pending = a.pending[:0]
	a.pendingTarget = nil
	if err != nil {
		slogger().Warn("ripple-gpu: batch dispatch error", "masks", n, "err", err)
	}
	return err
}

func (a *Accelerator) queueMask(target ripple.GPURenderTarget, mask ripple.RRect, color ripple.RGBA) error {
	// If target changed, flush previous batch first.
	if a.pendingTarget != nil && !sameTarget(a.pendingTarget, &target) {
		if err := a.flushLocked(*a.pendingTarget); err != nil {
			return err
		}
	}

	a.pending = append(a.pending, maskData{
		CenterX: float32(mask.Center.X), CenterY: float32(mask.Center.Y),
		HalfW: float32(mask.HalfW), HalfH: float32(mask.HalfH),
		Radius: float32(mask.Radius),
		ColorR: float32(color.R), ColorG: float32(color.G),
		ColorB: float32(color.B), ColorA: float32(color.A),
	})
	targetCopy := target
	a.pendingTarget = &targetCopy
	return nil
}

func sameTarget(a, b *ripple.GPURenderTarget) bool {
	return a.Width == b.Width && a.Height == b.Height &&
		len(a.Data) == len(b.Data) && len(a.Data) > 0 && &a.Data[0] == &b.Data[0]
}

// packMasksData serializes all pending masks into a byte slice for GPU upload.
func (a *Accelerator) packMasksData() []byte {
	maskSize := int(unsafe.Sizeof(maskData{}))
	out := make([]byte, maskSize*len(a.pending))
	for i := range a.pending {
		src := structToBytes(unsafe.Pointer(&a.pending[i]), unsafe.Sizeof(a.pending[i])) //nolint:gosec // safe struct access
		copy(out[i*maskSize:], src)
	}
	return out
}

// makeFrameParams returns a 16-byte frameParams for a single mask index.
func makeFrameParams(w, h, maskIndex uint32) []byte {
	params := frameParams{
		TargetWidth: w, TargetHeight: h,
		MaskIndex: maskIndex,
	}
	return structToBytes(unsafe.Pointer(&params), unsafe.Sizeof(params)) //nolint:gosec // safe struct access
}

// encodeMultiPass creates N compute passes (one per mask) in a single
// command encoder. Each pass processes one mask, with implicit storage
// buffer barriers between passes ensuring correct compositing order.
// This avoids naga SPIR-V bug #5 (loops only execute first iteration).
func (a *Accelerator) encodeMultiPass(
	bindGroups []hal.BindGroup, storageBuf, stagingBuf hal.Buffer,
	w, h uint32, pixelBufSize uint64, target ripple.GPURenderTarget,
) error {
	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "ripple_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("ripple_batch"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	// One compute pass per mask — same pipeline, different uniform (mask_index).
	for _, bg := range bindGroups {
		computePass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "ripple_pass"})
		computePass.SetPipeline(a.pipeline)
		computePass.SetBindGroup(0, bg, nil)
		computePass.Dispatch((w+7)/8, (h+7)/8, 1)
		computePass.End()
	}

	encoder.CopyBufferToBuffer(storageBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: pixelBufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	fence, err := a.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer a.device.DestroyFence(fence)
	if err := a.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := a.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, pixelBufSize)
	if err := a.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	unpackPixelsFromGPU(readback, target.Data, int(w*h))
	return nil
}

// dispatchBatch sends all pending masks to the GPU using multi-pass
// dispatch: one submit + one fence wait for the entire batch.
func (a *Accelerator) dispatchBatch(target ripple.GPURenderTarget) error {
	w, h := uint32(target.Width), uint32(target.Height) //nolint:gosec // dimensions always fit uint32
	pixelBufSize := uint64(w * h * 4)
	masksBytes := a.packMasksData()
	packedPixels := packPixelsForGPU(target.Data, int(w*h))
	n := len(a.pending)

	// Shared buffers: masks (all masks) + pixels (storage) + staging (readback).
	masksBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ripple_masks", Size: uint64(len(masksBytes)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create masks buffer: %w", err)
	}
	defer a.device.DestroyBuffer(masksBuf)

	storageBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ripple_pixels", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create storage buffer: %w", err)
	}
	defer a.device.DestroyBuffer(storageBuf)

	stagingBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ripple_staging", Size: pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer a.device.DestroyBuffer(stagingBuf)

	a.queue.WriteBuffer(masksBuf, 0, masksBytes)
	a.queue.WriteBuffer(storageBuf, 0, packedPixels)

	uniformBufs, bindGroups, err := a.createPerMaskBindings(n, w, h, masksBuf, masksBytes, storageBuf, pixelBufSize)
	if err != nil {
		a.cleanupBindings(uniformBufs, bindGroups)
		return err
	}
	defer a.cleanupBindings(uniformBufs, bindGroups)

	return a.encodeMultiPass(bindGroups, storageBuf, stagingBuf, w, h, pixelBufSize, target)
}

// createPerMaskBindings creates N uniform buffers (one per mask with
// mask_index) and N bind groups. Each bind group shares the same masks
// and pixels buffers.
func (a *Accelerator) createPerMaskBindings(
	n int, w, h uint32,
	masksBuf hal.Buffer, masksBytes []byte,
	storageBuf hal.Buffer, pixelBufSize uint64,
) ([]hal.Buffer, []hal.BindGroup, error) {
	paramSize := uint64(unsafe.Sizeof(frameParams{}))
	uniformBufs := make([]hal.Buffer, 0, n)
	bindGroups := make([]hal.BindGroup, 0, n)

	for i := 0; i < n; i++ {
		paramsBytes := makeFrameParams(w, h, uint32(i)) //nolint:gosec // mask index fits uint32

		ub, err := a.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "ripple_params", Size: paramSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("create uniform buffer %d: %w", i, err)
		}
		uniformBufs = append(uniformBufs, ub)
		a.queue.WriteBuffer(ub, 0, paramsBytes)

		bg, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label: "ripple_bind", Layout: a.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: ub.NativeHandle(), Offset: 0, Size: paramSize}},
				{Binding: 1, Resource: gputypes.BufferBinding{Buffer: masksBuf.NativeHandle(), Offset: 0, Size: uint64(len(masksBytes))}},
				{Binding: 2, Resource: gputypes.BufferBinding{Buffer: storageBuf.NativeHandle(), Offset: 0, Size: pixelBufSize}},
			},
		})
		if err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("create bind group %d: %w", i, err)
		}
		bindGroups = append(bindGroups, bg)
	}

	return uniformBufs, bindGroups, nil
}

// cleanupBindings destroys uniform buffers and bind groups.
func (a *Accelerator) cleanupBindings(uniformBufs []hal.Buffer, bindGroups []hal.BindGroup) {
	for _, bg := range bindGroups {
		if bg != nil {
			a.device.DestroyBindGroup(bg)
		}
	}
	for _, ub := range uniformBufs {
		if ub != nil {
			a.device.DestroyBuffer(ub)
		}
	}
}

func (a *Accelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue
	if err := a.createPipelines(); err != nil {
		a.device.Destroy()
		a.device = nil
		a.queue = nil
		return fmt.Errorf("create pipelines: %w", err)
	}
	a.gpuReady = true
	slogger().Info("ripple-gpu: GPU accelerator initialized", "adapter", selected.Info.Name)
	return nil
}

func (a *Accelerator) createPipelines() error {
	shader, err := createShaderModule(a.device, "ripple_mask", rippleShaderSource)
	if err != nil {
		return fmt.Errorf("compile ripple_mask shader: %w", err)
	}
	a.shader = shader

	bindLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "ripple_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	a.bindLayout = bindLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "ripple_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{a.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	a.pipeLayout = pipeLayout

	pipeline, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "ripple_pipeline", Layout: a.pipeLayout,
		Compute: hal.ComputeState{Module: a.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	a.pipeline = pipeline

	return nil
}

func (a *Accelerator) destroyPipelines() {
	if a.device == nil {
		return
	}
	if a.pipeline != nil {
		a.device.DestroyComputePipeline(a.pipeline)
		a.pipeline = nil
	}
	if a.pipeLayout != nil {
		a.device.DestroyPipelineLayout(a.pipeLayout)
		a.pipeLayout = nil
	}
	if a.bindLayout != nil {
		a.device.DestroyBindGroupLayout(a.bindLayout)
		a.bindLayout = nil
	}
	if a.shader != nil {
		a.device.DestroyShaderModule(a.shader)
		a.shader = nil
	}
}

func structToBytes(ptr unsafe.Pointer, size uintptr) []byte {
	return unsafe.Slice((*byte)(ptr), size) //nolint:gosec // safe struct serialization
}

func packPixelsForGPU(data []uint8, pixelCount int) []byte {
	out := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		srcIdx := i * 4
		r := uint32(data[srcIdx+0])
		g := uint32(data[srcIdx+1])
		b := uint32(data[srcIdx+2])
		a := uint32(data[srcIdx+3])
		packed := r | (g << 8) | (b << 16) | (a << 24)
		binary.LittleEndian.PutUint32(out[i*4:], packed)
	}
	return out
}

func unpackPixelsFromGPU(packed []byte, dst []uint8, pixelCount int) {
	for i := 0; i < pixelCount; i++ {
		val := binary.LittleEndian.Uint32(packed[i*4:])
		dstIdx := i * 4
		dst[dstIdx+0] = uint8(val & 0xFF)         //nolint:gosec // masked to 8 bits
		dst[dstIdx+1] = uint8((val >> 8) & 0xFF)  //nolint:gosec // masked to 8 bits
		dst[dstIdx+2] = uint8((val >> 16) & 0xFF) //nolint:gosec // masked to 8 bits
		dst[dstIdx+3] = uint8((val >> 24) & 0xFF) //nolint:gosec // masked to 8 bits
	}
}
