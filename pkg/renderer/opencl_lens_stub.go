//go:build !opencl

package renderer

import (
	"errors"
	"image"

	"github.com/DCha2001/blackhole/pkg/lens"
)

// GPURenderer is unavailable without the opencl build tag
type GPURenderer struct{}

func NewGPURenderer(width, height int, march lens.MarchConfig) (*GPURenderer, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (g *GPURenderer) RenderFrame(frame lens.FrameContext) (*image.RGBA, error) {
	return nil, errors.New("OpenCL renderer unavailable")
}

func (g *GPURenderer) Close() {}

func (g *GPURenderer) DeviceName() string { return "" }
