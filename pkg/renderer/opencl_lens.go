//go:build opencl

package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"github.com/DCha2001/blackhole/pkg/lens"
)

// GPURenderer shades full frames on an OpenCL device. The kernel is a
// float32 port of the lens package's bend-during-march pipeline; BendOnce is
// not implemented on the device.
type GPURenderer struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	invViewBuf *cl.MemObject
	pixelBuf   *cl.MemObject
	width      int
	height     int
	march      lens.MarchConfig
	deviceName string
	invView    []float32
	pixels     []float32
}

const lensKernelSource = `#define R_S       1.0f
#define R_PH      1.5f
#define B_CRIT    2.598f
#define BEND_GAIN 40.0f
#define EPS       1e-6f

static float hash2(float x, float y)
{
    float s = sin(x * 12.9898f + y * 78.233f) * 43758.5453f;
    return s - floor(s);
}

static float3 rotate_axis(float3 v, float3 axis, float angle)
{
    float3 k = normalize(axis);
    float c = cos(angle);
    float s = sin(angle);
    return v * c + cross(k, v) * s + k * dot(k, v) * (1.0f - c);
}

static float deflection_angle(float b)
{
    float g = (b - B_CRIT) / (0.08f * B_CRIT);
    float theta = 2.0f * atan((2.0f * R_S / fmax(b, EPS)) * (1.0f + 3.0f * exp(-g * g)));
    return clamp(theta, 0.0f, 6.0f);
}

static float3 sky_color(float3 dir)
{
    float3 d = normalize(dir);
    float u = atan2(d.z, d.x) / (2.0f * M_PI_F) + 0.5f;
    float v = acos(clamp(d.y, -1.0f, 1.0f)) / M_PI_F;

    float3 col = mix((float3)(0.10f, 0.16f, 0.30f),
                     (float3)(0.04f, 0.02f, 0.10f),
                     fabs(d.y));

    if (hash2(floor(u * 256.0f), floor(v * 128.0f)) > 0.9995f) {
        float brightness = pow(hash2(floor(u * 1024.0f), floor(v * 512.0f)), 10.0f);
        col += (float3)(brightness);
    }
    return col;
}

static float3 lensed_sky(float3 origin, float3 dir, float b)
{
    if (b <= B_CRIT) {
        return (float3)(0.0f);
    }
    float3 axis = cross(dir, origin);
    if (length(axis) < EPS) {
        return sky_color(dir);
    }

    float theta = deflection_angle(b);
    float proximity = exp(-fabs(b - B_CRIT) / (0.1f * B_CRIT));

    float3 accum = (float3)(0.0f);
    float total = 0.0f;
    for (int n = 0; n <= 5; n++) {
        float alpha = theta + (float)n * 2.0f * M_PI_F;
        float weight = exp(-4.0f * (float)n) * proximity;
        accum += sky_color(rotate_axis(dir, axis, alpha)) * weight;
        total += weight;
    }
    if (total < EPS) {
        return sky_color(dir);
    }
    return accum / total;
}

static float3 ring_color(float b)
{
    float m = clamp(b / B_CRIT, 0.0f, 1.0f);
    float3 col = mix((float3)(1.0f, 0.85f, 0.55f),
                     (float3)(0.75f, 0.25f, 0.12f),
                     m);
    float crit = (b - B_CRIT) / (0.05f * B_CRIT);
    float ph = (b - R_PH) / (0.05f * B_CRIT);
    float boost = 1.0f + 1.5f * exp(-crit * crit) + 0.5f * exp(-ph * ph);
    return col * boost;
}

__kernel void lens_shade(
    const int width,
    const int height,
    const float cam_x,
    const float cam_y,
    const float cam_z,
    const int max_steps,
    const float max_distance,
    const float min_step,
    const float hit_distance,
    const int bend_every,
    const float max_bend_step,
    __global const float* inv_view,
    __global float* out_pixels)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    int px = idx % width;
    int py = idx / width;

    float w = (float)width;
    float h = (float)height;
    float aspect = w / h;
    float u = (2.0f * ((float)px + 0.5f) / w - 1.0f) * aspect;
    float v = 1.0f - 2.0f * ((float)py + 0.5f) / h;
    float3 cd = normalize((float3)(u, v, -1.0f));

    /* inv_view is column-major; directions use the rotation part only */
    float3 dir = normalize((float3)(
        inv_view[0] * cd.x + inv_view[4] * cd.y + inv_view[8] * cd.z,
        inv_view[1] * cd.x + inv_view[5] * cd.y + inv_view[9] * cd.z,
        inv_view[2] * cd.x + inv_view[6] * cd.y + inv_view[10] * cd.z));

    float3 origin = (float3)(cam_x, cam_y, cam_z);
    float b = length(cross(origin, dir));

    float3 p = origin;
    float t = 0.0f;
    int captured = 0;
    for (int step = 0; step < max_steps; step++) {
        float dist = length(p) - R_S;
        if (dist < hit_distance) {
            captured = 1;
            break;
        }
        if (t > max_distance) {
            break;
        }
        if (step > 0 && step % bend_every == 0) {
            float3 axis = cross(p, dir);
            float axis_len = length(axis);
            if (axis_len >= EPS) {
                float r = length(p);
                float local_b = axis_len;
                float falloff = clamp(R_PH / fmax(r, EPS), 0.0f, 4.0f);
                float angle = deflection_angle(local_b) * falloff * BEND_GAIN
                            * (float)bend_every / (float)max_steps;
                angle = fmin(angle, max_bend_step);
                dir = rotate_axis(dir, axis, angle);
            }
        }
        float advance = fmax(dist, min_step);
        p += dir * advance;
        t += advance;
    }

    float3 col;
    if (captured) {
        col = (float3)(0.0f);
    } else {
        float3 background = lensed_sky(origin, dir, b);
        float x = (b - B_CRIT) / (0.03f * B_CRIT);
        float ring = exp(-x * x);
        float blend = smoothstep(0.0f, 0.85f, ring);
        col = mix(background, ring_color(b), blend);
    }

    /* gamma 2.0 */
    col = clamp(sqrt(col), 0.0f, 1.0f);

    int base = idx * 4;
    out_pixels[base + 0] = col.x;
    out_pixels[base + 1] = col.y;
    out_pixels[base + 2] = col.z;
    out_pixels[base + 3] = 1.0f;
}`

// NewGPURenderer creates a renderer bound to the first available GPU device,
// falling back to a CPU OpenCL device if none is present.
func NewGPURenderer(width, height int, march lens.MarchConfig) (*GPURenderer, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	var device *cl.Device
	for _, p := range platforms {
		devices, derr := p.GetDevices(cl.DeviceTypeGPU)
		if derr != nil && derr != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			device = devices[0]
			break
		}
	}
	if device == nil {
		for _, p := range platforms {
			devices, derr := p.GetDevices(cl.DeviceTypeCPU)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				device = devices[0]
				break
			}
		}
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	queue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		context.Release()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	program, err := context.CreateProgramWithSource([]string{lensKernelSource})
	if err != nil {
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		program.Release()
		queue.Release()
		context.Release()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	kernel, err := program.CreateKernel("lens_shade")
	if err != nil {
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}

	invViewBuf, err := context.CreateEmptyBuffer(cl.MemReadOnly, 16*int(unsafe.Sizeof(float32(0))))
	if err != nil {
		kernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("allocating view matrix buffer: %w", err)
	}
	pixelBuf, err := context.CreateEmptyBuffer(cl.MemWriteOnly, width*height*4*int(unsafe.Sizeof(float32(0))))
	if err != nil {
		invViewBuf.Release()
		kernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("allocating pixel buffer: %w", err)
	}

	return &GPURenderer{
		context:    context,
		queue:      queue,
		program:    program,
		kernel:     kernel,
		invViewBuf: invViewBuf,
		pixelBuf:   pixelBuf,
		width:      width,
		height:     height,
		march:      march,
		deviceName: device.Name(),
		invView:    make([]float32, 16),
		pixels:     make([]float32, width*height*4),
	}, nil
}

// RenderFrame shades one frame on the device and returns the image
func (g *GPURenderer) RenderFrame(frame lens.FrameContext) (*image.RGBA, error) {
	if frame.Width != g.width || frame.Height != g.height {
		return nil, fmt.Errorf("frame is %dx%d but renderer was built for %dx%d",
			frame.Width, frame.Height, g.width, g.height)
	}

	for i := 0; i < 16; i++ {
		g.invView[i] = float32(frame.InvView[i])
	}
	if _, err := g.queue.EnqueueWriteBufferFloat32(g.invViewBuf, false, 0, g.invView, nil); err != nil {
		return nil, fmt.Errorf("writing view matrix buffer: %w", err)
	}

	if err := g.kernel.SetArgs(
		int32(g.width),
		int32(g.height),
		float32(frame.CameraPosition.X),
		float32(frame.CameraPosition.Y),
		float32(frame.CameraPosition.Z),
		int32(g.march.MaxSteps),
		float32(g.march.MaxDistance),
		float32(g.march.MinStep),
		float32(g.march.HitDistance),
		int32(g.march.BendEvery),
		float32(g.march.MaxBendStep),
		g.invViewBuf,
		g.pixelBuf,
	); err != nil {
		return nil, fmt.Errorf("setting kernel arguments: %w", err)
	}

	global := []int{g.width * g.height}
	if _, err := g.queue.EnqueueNDRangeKernel(g.kernel, nil, global, nil, nil); err != nil {
		return nil, fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := g.queue.EnqueueReadBufferFloat32(g.pixelBuf, true, 0, g.pixels, nil); err != nil {
		return nil, fmt.Errorf("reading pixel buffer: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	for i := 0; i < g.width*g.height; i++ {
		base := i * 4
		img.SetRGBA(i%g.width, i/g.width, color.RGBA{
			R: uint8(255 * g.pixels[base+0]),
			G: uint8(255 * g.pixels[base+1]),
			B: uint8(255 * g.pixels[base+2]),
			A: 255,
		})
	}
	return img, nil
}

// Close releases all device resources
func (g *GPURenderer) Close() {
	if g.pixelBuf != nil {
		g.pixelBuf.Release()
		g.pixelBuf = nil
	}
	if g.invViewBuf != nil {
		g.invViewBuf.Release()
		g.invViewBuf = nil
	}
	if g.kernel != nil {
		g.kernel.Release()
		g.kernel = nil
	}
	if g.program != nil {
		g.program.Release()
		g.program = nil
	}
	if g.queue != nil {
		g.queue.Release()
		g.queue = nil
	}
	if g.context != nil {
		g.context.Release()
		g.context = nil
	}
}

// DeviceName reports the OpenCL device the renderer is bound to
func (g *GPURenderer) DeviceName() string {
	return g.deviceName
}
