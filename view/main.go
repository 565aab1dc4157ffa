// Interactive viewer: fly the camera around the hole with WASD and the
// mouse while frames render live on the CPU worker pool (or an OpenCL
// device when built with -tags opencl and run with -opencl).
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/DCha2001/blackhole/pkg/core"
	"github.com/DCha2001/blackhole/pkg/lens"
	"github.com/DCha2001/blackhole/pkg/renderer"
)

const (
	moveSpeed   = 0.08
	keyLookRate = 0.03
	mouseLook   = 0.004
	dollyRate   = 0.5
	discRadius  = 3.0
)

var (
	widthFlag  = flag.Int("width", 480, "internal render width in pixels")
	heightFlag = flag.Int("height", 300, "internal render height in pixels")
	scaleFlag  = flag.Int("scale", 2, "window scale factor")
	debugFlag  = flag.Bool("debug", false, "show FPS and camera overlay")
	openclFlag = flag.Bool("opencl", false, "render frames on an OpenCL device")
	discFlag   = flag.Bool("disc", false, "draw the decorative accretion disc outline")
)

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

// nopLogger discards renderer progress output; per-frame log lines at
// interactive frame rates would swamp the terminal
type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}

type Game struct {
	camera *renderer.FlyCamera
	cpu    *renderer.Renderer
	gpu    *renderer.GPURenderer
	disc   *renderer.DiscMesh

	width, height int
	frame         *image.RGBA
	stats         renderer.RenderStats

	lastCursorX int
	lastCursorY int
	dragging    bool
}

func newGame(width, height int) *Game {
	g := &Game{
		camera: renderer.NewFlyCamera(core.NewVec3(0, 0.4, 6)),
		cpu:    renderer.NewRenderer(width, height, renderer.DefaultConfig(), nopLogger{}),
		disc:   renderer.NewDiscMesh(discRadius, 100),
		width:  width,
		height: height,
	}

	if *openclFlag {
		gpu, err := renderer.NewGPURenderer(width, height, lens.DefaultMarchConfig())
		if err != nil {
			log.Printf("OpenCL unavailable, falling back to CPU: %v", err)
		} else {
			log.Printf("OpenCL renderer enabled (device: %s)", gpu.DeviceName())
			g.gpu = gpu
		}
	}

	return g
}

func (g *Game) Update() error {
	g.handleMovement()
	g.handleLook()

	frame := g.camera.Frame(g.width, g.height)
	if g.gpu != nil {
		img, err := g.gpu.RenderFrame(frame)
		if err != nil {
			log.Printf("OpenCL frame failed, falling back to CPU: %v", err)
			g.gpu.Close()
			g.gpu = nil
		} else {
			g.frame = img
			return nil
		}
	}

	g.frame, g.stats = g.cpu.RenderFrame(frame)
	return nil
}

func (g *Game) handleMovement() {
	forward, right := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		forward += moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		forward -= moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		right -= moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		right += moveSpeed
	}
	up := 0.0
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		up += moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		up -= moveSpeed
	}
	if forward != 0 || right != 0 || up != 0 {
		g.camera.Move(forward, right, up)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.camera.Dolly(wy * dollyRate)
	}
}

func (g *Game) handleLook() {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camera.Rotate(-keyLookRate, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camera.Rotate(keyLookRate, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camera.Rotate(0, keyLookRate)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camera.Rotate(0, -keyLookRate)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.lastCursorX, g.lastCursorY = ebiten.CursorPosition()
		g.dragging = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging {
		cx, cy := ebiten.CursorPosition()
		g.camera.Rotate(float64(cx-g.lastCursorX)*mouseLook, float64(g.lastCursorY-cy)*mouseLook)
		g.lastCursorX, g.lastCursorY = cx, cy
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame != nil {
		screen.WritePixels(g.frame.Pix)
	}

	if *discFlag {
		g.drawDisc(screen)
	}

	if *debugFlag {
		pos := g.camera.Position
		msg := fmt.Sprintf("FPS: %.1f\nPos: (%.2f, %.2f, %.2f)\nCaptured: %d / %d",
			ebiten.ActualFPS(), pos.X, pos.Y, pos.Z,
			g.stats.CapturedPixels, g.stats.TotalPixels)
		ebitenutil.DebugPrint(screen, msg)
	}
}

// drawDisc projects the fan mesh through the camera and draws it as
// translucent triangles over the rendered frame.
func (g *Game) drawDisc(screen *ebiten.Image) {
	view := g.camera.ViewMatrix()
	aspect := float64(g.width) / float64(g.height)

	projected := make([][2]float32, len(g.disc.Vertices))
	visible := make([]bool, len(g.disc.Vertices))
	for i, v := range g.disc.Vertices {
		cam := view.Mul4x1([4]float64{v.X, v.Y, v.Z, 1})
		if cam[2] >= -0.01 {
			continue
		}
		u := cam[0] / -cam[2]
		w := cam[1] / -cam[2]
		projected[i] = [2]float32{
			float32(((u / aspect) + 1) / 2 * float64(g.width)),
			float32((1 - w) / 2 * float64(g.height)),
		}
		visible[i] = true
	}

	whiteSub := whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	var vertices []ebiten.Vertex
	var indices []uint16
	for _, tri := range g.disc.Triangles() {
		if !visible[tri[0]] || !visible[tri[1]] || !visible[tri[2]] {
			continue
		}
		base := uint16(len(vertices))
		for _, idx := range tri {
			vertices = append(vertices, ebiten.Vertex{
				DstX:   projected[idx][0],
				DstY:   projected[idx][1],
				SrcX:   1,
				SrcY:   1,
				ColorR: 1.0,
				ColorG: 0.7,
				ColorB: 0.4,
				ColorA: 0.25,
			})
		}
		indices = append(indices, base, base+1, base+2)
	}
	if len(indices) > 0 {
		screen.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{})
	}
}

func (g *Game) Layout(_, _ int) (int, int) { return g.width, g.height }

func main() {
	flag.Parse()

	width, height := *widthFlag, *heightFlag
	if width <= 0 || height <= 0 {
		log.Fatalf("invalid resolution %dx%d", width, height)
	}

	g := newGame(width, height)
	defer g.cpu.Close()
	if g.gpu != nil {
		defer g.gpu.Close()
	}

	ebiten.SetWindowSize(width*(*scaleFlag), height*(*scaleFlag))
	ebiten.SetWindowTitle("Black Hole Lensing Viewer")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
