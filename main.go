package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/DCha2001/blackhole/pkg/core"
	"github.com/DCha2001/blackhole/pkg/lens"
	"github.com/DCha2001/blackhole/pkg/renderer"
)

func main() {
	// Parse command line flags
	width := flag.Int("width", 1200, "Output image width in pixels")
	height := flag.Int("height", 800, "Output image height in pixels")
	distance := flag.Float64("distance", 5.0, "Camera distance from the hole, in horizon radii")
	policy := flag.String("bend", "integrated", "Bending policy: 'integrated' or 'once'")
	workers := flag.Int("workers", 0, "Number of render workers (0 = CPU count)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Black Hole Lensing Renderer")
		fmt.Println("Usage: blackhole [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Bending policies:")
		fmt.Println("  integrated - re-bend the ray continuously while marching")
		fmt.Println("  once       - apply the full deflection up front, then march straight")
		fmt.Println()
		fmt.Println("Output will be saved to output/<policy>/render_<timestamp>.png")
		return
	}

	fmt.Println("Starting black hole render...")

	config := renderer.DefaultConfig()
	config.NumWorkers = *workers

	switch *policy {
	case "once":
		config.March.Policy = lens.BendOnce
	case "integrated":
		config.March.Policy = lens.BendDuringMarch
	default:
		fmt.Printf("Unknown bending policy: %s. Using integrated.\n", *policy)
		*policy = "integrated"
	}

	// Create output directory for this policy
	outputDir := filepath.Join("output", *policy)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		return
	}

	camera := renderer.NewFlyCamera(core.NewVec3(0, 0, *distance))
	r := renderer.NewRenderer(*width, *height, config, renderer.NewDefaultLogger())
	defer r.Close()

	startTime := time.Now()
	img, stats := r.RenderFrame(camera.Frame(*width, *height))
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Pixels: %d total, %d captured, %d escaped\n",
		stats.TotalPixels, stats.CapturedPixels, stats.EscapedPixels)
	fmt.Printf("March steps per pixel: %.1f average\n", stats.AverageSteps)

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		return
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		return
	}

	fmt.Printf("Render saved as %s\n", filename)
}
