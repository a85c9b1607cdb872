// Command snapshot loads a map file, renders every model it contains
// with a fixed orthographic camera, and writes the result to a PNG.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cpuforge/raster3d"
	"github.com/cpuforge/raster3d/asset"
	"github.com/cpuforge/raster3d/depthbuf"
	"github.com/cpuforge/raster3d/mesh"
	"github.com/cpuforge/raster3d/pool"
	"github.com/cpuforge/raster3d/raster"
	"github.com/cpuforge/raster3d/texture"
)

func main() {
	var (
		input   = flag.String("input", "", "path to the map file to render")
		output  = flag.String("output", "snapshot.png", "path to write the rendered PNG")
		width   = flag.Int("width", 800, "framebuffer width")
		height  = flag.Int("height", 600, "framebuffer height")
		logFile = flag.String("log-file", "", "rotating log file for pipeline diagnostics (default: diagnostics are discarded)")
	)
	flag.Parse()

	if *logFile != "" {
		w := &lumberjack.Logger{Filename: *logFile, MaxSize: 32, MaxBackups: 3, MaxAge: 14}
		raster3d.SetLogger(slog.New(slog.NewJSONHandler(w, nil)))
	}

	if *input == "" {
		log.Fatal("snapshot: -input is required")
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("snapshot: opening %s: %v", *input, err)
	}
	m, err := asset.LoadMap(f, asset.CodecNone)
	f.Close()
	if err != nil {
		log.Fatalf("snapshot: loading map: %v", err)
	}

	depth := depthbuf.New(*width, *height)

	p := pool.NewPool()
	defer p.Close()

	for _, model := range m.Models {
		if err := renderModel(p, m, model, depth, *width, *height); err != nil {
			log.Fatalf("snapshot: rendering model: %v", err)
		}
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("snapshot: creating %s: %v", *output, err)
	}
	defer out.Close()
	if err := png.Encode(out, texture.ToImage(depth.Color())); err != nil {
		log.Fatalf("snapshot: encoding PNG: %v", err)
	}

	log.Printf("snapshot: wrote %s (%dx%d, %d models)\n", *output, *width, *height, len(m.Models))
}

func renderModel(
	p *pool.Pool,
	m *asset.Map,
	model *asset.Model,
	depth *depthbuf.Buffer,
	width, height int,
) error {
	r := raster.New[asset.Point, asset.PointSlope](p)

	r.Transform = func(pt asset.Point) asset.Point {
		pt.Position = model.Transform.MulVec4(pt.Position)
		return pt
	}
	r.Project = func(pt asset.Point) asset.Point { return pt }
	r.Slope = asset.NewPointSlope
	r.Tesselation = func(a, b, c asset.Point, emit func(i, j, k asset.Point) error) error {
		return emit(a, b, c)
	}
	r.Scissor = func() (int, int, int, int) { return 0, width - 1, 0, height - 1 }

	scale := float64(width)
	if height < width {
		scale = float64(height)
	}
	scale /= 2

	r.Screen = func(pt asset.Point) (int, int) {
		x := int(pt.Position.X*scale + float64(width)/2)
		y := int(-pt.Position.Y*scale + float64(height)/2)
		return x, y
	}

	r.Painter = func(x, y int, pt asset.Point) error {
		tex, err := m.Texture(pt.TextureIndex)
		if err != nil {
			return err
		}
		sampler := raster3d.NewSampler[raster3d.Pixel, raster3d.PixelSlope](tex, raster3d.NewPixelSlope)
		sample := sampler.At(pt.Sampler.X, pt.Sampler.Y)

		shaded := raster3d.Pixel{
			R: modulate(sample.R, pt.Color.X),
			G: modulate(sample.G, pt.Color.Y),
			B: modulate(sample.B, pt.Color.Z),
			A: sample.A,
		}

		// Depth test and color write happen together under the
		// fragment's lock: computing shaded color ahead of time and
		// handing it to TestAndSet keeps a winning fragment's color
		// from ever being overwritten by a losing fragment's color
		// written after the depth compare but before its own write.
		_, err = depth.TestAndSet(x, y, pt.Position.Z, shaded)
		return err
	}

	return mesh.Draw(model.Mesh(), r)
}

func modulate(channel uint8, factor float64) uint8 {
	v := float64(channel) * factor
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
