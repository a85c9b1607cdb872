// Command texconv converts a texture from any format the texture
// package can decode (PNG, JPEG, TGA, BMP, TIFF) to lossless WebP.
package main

import (
	"flag"
	"log"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cpuforge/raster3d"
	"github.com/cpuforge/raster3d/texture"
)

func main() {
	var (
		input   = flag.String("input", "", "path to the source texture")
		output  = flag.String("output", "", "path to write the converted WebP texture")
		logFile = flag.String("log-file", "", "rotating log file for conversion diagnostics (default: diagnostics are discarded)")
	)
	flag.Parse()

	if *logFile != "" {
		w := &lumberjack.Logger{Filename: *logFile, MaxSize: 32, MaxBackups: 3, MaxAge: 14}
		raster3d.SetLogger(slog.New(slog.NewJSONHandler(w, nil)))
	}

	if *input == "" || *output == "" {
		log.Fatal("texconv: both -input and -output are required")
	}

	plane, err := texture.DecodeFile(*input)
	if err != nil {
		log.Fatalf("texconv: decoding %s: %v", *input, err)
	}

	if err := texture.SaveWebP(*output, plane); err != nil {
		log.Fatalf("texconv: writing %s: %v", *output, err)
	}

	log.Printf("texconv: wrote %s (%dx%d)\n", *output, plane.Width(), plane.Height())
}
