// clipmaptool builds planet clipmap meshes and reports on them without a GPU.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/planet-clipmap/internal/clipmap"
	"github.com/Faultbox/planet-clipmap/internal/export"
	"github.com/Faultbox/planet-clipmap/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "verify":
		cmdVerify(args)
	case "export":
		cmdExport(args)
	case "coverage":
		cmdCoverage(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`clipmaptool - planet clipmap mesh utility

Usage:
  clipmaptool <command> [options]

Commands:
  info   [mesh flags]              Show tile, vertex and triangle counts
  verify [mesh flags]              Check shell coverage and index ranges
  export [mesh flags] -o file.obj  Write the mesh as Wavefront OBJ
  coverage [mesh flags] -o file.bmp -px 512
                                   Draw the tile layout and morph edges

Mesh flags:
  -scale 0.5  -resolution 16  -levels 3  -index uint16|uint32  -v

Examples:
  clipmaptool info
  clipmaptool verify -resolution 32 -levels 5 -index uint32
  clipmaptool export -levels 2 -o clipmap.obj
  clipmaptool coverage -levels 4 -o layout.bmp`)
}

// meshFlags registers the mesh configuration flags on fs.
func meshFlags(fs *flag.FlagSet) func() (clipmap.Config, error) {
	scale := fs.Float64("scale", 0.5, "Base scale")
	resolution := fs.Int("resolution", 16, "Quads per tile edge")
	levels := fs.Int("levels", 3, "Number of shells")
	index := fs.String("index", "uint16", "Index format (uint16 or uint32)")
	verbose := fs.Bool("v", false, "Debug logging")

	return func() (clipmap.Config, error) {
		level := "warn"
		if *verbose {
			level = "debug"
		}
		if err := logger.InitWithFileConfig(level, logger.FileConfig{}, os.Stderr); err != nil {
			return clipmap.Config{}, err
		}

		format, err := clipmap.ParseIndexFormat(*index)
		if err != nil {
			return clipmap.Config{}, err
		}
		return clipmap.Config{
			Scale:       *scale,
			Resolution:  *resolution,
			Levels:      *levels,
			IndexFormat: format,
		}, nil
	}
}

func build(fs *flag.FlagSet, args []string, cfgFn func() (clipmap.Config, error)) *clipmap.Geometry {
	fs.Parse(args)

	cfg, err := cfgFn()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	g, err := clipmap.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return g
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cfgFn := meshFlags(fs)
	g := build(fs, args, cfgFn)
	defer logger.Sync()

	cfg := g.Config
	b := g.Bounds()
	fmt.Printf("Scale:        %g\n", cfg.Scale)
	fmt.Printf("Resolution:   %d\n", cfg.Resolution)
	fmt.Printf("Levels:       %d\n", cfg.Levels)
	fmt.Printf("Finest tile:  %g\n", clipmap.FinestScale(cfg.Scale, cfg.Levels))
	fmt.Printf("Tiles:        %d\n", g.TileCount())
	fmt.Printf("Vertices:     %d (%s, max %d)\n", g.VertexCount(), cfg.IndexFormat, cfg.IndexFormat.MaxVertices())
	fmt.Printf("Triangles:    %d\n", g.TriangleCount())
	fmt.Printf("Bounds:       [%g, %g] x [%g, %g]\n", b.Min[0], b.Max[0], b.Min[1], b.Max[1])

	posBytes := len(g.Buffers.Positions) * 4
	scaleBytes := len(g.Buffers.Scales) * 4
	indexBytes := len(g.Buffers.Indices) * cfg.IndexFormat.ByteSize()
	fmt.Printf("GPU memory:   %.2f KB (positions %d, scales %d, indices %d bytes)\n",
		float64(g.Buffers.ByteSize())/1024, posBytes, scaleBytes, indexBytes)
}

func cmdVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	cfgFn := meshFlags(fs)
	g := build(fs, args, cfgFn)
	defer logger.Sync()

	failed := false
	for _, r := range clipmap.Verify(g) {
		if r.Err != nil {
			fmt.Printf("FAIL  %s: %v\n", r.Name, r.Err)
			failed = true
			continue
		}
		fmt.Printf("ok    %s\n", r.Name)
	}

	if failed {
		os.Exit(1)
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cfgFn := meshFlags(fs)
	output := fs.String("o", "clipmap.obj", "Output file")
	g := build(fs, args, cfgFn)
	defer logger.Sync()

	writeFile(*output, func(w io.Writer) error { return export.WriteOBJ(w, g) })
	fmt.Printf("Wrote %d vertices, %d triangles to %s\n", g.VertexCount(), g.TriangleCount(), *output)
}

func cmdCoverage(args []string) {
	fs := flag.NewFlagSet("coverage", flag.ExitOnError)
	cfgFn := meshFlags(fs)
	output := fs.String("o", "coverage.bmp", "Output file")
	px := fs.Int("px", 512, "Image size in pixels")
	g := build(fs, args, cfgFn)
	defer logger.Sync()

	writeFile(*output, func(w io.Writer) error { return export.WriteCoverageBMP(w, g, *px) })
	fmt.Printf("Wrote %dx%d coverage map of %d tiles to %s\n", *px, *px, g.TileCount(), *output)
}

func writeFile(path string, write func(io.Writer) error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := write(f); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
