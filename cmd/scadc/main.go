// Command scadc compiles a .scad file to STL or OBJ.
//
// Usage:
//
//	scadc [options] <input.scad>
//
// Examples:
//
//	scadc model.scad                   # Compile to stdout as binary STL
//	scadc -o model.stl model.scad      # Compile to a binary STL file
//	scadc -fmt obj -o model.obj model.scad
//	scadc -fmt stl-ascii -o model.stl model.scad
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gocad/scadcore/config"
	"github.com/gocad/scadcore/geometry"
	"github.com/gocad/scadcore/rpc"
)

var (
	output      = flag.String("o", "", "output file (default: stdout)")
	format      = flag.String("fmt", "stl", "output format: stl, stl-ascii, obj")
	configPath  = flag.String("config", "", "path to a YAML config file")
	versionFlag = flag.Bool("version", false, "print version")
)

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("scadc version %s\n", version())
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	resp := rpc.Evaluate(context.Background(), rpc.Request{
		Code:     string(source),
		Language: rpc.LanguageOpenSCAD,
	}, rpc.Options{Config: cfg, Reporter: rpc.NoopReporter{}})

	for _, e := range resp.Errors {
		fmt.Fprintf(os.Stderr, "%s: %s [%s]\n", e.Severity, e.Message, e.Code)
	}
	if !resp.Success || resp.Geometry == nil {
		fmt.Fprintln(os.Stderr, "Error: compilation produced no geometry")
		os.Exit(1)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := writeGeometry(out, resp.Geometry, *format); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		fmt.Printf("Successfully compiled %s to %s\n", inputPath, *output)
	}
}

func writeGeometry(f *os.File, g *geometry.Geometry, format string) error {
	switch format {
	case "stl":
		return geometry.WriteSTLBinary(f, g)
	case "stl-ascii":
		return geometry.WriteSTLASCII(f, g, "scadc")
	case "obj":
		return geometry.WriteOBJ(f, g)
	default:
		return fmt.Errorf("unknown format %q (want stl, stl-ascii, or obj)", format)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: scadc [options] <input.scad>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  scadc model.scad                   Compile to stdout as binary STL\n")
	fmt.Fprintf(os.Stderr, "  scadc -o model.stl model.scad      Compile to a binary STL file\n")
	fmt.Fprintf(os.Stderr, "  scadc -fmt obj -o model.obj model.scad\n")
}
