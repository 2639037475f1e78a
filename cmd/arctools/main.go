// Package main provides a command-line tool for inspecting data.arc files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/goopsie/dataArcTools/pkg/arc"
)

var (
	mode           string
	arcPath        string
	decompressNode bool
)

func init() {
	flag.StringVar(&mode, "mode", "inspect", "Operation mode: inspect")
	flag.StringVar(&arcPath, "arc", "", "Path to the data.arc file")
	flag.BoolVar(&decompressNode, "decompress-node", false, "Attempt zstd decoding of a compressed node section")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := validateFlags(); err != nil {
		flag.Usage()
		return err
	}

	switch mode {
	case "inspect":
		return runInspect()
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
}

func validateFlags() error {
	if arcPath == "" {
		return fmt.Errorf("arc path is required")
	}
	return nil
}

func runInspect() error {
	f, err := os.Open(arcPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	var opts []arc.ParseOption
	if decompressNode {
		opts = append(opts, arc.WithNodeDecompression(true))
	}

	parsed, err := arc.Parse(f, opts...)
	if errors.Is(err, arc.ErrNotArcFormat) {
		return fmt.Errorf("%s is not a data.arc file", arcPath)
	}
	if err != nil {
		return fmt.Errorf("parse archive: %w", err)
	}

	if err := parsed.WriteReport(os.Stdout); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
