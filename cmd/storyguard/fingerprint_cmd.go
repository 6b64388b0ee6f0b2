package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Uchiha-Network/Story-Guard/internal/infra/fingerprint"
)

func runFingerprint(args []string) int {
	fs := flag.NewFlagSet("fingerprint", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var inPath string
	var outPath string
	fs.StringVar(&inPath, "in", "", "image file to fingerprint")
	fs.StringVar(&outPath, "out", "", "output path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if inPath == "" {
		fmt.Fprintln(os.Stderr, "fingerprint requires --in")
		return 1
	}

	raw, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read image: %v\n", err)
		return 1
	}
	fp, err := fingerprint.NewGenerator().Generate(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fingerprint: %v\n", err)
		return 1
	}

	payload, err := json.MarshalIndent(map[string]any{
		"perceptualHash": fp.PerceptualHash,
		"contentHash":    fp.ContentHash,
		"width":          fp.Width,
		"height":         fp.Height,
		"fileSize":       fp.FileSize,
	}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		return 1
	}
	if err := writeOutput(outPath, payload); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}
