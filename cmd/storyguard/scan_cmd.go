package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Uchiha-Network/Story-Guard/internal/domain"
	"github.com/Uchiha-Network/Story-Guard/internal/infra/fingerprint"
	"github.com/Uchiha-Network/Story-Guard/internal/infra/jsonstore"
	"github.com/Uchiha-Network/Story-Guard/internal/infra/source"
	"github.com/Uchiha-Network/Story-Guard/internal/usecase"
)

func runScan(args []string) int {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var target string
	var candidatesPath string
	var threshold int
	var storePath string
	var outPath string

	fs.StringVar(&target, "target", "", "target url to scan")
	fs.StringVar(&candidatesPath, "candidates", "", "candidates JSON file (array of {locator, fingerprint})")
	fs.IntVar(&threshold, "threshold", usecase.DefaultMatchThreshold, "similarity threshold")
	fs.StringVar(&storePath, "store", "data/db.json", "store document path")
	fs.StringVar(&outPath, "out", "", "output path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if target == "" {
		fmt.Fprintln(os.Stderr, "scan requires --target")
		return 1
	}

	var candidates []domain.Candidate
	if candidatesPath != "" {
		raw, err := os.ReadFile(candidatesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read candidates: %v\n", err)
			return 1
		}
		if err := json.Unmarshal(raw, &candidates); err != nil {
			fmt.Fprintf(os.Stderr, "decode candidates: %v\n", err)
			return 1
		}
	}

	store, err := jsonstore.Open(storePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		return 1
	}
	defer store.Close()

	uc := &usecase.ScanPipeline{
		Assets:     store,
		Violations: store,
		Scans:      store,
		Match:      fingerprint.NewMatcher(),
		Source:     source.NewStatic(nil),
		Threshold:  threshold,
	}
	result, err := uc.Execute(context.Background(), usecase.ScanRequest{
		Target:     target,
		Candidates: candidates,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan: %v\n", err)
		return 1
	}

	payload, err := json.MarshalIndent(map[string]any{
		"scanId":             result.Record.ID,
		"target":             result.Record.URL,
		"candidatesExamined": result.Record.ImagesFound,
		"violationsDetected": result.Record.ViolationsDetected,
		"violations":         result.Violations,
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
