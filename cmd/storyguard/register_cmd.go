package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Uchiha-Network/Story-Guard/internal/infra/fingerprint"
	"github.com/Uchiha-Network/Story-Guard/internal/infra/jsonstore"
	"github.com/Uchiha-Network/Story-Guard/internal/infra/registrar"
	"github.com/Uchiha-Network/Story-Guard/internal/usecase"
)

func runRegister(args []string) int {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var inPath string
	var name string
	var creator string
	var license string
	var description string
	var tags string
	var storePath string
	var outPath string

	fs.StringVar(&inPath, "in", "", "image file to register")
	fs.StringVar(&name, "name", "", "image name")
	fs.StringVar(&creator, "creator", "", "creator name")
	fs.StringVar(&license, "license", "", "license classification")
	fs.StringVar(&description, "description", "", "description")
	fs.StringVar(&tags, "tags", "", "comma-separated tags")
	fs.StringVar(&storePath, "store", "data/db.json", "store document path")
	fs.StringVar(&outPath, "out", "", "output path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if inPath == "" {
		fmt.Fprintln(os.Stderr, "register requires --in")
		return 1
	}
	raw, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read image: %v\n", err)
		return 1
	}

	store, err := jsonstore.Open(storePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		return 1
	}
	defer store.Close()

	uc := &usecase.RegisterAsset{
		Assets:    store,
		Prints:    fingerprint.NewGenerator(),
		Registrar: registrar.NewMock(),
	}
	resp, err := uc.Execute(context.Background(), usecase.RegisterAssetRequest{
		ImageName:    name,
		CreatorName:  creator,
		LicenseType:  license,
		Description:  description,
		Tags:         splitTags(tags),
		ContentBytes: raw,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "register: %v\n", err)
		return 1
	}

	payload, err := json.MarshalIndent(resp.Asset, "", "  ")
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

func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
