package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) < 2 {
		usage(args)
		return 1
	}

	switch args[1] {
	case "fingerprint":
		return runFingerprint(args[2:])
	case "register":
		return runRegister(args[2:])
	case "scan":
		return runScan(args[2:])
	}

	usage(args)
	return 1
}

func usage(args []string) {
	name := "storyguard"
	if len(args) > 0 && args[0] != "" {
		name = filepath.Base(args[0])
	}
	fmt.Fprintf(os.Stderr, "usage:\n")
	fmt.Fprintf(os.Stderr, "  %s fingerprint --in <image> [--out <file>]\n", name)
	fmt.Fprintf(os.Stderr, "  %s register --in <image> --name <name> --creator <creator> --license <license> [--description <text>] [--tags <a,b,c>] [--store <db.json>] [--out <file>]\n", name)
	fmt.Fprintf(os.Stderr, "  %s scan --target <url> [--candidates <candidates.json>] [--threshold <n>] [--store <db.json>] [--out <file>]\n", name)
}
