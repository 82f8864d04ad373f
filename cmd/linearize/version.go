package main

import (
	"fmt"
)

// Set at build time with -ldflags "-X main.BuildTag=... -X main.BuildCommit=..."
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

func versionString() string {
	return fmt.Sprintf("%s (commit: %s)", BuildTag, BuildCommit)
}

func versionCommand(ui UI) error {
	_, err := fmt.Fprintf(ui.Out, "linearize version %s\n", versionString())
	return err
}
