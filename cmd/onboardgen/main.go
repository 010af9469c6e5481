package main

import (
	"os"

	"github.com/forgeapps/onboardgen/internal/cli/cmd"
)

// Populated at build time via -ldflags.
var (
	version   = "dev"
	gitCommit = ""
	buildDate = ""
)

func main() {
	cmd.SetVersionInfo(version, gitCommit, buildDate)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
