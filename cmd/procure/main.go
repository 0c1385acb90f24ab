package main

import (
	"fmt"
	"os"

	"github.com/iudanet/procure/internal/client/cli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	root := cli.NewRootCmd(Version)
	root.SetVersionTemplate(fmt.Sprintf(
		"Procure Client\nVersion:    %s\nBuild Date: %s\nGit Commit: %s\n",
		Version, BuildDate, GitCommit))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
