package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pccui/commerce-sdk/cmd/sdkgen/commands"
)

// Version info for the sdkgen tool
// These variables are injected at build time via ldflags
var (
	// Version is the current version of the sdkgen tool
	Version = "dev"

	// BuildTime is the time at which the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit that was compiled
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := commands.NewRootCmd(commands.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
