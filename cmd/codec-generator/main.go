// Package main provides the CLI entrypoint for codec-generator.
//
// codec-generator compiles component and type descriptors into Go codecs:
//   - reads descriptors from YAML schema files or annotated Go packages
//   - checks field ids, wire markers and declared container types
//   - emits full-state and partial-update structs with their wire codecs
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"codec-generator/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.NewRootCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}

	os.Exit(cli.ExitCode(err))
}
