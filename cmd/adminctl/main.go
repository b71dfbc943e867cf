// Command adminctl holds operator chores: publishing sanitized sample data
// and minting admin tokens.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "adminctl",
		Usage: "castle-admin operator tools",
		Commands: []*cli.Command{
			sanitizeCommand(),
			tokenCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "adminctl:", err)
		os.Exit(1)
	}
}
