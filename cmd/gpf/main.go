package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "gpf",
		Usage: "Find fuel station prices for a postal code",
		Commands: []*cli.Command{
			serveCommand(),
			searchCommand(),
			locateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
