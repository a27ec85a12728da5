// predict - command line front end for the weather prediction backend
//
// Usage:
//
//	predict predict --city Berlin [--json] [--chart]
//	predict health
//	predict model-info
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "predict",
		Usage:     "Next-day temperature predictions from the command line",
		Version:   fmt.Sprintf("%s (commit: %s)", version, commit),
		Writer:    stdout,
		ErrWriter: stderr,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a config file (default: search ., ./config, $HOME/.weather-predictor)",
				EnvVars: []string{"WEATHER_PREDICTOR_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "api-base",
				Usage: "Prediction backend base URL, overrides predictor.baseURL",
			},
		},

		Commands: []*cli.Command{
			predictCommand(),
			healthCommand(),
			modelInfoCommand(),
		},
	}
}
