package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "tractstack-hero",
		Usage:           "hero block editor backend and renderer",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "variants", Sources: cli.EnvVars("VARIANTS_FILE"), Usage: "load variant definitions from `FILE` (YAML)"},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Runs the HTTP API, live preview and published block server",
				Action: runServe,
			},
			{
				Name:  "render",
				Usage: "Renders one attribute snapshot without storing it",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "variant", Usage: "variant `NAME`, default variant when empty"},
					&cli.StringFlag{Name: "attrs", Value: "{}", Usage: "attributes as JSON, or @`FILE` to read them from a file"},
					&cli.StringFlag{Name: "mode", Value: modeStatic, Usage: "output `MODE`: static, editor or presentation"},
				},
				Action: runRender,
			},
			{
				Name:      "hash-password",
				Usage:     "Prints the bcrypt hash to use as EDITOR_PASSWORD_HASH",
				ArgsUsage: "PASSWORD",
				Action:    runHashPassword,
			},
			{
				Name:  "variants",
				Usage: "Lists variants, or prints the inspector schema of one",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "inspector", Usage: "print the inspector schema of variant `NAME`"},
				},
				Action: runVariants,
			},
		},
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n*** ERROR ***\n\n%v\n", err)
		os.Exit(1)
	}
}
