// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gardener/armsingleton/pkg/core/config"
	slogutils "github.com/gardener/armsingleton/pkg/utils/slog"
	"github.com/gardener/armsingleton/pkg/version"
)

func main() {
	app := &cli.App{
		Name:                 "armsingleton",
		Version:              version.Version,
		EnableBashCompletion: true,
		Usage:                "command-line tool for managing singleton tracked resources",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enables debug mode, if set",
				Value: false,
			},
			&cli.StringFlag{
				Name:     "config",
				Usage:    "path to config file",
				Required: true,
				Aliases:  []string{"file"},
				EnvVars:  []string{"ARMSINGLETON_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "Azure Resource Manager endpoint to use",
				EnvVars: []string{"ARMSINGLETON_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "api-version",
				Usage:   "api-version to send with each request",
				EnvVars: []string{"ARMSINGLETON_API_VERSION"},
			},
		},
		Before: func(ctx *cli.Context) error {
			configFile := ctx.String("config")
			conf, err := config.Parse(configFile)
			if err != nil {
				return fmt.Errorf("Cannot parse config: %w", err)
			}

			// Overrides from flags/options
			if ctx.IsSet("debug") {
				conf.Debug = ctx.Bool("debug")
			}

			if ctx.IsSet("endpoint") {
				conf.Azure.Endpoint = ctx.String("endpoint")
			}

			if ctx.IsSet("api-version") {
				conf.Azure.APIVersion = ctx.String("api-version")
			}

			if conf.Debug {
				conf.Logging.Level = string(slogutils.LevelDebug)
			}

			logger, err := slogutils.NewFromConfig(os.Stderr, conf.Logging)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ctx.Context = context.WithValue(ctx.Context, configKey{}, conf)
			return nil
		},
		Commands: []*cli.Command{
			NewSingletonCommand(),
			NewExporterCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
