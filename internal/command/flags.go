// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/ecsanywhere/ecsanywhere/internal/config"
)

// NewGlobalFlags returns the rendering flags every subcommand carries. Each
// also reads ns.<flag> and then <flag> from the config file.
func NewGlobalFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: configSources(ns, "color"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw)",
			Value:   "text",
			Sources: configSources(ns, "output"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:    "padding",
			Usage:   "spaces between text columns",
			Value:   2,
			Sources: configSources(ns, "padding"),
			Validator: func(value int) error {
				return FlagValidators(value, PaddingValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort by (-desc, !case)",
			Sources: configSources(ns, "sort"),
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: configSources(ns, "titles"),
		},
	}
}

// configSources chains the optional env vars with the namespaced and then the
// global key of the loaded config file.
func configSources(ns, name string, envs ...string) cli.ValueSourceChain {
	chain := cli.EnvVars(envs...)
	path := config.Config.Source
	if path == "" {
		return chain
	}

	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
	return chain
}

func outdirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "outdir",
		Usage:   "cloud assembly output directory (default cdk.out, or $CDK_OUTDIR)",
		Sources: configSources("synth", "outdir", "ECSA_OUTDIR"),
	}
}

func nagFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "nag",
		Usage:   "run the cdk-nag AwsSolutions checks",
		Sources: configSources("synth", "nag", "ECSA_NAG"),
	}
}

func noSnapshotFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "no-snapshot",
		Usage: "do not store template snapshots for diff",
	}
}

func filterFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "comma-separated template sections to ignore",
		Value:   "Metadata,Rules,Parameters",
		Sources: configSources("diff", "filter"),
	}
}

func bucketFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "bucket",
		Aliases: []string{"b"},
		Usage:   "S3 bucket to publish templates to",
		Sources: configSources("publish", "bucket", "ECSA_BUCKET"),
	}
}

func prefixFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "prefix",
		Usage:   "S3 key prefix for published templates",
		Sources: configSources("publish", "prefix", "ECSA_PREFIX"),
	}
}

func profileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "profile",
		Usage:   "AWS shared config profile",
		Sources: configSources("publish", "profile"),
	}
}

func regionFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "region",
		Usage:   "AWS region override",
		Sources: configSources("publish", "region"),
	}
}

func retriesFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "retries",
		Usage:   "maximum attempts per upload (0 uses the SDK default)",
		Sources: configSources("publish", "retries"),
		Validator: func(n int) error {
			if n < 0 {
				return fmt.Errorf("retries must not be negative: %d", n)
			}
			return nil
		},
	}
}

func endpointFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "endpoint",
		Usage:   "S3-compatible endpoint URL",
		Sources: configSources("publish", "endpoint", "ECSA_S3_ENDPOINT"),
		Hidden:  true,
	}
}
