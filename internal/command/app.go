// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ecsanywhere/ecsanywhere/internal/config"
	"github.com/ecsanywhere/ecsanywhere/internal/log"
	"github.com/ecsanywhere/ecsanywhere/internal/meta"
	"github.com/ecsanywhere/ecsanywhere/internal/util"
)

// assemblyCommands take an optional DIR[::STACK] as their first argument.
var assemblyCommands = []string{"diff", "list", "outputs", "publish", "register"}

// InitApp builds the root command for args.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// args[1] is the subcommand and doubles as the config namespace. It could
	// be -h/--help, so ignore it if it looks like a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	config.Config.Namespace = ns
	if _, err := config.Load(); err != nil {
		log.Debugf("config not loaded: %v", err)
	}

	m := meta.Meta{
		Args:        args,
		Config:      config.Config,
		Context:     ctx,
		StartingDir: sd,
	}

	if slices.Contains(assemblyCommands, ns) && len(args) > 2 && util.LooksLikeAssemblySpec(args[2]) {
		dir, stack, err := util.ParseAssemblyDir(args[2])
		if err != nil {
			return nil, fmt.Errorf("failed to parse assembly dir (%s): %w", args[2], err)
		}
		m.AssemblySpec = meta.AssemblySpec{Dir: dir, Stack: stack}
	}

	app := &cli.Command{
		Name:  "ecsanywhere",
		Usage: "ECS Anywhere infrastructure and pipeline, as a CDK app",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "ecsanywhere version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		synthCommandBuilder(m),
		listCommandBuilder(m),
		outputsCommandBuilder(m),
		registerCommandBuilder(m),
		diffCommandBuilder(m),
		publishCommandBuilder(m),
		completionCommandBuilder(m),
	)

	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

// CommandBuilder assembles a subcommand with the shared metadata, global
// flags and validators.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    cli.ActionFunc
	Meta      meta.Meta
	Header    string
}

// Build returns the configured subcommand.
func (b *CommandBuilder) Build() *cli.Command {
	md := map[string]any{"meta": b.Meta}
	if b.Header != "" {
		md["header"] = b.Header
	}
	return &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		Metadata:  md,
		Flags:     append(b.Flags, NewGlobalFlags(b.Name)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: b.Action,
	}
}
