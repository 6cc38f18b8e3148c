// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/ecsanywhere/ecsanywhere/internal/assembly"
	"github.com/ecsanywhere/ecsanywhere/internal/cacheutil"
	"github.com/ecsanywhere/ecsanywhere/internal/cdkapp"
	"github.com/ecsanywhere/ecsanywhere/internal/config"
	"github.com/ecsanywhere/ecsanywhere/internal/log"
	"github.com/ecsanywhere/ecsanywhere/internal/meta"
	"github.com/ecsanywhere/ecsanywhere/internal/output"
	"github.com/ecsanywhere/ecsanywhere/internal/util"
)

var synthColumns = []output.Column{
	{Key: "stack", Title: "STACK"},
	{Key: "resources", Title: "RESOURCES"},
	{Key: "outputs", Title: "OUTPUTS"},
	{Key: "snapshot", Title: "SNAPSHOT"},
	{Key: "template", Title: "TEMPLATE"},
}

func synthCommandAction(ctx context.Context, cmd *cli.Command) error {
	settings, err := cdkapp.SettingsFromConfig()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	opts := []cdkapp.Option{cdkapp.WithSettings(settings)}
	if cmd.IsSet("nag") {
		opts = append(opts, cdkapp.WithNagChecks(cmd.Bool("nag")))
	}

	// Under the CDK CLI, CDK_OUTDIR wins and the app picks it up itself.
	outdir := cmd.String("outdir")
	if outdir == "" && os.Getenv("CDK_OUTDIR") == "" {
		outdir = util.DefaultAssemblyDir
	}
	if outdir != "" {
		opts = append(opts, cdkapp.WithOutdir(outdir))
	}

	if cdkCtx, err := config.GetMap("context"); err == nil {
		opts = append(opts, cdkapp.WithContext(cdkCtx))
	}

	app, err := cdkapp.New(opts...)
	if err != nil {
		return err
	}

	dir, err := app.Synth()
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	asm, err := assembly.Load(dir)
	if err != nil {
		return err
	}

	snapshot := !cmd.Bool("no-snapshot") && cacheutil.Enabled()
	if snapshot {
		if err := cacheutil.Purge(purgeHours()); err != nil {
			log.WithError(err).Warnf("snapshot purge failed")
		}
	}

	var rows []map[string]interface{}
	for _, s := range asm.Stacks() {
		saved := false
		if snapshot {
			if err := cacheutil.Save(dir, s.Name, s.Template); err != nil {
				log.WithError(err).Warnf("failed to snapshot %s", s.Name)
			} else {
				saved = true
			}
		}
		rows = append(rows, map[string]interface{}{
			"stack":     s.Name,
			"resources": s.ResourceCount(),
			"outputs":   len(s.Outputs()),
			"snapshot":  saved,
			"template":  s.TemplatePath,
		})
	}

	o := output.FromCommand(cmd)
	o.Footer = fmt.Sprintf("Synthesized to %s", dir)
	if o.Format != output.FormatText {
		o.Footer = ""
	}
	return output.Render(writer(cmd), rows, synthColumns, nil, o)
}

// purgeHours is the snapshot age limit from snapshots.max_age_hours. Zero
// keeps snapshots forever.
func purgeHours() int {
	h, err := config.GetInt("snapshots.max_age_hours", cacheutil.DefaultMaxAgeHours)
	if err != nil {
		log.WithError(err).Warnf("ignoring snapshots.max_age_hours")
		return cacheutil.DefaultMaxAgeHours
	}
	return h
}

func synthCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "synth",
		Usage:     "synthesize the cloud assembly",
		UsageText: "ecsanywhere synth [--outdir DIR] [--nag] [--no-snapshot] [options]",
		Flags: []cli.Flag{
			outdirFlag(),
			nagFlag(),
			noSnapshotFlag(),
		},
		Action: synthCommandAction,
		Meta:   meta,
	}).Build()
}
