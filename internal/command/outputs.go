// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v3"

	"github.com/ecsanywhere/ecsanywhere/internal/assembly"
	"github.com/ecsanywhere/ecsanywhere/internal/meta"
	"github.com/ecsanywhere/ecsanywhere/internal/output"
)

var outputsColumns = []output.Column{
	{Key: "stack", Title: "STACK"},
	{Key: "export", Title: "EXPORT"},
	{Key: "id", Title: "ID"},
	{Key: "description", Title: "DESCRIPTION"},
	{Key: "value", Title: "VALUE"},
}

func outputsCommandAction(ctx context.Context, cmd *cli.Command) error {
	_, stacks, err := loadAssembly(cmd)
	if err != nil {
		return err
	}

	outs := assembly.Outputs(stacks)

	rows := make([]map[string]interface{}, 0, len(outs))
	for _, o := range outs {
		value := o.Resolved
		if cmd.Bool("unresolved") {
			value = o.Value
		}
		rows = append(rows, map[string]interface{}{
			"stack":       o.Stack,
			"export":      o.Export,
			"id":          o.ID,
			"description": o.Description,
			"value":       value,
		})
	}

	raw, err := json.MarshalIndent(outs, "", "  ")
	if err != nil {
		return err
	}
	return output.Render(writer(cmd), rows, outputsColumns, append(raw, '\n'), output.FromCommand(cmd))
}

func outputsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "outputs",
		Usage:     "list the declared stack outputs",
		UsageText: "ecsanywhere outputs [DIR[::STACK]] [--unresolved] [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "unresolved",
				Usage: "show intrinsic functions instead of their evaluated text",
			},
		},
		Action: outputsCommandAction,
		Meta:   meta,
	}).Build()
}
