// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ecsanywhere/ecsanywhere/internal/meta"
	"github.com/ecsanywhere/ecsanywhere/internal/output"
)

var listColumns = []output.Column{
	{Key: "stack", Title: "STACK"},
	{Key: "resources", Title: "RESOURCES"},
	{Key: "outputs", Title: "OUTPUTS"},
	{Key: "depends", Title: "DEPENDS"},
	{Key: "nag", Title: "NAG"},
	{Key: "description", Title: "DESCRIPTION"},
}

var listTypeColumns = []output.Column{
	{Key: "stack", Title: "STACK"},
	{Key: "type", Title: "TYPE"},
	{Key: "count", Title: "COUNT"},
}

func listCommandAction(ctx context.Context, cmd *cli.Command) error {
	_, stacks, err := loadAssembly(cmd)
	if err != nil {
		return err
	}

	var rows []map[string]interface{}
	cols := listColumns

	if cmd.Bool("types") {
		cols = listTypeColumns
		for _, s := range stacks {
			for typ, n := range s.ResourceTypes() {
				rows = append(rows, map[string]interface{}{
					"stack": s.Name,
					"type":  typ,
					"count": n,
				})
			}
		}
		// Map order is random; give the default sort a stable base.
		output.SortDataset(rows, "stack,type")
	} else {
		for _, s := range stacks {
			rows = append(rows, map[string]interface{}{
				"stack":       s.Name,
				"resources":   s.ResourceCount(),
				"outputs":     len(s.Outputs()),
				"depends":     strings.Join(s.Dependencies, ","),
				"nag":         strings.Join(s.Nag(), ","),
				"description": s.Description(),
			})
		}
	}

	return output.Render(writer(cmd), rows, cols, nil, output.FromCommand(cmd))
}

func listCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "list",
		Usage:     "list the stacks of a cloud assembly",
		UsageText: "ecsanywhere list [DIR[::STACK]] [--types] [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "types",
				Usage: "count resources per CloudFormation type",
			},
		},
		Action: listCommandAction,
		Meta:   meta,
	}).Build()
}
