// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ecsanywhere/ecsanywhere/internal/assembly"
	"github.com/ecsanywhere/ecsanywhere/internal/infra"
	"github.com/ecsanywhere/ecsanywhere/internal/meta"
	"github.com/ecsanywhere/ecsanywhere/internal/output"
)

// registrationExports are the infra stack exports, in the order an operator
// runs them on a new external node.
var registrationExports = []string{
	infra.ExportRegisterInstance,
	infra.ExportDownloadScript,
	infra.ExportExecuteInstallStep,
}

var registerColumns = []output.Column{
	{Key: "step", Title: "STEP"},
	{Key: "description", Title: "DESCRIPTION"},
	{Key: "command", Title: "COMMAND"},
}

func registerCommandAction(ctx context.Context, cmd *cli.Command) error {
	asm, _, err := loadAssembly(cmd)
	if err != nil {
		return err
	}

	spec, _ := assemblySpec(cmd)
	name := spec.Stack
	if name == "" {
		name = infra.StackID
	}
	stack, err := asm.Stack(name)
	if err != nil {
		return err
	}

	steps, err := registrationSteps(stack)
	if err != nil {
		return err
	}

	o := output.FromCommand(cmd)
	if o.Format == output.FormatText {
		output.Steps(writer(cmd), steps, o.Color)
		return nil
	}

	rows := make([]map[string]interface{}, len(steps))
	for i, s := range steps {
		rows[i] = map[string]interface{}{
			"step":        i + 1,
			"description": s.Title,
			"command":     s.Command,
		}
	}
	return output.Render(writer(cmd), rows, registerColumns, nil, o)
}

// registrationSteps pulls the numbered registration outputs off stack.
func registrationSteps(stack *assembly.Stack) ([]output.Step, error) {
	byExport := map[string]assembly.Output{}
	for _, o := range stack.Outputs() {
		byExport[o.Export] = o
	}

	steps := make([]output.Step, 0, len(registrationExports))
	for _, export := range registrationExports {
		o, ok := byExport[export]
		if !ok {
			return nil, fmt.Errorf("stack %s has no %s output; is it the infrastructure stack?", stack.Name, export)
		}
		steps = append(steps, output.Step{Title: o.Description, Command: o.Resolved})
	}
	return steps, nil
}

func registerCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "register",
		Usage:     "print the steps that register an external instance",
		UsageText: "ecsanywhere register [DIR[::STACK]] [options]",
		Action:    registerCommandAction,
		Meta:      meta,
	}).Build()
}
