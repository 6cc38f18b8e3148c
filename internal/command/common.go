// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/ecsanywhere/ecsanywhere/internal/assembly"
	"github.com/ecsanywhere/ecsanywhere/internal/log"
	"github.com/ecsanywhere/ecsanywhere/internal/meta"
	"github.com/ecsanywhere/ecsanywhere/internal/util"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// writer is where command output goes: the root command's Writer, else
// stdout.
func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// assemblySpec resolves the DIR[::STACK] the command works on. InitApp parses
// a spec given right after the subcommand; one given after flags arrives as
// the first positional argument. Without either, ./cdk.out is used.
func assemblySpec(cmd *cli.Command) (meta.AssemblySpec, error) {
	m := GetMeta(cmd)
	if m.Dir != "" {
		return m.AssemblySpec, nil
	}

	arg := cmd.Args().First()
	if arg == "" {
		base := m.StartingDir
		if base == "" {
			base, _ = os.Getwd()
		}
		arg = filepath.Join(base, util.DefaultAssemblyDir)
	}

	dir, stack, err := util.ParseAssemblyDir(arg)
	if err != nil {
		return meta.AssemblySpec{}, fmt.Errorf("failed to parse assembly dir (%s): %w", arg, err)
	}
	return meta.AssemblySpec{Dir: dir, Stack: stack}, nil
}

// loadAssembly loads the command's assembly and the selected stacks.
func loadAssembly(cmd *cli.Command) (*assembly.Assembly, []*assembly.Stack, error) {
	spec, err := assemblySpec(cmd)
	if err != nil {
		return nil, nil, err
	}

	asm, err := assembly.Load(spec.Dir)
	if err != nil {
		return nil, nil, err
	}

	stacks, err := asm.Select(spec.Stack)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("selected %d stacks from %s", len(stacks), spec.Dir)
	return asm, stacks, nil
}

func stackNames(stacks []*assembly.Stack) []string {
	names := make([]string, len(stacks))
	for i, s := range stacks {
		names[i] = s.Name
	}
	return names
}
