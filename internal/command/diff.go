// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/ecsanywhere/ecsanywhere/internal/assembly"
	"github.com/ecsanywhere/ecsanywhere/internal/cacheutil"
	"github.com/ecsanywhere/ecsanywhere/internal/differ"
	"github.com/ecsanywhere/ecsanywhere/internal/log"
	"github.com/ecsanywhere/ecsanywhere/internal/meta"
)

// ErrTemplatesDiffer is returned by diff --exit-code when any template changed.
var ErrTemplatesDiffer = errors.New("templates differ")

// pickStacks is swapped out in tests.
var pickStacks = differ.PickStacks

func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	asm, stacks, err := loadAssembly(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("pick") {
		if stacks, err = pick(stacks); err != nil {
			return err
		}
		if len(stacks) == 0 {
			return nil
		}
	}

	w := writer(cmd)
	changed := false
	for _, s := range stacks {
		before, label := baseline(asm.Dir, s)
		fmt.Fprintf(w, "Stack %s (%s)\n", s.Name, label)

		c, err := differ.Diff(w, before, s.Template, cmd.String("filter"))
		if err != nil {
			return fmt.Errorf("stack %s: %w", s.Name, err)
		}
		changed = changed || c
	}

	if changed && cmd.Bool("exit-code") {
		return ErrTemplatesDiffer
	}
	return nil
}

// baseline picks the snapshot to compare the stack's current template with.
// When the latest snapshot is the current template, synth has just run and
// the one before it is the baseline. No snapshot compares against an empty
// template.
func baseline(dir string, s *assembly.Stack) ([]byte, string) {
	latest, ok := cacheutil.Load(dir, s.Name)
	if !ok {
		return nil, "no snapshot"
	}
	if !bytes.Equal(latest.Template, s.Template) {
		return latest.Template, "vs snapshot from " + humanize.Time(latest.Taken)
	}

	prev, ok := cacheutil.LoadPrevious(dir, s.Name)
	if !ok {
		return latest.Template, "vs snapshot from " + humanize.Time(latest.Taken)
	}
	log.Debugf("diff %s against previous snapshot %s", s.Name, prev.Path)
	return prev.Template, "vs snapshot from " + humanize.Time(prev.Taken)
}

func pick(stacks []*assembly.Stack) ([]*assembly.Stack, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("--pick needs an interactive terminal")
	}

	names, err := pickStacks(stackNames(stacks))
	if err != nil {
		return nil, err
	}

	chosen := map[string]bool{}
	for _, n := range names {
		chosen[n] = true
	}
	var out []*assembly.Stack
	for _, s := range stacks {
		if chosen[s.Name] {
			out = append(out, s)
		}
	}
	return out, nil
}

func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "diff assembly templates against their last snapshot",
		UsageText: "ecsanywhere diff [DIR[::STACK]] [--pick] [--filter SECTIONS] [--exit-code] [options]",
		Flags: []cli.Flag{
			filterFlag(),
			&cli.BoolFlag{
				Name:  "pick",
				Usage: "choose the stacks to diff interactively",
			},
			&cli.BoolFlag{
				Name:  "exit-code",
				Usage: "fail when any template differs",
			},
		},
		Action: diffCommandAction,
		Meta:   meta,
	}).Build()
}
