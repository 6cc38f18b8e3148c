// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
)

// Step is one numbered instruction with the command that carries it out.
type Step struct {
	Title   string
	Command string
}

// Steps writes numbered instructions, each followed by its command indented
// beneath it.
func Steps(w io.Writer, steps []Step, colored bool) {
	titleStyle := lipgloss.NewStyle().Bold(true)
	cmdStyle := lipgloss.NewStyle().PaddingLeft(3)
	if colored {
		header, _, odd := getColors("colors")
		titleStyle = titleStyle.Foreground(header)
		cmdStyle = cmdStyle.Foreground(odd)
	}

	for i, s := range steps {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d. %s", i+1, s.Title)))
		fmt.Fprintln(w, cmdStyle.Render(s.Command))
	}
}
