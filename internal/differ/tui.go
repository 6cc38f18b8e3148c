// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PickStacks lets the user toggle the stacks to diff. It returns nil when the
// picker is cancelled.
func PickStacks(items []string) ([]string, error) {
	p := tea.NewProgram(newPicker(items))
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("stack picker: %w", err)
	}
	return m.(picker).chosen(), nil
}

type picker struct {
	items     []string
	cursor    int
	selected  map[int]bool
	cancelled bool
}

func newPicker(items []string) picker {
	return picker{items: items, selected: map[int]bool{}}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		if len(m.items) > 0 {
			m.selected[m.cursor] = !m.selected[m.cursor]
		}
	case "a":
		all := len(m.chosen()) < len(m.items)
		for i := range m.items {
			m.selected[i] = all
		}
	case "enter":
		if len(m.chosen()) > 0 {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m picker) View() string {
	var b strings.Builder
	b.WriteString("Select stacks to diff:\n\n")
	for i, name := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if m.selected[i] {
			mark = "x"
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", cursor, mark, name)
	}
	b.WriteString("\nSPACE: toggle, A: all, ENTER: go, Q/ESCAPE: quit\n")
	return b.String()
}

// chosen returns the selected items in list order.
func (m picker) chosen() []string {
	if m.cancelled {
		return nil
	}
	var out []string
	for i, name := range m.items {
		if m.selected[i] {
			out = append(out, name)
		}
	}
	return slices.Clip(out)
}
