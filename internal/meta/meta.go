// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/ecsanywhere/ecsanywhere/internal/config"
)

// AssemblySpec is a parsed DIR[::STACK] argument. Stack is empty when every
// stack in the assembly is selected.
type AssemblySpec struct {
	Dir   string
	Stack string
}

// Meta contains runtime metadata shared by commands: the raw arguments, the
// loaded configuration, the root context, the resolved assembly spec and the
// starting working directory.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	AssemblySpec
	StartingDir string
}
