// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultAssemblyDir is where `cdk synth` and `ecsanywhere synth` write the
// cloud assembly unless told otherwise.
const DefaultAssemblyDir = "cdk.out"

// ParseAssemblyDir parses a DIR[::STACK] argument and returns the absolute
// assembly directory and the optional stack selector. An empty DIR part means
// the default assembly directory. It returns an error if the directory does
// not exist or is not a directory.
func ParseAssemblyDir(spec string) (string, string, error) {
	dir, stack, _ := strings.Cut(spec, "::")
	if dir == "" {
		dir = DefaultAssemblyDir
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}

	fi, err := os.Stat(dir)
	if err != nil {
		return "", "", err
	}
	if !fi.IsDir() {
		return "", "", os.ErrInvalid
	}

	return dir, stack, nil
}

// LooksLikeAssemblySpec reports whether a positional argument is an assembly
// spec rather than a flag.
func LooksLikeAssemblySpec(arg string) bool {
	return arg != "" && !strings.HasPrefix(arg, "-")
}
