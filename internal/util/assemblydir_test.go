// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssemblyDir(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "manifest.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

	tests := []struct {
		name      string
		spec      string
		wantDir   string
		wantStack string
		wantErr   bool
	}{
		{name: "absolute", spec: tmp, wantDir: tmp},
		{name: "absolute with stack", spec: tmp + "::EcsAnywhereInfraStack", wantDir: tmp, wantStack: "EcsAnywhereInfraStack"},
		{name: "missing", spec: filepath.Join(tmp, "nope"), wantErr: true},
		{name: "file not dir", spec: file, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, stack, err := ParseAssemblyDir(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDir, dir)
			assert.Equal(t, tt.wantStack, stack)
		})
	}
}

func TestParseAssemblyDir_Relative(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmp, DefaultAssemblyDir), 0o755))

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(old) })

	// Resolve symlinks so macOS /private/var tmp dirs compare equal.
	want, err := filepath.EvalSymlinks(filepath.Join(tmp, DefaultAssemblyDir))
	require.NoError(t, err)

	for _, spec := range []string{"", "::EcsAnywherePipelineStack", DefaultAssemblyDir} {
		dir, _, err := ParseAssemblyDir(spec)
		require.NoError(t, err, spec)
		got, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		assert.Equal(t, want, got, spec)
	}
}

func TestLooksLikeAssemblySpec(t *testing.T) {
	assert.True(t, LooksLikeAssemblySpec("cdk.out"))
	assert.True(t, LooksLikeAssemblySpec("::Stack"))
	assert.False(t, LooksLikeAssemblySpec("--output"))
	assert.False(t, LooksLikeAssemblySpec(""))
}
