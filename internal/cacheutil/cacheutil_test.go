// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("ECSA_CACHE_DIR", custom)

	dir, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, custom, dir)

	t.Setenv("ECSA_CACHE_DIR", "")
	if dir, ok := Dir(); ok {
		assert.True(t, filepath.IsAbs(dir))
		assert.Equal(t, "ecsanywhere", filepath.Base(dir))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("ECSA_CACHE", tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestSnapshotPath(t *testing.T) {
	base := t.TempDir()
	t.Setenv("ECSA_CACHE_DIR", base)

	p1, ok := SnapshotPath("/work/a/cdk.out", "EcsAnywhereInfraStack")
	require.True(t, ok)
	p2, _ := SnapshotPath("/work/b/cdk.out", "EcsAnywhereInfraStack")
	p3, _ := SnapshotPath("/work/a/cdk.out", "EcsAnywhereInfraStack")

	assert.True(t, strings.HasPrefix(p1, filepath.Join(base, SnapshotDir)))
	assert.Equal(t, "EcsAnywhereInfraStack.template.json", filepath.Base(p1))
	assert.NotEqual(t, p1, p2, "scopes must not collide")
	assert.Equal(t, p1, p3, "paths must be stable")
}

func TestSaveLoad(t *testing.T) {
	t.Setenv("ECSA_CACHE_DIR", t.TempDir())
	t.Setenv("ECSA_CACHE", "")

	_, ok := Load("scope", "Stack")
	assert.False(t, ok, "nothing saved yet")

	tpl := []byte(`{"Resources":{}}`)
	require.NoError(t, Save("scope", "Stack", tpl))

	snap, ok := Load("scope", "Stack")
	require.True(t, ok)
	assert.Equal(t, tpl, snap.Template)
	assert.Equal(t, "Stack", snap.Stack)
	assert.Equal(t, "scope", snap.Scope)
	assert.WithinDuration(t, time.Now(), snap.Taken, time.Minute)

	_, ok = LoadPrevious("scope", "Stack")
	assert.False(t, ok, "first save has no previous")

	// Saving the same template again does not rotate.
	require.NoError(t, Save("scope", "Stack", tpl))
	_, ok = LoadPrevious("scope", "Stack")
	assert.False(t, ok)

	// A different template rotates the latest into previous.
	require.NoError(t, Save("scope", "Stack", []byte(`{}`)))
	snap, ok = Load("scope", "Stack")
	require.True(t, ok)
	assert.Equal(t, []byte(`{}`), snap.Template)

	prev, ok := LoadPrevious("scope", "Stack")
	require.True(t, ok)
	assert.Equal(t, tpl, prev.Template)
	assert.Equal(t, "Stack.previous.template.json", filepath.Base(prev.Path))

	_, ok = Load("other", "Stack")
	assert.False(t, ok)
}

func TestDisabled(t *testing.T) {
	base := t.TempDir()
	t.Setenv("ECSA_CACHE_DIR", base)
	t.Setenv("ECSA_CACHE", "0")

	require.NoError(t, Save("scope", "Stack", []byte(`{}`)))
	_, err := os.Stat(filepath.Join(base, SnapshotDir))
	assert.True(t, os.IsNotExist(err), "disabled cache writes nothing")

	_, ok := Load("scope", "Stack")
	assert.False(t, ok)
}

func TestSave_Unwritable(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	t.Setenv("ECSA_CACHE_DIR", blocker)
	t.Setenv("ECSA_CACHE", "")

	err := Save("scope", "Stack", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot directory")
}

func TestPurge(t *testing.T) {
	t.Setenv("ECSA_CACHE_DIR", t.TempDir())
	t.Setenv("ECSA_CACHE", "")

	require.NoError(t, Save("scope", "Old", []byte(`{}`)))
	require.NoError(t, Save("scope", "New", []byte(`{}`)))

	old, _ := SnapshotPath("scope", "Old")
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	require.NoError(t, Purge(0), "disabled purge is a no-op")
	_, ok := Load("scope", "Old")
	assert.True(t, ok)

	require.NoError(t, Purge(24))
	_, ok = Load("scope", "Old")
	assert.False(t, ok)
	_, ok = Load("scope", "New")
	assert.True(t, ok)
}

func TestPurge_CacheDisabled(t *testing.T) {
	t.Setenv("ECSA_CACHE_DIR", t.TempDir())
	t.Setenv("ECSA_CACHE", "")

	require.NoError(t, Save("scope", "Old", []byte(`{}`)))
	old, _ := SnapshotPath("scope", "Old")
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	t.Setenv("ECSA_CACHE", "0")
	require.NoError(t, Purge(1))
	assert.FileExists(t, old)
}

func TestPurge_NoCacheYet(t *testing.T) {
	t.Setenv("ECSA_CACHE_DIR", filepath.Join(t.TempDir(), "missing"))
	assert.NoError(t, Purge(1))
}
