// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecsanywhere/ecsanywhere/internal/cacheutil"
	"github.com/ecsanywhere/ecsanywhere/internal/differ"
	"github.com/ecsanywhere/ecsanywhere/internal/infra"
	"github.com/ecsanywhere/ecsanywhere/internal/pipeline"
)

func TestSynthThenDiff(t *testing.T) {
	t.Setenv("ECSA_CACHE_DIR", t.TempDir())
	t.Setenv("CDK_OUTDIR", "")
	outdir := t.TempDir()

	out, err := run(t, "synth", "--outdir", outdir, "-o", "json")
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, true, r["snapshot"])
		assert.FileExists(t, r["template"].(string))
	}

	_, err = os.Stat(filepath.Join(outdir, "manifest.json"))
	require.NoError(t, err)

	for _, id := range []string{infra.StackID, pipeline.StackID} {
		_, ok := cacheutil.Load(outdir, id)
		assert.True(t, ok, "snapshot of %s", id)
	}

	out, err = run(t, "diff", outdir, "--exit-code")
	require.NoError(t, err)
	assert.Contains(t, out, differ.Identical)

	out, err = run(t, "register", outdir)
	require.NoError(t, err)
	assert.Contains(t, out, "aws ssm create-activation --iam-role EcsAnywhereInstanceRole")
}

// staleSnapshot stores a snapshot for another assembly and backdates it past
// the default age limit.
func staleSnapshot(t *testing.T) string {
	t.Helper()
	require.NoError(t, cacheutil.Save("/elsewhere/cdk.out", infra.StackID, []byte(`{}`)))
	p, ok := cacheutil.SnapshotPath("/elsewhere/cdk.out", infra.StackID)
	require.True(t, ok)
	past := time.Now().Add(-time.Duration(cacheutil.DefaultMaxAgeHours+24) * time.Hour)
	require.NoError(t, os.Chtimes(p, past, past))
	return p
}

func TestSynth_PurgesStaleSnapshots(t *testing.T) {
	t.Setenv("ECSA_CACHE_DIR", t.TempDir())
	t.Setenv("ECSA_CACHE", "")
	t.Setenv("CDK_OUTDIR", "")
	stale := staleSnapshot(t)

	// The test config has no snapshots.max_age_hours, so the default applies.
	_, err := run(t, "synth", "--outdir", t.TempDir())
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
}

func TestSynth_NoSnapshot(t *testing.T) {
	t.Setenv("ECSA_CACHE_DIR", t.TempDir())
	t.Setenv("ECSA_CACHE", "")
	outdir := t.TempDir()
	stale := staleSnapshot(t)

	out, err := run(t, "synth", "--outdir", outdir, "--no-snapshot")
	require.NoError(t, err)
	assert.Contains(t, out, "Synthesized to "+outdir)
	assert.Contains(t, out, infra.StackID)

	_, ok := cacheutil.Load(outdir, infra.StackID)
	assert.False(t, ok)
	assert.FileExists(t, stale, "no purge without snapshots")
}
