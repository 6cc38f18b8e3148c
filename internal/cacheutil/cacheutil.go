// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ecsanywhere/ecsanywhere/internal/log"
)

// SnapshotDir is the subdirectory of the cache holding template snapshots.
const SnapshotDir = "snapshots"

// DefaultMaxAgeHours is the snapshot age limit when none is configured.
const DefaultMaxAgeHours = 720

// Snapshot is a stored copy of a synthesized stack template.
type Snapshot struct {
	Scope    string
	Stack    string
	Path     string
	Template []byte
	Taken    time.Time
}

// Dir resolves the base cache directory: ECSA_CACHE_DIR when set, otherwise
// os.UserCacheDir()/ecsanywhere. It returns ("", false) when neither can be
// resolved, which callers treat as caching disabled.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("ECSA_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "ecsanywhere"), true
	}
	return "", false
}

// Enabled is true unless ECSA_CACHE is "0" or "false".
func Enabled() bool {
	v := os.Getenv("ECSA_CACHE")
	return v != "0" && v != "false"
}

// SnapshotPath is where the snapshot of stack under scope lives. Scope is
// usually the absolute assembly directory, so two projects never share a
// snapshot of a same-named stack.
func SnapshotPath(scope, stack string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	return filepath.Join(base, SnapshotDir, scopeKey(scope), stack+".template.json"), true
}

// previousPath is where the snapshot replaced by the latest one is kept.
func previousPath(latest string) string {
	return strings.TrimSuffix(latest, ".template.json") + ".previous.template.json"
}

// Save stores template as the latest snapshot of stack. A differing latest
// snapshot is kept as the previous one. It is a no-op when caching is
// disabled.
func Save(scope, stack string, template []byte) error {
	if !Enabled() {
		return nil
	}
	p, ok := SnapshotPath(scope, stack)
	if !ok {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if old, err := os.ReadFile(p); err == nil && !bytes.Equal(old, template) {
		if err := os.Rename(p, previousPath(p)); err != nil {
			return fmt.Errorf("failed to rotate snapshot: %w", err)
		}
	}
	if err := os.WriteFile(p, template, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	log.Debugf("snapshot saved: stack=%s path=%s", stack, p)
	return nil
}

// Load returns the latest snapshot of stack, if one exists.
func Load(scope, stack string) (*Snapshot, bool) {
	p, ok := SnapshotPath(scope, stack)
	if !ok {
		return nil, false
	}
	return load(p, scope, stack)
}

// LoadPrevious returns the snapshot the latest one replaced, if any.
func LoadPrevious(scope, stack string) (*Snapshot, bool) {
	p, ok := SnapshotPath(scope, stack)
	if !ok {
		return nil, false
	}
	return load(previousPath(p), scope, stack)
}

func load(p, scope, stack string) (*Snapshot, bool) {
	if !Enabled() {
		return nil, false
	}

	fi, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		log.WithError(err).Warnf("failed to read snapshot %s", p)
		return nil, false
	}

	log.Debugf("snapshot hit: stack=%s path=%s", stack, p)
	return &Snapshot{
		Scope:    scope,
		Stack:    stack,
		Path:     p,
		Template: b,
		Taken:    fi.ModTime(),
	}, true
}

// Purge removes snapshots older than hours. hours <= 0 or a disabled cache
// makes it a no-op.
func Purge(hours int) error {
	if hours <= 0 || !Enabled() {
		log.Debug("snapshot purge disabled")
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	err := filepath.WalkDir(filepath.Join(base, SnapshotDir), func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, os.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				log.WithError(err).Warnf("failed to remove snapshot %s", path)
			} else {
				log.Debugf("removed snapshot %s", path)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge snapshots: %w", err)
	}
	return nil
}

// scopeKey is a short stable directory name for scope.
func scopeKey(scope string) string {
	sum := sha256.Sum256([]byte(scope))
	return hex.EncodeToString(sum[:8])
}
