// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output sorts row sets and renders them as tables, JSON, YAML or raw
// documents, and renders the numbered node registration steps.
package output
