// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for the ecsanywhere
// YAML configuration. The file is resolved in this order:
//   - $ECSA_CFG_FILE
//   - ./ecsanywhere.yaml
//   - os.UserConfigDir()/ecsanywhere.yaml
//
// Keys are dotted paths ("infra.vpc.cidr"). Stack settings, CLI flag
// defaults and @set argument lists all live in the same document.
package config
