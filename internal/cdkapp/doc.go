// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cdkapp assembles the CDK application: it resolves settings from
// configuration, validates them, declares the infrastructure and pipeline
// stacks in dependency order and synthesizes the cloud assembly.
package cdkapp
