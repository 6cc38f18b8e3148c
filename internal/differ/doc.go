// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ renders the differences between two versions of a
// CloudFormation template and provides an interactive stack picker.
package differ
