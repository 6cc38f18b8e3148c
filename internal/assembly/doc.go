// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package assembly reads a synthesized cloud assembly from disk: the
// manifest, the CloudFormation stack artifacts it lists and their templates.
package assembly
