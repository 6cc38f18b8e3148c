// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package infra declares the ECS Anywhere infrastructure stack: the
// CodeCommit repository holding the application, a network and ECS cluster,
// the external task definition and service, the IAM roles for tasks and for
// registered nodes, and outputs listing the node registration commands.
package infra
