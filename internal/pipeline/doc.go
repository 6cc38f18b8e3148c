// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package pipeline declares the delivery pipeline for the ECS Anywhere
// service: CodeCommit source, a privileged CodeBuild docker build pushing to
// ECR, and an ECS deploy action fed by the build's image definitions file.
package pipeline
