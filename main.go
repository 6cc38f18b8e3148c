// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/aws/jsii-runtime-go"

	"github.com/ecsanywhere/ecsanywhere/internal/command"
	"github.com/ecsanywhere/ecsanywhere/internal/config"
	"github.com/ecsanywhere/ecsanywhere/internal/log"
	"github.com/ecsanywhere/ecsanywhere/internal/util"
	"github.com/ecsanywhere/ecsanywhere/internal/version"
)

var ctx = context.Background()

// valueFlags always consume the following argument, even one starting with
// "-" such as --sort -stack.
var valueFlags = []string{
	"--output", "-o", "--sort", "-s", "--padding", "--outdir", "--filter", "-f",
	"--bucket", "-b", "--prefix", "--profile", "--region", "--retries", "--endpoint",
}

// boolFlags never consume the following argument.
var boolFlags = []string{
	"--color", "-c", "--titles", "-t", "--nag", "--no-snapshot", "--types",
	"--unresolved", "--pick", "--exit-code", "--help", "-h", "--version", "-v",
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Printf("%s (aws-cdk-go %s)\n", version.Version, version.CDKVersion())
			return true
		}
	}
	return false
}

// handleNakedCommand fills in a missing subcommand. The CDK CLI runs the app
// bare with CDK_OUTDIR set and expects a synth; anyone else gets help.
func handleNakedCommand(args []string) []string {
	if len(args) > 1 {
		return args
	}
	if os.Getenv("CDK_OUTDIR") != "" {
		return append(args, "synth")
	}
	return append(args, "--help")
}

// processCommandArgs expands @sets and collapses repeated flags.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()
	// Stops the jsii kernel child process. Deferred here since os.Exit in main
	// skips deferred calls.
	defer jsii.Close()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	if !slices.Contains(args, "--help") && !slices.Contains(args, "-h") {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an @set argument into the string list configured at
// <command>.<set>. Without an explicit @set the <command>.defaults list, if
// any, is inserted after the optional assembly argument.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	for i := 2; i < len(args); i++ {
		if strings.HasPrefix(args[i], "@") {
			set := args[i][1:]
			rest := append(slices.Clone(args[:i]), args[i+1:]...)
			return injectConfigSet(rest, args[1]+"."+set, i)
		}
	}

	insertIdx := 2
	if len(args) > 2 && args[1] != "synth" && util.LooksLikeAssemblySpec(args[2]) {
		insertIdx = 3
	}
	return injectConfigSet(args, args[1]+".defaults", insertIdx)
}

// injectConfigSet reads the string list at key and splices its
// whitespace-separated fields into args at insertIdx.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, err := config.GetStringSlice(key)
	if err != nil {
		log.Debugf("no arg set %s: %v", key, err)
		return args
	}
	return spliceFields(args, entries, insertIdx)
}

func spliceFields(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags keeps only the last occurrence of each repeated flag,
// together with its value. --output=json and --output json are the same
// flag; -o and --output are not. Arguments after "--" are left alone.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type unit struct {
		name   string
		tokens []string
	}

	var units []unit
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		if a == "--" {
			units = append(units, unit{tokens: rest[i:]})
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			units = append(units, unit{tokens: []string{a}})
			continue
		}

		name, _, hasValue := strings.Cut(a, "=")
		u := unit{name: name, tokens: []string{a}}
		if !hasValue && i+1 < len(rest) && !slices.Contains(boolFlags, name) {
			next := rest[i+1]
			if slices.Contains(valueFlags, name) || !strings.HasPrefix(next, "-") {
				u.tokens = append(u.tokens, next)
				i++
			}
		}
		units = append(units, u)
	}

	last := map[string]int{}
	for i, u := range units {
		if u.name != "" {
			last[u.name] = i
		}
	}

	out := slices.Clone(args[:2])
	for i, u := range units {
		if u.name != "" && last[u.name] != i {
			continue
		}
		out = append(out, u.tokens...)
	}
	return out
}
