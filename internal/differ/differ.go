// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
	"golang.org/x/term"

	"github.com/ecsanywhere/ecsanywhere/internal/log"
)

// Identical is printed when the two templates carry no differences.
const Identical = "Templates are identical."

// Diff compares two CloudFormation templates and writes an ASCII delta to w.
// filter is a comma-separated list of top-level template sections ignored on
// both sides, e.g. "Metadata,Rules". It reports whether the templates differ.
func Diff(w io.Writer, before, after []byte, filter string) (bool, error) {
	log.Debugf("diff: len(before)=%d len(after)=%d filter=%q", len(before), len(after), filter)

	left, err := decode(before, filter)
	if err != nil {
		return false, fmt.Errorf("failed to decode previous template: %w", err)
	}
	right, err := decode(after, filter)
	if err != nil {
		return false, fmt.Errorf("failed to decode current template: %w", err)
	}

	delta := gojsondiff.New().CompareObjects(left, right)
	if !delta.Modified() {
		fmt.Fprintln(w, Identical)
		return false, nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       colorable(w),
	}

	out, err := formatter.NewAsciiFormatter(left, config).Format(delta)
	if err != nil {
		return true, err
	}

	fmt.Fprint(w, out)
	return true, nil
}

// decode unmarshals a template and drops the filtered sections. An empty
// document is an empty template.
func decode(b []byte, filter string) (map[string]interface{}, error) {
	doc := map[string]interface{}{}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	for key := range strings.SplitSeq(filter, ",") {
		if key = strings.TrimSpace(key); key != "" {
			delete(doc, key)
		}
	}
	return doc, nil
}

// colorable reports whether w is a terminal. NO_COLOR disables coloring.
func colorable(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
