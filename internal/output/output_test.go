// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"
)

func TestSortDataset(t *testing.T) {
	data := []map[string]interface{}{
		{"name": "zebra", "count": 3, "kind": "B"},
		{"name": "Alpha", "count": 1, "kind": "a"},
		{"name": "beta", "count": 2.0, "kind": "a"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{name: "ascending by name", spec: "name", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "descending by name", spec: "-name", wantOrder: []string{"zebra", "beta", "Alpha"}},
		{name: "ascending by count mixed numeric", spec: "count", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "descending by count", spec: "-count", wantOrder: []string{"zebra", "beta", "Alpha"}},
		{name: "case sensitive", spec: "!name", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "case sensitive descending", spec: "-!kind,name", wantOrder: []string{"Alpha", "beta", "zebra"}},
		{name: "multiple fields", spec: "kind, -name", wantOrder: []string{"beta", "Alpha", "zebra"}},
		{name: "empty spec keeps order", spec: "", wantOrder: []string{"zebra", "Alpha", "beta"}},
		{name: "unknown key keeps order", spec: "nope", wantOrder: []string{"zebra", "Alpha", "beta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]map[string]interface{}, len(data))
			copy(rows, data)
			SortDataset(rows, tt.spec)
			for i, want := range tt.wantOrder {
				assert.Equal(t, want, rows[i]["name"], "at index %d", i)
			}
		})
	}
}

type stringer struct{ n int }

func (stringer) String() string { return "str" }

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal []string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "int64", value: int64(7), want: "7"},
		{name: "float64", value: 42.5, want: "42.5"},
		{name: "whole float64", value: 3.0, want: "3"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false is zero", value: false, want: ""},
		{name: "nil", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: []string{"-"}, want: "-"},
		{name: "zero int custom", value: 0, emptyVal: []string{"N/A"}, want: "N/A"},
		{name: "stringer", value: stringer{n: 1}, want: "str"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]int{"x": 1}, want: `{"x":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.emptyVal...))
		})
	}
}

func rows() []map[string]interface{} {
	return []map[string]interface{}{
		{"stack": "EcsAnywherePipelineStack", "resources": 21},
		{"stack": "EcsAnywhereInfraStack", "resources": 17},
	}
}

var cols = []Column{{Key: "stack", Title: "STACK"}, {Key: "resources"}}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		raw   []byte
		check func(t *testing.T, out string)
	}{
		{
			name: "text sorted",
			opts: Options{Format: FormatText, Sort: "stack", Padding: 2},
			check: func(t *testing.T, out string) {
				infra := strings.Index(out, "EcsAnywhereInfraStack")
				pipeline := strings.Index(out, "EcsAnywherePipelineStack")
				require.GreaterOrEqual(t, infra, 0)
				assert.Less(t, infra, pipeline)
				assert.Contains(t, out, "17")
				assert.NotContains(t, out, "STACK")
			},
		},
		{
			name: "text with titles header and footer",
			opts: Options{Titles: true, Header: "Stacks", Footer: "2 stacks"},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "STACK")
				assert.Contains(t, out, "resources")
				assert.Contains(t, out, "Stacks")
				assert.Contains(t, out, "2 stacks")
			},
		},
		{
			name: "json",
			opts: Options{Format: FormatJSON, Sort: "-resources"},
			check: func(t *testing.T, out string) {
				var got []map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(out), &got))
				require.Len(t, got, 2)
				assert.Equal(t, "EcsAnywherePipelineStack", got[0]["stack"])
				assert.Equal(t, float64(21), got[0]["resources"])
			},
		},
		{
			name: "yaml",
			opts: Options{Format: FormatYAML, Sort: "stack"},
			check: func(t *testing.T, out string) {
				var got []map[string]interface{}
				require.NoError(t, yaml.Unmarshal([]byte(out), &got))
				require.Len(t, got, 2)
				assert.Equal(t, "EcsAnywhereInfraStack", got[0]["stack"])
			},
		},
		{
			name: "raw verbatim",
			opts: Options{Format: FormatRaw},
			raw:  []byte(`{"raw":true}`),
			check: func(t *testing.T, out string) {
				assert.Equal(t, `{"raw":true}`, out)
			},
		},
		{
			name: "raw without document falls back to json",
			opts: Options{Format: FormatRaw},
			check: func(t *testing.T, out string) {
				assert.True(t, json.Valid([]byte(out)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, rows(), cols, tt.raw, tt.opts))
			tt.check(t, buf.String())
		})
	}
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, cols, nil, Options{Format: FormatText}))
	assert.Empty(t, buf.String())

	buf.Reset()
	require.NoError(t, Render(&buf, nil, cols, nil, Options{Format: FormatJSON}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, rows(), cols, nil, Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"xml"`)
}

func TestFromCommand(t *testing.T) {
	var got Options
	root := &cli.Command{
		Name: "root",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.BoolFlag{Name: "titles"},
			&cli.BoolFlag{Name: "color"},
			&cli.StringFlag{Name: "sort"},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
		Commands: []*cli.Command{{
			Name:     "list",
			Metadata: map[string]interface{}{"header": "Stacks"},
			Action: func(_ context.Context, cmd *cli.Command) error {
				got = FromCommand(cmd)
				return nil
			},
		}},
	}

	require.NoError(t, root.Run(context.Background(), []string{"root", "--output", "json", "--titles", "--sort", "-stack", "list"}))
	assert.Equal(t, Options{
		Format:  "json",
		Titles:  true,
		Sort:    "-stack",
		Padding: 2,
		Header:  "Stacks",
	}, got)
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")
	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}

func TestSteps(t *testing.T) {
	var buf bytes.Buffer
	Steps(&buf, []Step{
		{Title: "Create an activation", Command: "aws ssm create-activation"},
		{Title: "Download the installer", Command: "curl -o install.sh"},
	}, false)

	out := buf.String()
	assert.Contains(t, out, "1. Create an activation")
	assert.Contains(t, out, "2. Download the installer")
	assert.Contains(t, out, "aws ssm create-activation")
	assert.Less(t, strings.Index(out, "1. Create"), strings.Index(out, "2. Download"))
}
