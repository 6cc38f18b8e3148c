// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package assembly

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/ecsanywhere/ecsanywhere/internal/log"
)

// ManifestFile is the cloud assembly manifest name.
const ManifestFile = "manifest.json"

const stackArtifactType = "aws:cloudformation:stack"

var (
	// ErrNoAssembly is returned when the directory holds no manifest.
	ErrNoAssembly = errors.New("no cloud assembly found")
	// ErrStackNotFound is returned by Stack for unknown stack names.
	ErrStackNotFound = errors.New("stack not found in assembly")
)

// Assembly is a loaded cloud assembly.
type Assembly struct {
	Dir     string
	Version string
	stacks  []*Stack
}

// Stack is one CloudFormation stack artifact.
type Stack struct {
	Name         string
	DisplayName  string
	Environment  string
	TemplatePath string
	Template     []byte
	Dependencies []string
}

// Output is one entry of a template's Outputs section.
type Output struct {
	Stack       string `json:"stack" yaml:"stack"`
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Value       string `json:"value" yaml:"value"`
	Resolved    string `json:"resolved" yaml:"resolved"`
	Export      string `json:"export" yaml:"export"`
}

// Load reads the manifest in dir and every stack template it references.
func Load(dir string) (*Assembly, error) {
	b, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoAssembly, dir)
		}
		return nil, err
	}
	if !gjson.ValidBytes(b) {
		return nil, fmt.Errorf("%s: invalid JSON", filepath.Join(dir, ManifestFile))
	}

	manifest := gjson.ParseBytes(b)
	asm := &Assembly{Dir: dir, Version: manifest.Get("version").String()}

	var loadErr error
	manifest.Get("artifacts").ForEach(func(key, artifact gjson.Result) bool {
		if artifact.Get("type").String() != stackArtifactType {
			return true
		}

		st := &Stack{
			Name:         key.String(),
			DisplayName:  artifact.Get("displayName").String(),
			Environment:  artifact.Get("environment").String(),
			TemplatePath: filepath.Join(dir, artifact.Get("properties.templateFile").String()),
		}
		for _, d := range artifact.Get("dependencies").Array() {
			st.Dependencies = append(st.Dependencies, d.String())
		}

		if st.Template, loadErr = os.ReadFile(st.TemplatePath); loadErr != nil {
			loadErr = fmt.Errorf("stack %s: %w", st.Name, loadErr)
			return false
		}
		if !gjson.ValidBytes(st.Template) {
			loadErr = fmt.Errorf("stack %s: template %s is not valid JSON", st.Name, st.TemplatePath)
			return false
		}

		asm.stacks = append(asm.stacks, st)
		return true
	})
	if loadErr != nil {
		return nil, loadErr
	}

	log.Debugf("loaded assembly %s: version=%s stacks=%d", dir, asm.Version, len(asm.stacks))
	return asm, nil
}

// Stacks returns the stack artifacts in manifest order.
func (a *Assembly) Stacks() []*Stack {
	return a.stacks
}

// Stack returns the named stack artifact.
func (a *Assembly) Stack(name string) (*Stack, error) {
	for _, s := range a.stacks {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrStackNotFound, name)
}

// Select returns the named stack, or all stacks when name is empty.
func (a *Assembly) Select(name string) ([]*Stack, error) {
	if name == "" {
		return a.stacks, nil
	}
	s, err := a.Stack(name)
	if err != nil {
		return nil, err
	}
	return []*Stack{s}, nil
}

// Outputs returns the outputs of every stack in the assembly.
func (a *Assembly) Outputs() []Output {
	return Outputs(a.stacks)
}

// Outputs returns the outputs of every selected stack, sorted by stack then
// export name.
func Outputs(stacks []*Stack) []Output {
	var outs []Output
	for _, s := range stacks {
		outs = append(outs, s.Outputs()...)
	}
	sort.SliceStable(outs, func(i, j int) bool {
		if outs[i].Stack != outs[j].Stack {
			return outs[i].Stack < outs[j].Stack
		}
		return outs[i].Export < outs[j].Export
	})
	return outs
}

// Outputs returns the stack's template outputs. Value holds intrinsic
// functions as compact JSON and Resolved their evaluated text.
func (s *Stack) Outputs() []Output {
	var outs []Output
	gjson.GetBytes(s.Template, "Outputs").ForEach(func(key, o gjson.Result) bool {
		outs = append(outs, Output{
			Stack:       s.Name,
			ID:          key.String(),
			Description: o.Get("Description").String(),
			Value:       renderValue(o.Get("Value")),
			Resolved:    s.Resolve(o.Get("Value")),
			Export:      o.Get("Export.Name").String(),
		})
		return true
	})
	return outs
}

// ResourceTypes returns the number of resources per CloudFormation type.
func (s *Stack) ResourceTypes() map[string]int {
	counts := map[string]int{}
	gjson.GetBytes(s.Template, "Resources").ForEach(func(_, r gjson.Result) bool {
		counts[r.Get("Type").String()]++
		return true
	})
	return counts
}

// ResourceCount is the total number of resources in the template.
func (s *Stack) ResourceCount() int {
	n := 0
	for _, c := range s.ResourceTypes() {
		n += c
	}
	return n
}

// Description is the template's Description, if any.
func (s *Stack) Description() string {
	return gjson.GetBytes(s.Template, "Description").String()
}

// Nag returns the cdk-nag suppression rule ids recorded in the template
// metadata, de-duplicated and sorted.
func (s *Stack) Nag() []string {
	seen := map[string]bool{}
	gjson.GetBytes(s.Template, "Resources").ForEach(func(_, r gjson.Result) bool {
		for _, rule := range r.Get("Metadata.cdk_nag.rules_to_suppress.#.id").Array() {
			seen[rule.String()] = true
		}
		return true
	})

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func renderValue(v gjson.Result) string {
	if v.Type == gjson.JSON {
		return gjson.Get(v.Raw, "@ugly").String()
	}
	return v.String()
}
