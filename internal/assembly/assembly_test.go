// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package assembly

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "testdata/cdk.out"

func TestLoad(t *testing.T) {
	asm, err := Load(fixture)
	require.NoError(t, err)

	assert.Equal(t, "39.0.0", asm.Version)
	require.Len(t, asm.Stacks(), 2)

	// Non-stack artifacts are skipped and manifest order is kept.
	assert.Equal(t, "EcsAnywhereInfraStack", asm.Stacks()[0].Name)
	assert.Equal(t, "EcsAnywherePipelineStack", asm.Stacks()[1].Name)

	p := asm.Stacks()[1]
	assert.Equal(t, []string{"EcsAnywhereInfraStack"}, p.Dependencies)
	assert.Equal(t, "aws://unknown-account/unknown-region", p.Environment)
	assert.Equal(t, filepath.Join(fixture, "EcsAnywherePipelineStack.template.json"), p.TemplatePath)
	assert.NotEmpty(t, p.Template)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantIs  error
		wantErr string
	}{
		{
			name:   "no manifest",
			setup:  func(t *testing.T) string { return t.TempDir() },
			wantIs: ErrNoAssembly,
		},
		{
			name:    "missing template",
			setup:   func(*testing.T) string { return "testdata/broken" },
			wantErr: "stack MissingStack",
		},
		{
			name: "invalid manifest",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte("{nope"), 0o600))
				return dir
			},
			wantErr: "invalid JSON",
		},
		{
			name: "invalid template",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				manifest := `{"artifacts":{"S":{"type":"aws:cloudformation:stack","properties":{"templateFile":"S.template.json"}}}}`
				require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest), 0o600))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "S.template.json"), []byte("not json"), 0o600))
				return dir
			},
			wantErr: "not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.setup(t))
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestStackAndSelect(t *testing.T) {
	asm, err := Load(fixture)
	require.NoError(t, err)

	s, err := asm.Stack("EcsAnywhereInfraStack")
	require.NoError(t, err)
	assert.Equal(t, "EcsAnywhereInfraStack", s.DisplayName)

	_, err = asm.Stack("Nope")
	assert.ErrorIs(t, err, ErrStackNotFound)

	all, err := asm.Select("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := asm.Select("EcsAnywherePipelineStack")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "EcsAnywherePipelineStack", one[0].Name)

	_, err = asm.Select("Nope")
	assert.ErrorIs(t, err, ErrStackNotFound)
}

func TestOutputs(t *testing.T) {
	asm, err := Load(fixture)
	require.NoError(t, err)

	outs := asm.Outputs()
	require.Len(t, outs, 4)

	// Sorted by export name, so the numbered registration steps come first.
	exports := make([]string, len(outs))
	for i, o := range outs {
		exports[i] = o.Export
	}
	assert.Equal(t, []string{
		"1-RegisterExternalInstance",
		"2-DownloadInstallationScript",
		"3-ExecuteInstallationScript",
		"CodeRepoName",
	}, exports)

	reg := outs[0]
	assert.Equal(t, "EcsAnywhereInfraStack", reg.Stack)
	assert.Equal(t, "RegisterExternalInstance", reg.ID)
	assert.Equal(t, "Create an Systems Manager activation pair", reg.Description)
	assert.JSONEq(t,
		`{"Fn::Join":["",["aws ssm create-activation --iam-role ",{"Ref":"EcsAnywhereInstanceRole5A6B7C8D"}," | tee ssm-activation.json"]]}`,
		reg.Value)

	assert.JSONEq(t, `{"Fn::GetAtt":["EcsAnywherePipeline4764FB7E","Name"]}`, outs[3].Value)

	p, err := asm.Stack("EcsAnywherePipelineStack")
	require.NoError(t, err)
	assert.Empty(t, p.Outputs())
	assert.Empty(t, Outputs([]*Stack{p}))
}

func TestResourceTypes(t *testing.T) {
	asm, err := Load(fixture)
	require.NoError(t, err)

	s, err := asm.Stack("EcsAnywhereInfraStack")
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"AWS::CodeCommit::Repository": 1,
		"AWS::EC2::VPC":               1,
		"AWS::EC2::Subnet":            2,
		"AWS::ECS::Cluster":           1,
		"AWS::IAM::Role":              1,
	}, s.ResourceTypes())
	assert.Equal(t, 6, s.ResourceCount())
	assert.Equal(t, "ECS Anywhere cluster, external service and node registration roles", s.Description())
}

func TestNag(t *testing.T) {
	asm, err := Load(fixture)
	require.NoError(t, err)

	p, err := asm.Stack("EcsAnywherePipelineStack")
	require.NoError(t, err)
	assert.Equal(t, []string{"AwsSolutions-IAM5", "AwsSolutions-S1"}, p.Nag())

	i, err := asm.Stack("EcsAnywhereInfraStack")
	require.NoError(t, err)
	assert.Empty(t, i.Nag())
}
