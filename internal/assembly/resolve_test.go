// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestResolve(t *testing.T) {
	s := &Stack{Template: []byte(`{
		"Resources": {
			"Role1": {"Type": "AWS::IAM::Role", "Properties": {"RoleName": "MyRole"}},
			"Repo1": {"Type": "AWS::ECR::Repository", "Properties": {"RepositoryName": "my-repo"}},
			"Anon1": {"Type": "AWS::S3::Bucket"}
		}
	}`)}

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "string", value: `"plain"`, want: "plain"},
		{name: "number", value: `42`, want: "42"},
		{name: "named ref", value: `{"Ref":"Role1"}`, want: "MyRole"},
		{name: "other name property", value: `{"Ref":"Repo1"}`, want: "my-repo"},
		{name: "unnamed ref", value: `{"Ref":"Anon1"}`, want: "${Anon1}"},
		{name: "pseudo parameter", value: `{"Ref":"AWS::Region"}`, want: "${AWS::Region}"},
		{name: "get att", value: `{"Fn::GetAtt":["Repo1","Arn"]}`, want: "${Repo1.Arn}"},
		{name: "get att name", value: `{"Fn::GetAtt":["Repo1","Name"]}`, want: "my-repo"},
		{name: "get att suffixed name", value: `{"Fn::GetAtt":["Repo1","RepositoryName"]}`, want: "my-repo"},
		{name: "get att name of unnamed", value: `{"Fn::GetAtt":["Anon1","Name"]}`, want: "${Anon1.Name}"},
		{name: "import", value: `{"Fn::ImportValue":"CodeRepoName"}`, want: "${import:CodeRepoName}"},
		{
			name:  "join",
			value: `{"Fn::Join":["",["arn:aws:iam::",{"Ref":"AWS::AccountId"},":role/",{"Ref":"Role1"}]]}`,
			want:  "arn:aws:iam::${AWS::AccountId}:role/MyRole",
		},
		{name: "join with separator", value: `{"Fn::Join":["-",["a","b"]]}`, want: "a-b"},
		{name: "unknown intrinsic", value: `{"Fn::Sub": "x-${AWS::Region}"}`, want: `{"Fn::Sub":"x-${AWS::Region}"}`},
		{name: "array", value: `["a","b"]`, want: `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Resolve(gjson.Parse(tt.value)))
		})
	}
}

func TestOutputs_Resolved(t *testing.T) {
	asm, err := Load(fixture)
	require.NoError(t, err)

	outs := asm.Outputs()
	require.NotEmpty(t, outs)
	assert.Equal(t, "aws ssm create-activation --iam-role EcsAnywhereInstanceRole | tee ssm-activation.json", outs[0].Resolved)
	assert.Equal(t, "EcsAnywhereRepo", outs[3].Resolved)
	assert.Equal(t, outs[1].Value, outs[1].Resolved, "plain values resolve to themselves")
}
