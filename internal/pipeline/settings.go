// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pipeline

// Stage, action and artifact names. The deploy stage consumes the build
// artifact, so the names double as wiring keys.
const (
	SourceStageName = "Source_Checkout"
	BuildStageName  = "Build"
	DeployStageName = "Deploy"

	BuildActionName  = "DockerBuild"
	DeployActionName = "DeployImage"

	BuildArtifactName = "DockerBuildOutput"
)

// Settings holds the literal values the pipeline stack is declared with.
type Settings struct {
	PipelineName         string
	Branch               string
	ImageRepositoryName  string
	ProjectName          string
	BuildImage           string
	BuildSpecPath        string
	ImageDefinitionsPath string
	DeployTimeoutMinutes int
}

// DefaultSettings returns the settings of the reference deployment. The
// build image is the Amazon Linux 2 standard 3.0 CodeBuild image.
func DefaultSettings() Settings {
	return Settings{
		PipelineName:         "EcsAnywherePipeline",
		Branch:               "main",
		ImageRepositoryName:  "app-ecr-repo",
		ProjectName:          "AppDockerbuild",
		BuildImage:           "aws/codebuild/amazonlinux2-x86_64-standard:3.0",
		BuildSpecPath:        "application/buildspec.yml",
		ImageDefinitionsPath: "application/images.json",
		DeployTimeoutMinutes: 10,
	}
}

// Suppression is an accepted cdk-nag finding.
type Suppression struct {
	ID     string
	Reason string
}

// Suppressions are applied to every construct of the pipeline stack.
var Suppressions = []Suppression{
	{ID: "AwsSolutions-IAM5", Reason: "Suppress all AwsSolutions-IAM5 findings"},
	{ID: "AwsSolutions-S1", Reason: "Supress all AwsSolutions-S1 findings"},
}
