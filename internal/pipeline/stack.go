// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodecommit"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipeline"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipelineactions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecr"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awskms"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cdklabs/cdk-nag-go/cdknag/v2"

	"github.com/ecsanywhere/ecsanywhere/internal/log"
)

// StackID is the construct id of the pipeline stack.
const StackID = "EcsAnywherePipelineStack"

// Props configures NewStack. Service and Repository come from the
// infrastructure stack and are required.
type Props struct {
	awscdk.StackProps
	Service    awsecs.IBaseService
	Repository awscodecommit.IRepository
	Settings   Settings
}

// Stack is the delivery pipeline stack.
type Stack struct {
	awscdk.Stack
	ImageRepository awsecr.Repository
	Project         awscodebuild.PipelineProject
	Key             awskms.Key
	ArtifactBucket  awss3.Bucket
	Pipeline        awscodepipeline.Pipeline
}

// NewStack declares the ECR repository, build project, encrypted artifact
// store and the source, build and deploy pipeline for the external service.
// It panics when props lacks the service or repository.
func NewStack(scope constructs.Construct, id string, props *Props) *Stack {
	if props == nil || props.Service == nil || props.Repository == nil {
		panic("pipeline: NewStack requires Props with Service and Repository")
	}
	s := props.Settings
	if s == (Settings{}) {
		s = DefaultSettings()
	}

	stack := awscdk.NewStack(scope, jsii.String(id), &props.StackProps)
	st := &Stack{Stack: stack}

	dockerBuildOutput := awscodepipeline.NewArtifact(jsii.String(BuildArtifactName), nil)
	sourceOutput := awscodepipeline.NewArtifact(nil, nil)

	sourceAction := awscodepipelineactions.NewCodeCommitSourceAction(&awscodepipelineactions.CodeCommitSourceActionProps{
		ActionName: jsii.String(SourceStageName),
		Repository: props.Repository,
		Output:     sourceOutput,
		Trigger:    awscodepipelineactions.CodeCommitTrigger_POLL,
		Branch:     jsii.String(s.Branch),
	})

	st.ImageRepository = awsecr.NewRepository(stack, jsii.String("EcrAppRepo"), &awsecr.RepositoryProps{
		RepositoryName:  jsii.String(s.ImageRepositoryName),
		ImageScanOnPush: jsii.Bool(true),
	})
	st.ImageRepository.ApplyRemovalPolicy(awscdk.RemovalPolicy_DESTROY)

	st.Project = awscodebuild.NewPipelineProject(stack, jsii.String("ApplicationDockerBuild"), &awscodebuild.PipelineProjectProps{
		ProjectName: jsii.String(s.ProjectName),
		Environment: &awscodebuild.BuildEnvironment{
			BuildImage: awscodebuild.LinuxBuildImage_FromCodeBuildImageId(jsii.String(s.BuildImage)),
			Privileged: jsii.Bool(true),
		},
		BuildSpec: awscodebuild.BuildSpec_FromSourceFilename(jsii.String(s.BuildSpecPath)),
		EnvironmentVariables: &map[string]*awscodebuild.BuildEnvironmentVariable{
			"IMAGE_REPO_NAME": {Value: st.ImageRepository.RepositoryName()},
			"IMAGE_REPO_URI":  {Value: st.ImageRepository.RepositoryUri()},
		},
	})

	st.Key = awskms.NewKey(stack, jsii.String("MyKey"), &awskms.KeyProps{
		EnableKeyRotation: jsii.Bool(true),
		Enabled:           jsii.Bool(true),
	})

	st.ArtifactBucket = awss3.NewBucket(stack, jsii.String("Bucket"), &awss3.BucketProps{
		Encryption:       awss3.BucketEncryption_KMS,
		BucketKeyEnabled: jsii.Bool(true),
		EnforceSSL:       jsii.Bool(true),
		EncryptionKey:    st.Key,
	})

	buildAction := awscodepipelineactions.NewCodeBuildAction(&awscodepipelineactions.CodeBuildActionProps{
		ActionName: jsii.String(BuildActionName),
		Project:    st.Project,
		Input:      sourceOutput,
		Outputs:    &[]awscodepipeline.Artifact{dockerBuildOutput},
	})

	deployAction := awscodepipelineactions.NewEcsDeployAction(&awscodepipelineactions.EcsDeployActionProps{
		ActionName:        jsii.String(DeployActionName),
		Service:           props.Service,
		ImageFile:         dockerBuildOutput.AtPath(jsii.String(s.ImageDefinitionsPath)),
		DeploymentTimeout: awscdk.Duration_Minutes(jsii.Number(s.DeployTimeoutMinutes)),
	})

	st.Pipeline = awscodepipeline.NewPipeline(stack, jsii.String("Pipeline"), &awscodepipeline.PipelineProps{
		PipelineName:   jsii.String(s.PipelineName),
		ArtifactBucket: st.ArtifactBucket,
		Stages: &[]*awscodepipeline.StageProps{
			{StageName: jsii.String(SourceStageName), Actions: &[]awscodepipeline.IAction{sourceAction}},
			{StageName: jsii.String(BuildStageName), Actions: &[]awscodepipeline.IAction{buildAction}},
			{StageName: jsii.String(DeployStageName), Actions: &[]awscodepipeline.IAction{deployAction}},
		},
	})

	st.ImageRepository.GrantPullPush(st.Project)

	suppress(stack)

	log.Debugf("declared stack %s: pipeline=%s branch=%s", id, s.PipelineName, s.Branch)
	return st
}

// suppress records the accepted cdk-nag findings for every construct in the
// stack. Wildcard IAM5 grants come from the CDK grant helpers and the
// artifact bucket carries no access log bucket.
func suppress(stack awscdk.Stack) {
	for _, sup := range Suppressions {
		cdknag.NagSuppressions_AddResourceSuppressions(stack, &[]*cdknag.NagPackSuppression{
			{Id: jsii.String(sup.ID), Reason: jsii.String(sup.Reason)},
		}, jsii.Bool(true))
	}
}
