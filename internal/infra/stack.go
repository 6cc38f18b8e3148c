// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package infra

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodecommit"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/ecsanywhere/ecsanywhere/internal/log"
)

// StackID is the construct id of the infrastructure stack.
const StackID = "EcsAnywhereInfraStack"

// Props configures NewStack. A zero Settings is replaced by DefaultSettings.
type Props struct {
	awscdk.StackProps
	Settings Settings
}

// Stack is the infrastructure stack. The exported constructs are consumed by
// the pipeline stack.
type Stack struct {
	awscdk.Stack
	Repository     awscodecommit.Repository
	Vpc            awsec2.Vpc
	Cluster        awsecs.Cluster
	TaskRole       awsiam.Role
	TaskDefinition awsecs.ExternalTaskDefinition
	Container      awsecs.ContainerDefinition
	Service        awsecs.ExternalService
	InstanceRole   awsiam.Role
}

// NewStack declares the code repository, network, ECS cluster, external
// workload and the roles and outputs needed to register external nodes.
func NewStack(scope constructs.Construct, id string, props *Props) *Stack {
	if props == nil {
		props = &Props{}
	}
	s := props.Settings
	if s == (Settings{}) {
		s = DefaultSettings()
	}

	stack := awscdk.NewStack(scope, jsii.String(id), &props.StackProps)
	st := &Stack{Stack: stack}

	st.Repository = awscodecommit.NewRepository(stack, jsii.String("EcsAnywherePipeline"), &awscodecommit.RepositoryProps{
		RepositoryName: jsii.String(s.RepositoryName),
		Description:    jsii.String(s.RepositoryDescription),
	})

	// A single private subnet group. Nodes live outside AWS, so there is no
	// public tier and therefore no NAT.
	st.Vpc = awsec2.NewVpc(stack, jsii.String("EcsAnywhereVPC"), &awsec2.VpcProps{
		IpAddresses: awsec2.IpAddresses_Cidr(jsii.String(s.VpcCidr)),
		VpcName:     jsii.String(s.VpcName),
		SubnetConfiguration: &[]*awsec2.SubnetConfiguration{
			{
				CidrMask:   jsii.Number(s.SubnetCidrBit),
				Name:       jsii.String(s.SubnetName),
				SubnetType: awsec2.SubnetType_PRIVATE_ISOLATED,
			},
		},
	})

	st.Cluster = awsecs.NewCluster(stack, jsii.String("EcsAnywhereCluster"), &awsecs.ClusterProps{
		Vpc:         st.Vpc,
		ClusterName: jsii.String(s.ClusterName),
	})

	st.TaskRole = newTaskRole(stack)
	st.TaskDefinition, st.Container = newWorkload(stack, st.TaskRole, s)

	st.Service = awsecs.NewExternalService(stack, jsii.String("ExternalService"), &awsecs.ExternalServiceProps{
		ServiceName:    jsii.String(s.ServiceName),
		Cluster:        st.Cluster,
		TaskDefinition: st.TaskDefinition,
		DesiredCount:   jsii.Number(s.DesiredCount),
	})

	st.InstanceRole = newInstanceRole(stack, s.InstanceRoleName)

	addOutputs(st)

	log.Debugf("declared stack %s: cluster=%s service=%s image=%s", id, s.ClusterName, s.ServiceName, s.ContainerImage)
	return st
}

// newTaskRole is the role the container assumes at run time.
func newTaskRole(stack awscdk.Stack) awsiam.Role {
	name := fmt.Sprintf("ecs-taskRole-%s", *stack.StackName())

	role := awsiam.NewRole(stack, jsii.String(name), &awsiam.RoleProps{
		RoleName:  jsii.String(name),
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("ecs-tasks.amazonaws.com"), nil),
	})
	role.AddManagedPolicy(awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("service-role/AmazonECSTaskExecutionRolePolicy")))
	role.AddManagedPolicy(awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("AWSXRayDaemonWriteAccess")))

	role.AddToPolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions: jsii.Strings(
			"logs:CreateLogGroup",
			"logs:CreateLogStream",
			"logs:PutLogEvents",
			"logs:DescribeLogStreams",
		),
		Resources: jsii.Strings("arn:aws:logs:*:*:*"),
	}))

	return role
}

// newWorkload declares the external task definition and its one container.
func newWorkload(stack awscdk.Stack, taskRole awsiam.IRole, s Settings) (awsecs.ExternalTaskDefinition, awsecs.ContainerDefinition) {
	td := awsecs.NewExternalTaskDefinition(stack, jsii.String("ExternalTaskDefinition"), &awsecs.ExternalTaskDefinitionProps{
		TaskRole: taskRole,
	})

	td.AddToExecutionRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect:    awsiam.Effect_ALLOW,
		Resources: jsii.Strings("*"),
		Actions: jsii.Strings(
			"ecr:GetAuthorizationToken",
			"ecr:BatchCheckLayerAvailability",
			"ecr:GetDownloadUrlForLayer",
			"ecr:BatchGetImage",
			"logs:CreateLogStream",
			"logs:PutLogEvents",
		),
	}))

	container := td.AddContainer(jsii.String(s.ContainerName), &awsecs.ContainerDefinitionOptions{
		Image:          awsecs.ContainerImage_FromRegistry(jsii.String(s.ContainerImage), nil),
		MemoryLimitMiB: jsii.Number(s.MemoryLimitMiB),
		ContainerName:  jsii.String(s.ContainerName),
		Logging: awsecs.LogDriver_AwsLogs(&awsecs.AwsLogDriverProps{
			StreamPrefix: jsii.String(s.LogStreamPrefix),
		}),
	})

	container.AddPortMappings(&awsecs.PortMapping{
		ContainerPort: jsii.Number(s.ContainerPort),
		HostPort:      jsii.Number(s.HostPort),
	})

	return td, container
}

// newInstanceRole is the role SSM hands to activated external nodes.
func newInstanceRole(stack awscdk.Stack, name string) awsiam.Role {
	role := awsiam.NewRole(stack, jsii.String("EcsAnywhereInstanceRole"), &awsiam.RoleProps{
		RoleName:  jsii.String(name),
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("ssm.amazonaws.com"), nil),
		ManagedPolicies: &[]awsiam.IManagedPolicy{
			awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("AmazonSSMManagedInstanceCore")),
			awsiam.ManagedPolicy_FromManagedPolicyArn(stack, jsii.String("EcsAnywhereEC2Policy"),
				jsii.String("arn:aws:iam::aws:policy/service-role/AmazonEC2ContainerServiceforEC2Role")),
		},
	})
	role.WithoutPolicyUpdates(nil)

	return role
}

func addOutputs(st *Stack) {
	outputs := []struct {
		id, description, export string
		value                   *string
	}{
		{"EcsAnywhereCodeCommitRepo", "CodeCommit Repo Name", ExportRepoName, st.Repository.RepositoryName()},
		{"RegisterExternalInstance", "Create an Systems Manager activation pair", ExportRegisterInstance, jsii.String(RegisterCommand(*st.InstanceRole.RoleName()))},
		{"DownloadInstallationScript", "On your VM, download installation script", ExportDownloadScript, jsii.String(downloadScriptCommand)},
		{"ExecuteScript", "Run installation script on VM", ExportExecuteInstallStep, jsii.String(executeScriptCommand)},
	}

	for _, o := range outputs {
		awscdk.NewCfnOutput(st.Stack, jsii.String(o.id), &awscdk.CfnOutputProps{
			Description: jsii.String(o.description),
			Value:       o.value,
			ExportName:  jsii.String(o.export),
		})
	}
}
