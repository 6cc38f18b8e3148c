// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package infra

// Settings holds the literal values the infrastructure stack is declared
// with. DefaultSettings returns the stock ECS Anywhere values.
type Settings struct {
	RepositoryName        string
	RepositoryDescription string

	VpcName       string
	VpcCidr       string
	SubnetName    string
	SubnetCidrBit int

	ClusterName string

	ContainerName   string
	ContainerImage  string
	MemoryLimitMiB  int
	ContainerPort   int
	HostPort        int
	LogStreamPrefix string

	ServiceName  string
	DesiredCount int

	InstanceRoleName string
}

// DefaultSettings returns the settings of the reference deployment.
func DefaultSettings() Settings {
	return Settings{
		RepositoryName:        "EcsAnywhereRepo",
		RepositoryDescription: "CDK and Sample Application Codebase repo",
		VpcName:               "EcsAnywhereVpc",
		VpcCidr:               "192.168.0.0/16",
		SubnetName:            "PrivateSubnet",
		SubnetCidrBit:         24,
		ClusterName:           "EcsAnywhereCluster",
		ContainerName:         "EcsAnywhereContainer",
		ContainerImage:        "nginxdemos/hello",
		MemoryLimitMiB:        1024,
		ContainerPort:         80,
		HostPort:              80,
		LogStreamPrefix:       "ecs-anywhere-logs",
		ServiceName:           "EcsAnywhereService",
		DesiredCount:          1,
		InstanceRoleName:      "EcsAnywhereInstanceRole",
	}
}

// Export names of the stack outputs. The numbered ones are the node
// registration steps, in the order they must be run.
const (
	ExportRepoName           = "CodeRepoName"
	ExportRegisterInstance   = "1-RegisterExternalInstance"
	ExportDownloadScript     = "2-DownloadInstallationScript"
	ExportExecuteInstallStep = "3-ExecuteInstallationScript"
)

const (
	installScriptURL = "https://amazon-ecs-agent.s3.amazonaws.com/ecs-anywhere-install-latest.sh"

	downloadScriptCommand = `curl --proto "https" -o "/tmp/ecs-anywhere-install.sh" "` + installScriptURL + `" && sudo chmod +x ecs-anywhere-install.sh`

	executeScriptCommand = "sudo ./ecs-anywhere-install.sh  --region $REGION --cluster $CLUSTER_NAME --activation-id $ACTIVATION_ID --activation-code $ACTIVATION_CODE"
)

// RegisterCommand is the activation command for the given instance role.
func RegisterCommand(roleName string) string {
	return "aws ssm create-activation --iam-role " + roleName + " | tee ssm-activation.json"
}
