// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cdkapp

import (
	"github.com/ecsanywhere/ecsanywhere/internal/config"
	"github.com/ecsanywhere/ecsanywhere/internal/infra"
	"github.com/ecsanywhere/ecsanywhere/internal/pipeline"
)

// Settings gathers everything needed to declare both stacks.
type Settings struct {
	Infra    infra.Settings
	Pipeline pipeline.Settings

	// Account and Region pin the stacks to an environment. Both empty means
	// environment-agnostic stacks.
	Account string
	Region  string

	// Nag adds the cdk-nag AwsSolutions checks to the app.
	Nag bool
}

// DefaultSettings returns the reference deployment settings.
func DefaultSettings() Settings {
	return Settings{
		Infra:    infra.DefaultSettings(),
		Pipeline: pipeline.DefaultSettings(),
	}
}

// SettingsFromConfig overlays the loaded configuration onto the defaults.
// Keys that are missing keep their default; keys of the wrong type are
// errors.
func SettingsFromConfig() (Settings, error) {
	s := DefaultSettings()

	strs := []struct {
		key string
		dst *string
	}{
		{"infra.repository.name", &s.Infra.RepositoryName},
		{"infra.repository.description", &s.Infra.RepositoryDescription},
		{"infra.vpc.name", &s.Infra.VpcName},
		{"infra.vpc.cidr", &s.Infra.VpcCidr},
		{"infra.cluster.name", &s.Infra.ClusterName},
		{"infra.container.name", &s.Infra.ContainerName},
		{"infra.container.image", &s.Infra.ContainerImage},
		{"infra.container.log_prefix", &s.Infra.LogStreamPrefix},
		{"infra.service.name", &s.Infra.ServiceName},
		{"infra.instance_role", &s.Infra.InstanceRoleName},
		{"pipeline.name", &s.Pipeline.PipelineName},
		{"pipeline.branch", &s.Pipeline.Branch},
		{"pipeline.ecr.name", &s.Pipeline.ImageRepositoryName},
		{"pipeline.project", &s.Pipeline.ProjectName},
		{"pipeline.build_image", &s.Pipeline.BuildImage},
		{"pipeline.buildspec", &s.Pipeline.BuildSpecPath},
		{"pipeline.image_definitions", &s.Pipeline.ImageDefinitionsPath},
		{"env.account", &s.Account},
		{"env.region", &s.Region},
	}
	for _, f := range strs {
		v, err := config.GetString(f.key, *f.dst)
		if err != nil {
			return Settings{}, err
		}
		*f.dst = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"infra.vpc.cidr_mask", &s.Infra.SubnetCidrBit},
		{"infra.container.memory", &s.Infra.MemoryLimitMiB},
		{"infra.container.port", &s.Infra.ContainerPort},
		{"infra.container.host_port", &s.Infra.HostPort},
		{"infra.service.desired", &s.Infra.DesiredCount},
		{"pipeline.deploy_timeout", &s.Pipeline.DeployTimeoutMinutes},
	}
	for _, f := range ints {
		v, err := config.GetInt(f.key, *f.dst)
		if err != nil {
			return Settings{}, err
		}
		*f.dst = v
	}

	nag, err := config.GetBool("nag", false)
	if err != nil {
		return Settings{}, err
	}
	s.Nag = nag

	return s, nil
}
