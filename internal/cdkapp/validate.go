// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cdkapp

import (
	"errors"
	"fmt"
	"net/netip"
)

// Validate reports settings that CloudFormation would only reject at deploy
// time. All problems are returned together.
func (s Settings) Validate() error {
	var errs []error

	prefix, err := netip.ParsePrefix(s.Infra.VpcCidr)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("infra.vpc.cidr: %w", err))
	case !prefix.Addr().Is4():
		errs = append(errs, fmt.Errorf("infra.vpc.cidr: %s is not an IPv4 block", s.Infra.VpcCidr))
	case prefix.Bits() < 16 || prefix.Bits() > 28:
		errs = append(errs, fmt.Errorf("infra.vpc.cidr: /%d outside /16../28", prefix.Bits()))
	case s.Infra.SubnetCidrBit < prefix.Bits() || s.Infra.SubnetCidrBit > 28:
		errs = append(errs, fmt.Errorf("infra.vpc.cidr_mask: /%d must be between /%d and /28", s.Infra.SubnetCidrBit, prefix.Bits()))
	}

	if s.Infra.MemoryLimitMiB < 6 {
		errs = append(errs, fmt.Errorf("infra.container.memory: %d MiB is below the ECS minimum of 6", s.Infra.MemoryLimitMiB))
	}
	for _, p := range []struct {
		key  string
		port int
	}{
		{"infra.container.port", s.Infra.ContainerPort},
		{"infra.container.host_port", s.Infra.HostPort},
	} {
		if p.port < 1 || p.port > 65535 {
			errs = append(errs, fmt.Errorf("%s: %d out of range", p.key, p.port))
		}
	}
	if s.Infra.DesiredCount < 0 {
		errs = append(errs, fmt.Errorf("infra.service.desired: %d is negative", s.Infra.DesiredCount))
	}
	if s.Infra.ContainerImage == "" {
		errs = append(errs, errors.New("infra.container.image: empty"))
	}

	if s.Pipeline.Branch == "" {
		errs = append(errs, errors.New("pipeline.branch: empty"))
	}
	// CodePipeline accepts ECS deployment timeouts of 1 to 60 minutes.
	if s.Pipeline.DeployTimeoutMinutes < 1 || s.Pipeline.DeployTimeoutMinutes > 60 {
		errs = append(errs, fmt.Errorf("pipeline.deploy_timeout: %d minutes outside 1..60", s.Pipeline.DeployTimeoutMinutes))
	}

	return errors.Join(errs...)
}
