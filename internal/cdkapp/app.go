// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cdkapp

import (
	"fmt"
	"time"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/cdklabs/cdk-nag-go/cdknag/v2"

	"github.com/ecsanywhere/ecsanywhere/internal/infra"
	"github.com/ecsanywhere/ecsanywhere/internal/log"
	"github.com/ecsanywhere/ecsanywhere/internal/pipeline"
)

// StackIDs lists the stack ids in dependency order.
var StackIDs = []string{infra.StackID, pipeline.StackID}

// App is the CDK application holding both stacks.
type App struct {
	awscdk.App
	Infra    *infra.Stack
	Pipeline *pipeline.Stack
	Settings Settings
}

type options struct {
	outdir   string
	settings *Settings
	nag      *bool
	context  map[string]interface{}
}

// Option customizes New.
type Option func(*options)

// WithOutdir sets the assembly directory. Without it the CDK default applies
// ($CDK_OUTDIR when run by the CDK CLI, otherwise a temp dir).
func WithOutdir(dir string) Option {
	return func(o *options) { o.outdir = dir }
}

// WithSettings replaces DefaultSettings.
func WithSettings(s Settings) Option {
	return func(o *options) { o.settings = &s }
}

// WithNagChecks forces the cdk-nag AwsSolutions aspect on or off,
// overriding Settings.Nag.
func WithNagChecks(enabled bool) Option {
	return func(o *options) { o.nag = &enabled }
}

// WithContext seeds the app's construct context.
func WithContext(ctx map[string]interface{}) Option {
	return func(o *options) { o.context = ctx }
}

// New validates the settings and declares both stacks.
func New(opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s := DefaultSettings()
	if o.settings != nil {
		s = *o.settings
	}
	if o.nag != nil {
		s.Nag = *o.nag
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	props := &awscdk.AppProps{}
	if o.outdir != "" {
		props.Outdir = jsii.String(o.outdir)
	}
	if len(o.context) > 0 {
		props.Context = &o.context
	}

	app := awscdk.NewApp(props)
	a := &App{App: app, Settings: s}

	stackProps := awscdk.StackProps{Env: s.environment()}

	infraProps := &infra.Props{StackProps: stackProps, Settings: s.Infra}
	infraProps.Description = jsii.String("ECS Anywhere cluster, external service and node registration roles")
	a.Infra = infra.NewStack(app, infra.StackID, infraProps)

	pipelineProps := &pipeline.Props{
		StackProps: stackProps,
		Service:    a.Infra.Service,
		Repository: a.Infra.Repository,
		Settings:   s.Pipeline,
	}
	pipelineProps.Description = jsii.String("ECS Anywhere build and deploy pipeline")
	a.Pipeline = pipeline.NewStack(app, pipeline.StackID, pipelineProps)

	if s.Nag {
		awscdk.Aspects_Of(app).Add(cdknag.NewAwsSolutionsChecks(&cdknag.NagPackProps{Verbose: jsii.Bool(true)}), nil)
		log.Debug("cdk-nag AwsSolutions checks enabled")
	}

	return a, nil
}

// Synth writes the cloud assembly and returns its directory. CDK reports
// construct validation failures by panicking; those are returned as errors.
func (a *App) Synth() (dir string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("synth failed: %v", r)
		}
	}()

	start := time.Now()
	asm := a.App.Synth(nil)
	dir = *asm.Directory()
	log.Debugf("synthesized %d stacks to %s in %s", len(StackIDs), dir, log.Since(start))
	return dir, nil
}

func (s Settings) environment() *awscdk.Environment {
	if s.Account == "" && s.Region == "" {
		return nil
	}
	env := &awscdk.Environment{}
	if s.Account != "" {
		env.Account = jsii.String(s.Account)
	}
	if s.Region != "" {
		env.Region = jsii.String(s.Region)
	}
	return env
}
