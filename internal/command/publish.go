// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/ecsanywhere/ecsanywhere/internal/aws"
	"github.com/ecsanywhere/ecsanywhere/internal/meta"
	"github.com/ecsanywhere/ecsanywhere/internal/output"
)

var publishColumns = []output.Column{
	{Key: "stack", Title: "STACK"},
	{Key: "key", Title: "KEY"},
	{Key: "size", Title: "SIZE"},
	{Key: "etag", Title: "ETAG"},
	{Key: "url", Title: "URL"},
}

// newPutter builds the S3 client publish uploads with. Tests replace it.
var newPutter = func(ctx context.Context, cmd *cli.Command) (aws.ObjectPutter, error) {
	var opts []aws.Option
	if p := cmd.String("profile"); p != "" {
		opts = append(opts, aws.WithProfile(p))
	}
	if r := cmd.String("region"); r != "" {
		opts = append(opts, aws.WithRegion(r))
	}
	opts = append(opts, aws.WithMaxAttempts(cmd.Int("retries")))

	cfg, err := aws.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	if e := cmd.String("endpoint"); e != "" {
		return aws.NewS3(cfg, aws.WithS3Endpoint(e)), nil
	}
	return aws.NewS3(cfg), nil
}

func publishCommandAction(ctx context.Context, cmd *cli.Command) error {
	_, stacks, err := loadAssembly(cmd)
	if err != nil {
		return err
	}

	bucket := cmd.String("bucket")
	if bucket == "" {
		return aws.ErrNoBucket
	}

	client, err := newPutter(ctx, cmd)
	if err != nil {
		return err
	}

	done, err := aws.PublishTemplates(ctx, client, bucket, cmd.String("prefix"), stacks)

	rows := make([]map[string]interface{}, len(done))
	for i, p := range done {
		rows[i] = map[string]interface{}{
			"stack": p.Stack,
			"key":   p.Key,
			"size":  humanize.Bytes(uint64(p.Size)),
			"etag":  p.ETag,
			"url":   p.URL,
		}
	}

	o := output.FromCommand(cmd)
	if o.Format == output.FormatText && len(done) > 0 {
		o.Footer = fmt.Sprintf("Published %d templates to s3://%s", len(done), bucket)
	}
	if rerr := output.Render(writer(cmd), rows, publishColumns, nil, o); rerr != nil && err == nil {
		err = rerr
	}
	return err
}

func publishCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "publish",
		Usage:     "upload the assembly templates to S3",
		UsageText: "ecsanywhere publish [DIR[::STACK]] --bucket BUCKET [--prefix PREFIX] [options]",
		Flags: []cli.Flag{
			bucketFlag(),
			prefixFlag(),
			profileFlag(),
			regionFlag(),
			retriesFlag(),
			endpointFlag(),
		},
		Action: publishCommandAction,
		Meta:   meta,
	}).Build()
}
