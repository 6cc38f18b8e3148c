// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ecsanywhere/ecsanywhere/internal/assembly"
	"github.com/ecsanywhere/ecsanywhere/internal/log"
)

// ErrNoBucket is returned by PublishTemplates without a bucket name.
var ErrNoBucket = errors.New("no bucket given")

// ObjectPutter is the part of the S3 client PublishTemplates needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// Published describes one uploaded template.
type Published struct {
	Stack string `json:"stack" yaml:"stack"`
	Key   string `json:"key" yaml:"key"`
	URL   string `json:"url" yaml:"url"`
	Size  int    `json:"size" yaml:"size"`
	ETag  string `json:"etag" yaml:"etag"`
}

// TemplateKey is the object key of a stack template beneath prefix.
func TemplateKey(prefix, stack string) string {
	return path.Join(strings.Trim(prefix, "/"), stack+".template.json")
}

// PublishTemplates uploads each stack's template to bucket. It stops at the
// first failure and returns what was uploaded so far.
func PublishTemplates(ctx context.Context, client ObjectPutter, bucket, prefix string, stacks []*assembly.Stack) ([]Published, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}

	var done []Published
	for _, s := range stacks {
		key := TemplateKey(prefix, s.Name)

		out, err := client.PutObject(ctx, &s3v2.PutObjectInput{
			Bucket:      awsv2.String(bucket),
			Key:         awsv2.String(key),
			Body:        bytes.NewReader(s.Template),
			ContentType: awsv2.String("application/json"),
			Metadata:    map[string]string{"stack": s.Name},
		})
		if err != nil {
			return done, fmt.Errorf("failed to publish %s to s3://%s/%s: %w", s.Name, bucket, key, err)
		}

		p := Published{
			Stack: s.Name,
			Key:   key,
			URL:   objectURL(client, bucket, key),
			Size:  len(s.Template),
		}
		if out != nil {
			p.ETag = strings.Trim(awsv2.ToString(out.ETag), `"`)
		}
		log.Debugf("published %s: key=%s size=%d", s.Name, key, p.Size)
		done = append(done, p)
	}
	return done, nil
}

// ObjectURL is the HTTPS URL of key in bucket. A custom endpoint gives a
// path-style URL, matching WithS3Endpoint; otherwise the regional
// virtual-hosted URL, or the global one for us-east-1 or no region.
func ObjectURL(bucket, key, region, endpoint string) string {
	switch {
	case endpoint != "":
		return strings.TrimRight(endpoint, "/") + "/" + bucket + "/" + key
	case region == "" || region == "us-east-1":
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
	}
}

// objectURL takes region and endpoint from clients that expose their
// options, as *s3.Client does.
func objectURL(client ObjectPutter, bucket, key string) string {
	var region, endpoint string
	if c, ok := client.(interface{ Options() s3v2.Options }); ok {
		o := c.Options()
		region, endpoint = o.Region, awsv2.ToString(o.BaseEndpoint)
	}
	return ObjectURL(bucket, key, region, endpoint)
}
