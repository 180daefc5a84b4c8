package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client wraps an S3 API client and the bucket holding texts and reports.
type Client struct {
	api    *s3.Client
	bucket string
}

// LoadAWSConfig loads the default AWS config for region. AWS_ENDPOINT_URL,
// when set, redirects every service to that endpoint (LocalStack).
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	opts := []func(*awsConfig.LoadOptions) error{awsConfig.WithRegion(region)}
	if ep := os.Getenv("AWS_ENDPOINT_URL"); ep != "" {
		opts = append(opts, awsConfig.WithBaseEndpoint(ep))
	}
	return awsConfig.LoadDefaultConfig(ctx, opts...)
}

// NewWithClient constructs an S3 client for the given bucket using the provided aws.Config.
// It enables path-style addressing so LocalStack will accept the requests.
func NewWithClient(bucket string, awsCfg aws.Config) (*Client, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name must be set")
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &Client{
		api:    client,
		bucket: bucket,
	}, nil
}

// Bucket returns the bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// PutObject uploads the data from the reader to S3 under the given key.
func (c *Client) PutObject(ctx context.Context, key string, body io.Reader) error {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// GetObject retrieves the object from S3 and returns its ReadCloser.
func (c *Client) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", c.bucket, key, err)
	}
	return out.Body, nil
}

// ListKeys returns every key in the bucket under prefix.
func (c *Client) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	p := s3.NewListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
		Bucket: &c.bucket,
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", c.bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}
