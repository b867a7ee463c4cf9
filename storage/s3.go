package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultS3Region = "us-west-2"

// S3Backend stores images in S3 buckets,
// locations take the form s3://bucket/key.
//
// The client is configured from AWS_REGION,
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY,
// AWS_SESSION_TOKEN and, for S3 compatible
// services, AWS_ENDPOINT_URL.
type S3Backend struct {
	// Options, when set, replaces the
	// environment derived client options.
	Options *s3.Options

	client     *s3.Client
	clientOnce sync.Once
}

func (backend *S3Backend) getClient() *s3.Client {
	backend.clientOnce.Do(func() {
		if backend.Options != nil {
			backend.client = s3.New(*backend.Options)
			return
		}

		backend.client = s3.New(environmentS3Options())
	})

	return backend.client
}

func environmentS3Options() s3.Options {
	region := os.Getenv("AWS_REGION")
	if len(region) == 0 {
		region = defaultS3Region
	}

	options := s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(environmentCredentials)),
	}

	if endpoint := os.Getenv("AWS_ENDPOINT_URL"); len(endpoint) > 0 {
		options.BaseEndpoint = aws.String(endpoint)
		options.UsePathStyle = true
	}

	return options
}

func environmentCredentials(_ context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}

	if len(creds.AccessKeyID) == 0 || len(creds.SecretAccessKey) == 0 {
		return aws.Credentials{}, errors.New("AWS credentials not set in environment")
	}

	return creds, nil
}

func s3Object(loc *url.URL) (string, string, error) {
	key := strings.TrimPrefix(loc.Path, "/")
	if len(loc.Host) == 0 || len(key) == 0 {
		return "", "", fmt.Errorf("location %q must be s3://bucket/key", loc.String())
	}

	return loc.Host, key, nil
}

func (backend *S3Backend) Load(ctx context.Context, loc *url.URL) ([]byte, error) {
	bucket, key, err := s3Object(loc)
	if err != nil {
		return nil, err
	}

	resp, err := backend.getClient().GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get S3 object: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read S3 object body: %w", err)
	}

	return data, nil
}

func (backend *S3Backend) Store(ctx context.Context, loc *url.URL, data []byte) error {
	bucket, key, err := s3Object(loc)
	if err != nil {
		return err
	}

	_, err = backend.getClient().PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("put S3 object: %w", err)
	}

	return nil
}
