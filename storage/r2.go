package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type R2Options struct {
	Bucket    string
	AccessKey string
	SecretKey string
	// Endpoint is https://<account-id>.r2.cloudflarestorage.com
	Endpoint string
	// PublicDomain is the custom domain or r2.dev URL objects are served from.
	PublicDomain string
}

// R2Store writes to Cloudflare R2 through its S3 compatible API.
type R2Store struct {
	S3     *s3.Client
	Bucket string
	domain string
}

func NewR2(ctx context.Context, opts R2Options) (*R2Store, error) {
	if opts.Bucket == "" || opts.AccessKey == "" || opts.SecretKey == "" || opts.Endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2Store{
		S3:     client,
		Bucket: opts.Bucket,
		domain: strings.TrimRight(opts.PublicDomain, "/"),
	}, nil
}

func (r *R2Store) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := r.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("no-cache"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return r.publicURL(key), nil
}

func (r *R2Store) publicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", r.domain, r.Bucket, key)
}
