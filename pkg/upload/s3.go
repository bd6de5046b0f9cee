package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3Picker.
type S3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Picker selects objects stored under a bucket prefix.
//
// Objects are listed in key order. Content is fetched lazily when the
// returned File is opened.
//
// Example usage:
//
//	client := upload.NewS3Client(upload.S3Config{Region: "us-east-1"})
//	picker := upload.NewS3Picker(client, "my-bucket", "incoming/", 50<<20)
type S3Picker struct {
	client  S3API
	bucket  string
	prefix  string
	maxSize int64
}

// NewS3Picker creates a picker over bucket/prefix.
//
// Parameters:
//   - client: S3 client (see NewS3Client)
//   - bucket: S3 bucket name
//   - prefix: Key prefix to list (e.g., "incoming/")
//   - maxSize: Maximum object size in bytes (0 = no limit)
func NewS3Picker(client S3API, bucket, prefix string, maxSize int64) *S3Picker {
	return &S3Picker{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		maxSize: maxSize,
	}
}

// List returns every object under the prefix. Directory markers are skipped.
func (p *S3Picker) List(ctx context.Context) ([]*File, error) {
	paginator := s3.NewListObjectsV2Paginator(p.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(p.bucket),
		Prefix: aws.String(p.prefix),
	})

	var files []*File
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list failed: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			files = append(files, p.file(key, aws.ToInt64(obj.Size)))
		}
	}
	return files, nil
}

// Pick implements Picker.
func (p *S3Picker) Pick(ctx context.Context, req PickRequest) ([]*File, error) {
	candidates, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	files, err := choose(candidates, req)
	if err != nil {
		return nil, err
	}
	if err := checkSize(files, p.maxSize); err != nil {
		return nil, err
	}
	return files, nil
}

// MaxFileSize implements SizeLimiter.
func (p *S3Picker) MaxFileSize() int64 {
	return p.maxSize
}

func (p *S3Picker) file(key string, size int64) *File {
	name := path.Base(key)
	return &File{
		ID:          generateID(),
		Filename:    name,
		ContentType: DetectContentType(name, nil),
		Size:        size,
		URL:         "s3://" + p.bucket + "/" + key,
		open: func(ctx context.Context) (io.ReadCloser, error) {
			out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(p.bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				return nil, fmt.Errorf("s3 get failed: %w", err)
			}
			return out.Body, nil
		},
	}
}

// S3Config configures NewS3Client.
type S3Config struct {
	// Region is the AWS region (e.g., "us-east-1").
	Region string

	// Endpoint overrides the service endpoint, e.g. for MinIO.
	Endpoint string

	// UsePathStyle addresses buckets as path segments instead of subdomains.
	UsePathStyle bool
}

// NewS3Client creates an S3 client that reads static credentials from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
// Without credentials in the environment, requests are sent anonymously.
func NewS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	if os.Getenv("AWS_ACCESS_KEY_ID") != "" {
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials))
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}
	return s3.New(opts)
}

func envCredentials(ctx context.Context) (aws.Credentials, error) {
	return aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "EnvironmentVariables",
	}, nil
}
