// Package source opens the byte streams the tinypng command decodes: local
// files, standard input and objects in S3-compatible storage.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/tsawler/tinypng/config"
	"github.com/tsawler/tinypng/internal/oops"
)

// ErrNotFound is wrapped by errors for missing files, buckets and keys.
var ErrNotFound = errors.New("source: not found")

// Stdin is the location that reads standard input.
const Stdin = "-"

const s3Scheme = "s3://"

// Kind says where a Location's bytes come from.
type Kind int

const (
	File Kind = iota
	StandardInput
	S3
)

func (k Kind) String() string {
	switch k {
	case StandardInput:
		return "stdin"
	case S3:
		return "s3"
	default:
		return "file"
	}
}

// Location is a parsed source argument.
type Location struct {
	Kind   Kind
	Path   string // File
	Bucket string // S3
	Key    string // S3
}

func (l Location) String() string {
	switch l.Kind {
	case StandardInput:
		return Stdin
	case S3:
		return s3Scheme + l.Bucket + "/" + l.Key
	default:
		return l.Path
	}
}

// Name returns the base name used to guess formats and label output.
func (l Location) Name() string {
	switch l.Kind {
	case StandardInput:
		return "stdin"
	case S3:
		return l.Key[strings.LastIndex(l.Key, "/")+1:]
	default:
		return l.Path
	}
}

// Parse classifies a location: "-" is standard input, "s3://bucket/key" is
// an object, anything else is a file path.
func Parse(location string) (Location, error) {
	switch {
	case location == "":
		return Location{}, oops.New(nil, "empty source location")
	case location == Stdin:
		return Location{Kind: StandardInput}, nil
	case strings.HasPrefix(location, s3Scheme):
		rest := strings.TrimPrefix(location, s3Scheme)
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || key == "" {
			return Location{}, oops.New(nil, "invalid S3 location %q, want s3://bucket/key", location)
		}
		return Location{Kind: S3, Bucket: bucket, Key: key}, nil
	default:
		return Location{Kind: File, Path: location}, nil
	}
}

// Open parses location and opens it. S3 locations build a client from cfg.
// The caller must close the result.
func Open(ctx context.Context, location string, cfg config.S3Config) (io.ReadCloser, error) {
	loc, err := Parse(location)
	if err != nil {
		return nil, err
	}

	switch loc.Kind {
	case StandardInput:
		return io.NopCloser(os.Stdin), nil
	case S3:
		client, err := NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return OpenObject(ctx, client, loc.Bucket, loc.Key)
	default:
		return OpenFile(loc.Path)
	}
}

// OpenFile opens a local file.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, oops.New(fmt.Errorf("%w: %w", ErrNotFound, err), "failed to open file")
		}
		return nil, oops.New(err, "failed to open file")
	}
	return f, nil
}

// Bytes wraps an in-memory buffer as a source.
func Bytes(data []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(data))
}

// ObjectGetter is the part of *s3.Client used to fetch objects.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// NewS3Client builds a client for cfg. Without static credentials the AWS
// default credential chain applies.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.Secret, ""),
		))
	}
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		opts = append(opts, awsconfig.WithEndpointResolver(aws.EndpointResolverFunc(func(service, region string) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL: endpoint,
			}, nil
		})))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, oops.New(err, "failed to load S3 configuration")
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
	}), nil
}

// OpenObject fetches bucket/key. Missing buckets and keys wrap ErrNotFound.
func OpenObject(ctx context.Context, client ObjectGetter, bucket, key string) (io.ReadCloser, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiError smithy.APIError
		if errors.As(err, &apiError) {
			switch apiError.ErrorCode() {
			case "NoSuchKey", "NoSuchBucket", "NotFound":
				return nil, oops.New(fmt.Errorf("%w: %w", ErrNotFound, err), "failed to get s3://%s/%s", bucket, key)
			}
		}
		return nil, oops.New(err, "failed to get s3://%s/%s", bucket, key)
	}
	return out.Body, nil
}
