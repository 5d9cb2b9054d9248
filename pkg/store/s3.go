package store

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/errors"
)

// Defaults of the original chart bucket.
const (
	DefaultBucket = "gnocai3data"
	DefaultRegion = "us-west-2"
)

// S3Config configures [NewS3Store]. Credentials fall back to the default
// AWS chain when AccessKeyID is empty.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Endpoint        string // S3-compatible endpoint, enables path-style addressing
}

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Store keeps artifacts in an S3 bucket and hands out presigned GET URLs.
type S3Store struct {
	client    s3API
	presigner presignAPI
	bucket    string
}

// NewS3Store loads the AWS configuration and builds the client.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load AWS config")
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}
	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return newS3Store(client, s3.NewPresignClient(client), cfg.Bucket), nil
}

func newS3Store(client s3API, presigner presignAPI, bucket string) *S3Store {
	return &S3Store{client: client, presigner: presigner, bucket: bucket}
}

// Bucket returns the target bucket.
func (s *S3Store) Bucket() string { return s.bucket }

// Put implements [Store].
func (s *S3Store) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	key := NewKey(contentType)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", cache.Retryable(errors.Wrap(errors.ErrCodeStore, err, "put s3://%s/%s", s.bucket, key))
	}
	return key, nil
}

// SignedGet implements [Store] with an S3 presigned request.
func (s *S3Store) SignedGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStore, err, "presign s3://%s/%s", s.bucket, key)
	}
	return req.URL, nil
}

// Get implements [Reader].
func (s *S3Store) Get(ctx context.Context, key string) ([]byte, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if stderrors.As(err, &nsk) {
			return nil, "", errors.New(errors.ErrCodeNotFound, "artifact not found: %s", key)
		}
		return nil, "", cache.Retryable(errors.Wrap(errors.ErrCodeStore, err, "get s3://%s/%s", s.bucket, key))
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeStore, err, "read s3://%s/%s", s.bucket, key)
	}
	ct := aws.ToString(out.ContentType)
	if ct == "" {
		ct = ContentTypeOf(key)
	}
	return data, ct, nil
}

var (
	_ Store  = (*S3Store)(nil)
	_ Reader = (*S3Store)(nil)
)
