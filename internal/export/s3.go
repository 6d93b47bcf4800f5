package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config configures the object-store export backend.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// S3Store exports resources into an S3-compatible bucket. Objects are
// buffered locally and uploaded on Close, with retries for transient
// failures.
type S3Store struct {
	client   *minio.Client
	bucket   string
	region   string
	prefix   string
	initOnce sync.Once
	initErr  error
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Store{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

func (s *S3Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	name = sanitizeName(name)
	if name == "" {
		return nil, fmt.Errorf("empty export name")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}
	key := name
	if s.prefix != "" {
		key = s.prefix + "/" + name
	}
	return &s3Object{ctx: ctx, store: s, key: key}, nil
}

// s3Object buffers the export and uploads it on Close, so copy errors and
// upload errors both surface through the save path.
type s3Object struct {
	ctx   context.Context
	store *S3Store
	key   string
	buf   bytes.Buffer
}

func (o *s3Object) Write(p []byte) (int, error) {
	return o.buf.Write(p)
}

func (o *s3Object) Close() error {
	upload := func() error {
		_, err := o.store.client.PutObject(
			o.ctx, o.store.bucket, o.key,
			bytes.NewReader(o.buf.Bytes()), int64(o.buf.Len()),
			minio.PutObjectOptions{ContentType: "application/octet-stream"},
		)
		return err
	}
	if err := withRetry(o.ctx, upload); err != nil {
		return fmt.Errorf("upload %s: %w", o.key, err)
	}
	return nil
}
