// Package archive keeps JSON snapshots of published posts in CloudFlare R2
// (S3-compatible) object storage. The archive is best-effort: failures are
// logged and never block or fail an approve. Core pipeline state stays in
// memory.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/trungnb/gigfeed/internal/models"
)

// Archiver uploads published posts to a bucket.
type Archiver struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

// Config holds the R2 connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// New builds an S3 client against the R2 endpoint.
func New(ctx context.Context, cfg Config) (*Archiver, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &Archiver{client: client, bucket: cfg.Bucket, now: time.Now}, nil
}

// Store uploads the post under a dated key, published/YYYY/MM/DD/<ts>_<id>.json.
func (a *Archiver) Store(ctx context.Context, post models.PendingPost) error {
	body, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal post %s: %w", post.ID, err)
	}

	ts := a.now().UTC()
	key := fmt.Sprintf("published/%s/%d_%s.json", ts.Format("2006/01/02"), ts.Unix(), post.ID)

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
