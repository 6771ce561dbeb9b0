package mediahost

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the settings for an S3-compatible media host (MinIO, R2,
// or AWS proper). PublicBaseURL is the externally reachable root under which
// stored objects are served.
type S3Config struct {
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	BaseEndpoint  string
	PublicBaseURL string
}

type S3Host struct {
	cfg    S3Config
	client *s3.Client
}

// Seam for tests.
var loadDefaultAWSConfig = config.LoadDefaultConfig

func NewS3Host(ctx context.Context, cfg S3Config) (*S3Host, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Host{cfg: cfg, client: client}, nil
}

// Store puts the object into the bucket with long-lived caching headers and
// returns its public delivery URL. Content addressing makes re-uploads of
// identical bytes overwrite the same key, which is harmless.
func (h *S3Host) Store(ctx context.Context, obj Object) (*Result, error) {
	_, err := h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(h.cfg.Bucket),
		Key:          aws.String(obj.Key),
		Body:         bytes.NewReader(obj.Body),
		ContentType:  aws.String(obj.ContentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return nil, fmt.Errorf("media host upload: %w", err)
	}

	return &Result{
		URL:      h.deliveryURL(obj.Key),
		PublicID: obj.Key,
	}, nil
}

func (h *S3Host) deliveryURL(key string) string {
	base := strings.TrimRight(h.cfg.PublicBaseURL, "/")
	return fmt.Sprintf("%s/%s/%s", base, h.cfg.Bucket, key)
}
