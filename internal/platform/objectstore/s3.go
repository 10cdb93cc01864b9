package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

const defaultS3Region = "us-east-1"

type s3BucketService struct {
	log           *logger.Logger
	client        *s3.Client
	region        string
	reportsBucket string
	cdnDomain     string
	publicBaseURL string
}

func newS3BucketService(ctx context.Context, log *logger.Logger, cfg Config) (*s3BucketService, error) {
	region := strings.TrimSpace(cfg.S3Region)
	if region == "" {
		region = defaultS3Region
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithDefaultRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.S3Endpoint), "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = cfg.S3PathStyle
	})

	publicBase := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if publicBase == "" && endpoint != "" {
		publicBase = endpoint
	}
	return &s3BucketService{
		log:           log,
		client:        client,
		region:        awsCfg.Region,
		reportsBucket: cfg.ReportsBucket,
		cdnDomain:     strings.TrimSpace(cfg.CDNDomain),
		publicBaseURL: publicBase,
	}, nil
}

func (bs *s3BucketService) bucketName(category BucketCategory) (string, error) {
	switch category {
	case BucketCategoryReport:
		return bs.reportsBucket, nil
	default:
		return "", fmt.Errorf("unknown bucket category: %s", category)
	}
}

func (bs *s3BucketService) UploadFile(dbc dbctx.Context, category BucketCategory, key string, file io.Reader) error {
	name, err := bs.bucketName(category)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(dbc.Ctx, 2*time.Minute)
	defer cancel()

	in := &s3.PutObjectInput{
		Bucket: aws.String(name),
		Key:    aws.String(key),
		Body:   file,
	}
	if ct := contentTypeForKey(key); ct != "" {
		in.ContentType = aws.String(ct)
	}
	if _, err := bs.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("failed to put S3 object %q in bucket %q: %w", key, name, err)
	}
	return nil
}

func (bs *s3BucketService) DeleteFile(dbc dbctx.Context, category BucketCategory, key string) error {
	name, err := bs.bucketName(category)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(dbc.Ctx, 30*time.Second)
	defer cancel()
	if _, err := bs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(name),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete S3 object %q in bucket %q: %w", key, name, err)
	}
	return nil
}

func (bs *s3BucketService) GetPublicURL(category BucketCategory, key string) string {
	name, err := bs.bucketName(category)
	if err != nil {
		return key
	}
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if bs.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", bs.cdnDomain, key)
	}
	if bs.publicBaseURL != "" {
		return joinURL(bs.publicBaseURL, name, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", name, bs.region, key)
}
