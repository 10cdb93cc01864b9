package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

type BucketCategory string

const (
	BucketCategoryReport BucketCategory = "reports"
)

// BucketService stores generated artifacts and hands out their public URLs.
type BucketService interface {
	UploadFile(dbc dbctx.Context, category BucketCategory, key string, file io.Reader) error
	DeleteFile(dbc dbctx.Context, category BucketCategory, key string) error
	GetPublicURL(category BucketCategory, key string) string
}

// New builds the backend selected by cfg.Mode.
func New(ctx context.Context, log *logger.Logger, cfg Config) (BucketService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate object storage config: %w", err)
	}
	serviceLog := log.With("service", "BucketService")
	var (
		bs  BucketService
		err error
	)
	switch cfg.Mode {
	case ModeGCS, ModeGCSEmulator:
		bs, err = newGCSBucketService(ctx, serviceLog, cfg)
	case ModeS3:
		bs, err = newS3BucketService(ctx, serviceLog, cfg)
	case ModeMemory:
		bs = NewMemoryBucketService(cfg.PublicBaseURL)
	}
	if err != nil {
		return nil, err
	}
	serviceLog.Info(
		"Object storage initialized",
		"mode", cfg.Mode,
		"reports_bucket", cfg.ReportsBucket,
		"public_base_url", cfg.PublicBaseURL,
	)
	return bs, nil
}

func ParseBucketCategory(category string) (BucketCategory, error) {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case string(BucketCategoryReport):
		return BucketCategoryReport, nil
	default:
		return "", fmt.Errorf("unknown bucket category: %q", category)
	}
}

// IsNotFound reports whether err looks like a missing-object error from any backend.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not found") ||
		strings.Contains(s, "not exist") ||
		strings.Contains(s, "nosuchkey") ||
		strings.Contains(s, "doesn't exist")
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	switch {
	case strings.HasSuffix(s, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".json"):
		return "application/json"
	default:
		return ""
	}
}

func joinURL(base, bucket, key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if bucket == "" {
		return fmt.Sprintf("%s/%s", base, key)
	}
	return fmt.Sprintf("%s/%s/%s", base, bucket, key)
}
