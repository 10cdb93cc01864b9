package app

import (
	"context"
	"fmt"

	"github.com/yungbote/medvalidate-backend/internal/platform/llm"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
	"github.com/yungbote/medvalidate-backend/internal/platform/objectstore"
	"github.com/yungbote/medvalidate-backend/internal/platform/redislock"
)

type Clients struct {
	LLM    llm.Client
	Bucket objectstore.BucketService
	Locker redislock.Locker
}

// wireClients builds the external clients. The model client is skipped when
// withLLM is false so maintenance commands run without an API key.
func wireClients(ctx context.Context, log *logger.Logger, cfg Config, withLLM bool) (Clients, error) {
	log.Info("Wiring clients...")

	bucket, err := resolveBucketService(ctx, log, cfg.Storage)
	if err != nil {
		return Clients{}, err
	}

	var locker redislock.Locker
	if cfg.Redis.Addr != "" {
		locker, err = redislock.NewRedisLocker(log, cfg.Redis.Addr, cfg.Redis.LockPrefix)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis locker: %w", err)
		}
	} else {
		log.Warn("REDIS_ADDR not set; analysis locks are process-local")
		locker = redislock.NewLocalLocker()
	}

	out := Clients{Bucket: bucket, Locker: locker}
	if !withLLM {
		return out, nil
	}
	client, err := llm.New(log, llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init llm client: %w", err)
	}
	out.LLM = instrumentLLMClient(client)
	return out, nil
}
