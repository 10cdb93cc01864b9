package app

import (
	"context"
	"errors"
	"time"

	"github.com/yungbote/medvalidate-backend/internal/observability"
	"github.com/yungbote/medvalidate-backend/internal/platform/llm"
)

type instrumentedLLMClient struct {
	inner   llm.Client
	metrics *observability.Metrics
}

func instrumentLLMClient(inner llm.Client) llm.Client {
	if inner == nil {
		return nil
	}
	return &instrumentedLLMClient{
		inner:   inner,
		metrics: observability.Current(),
	}
}

func (c *instrumentedLLMClient) GenerateJSON(ctx context.Context, system string, user string) (map[string]any, error) {
	start := time.Now()
	out, err := c.inner.GenerateJSON(ctx, system, user)
	c.observe(err, time.Since(start))
	return out, err
}

func (c *instrumentedLLMClient) Model() string { return c.inner.Model() }

func (c *instrumentedLLMClient) observe(err error, dur time.Duration) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.ObserveLLMRequest(c.inner.Model(), llmStatus(err), dur)
}

func llmStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, llm.ErrEmptyContent), errors.Is(err, llm.ErrNotAnObject):
		return "invalid_output"
	default:
		return "error"
	}
}
