package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yungbote/medvalidate-backend/internal/platform/llm"
)

func TestInstrumentLLMClientPassThrough(t *testing.T) {
	inner := &fakeLLMClient{out: map[string]any{"readinessScore": 70.0}}
	c := instrumentLLMClient(inner)
	if c == nil {
		t.Fatalf("instrumentLLMClient: expected non-nil wrapper")
	}
	out, err := c.GenerateJSON(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if out["readinessScore"] != 70.0 {
		t.Fatalf("output: want=70 got=%v", out["readinessScore"])
	}
	if inner.calls != 1 {
		t.Fatalf("calls: want=1 got=%d", inner.calls)
	}
	if c.Model() != "fake-model" {
		t.Fatalf("model: want=fake-model got=%q", c.Model())
	}
}

func TestInstrumentLLMClientErrorPassThrough(t *testing.T) {
	want := errors.New("upstream 503")
	c := instrumentLLMClient(&fakeLLMClient{err: want})
	if _, err := c.GenerateJSON(context.Background(), "sys", "user"); !errors.Is(err, want) {
		t.Fatalf("GenerateJSON: want=%v got=%v", want, err)
	}
}

func TestInstrumentLLMClientNil(t *testing.T) {
	if c := instrumentLLMClient(nil); c != nil {
		t.Fatalf("want nil wrapper for nil client")
	}
}

func TestLLMStatus(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{fmt.Errorf("call: %w", context.DeadlineExceeded), "timeout"},
		{context.Canceled, "canceled"},
		{fmt.Errorf("decode: %w", llm.ErrNotAnObject), "invalid_output"},
		{llm.ErrEmptyContent, "invalid_output"},
		{errors.New("boom"), "error"},
	}
	for _, tc := range cases {
		if got := llmStatus(tc.err); got != tc.want {
			t.Fatalf("llmStatus(%v): want=%q got=%q", tc.err, tc.want, got)
		}
	}
}

type fakeLLMClient struct {
	out   map[string]any
	err   error
	calls int
}

func (f *fakeLLMClient) GenerateJSON(_ context.Context, _ string, _ string) (map[string]any, error) {
	f.calls++
	return f.out, f.err
}

func (f *fakeLLMClient) Model() string { return "fake-model" }
