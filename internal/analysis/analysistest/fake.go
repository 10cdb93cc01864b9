// Package analysistest provides a scripted model client and canned payloads
// for tests that drive the analysis pipeline.
package analysistest

import (
	"context"
	"encoding/json"
	"sync"
)

// Response is one scripted model reply. Err wins over Payload.
type Response struct {
	Payload map[string]any
	Err     error
}

// FakeClient replays Responses in order and repeats the last one.
type FakeClient struct {
	mu        sync.Mutex
	responses []Response
	calls     int
	users     []string
}

func NewFakeClient(responses ...Response) *FakeClient {
	return &FakeClient{responses: responses}
}

func (f *FakeClient) GenerateJSON(ctx context.Context, system string, user string) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.users = append(f.users, user)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(f.responses) == 0 {
		return map[string]any{}, nil
	}
	idx := f.calls - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	r := f.responses[idx]
	if r.Err != nil {
		return nil, r.Err
	}
	return clone(r.Payload), nil
}

func (f *FakeClient) Model() string { return "fake-model" }

func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// LastUserPrompt returns the most recent user message, or "".
func (f *FakeClient) LastUserPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.users) == 0 {
		return ""
	}
	return f.users[len(f.users)-1]
}

// clone deep-copies through JSON so callers can mutate replies freely.
func clone(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	var out map[string]any
	_ = json.Unmarshal(b, &out)
	return out
}
