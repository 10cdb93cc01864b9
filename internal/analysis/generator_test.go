package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/medvalidate-backend/internal/analysis/analysistest"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/llm"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

func testIdea() *types.Idea {
	return &types.Idea{ID: uuid.New(), Title: "Urdu mental health chatbot", Category: "mental-health"}
}

func TestGenerateBasic(t *testing.T) {
	fake := analysistest.NewFakeClient(analysistest.Response{Payload: analysistest.BasicPayload(69.4)})
	g := NewGenerator(logger.Nop(), fake)

	res, err := g.GenerateBasic(context.Background(), testIdea())
	if err != nil {
		t.Fatalf("GenerateBasic: %v", err)
	}
	if res.Scores.ReadinessScore != 69 {
		t.Fatalf("readiness: want=69 got=%d", res.Scores.ReadinessScore)
	}
	prompt := fake.LastUserPrompt()
	if !strings.Contains(prompt, "- Problem Statement: Not specified") || !strings.Contains(prompt, "- Domain: Healthcare") {
		t.Fatalf("prompt defaults missing:\n%s", prompt)
	}
}

func TestGenerateBasicFailures(t *testing.T) {
	cases := []struct {
		name      string
		resp      analysistest.Response
		kind      types.FailureKind
		retryable bool
	}{
		{"transport", analysistest.Response{Err: &llm.HTTPError{StatusCode: 503}}, types.FailureGeneration, true},
		{"client error", analysistest.Response{Err: &llm.HTTPError{StatusCode: 401}}, types.FailureGeneration, false},
		{"not json", analysistest.Response{Err: llm.ErrNotAnObject}, types.FailureGeneration, false},
		{"invalid shape", analysistest.Response{Payload: map[string]any{"scores": "nope"}}, types.FailureValidation, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGenerator(logger.Nop(), analysistest.NewFakeClient(tc.resp))
			_, err := g.GenerateBasic(context.Background(), testIdea())
			af, ok := types.AsAnalysisFailure(err)
			if !ok {
				t.Fatalf("want AnalysisFailure got=%v", err)
			}
			if af.Kind != tc.kind || af.Pass != PassBasic || af.Retryable != tc.retryable {
				t.Fatalf("failure: want kind=%s retryable=%v got=%+v", tc.kind, tc.retryable, af)
			}
		})
	}
}

func TestGenerateDeepValidation(t *testing.T) {
	bad := analysistest.DeepPayload("x")
	bad["competitors"] = []any{}
	g := NewGenerator(logger.Nop(), analysistest.NewFakeClient(analysistest.Response{Payload: bad}))

	_, err := g.GenerateDeep(context.Background(), testIdea())
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("GenerateDeep: want ErrInvalidResponse got=%v", err)
	}
	af, _ := types.AsAnalysisFailure(err)
	if af == nil || af.Pass != PassDeep {
		t.Fatalf("GenerateDeep: want deep failure got=%v", err)
	}
}
