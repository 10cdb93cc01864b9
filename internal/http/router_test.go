package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/medvalidate-backend/internal/analysis/projection"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	httpH "github.com/yungbote/medvalidate-backend/internal/http/handlers"
	httpMW "github.com/yungbote/medvalidate-backend/internal/http/middleware"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
	"github.com/yungbote/medvalidate-backend/internal/services"
)

type stubIdeas struct {
	owner    uuid.UUID
	outcome  *services.AnalysisOutcome
	notReady error
	lastIn   services.IdeaSubmission
}

func (s *stubIdeas) CreateIdea(ctx context.Context, userID uuid.UUID, in services.IdeaSubmission) (*services.AnalysisOutcome, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("title: %w", types.ErrInvalidArgument)
	}
	s.lastIn = in
	return s.outcome, nil
}

func (s *stubIdeas) ReanalyzeIdea(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (*services.AnalysisOutcome, error) {
	if userID != s.owner {
		return nil, types.ErrForbidden
	}
	return nil, types.ErrAnalysisInProgress
}

func (s *stubIdeas) ListIdeas(ctx context.Context, userID uuid.UUID) ([]*projection.IdeaResult, error) {
	return []*projection.IdeaResult{}, nil
}

func (s *stubIdeas) GetIdea(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (*projection.IdeaResult, error) {
	return nil, types.ErrNotFound
}

func (s *stubIdeas) DeleteIdea(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) error {
	return nil
}

type stubDeep struct{}

func (stubDeep) RunDeepAnalysis(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (bool, error) {
	return true, nil
}

func (stubDeep) GetFullAnalysis(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (*projection.FullAnalysis, error) {
	return nil, &types.AnalysisFailure{Kind: types.FailurePersistence, Err: fmt.Errorf("disk full")}
}

type testRouter struct {
	engine *gin.Engine
	token  string
}

func newTestRouter(t *testing.T, ideas *stubIdeas) *testRouter {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	auth := services.NewAuthService(log, "router-test-secret")
	token, err := auth.IssueToken(ideas.owner, "owner@example.com", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	engine := NewRouter(RouterConfig{
		Log:            log,
		AuthMiddleware: httpMW.NewAuthMiddleware(log, auth),
		HealthHandler:  httpH.NewHealthHandler("test", func(context.Context) error { return ideas.notReady }),
		IdeaHandler:    httpH.NewIdeaHandler(log, ideas, stubDeep{}),
	})
	return &testRouter{engine: engine, token: token}
}

func (tr *testRouter) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+tr.token)
	}
	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return env.Error.Code
}

func TestRouterHealthIsPublic(t *testing.T) {
	tr := newTestRouter(t, &stubIdeas{owner: uuid.New()})
	w := tr.do(http.MethodGet, "/healthcheck", "", false)
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("healthcheck: want=200 ok got=%d %q", w.Code, w.Body.String())
	}
}

func TestRouterReadiness(t *testing.T) {
	tr := newTestRouter(t, &stubIdeas{owner: uuid.New()})
	if w := tr.do(http.MethodGet, "/readyz", "", false); w.Code != http.StatusOK {
		t.Fatalf("readyz: want=200 got=%d", w.Code)
	}

	tr = newTestRouter(t, &stubIdeas{owner: uuid.New(), notReady: fmt.Errorf("db down")})
	w := tr.do(http.MethodGet, "/readyz", "", false)
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), "unavailable") {
		t.Fatalf("readyz: want=503 got=%d %q", w.Code, w.Body.String())
	}
}

func TestRouterAPIRequiresToken(t *testing.T) {
	tr := newTestRouter(t, &stubIdeas{owner: uuid.New()})
	w := tr.do(http.MethodGet, "/api/ideas", "", false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: want=401 got=%d", w.Code)
	}
	if got := errorCode(t, w); got != "unauthorized" {
		t.Fatalf("code: want=unauthorized got=%q", got)
	}
}

func TestRouterMapsErrors(t *testing.T) {
	owner := uuid.New()
	failed := &services.AnalysisOutcome{
		Success:        false,
		Error:          "model unreachable",
		AnalysisStatus: services.AnalysisStatusFailed,
		Failure:        &types.AnalysisFailure{Kind: types.FailureGeneration, Err: fmt.Errorf("dial")},
	}
	tr := newTestRouter(t, &stubIdeas{owner: owner, outcome: failed})
	ideaPath := "/api/ideas/" + uuid.NewString()

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"list", http.MethodGet, "/api/ideas", "", http.StatusOK, ""},
		{"bad json", http.MethodPost, "/api/ideas", "{", http.StatusBadRequest, "invalid_request"},
		{"missing title", http.MethodPost, "/api/ideas", `{"description":"x"}`, http.StatusBadRequest, "invalid_argument"},
		{"generation failure", http.MethodPost, "/api/ideas", `{"title":"Triage"}`, http.StatusBadGateway, ""},
		{"bad id", http.MethodGet, "/api/ideas/not-a-uuid", "", http.StatusBadRequest, "invalid_idea_id"},
		{"not found", http.MethodGet, ideaPath, "", http.StatusNotFound, "not_found"},
		{"in progress", http.MethodPost, ideaPath + "/reanalyze", "", http.StatusConflict, "analysis_in_progress"},
		{"delete", http.MethodDelete, ideaPath, "", http.StatusNoContent, ""},
		{"deep run", http.MethodPost, ideaPath + "/full-analysis", "", http.StatusOK, ""},
		{"deep persistence", http.MethodGet, ideaPath + "/full-analysis", "", http.StatusInternalServerError, "analysis_persistence_failed"},
	}
	for _, tc := range cases {
		w := tr.do(tc.method, tc.path, tc.body, true)
		if w.Code != tc.status {
			t.Fatalf("%s: status want=%d got=%d body=%s", tc.name, tc.status, w.Code, w.Body.String())
		}
		if tc.code != "" {
			if got := errorCode(t, w); got != tc.code {
				t.Fatalf("%s: code want=%q got=%q", tc.name, tc.code, got)
			}
		}
	}
}

func TestRouterHidesInternalMessages(t *testing.T) {
	tr := newTestRouter(t, &stubIdeas{owner: uuid.New()})
	w := tr.do(http.MethodGet, "/api/ideas/"+uuid.NewString()+"/full-analysis", "", true)
	if strings.Contains(w.Body.String(), "disk full") {
		t.Fatalf("5xx body leaked cause: %s", w.Body.String())
	}
}

func TestRouterFailureOutcomeBody(t *testing.T) {
	failed := &services.AnalysisOutcome{
		Success:        false,
		Error:          "model unreachable",
		AnalysisStatus: services.AnalysisStatusFailed,
		Failure:        &types.AnalysisFailure{Kind: types.FailureValidation},
	}
	tr := newTestRouter(t, &stubIdeas{owner: uuid.New(), outcome: failed})
	w := tr.do(http.MethodPost, "/api/ideas", `{"title":"Triage"}`, true)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status: want=502 got=%d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != false || body["analysisStatus"] != services.AnalysisStatusFailed {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRouterCreateAcceptsRangeTags(t *testing.T) {
	ideas := &stubIdeas{owner: uuid.New(), outcome: &services.AnalysisOutcome{Success: true, AnalysisStatus: services.AnalysisStatusCompleted}}
	tr := newTestRouter(t, ideas)
	body := `{"title":"AI Telemedicine for Rural Clinics","category":"telemedicine","stage":"idea","team_size":"2-5","funding_needed":"under-1m"}`
	w := tr.do(http.MethodPost, "/api/ideas", body, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: want=201 got=%d body=%s", w.Code, w.Body.String())
	}
	if ideas.lastIn.TeamSize != "2-5" || ideas.lastIn.FundingNeeded != "under-1m" {
		t.Fatalf("tags: got team=%q funding=%q", ideas.lastIn.TeamSize, ideas.lastIn.FundingNeeded)
	}
}
