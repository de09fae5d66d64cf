package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	catalogModel "edupath/internal/catalog/models"
	marketModel "edupath/internal/market/models"
	"edupath/internal/orchestrator"
	recModel "edupath/internal/recommendation/models"
	sessionModel "edupath/internal/session/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

type fakePipeline struct {
	result *orchestrator.Result
	err    error
}

func (f *fakePipeline) Run(context.Context, id.SessionID, catalogModel.Filters) (*orchestrator.Result, error) {
	return f.result, f.err
}

type fakeOutputs struct {
	output *recModel.Output
	err    error
}

func (f *fakeOutputs) GetBySession(context.Context, id.SessionID) (*recModel.Output, error) {
	return f.output, f.err
}

func newRecommendationRouter(t *testing.T, pipeline Pipeline, outputs OutputStore) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(pipeline, outputs, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func postGenerate(t *testing.T, router http.Handler, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/recommendations/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGenerateReturnsInsights(t *testing.T) {
	sessionID := id.NewSessionID()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	session := sessionModel.NewSession(sessionID, now)
	if err := session.AdvanceTo(sessionModel.StateCompleted, now); err != nil {
		t.Fatalf("failed to complete session: %v", err)
	}
	pipeline := &fakePipeline{result: &orchestrator.Result{
		Success: true,
		Session: session,
		Output:  &recModel.Output{SessionID: sessionID, GeneratedAt: now},
		Insights: &marketModel.Insights{
			SalaryExpectations: marketModel.SalaryExpectations{
				OverallRange: marketModel.SalaryBand{Min: 150000, Max: 2000000},
			},
			AnalyzedAt: now,
		},
	}}
	router := newRecommendationRouter(t, pipeline, &fakeOutputs{})

	rec := postGenerate(t, router, map[string]any{"session_id": sessionID.String()})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success  bool `json:"success"`
		Insights *struct {
			SalaryExpectations struct {
				OverallRange marketModel.SalaryBand `json:"overall_range"`
			} `json:"salary_expectations"`
		} `json:"market_insights"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success true")
	}
	if resp.Insights == nil {
		t.Fatalf("expected market_insights in the response")
	}
	if resp.Insights.SalaryExpectations.OverallRange.Max != 2000000 {
		t.Fatalf("expected the overall salary range to round-trip, got %+v", resp.Insights.SalaryExpectations.OverallRange)
	}
}

func TestGenerateFailureCarriesFailedSession(t *testing.T) {
	sessionID := id.NewSessionID()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	session := sessionModel.NewSession(sessionID, now)
	session.Fail(orchestrator.StageProfile, dErrors.New(dErrors.CodeNotFound, "profile not found for session"), now)

	pipeline := &fakePipeline{
		result: &orchestrator.Result{Session: session},
		err:    dErrors.New(dErrors.CodeNotFound, "profile not found for session"),
	}
	router := newRecommendationRouter(t, pipeline, &fakeOutputs{})

	rec := postGenerate(t, router, map[string]any{"session_id": sessionID.String()})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a profile lookup miss, got %d", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Session struct {
			State       string `json:"state"`
			FailedStage string `json:"failed_stage"`
			Error       string `json:"error"`
		} `json:"session"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode failure body: %v", err)
	}
	if resp.Success {
		t.Fatalf("expected success false in the failure body")
	}
	if resp.Session.FailedStage != orchestrator.StageProfile {
		t.Fatalf("expected failed_stage %q, got %q", orchestrator.StageProfile, resp.Session.FailedStage)
	}
	if resp.Session.State != "failed" {
		t.Fatalf("expected state failed, got %q", resp.Session.State)
	}
	if resp.Session.Error == "" {
		t.Fatalf("expected the stage error in the failure body")
	}
}

func TestGenerateFatalFailureStatus(t *testing.T) {
	sessionID := id.NewSessionID()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	session := sessionModel.NewSession(sessionID, now)
	session.Fail(orchestrator.StageRecommend, dErrors.New(dErrors.CodeInternal, "recommend stage failed"), now)

	pipeline := &fakePipeline{
		result: &orchestrator.Result{Session: session},
		err:    dErrors.New(dErrors.CodeInternal, "recommend stage failed"),
	}
	router := newRecommendationRouter(t, pipeline, &fakeOutputs{})

	rec := postGenerate(t, router, map[string]any{"session_id": sessionID.String()})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for a fatal stage failure, got %d", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Session struct {
			FailedStage string `json:"failed_stage"`
		} `json:"session"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode failure body: %v", err)
	}
	if resp.Success || resp.Session.FailedStage != orchestrator.StageRecommend {
		t.Fatalf("expected failed_stage %q with success false, got %+v", orchestrator.StageRecommend, resp)
	}
}

func TestGenerateValidation(t *testing.T) {
	router := newRecommendationRouter(t, &fakePipeline{}, &fakeOutputs{})

	t.Run("missing session_id", func(t *testing.T) {
		rec := postGenerate(t, router, map[string]any{"degree_type": "bachelor"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 without session_id, got %d", rec.Code)
		}
	})

	t.Run("malformed institution_id", func(t *testing.T) {
		rec := postGenerate(t, router, map[string]any{
			"session_id":     uuid.New().String(),
			"institution_id": "not-a-uuid",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed institution_id, got %d", rec.Code)
		}
	})
}
