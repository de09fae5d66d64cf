package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"edupath/internal/student/service"
	"edupath/internal/student/store"
)

func newStudentRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, err := service.New(store.NewInMemory())
	if err != nil {
		t.Fatalf("failed to build student service: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func postProfile(t *testing.T, router http.Handler, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/students/profile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitAndFetchProfile(t *testing.T) {
	router := newStudentRouter(t)
	sessionID := uuid.New().String()

	rec := postProfile(t, router, map[string]any{
		"session_id":  sessionID,
		"exam_system": "gce",
		"ol_results":  map[string]string{"Mathematics": "A", "Physics": "B"},
		"interests":   []string{"technology"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 submitting profile, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		SessionID        string `json:"session_id"`
		OLevelPoints     int    `json:"ol_points"`
		ProfileCompleted bool   `json:"profile_completed"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode profile response: %v", err)
	}
	if created.SessionID != sessionID {
		t.Fatalf("expected session_id %s, got %s", sessionID, created.SessionID)
	}
	if created.OLevelPoints != 5 {
		t.Fatalf("expected 5 O-Level points, got %d", created.OLevelPoints)
	}
	if !created.ProfileCompleted {
		t.Fatalf("expected profile_completed true")
	}

	getReq := httptest.NewRequest(http.MethodGet, "/students/profile/"+sessionID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching profile, got %d", getRec.Code)
	}
}

func TestSubmitProfileValidation(t *testing.T) {
	router := newStudentRouter(t)

	t.Run("missing session_id", func(t *testing.T) {
		rec := postProfile(t, router, map[string]any{"exam_system": "gce"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 without session_id, got %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/students/profile", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
		}
	})

	t.Run("invalid grade letter", func(t *testing.T) {
		rec := postProfile(t, router, map[string]any{
			"session_id":  uuid.New().String(),
			"exam_system": "gce",
			"ol_results":  map[string]string{"Mathematics": "Z"},
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid grade, got %d", rec.Code)
		}
		var resp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode error response: %v", err)
		}
		if resp.Error != "invalid_input" {
			t.Fatalf("expected invalid_input error code, got %q", resp.Error)
		}
	})
}

func TestFetchUnknownProfile(t *testing.T) {
	router := newStudentRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/students/profile/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", rec.Code)
	}
}
