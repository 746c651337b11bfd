package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return resp
}

func TestResponseSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseSuccess(rec, "success", map[string]string{"id": "123"})

	if rec.Code != 200 {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	resp := decodeResponse(t, rec)
	if !resp.Status {
		t.Error("status should be true")
	}
	if resp.Message != "success" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.Data == nil {
		t.Error("data should be set")
	}
}

func TestResponseCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseCreated(rec, "created", nil)

	if rec.Code != 201 {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*httptest.ResponseRecorder)
		code int
	}{
		{"bad request", func(rec *httptest.ResponseRecorder) { ResponseBadRequest(rec, "bad", nil) }, 400},
		{"unauthorized", func(rec *httptest.ResponseRecorder) { ResponseUnauthorized(rec, "no") }, 401},
		{"forbidden", func(rec *httptest.ResponseRecorder) { ResponseForbidden(rec, "no") }, 403},
		{"not found", func(rec *httptest.ResponseRecorder) { ResponseNotFound(rec, "missing") }, 404},
		{"conflict", func(rec *httptest.ResponseRecorder) { ResponseConflict(rec, "taken") }, 409},
		{"internal", func(rec *httptest.ResponseRecorder) { ResponseInternalError(rec, "boom") }, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.fn(rec)

			if rec.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, rec.Code)
			}
			resp := decodeResponse(t, rec)
			if resp.Status {
				t.Error("status should be false for error responses")
			}
			if resp.Message == "" {
				t.Error("message should be set")
			}
		})
	}
}
