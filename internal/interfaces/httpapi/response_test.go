package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/futplanner/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError_StatusTable(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad", usecase.ErrInvalidInput), status: http.StatusBadRequest, code: "INVALID_ARGUMENT"},
		{name: "not found", err: fmt.Errorf("%w: league", usecase.ErrNotFound), status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "empty upstream", err: fmt.Errorf("%w: no fixtures", usecase.ErrEmptyResult), status: http.StatusBadGateway, code: "EMPTY_UPSTREAM_RESULT"},
		{name: "upstream", err: fmt.Errorf("%w: status=500", usecase.ErrUpstream), status: http.StatusBadGateway, code: "BAD_GATEWAY"},
		{name: "circuit open", err: fmt.Errorf("%w: open", usecase.ErrDependencyUnavailable), status: http.StatusServiceUnavailable, code: "UNAVAILABLE"},
		{name: "unauthorized", err: fmt.Errorf("%w: no credential", usecase.ErrUnauthorized), status: http.StatusUnauthorized, code: "UNAUTHENTICATED"},
		{
			name:   "upstream carrying unauthorized",
			err:    fmt.Errorf("%w: insert event: %w", usecase.ErrUpstream, usecase.ErrUnauthorized),
			status: http.StatusUnauthorized,
			code:   "UNAUTHENTICATED",
		},
		{name: "unknown", err: fmt.Errorf("boom"), status: http.StatusInternalServerError, code: "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapError(context.Background(), tc.err)
			if got.HTTPStatus != tc.status || got.Status != tc.code {
				t.Fatalf("mapError(%v)=%+v want status=%d code=%s", tc.err, got, tc.status, tc.code)
			}
		})
	}
}
