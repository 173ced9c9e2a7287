package httpjson_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/verdantapp/verdant/internal/app/system/httpjson"
	"go.uber.org/zap"
)

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.WriteSuccess(rec, http.StatusCreated, "Post created successfully", map[string]any{"id": "abc"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status code: got %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var env httpjson.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if env.Status != "success" {
		t.Errorf("status: got %q, want success", env.Status)
	}
	if env.Message != "Post created successfully" {
		t.Errorf("message: got %q", env.Message)
	}
	if env.Data == nil {
		t.Error("expected data to be present")
	}
}

func TestWriteError_NullData(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.WriteError(rec, http.StatusUnauthorized, "Invalid email or password")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status code: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	var env httpjson.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if env.Status != "error" {
		t.Errorf("status: got %q, want error", env.Status)
	}
	if env.Data != nil {
		t.Errorf("data: got %v, want null", env.Data)
	}
	// Raw body must contain a literal null so clients relying on the
	// envelope contract see the same shape for every error.
	if !strings.Contains(rec.Body.String(), `"data":null`) {
		t.Errorf("body missing data:null, got %s", rec.Body.String())
	}
}

func TestDecodeBody(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"title":"hello"}`, wantErr: false},
		{name: "unknown field", body: `{"title":"hello","bogus":1}`, wantErr: true},
		{name: "trailing garbage", body: `{"title":"hello"}{"title":"again"}`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var p payload
			err := httpjson.DecodeBody(req, &p)
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeBody error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestErrorLogger_GenericMessage(t *testing.T) {
	errLog := httpjson.NewErrorLogger(zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/post/create", nil)
	errLog.Internal(rec, req, "An error occurred while trying to create your post", errors.New("connection reset by peer"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status code: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	body := rec.Body.String()
	if strings.Contains(body, "connection reset") {
		t.Error("internal error detail leaked to client")
	}
	if !strings.Contains(body, "An error occurred while trying to create your post") {
		t.Errorf("missing generic message, got %s", body)
	}
}
