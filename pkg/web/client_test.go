package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization header got=%q want=%q", got, "Bearer test-token")
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header got=%q want=%q", got, "application/json")
		}
		if got := r.URL.Query().Get("symbols"); got != "AAPL" {
			t.Errorf("symbols query got=%q want=%q", got, "AAPL")
		}
		w.Write([]byte(`{"value": 42}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	var out struct {
		Value int `json:"value"`
	}
	err := client.Get(context.Background(), "/v1/thing", map[string]string{"symbols": "AAPL"}, &out)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if out.Value != 42 {
		t.Fatalf("value got=%d want=%d", out.Value, 42)
	}
}

func TestNon200MapsToAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Invalid Access Token"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-token")
	err := client.Get(context.Background(), "/v1/thing", nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status got=%d want=%d", apiErr.StatusCode, http.StatusUnauthorized)
	}
	if apiErr.Message != "Invalid Access Token" {
		t.Errorf("message got=%q want=%q", apiErr.Message, "Invalid Access Token")
	}
	if apiErr.Embedded() {
		t.Error("non-200 error should not be marked embedded")
	}
}

func TestEmbeddedErrorEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "single message",
			body:    `{"errors": {"error": "order quantity must be positive"}}`,
			wantMsg: "order quantity must be positive",
		},
		{
			name:    "message list",
			body:    `{"errors": {"error": ["first problem", "second problem"]}}`,
			wantMsg: "first problem; second problem",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "token")
			err := client.Get(context.Background(), "/v1/thing", nil, nil)

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T: %v", err, err)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("message got=%q want=%q", apiErr.Message, tt.wantMsg)
			}
			if !apiErr.Embedded() {
				t.Error("200-status error should be marked embedded")
			}
		})
	}
}

func TestPostFormSendsFormBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method got=%s want=POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostFormValue("symbol"); got != "AAPL" {
			t.Errorf("symbol got=%q want=%q", got, "AAPL")
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	err := client.PostForm(context.Background(), "/v1/thing", map[string]string{"symbol": "AAPL"}, nil)
	if err != nil {
		t.Fatalf("PostForm error: %v", err)
	}
}

func TestDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method got=%s want=DELETE", r.Method)
		}
		w.Write([]byte(`{"order": {"id": 1, "status": "ok"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	var out struct {
		Order struct {
			ID     int    `json:"id"`
			Status string `json:"status"`
		} `json:"order"`
	}
	if err := client.Delete(context.Background(), "/v1/thing/1", &out); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if out.Order.ID != 1 || out.Order.Status != "ok" {
		t.Fatalf("order got=%+v", out.Order)
	}
}
