package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStatusConnected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("RL_SERVER_URL", srv.URL)

	out, err := executeCommand("status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Server:  "+srv.URL) || !strings.Contains(out, "✓ connected") {
		t.Errorf("output = %q", out)
	}
}

func TestStatusUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("RL_SERVER_URL", url)

	out, err := executeCommand("status")
	if err != nil {
		t.Fatalf("status should report, not fail: %v", err)
	}
	if !strings.Contains(out, "✗ cannot reach server") {
		t.Errorf("output = %q", out)
	}
}

func TestStatusJSON(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("RL_SERVER_URL", url)

	out, err := executeCommand("status", "--format", "json")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if resp["reachable"] != false || resp["server"] != url {
		t.Errorf("resp = %v", resp)
	}
}
