package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureLogs points the global logger at a buffer for the duration of a test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := log.Logger
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = old
		zerolog.SetGlobalLevel(oldLevel)
	})

	var buf bytes.Buffer
	log.Logger = New(&buf, false)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	return &buf
}

func TestSetLevel(t *testing.T) {
	old := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(old)

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		SetLevel(tt.in)
		if got := zerolog.GlobalLevel(); got != tt.want {
			t.Errorf("SetLevel(%q): level = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupDevModeEnablesDebug(t *testing.T) {
	old := log.Logger
	oldLevel := zerolog.GlobalLevel()
	defer func() {
		log.Logger = old
		zerolog.SetGlobalLevel(oldLevel)
	}()

	Setup(true, "error")
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug in dev mode", zerolog.GlobalLevel())
	}
}

func TestNewConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)
	l.Info().Str("key", "value").Msg("hello")

	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("hello")) {
		t.Errorf("expected message in console output, got %q", out)
	}
	if json.Valid(buf.Bytes()) {
		t.Error("dev mode output should not be JSON")
	}
}

func TestRequestLogger(t *testing.T) {
	buf := captureLogs(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/properties", nil)
	rec := httptest.NewRecorder()
	RequestLogger(inner).ServeHTTP(rec, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["method"] != "GET" {
		t.Errorf("method = %v", entry["method"])
	}
	if entry["path"] != "/api/properties" {
		t.Errorf("path = %v", entry["path"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestRequestLoggerSkipsNoisyPaths(t *testing.T) {
	for _, path := range []string{"/health", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			buf := captureLogs(t)

			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			RequestLogger(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))

			if buf.Len() > 0 {
				t.Errorf("expected no log for %s, got %q", path, buf.String())
			}
		})
	}
}

func TestRequestLoggerLevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusCreated, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			buf := captureLogs(t)

			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			RequestLogger(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/tenants", nil))

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("decode log line %q: %v", buf.String(), err)
			}
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if int(entry["status"].(float64)) != tt.status {
				t.Errorf("status = %v, want %d", entry["status"], tt.status)
			}
		})
	}
}
