package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redraft-dev/redraft/internal/config"
)

func TestTerminal_WritesNotification(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminalWithWriter(&buf)

	err := term.Notify(context.Background(), Notification{
		Severity: SeverityWarning,
		Run:      "run-1",
		Title:    "run exhausted",
		Message:  "no approval after 3 attempts",
		Context:  map[string]string{"attempts": "3"},
	})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"warning", "run exhausted", "run-1", "no approval after 3 attempts", "attempts: 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTerminal_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	term := NewTerminalWithWriter(&bytes.Buffer{})
	if err := term.Notify(ctx, Notification{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWebhook_PostsJSON(t *testing.T) {
	var got WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	hook := NewWebhook(server.URL)
	err := hook.Notify(context.Background(), Notification{
		Severity: SeverityInfo,
		Run:      "run-7",
		Title:    "run approved",
		Message:  "approved on attempt 2",
	})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if got.Run != "run-7" || got.Severity != "info" {
		t.Errorf("payload = %+v", got)
	}
}

func TestWebhook_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	hook := NewWebhook(server.URL)
	if err := hook.Notify(context.Background(), Notification{}); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestMulti_DeliversToAll(t *testing.T) {
	var first, second bytes.Buffer
	m := NewMulti(NewTerminalWithWriter(&first), NewTerminalWithWriter(&second))

	err := m.Notify(context.Background(), Notification{Severity: SeverityInfo, Title: "done", Message: "ok"})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if first.Len() == 0 || second.Len() == 0 {
		t.Error("expected both notifiers to receive the notification")
	}
}

func TestMulti_ContinuesPastFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	var buf bytes.Buffer
	m := NewMulti(NewWebhook(server.URL), NewTerminalWithWriter(&buf))

	err := m.Notify(context.Background(), Notification{Title: "t", Message: "m"})
	if err == nil {
		t.Fatal("expected joined error from failing webhook")
	}
	if buf.Len() == 0 {
		t.Error("terminal notifier must still run after webhook failure")
	}
}

func TestFromConfig(t *testing.T) {
	if n := FromConfig(config.NotifyConfig{}); n != nil {
		t.Errorf("expected nil notifier when nothing enabled, got %s", n.Name())
	}

	if n := FromConfig(config.NotifyConfig{Terminal: true}); n == nil || n.Name() != "terminal" {
		t.Errorf("expected terminal notifier, got %v", n)
	}

	n := FromConfig(config.NotifyConfig{Terminal: true, WebhookURL: "https://example.com/hook"})
	if n == nil || !strings.HasPrefix(n.Name(), "multi(") {
		t.Errorf("expected multi notifier, got %v", n)
	}
}
