package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testNotifier(base string) *TelegramNotifier {
	return &TelegramNotifier{
		BotToken: "test-token",
		ChatID:   "42",
		APIBase:  base,
		Client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func TestSend_PostsHTMLMessage(t *testing.T) {
	var got map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := testNotifier(srv.URL).Send("<b>hello</b>"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if path != "/bottest-token/sendMessage" {
		t.Errorf("unexpected path %s", path)
	}
	if got["chat_id"] != "42" || got["text"] != "<b>hello</b>" || got["parse_mode"] != "HTML" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestSend_NonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := testNotifier(srv.URL).Send("hi")
	if err == nil {
		t.Fatal("expected an error on status 400")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestSendWithRetry_RecoversAfterFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := testNotifier(srv.URL).SendWithRetry(context.Background(), "hi", 2); err != nil {
		t.Fatalf("retry should recover: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
}

func TestSendWithRetry_StopsOnCancelledContext(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := testNotifier(srv.URL).SendWithRetry(ctx, "hi", 5)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("cancelled context should stop after 1 attempt, got %d", calls)
	}
}

func TestSendWithRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := testNotifier(srv.URL).SendWithRetry(context.Background(), "hi", 0); err == nil {
		t.Fatal("expected an error once the attempts run out")
	}
	if calls != 1 {
		t.Errorf("maxRetries 0 means a single attempt, got %d", calls)
	}
}
