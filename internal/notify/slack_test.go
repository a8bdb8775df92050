package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSlack_SendPostsPayload(t *testing.T) {
	var got slackPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSlack(srv.URL)
	if err := s.Send(context.Background(), "Probe target DOWN", "details"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(got.Text, "Probe target DOWN") || !strings.Contains(got.Text, "details") {
		t.Fatalf("payload wrong: %q", got.Text)
	}
}

func TestSlack_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if err := NewSlack(srv.URL).Send(context.Background(), "t", "x"); err == nil {
		t.Fatal("expected error on non-2xx")
	}
}

func TestNewSlack_EmptyWebhookDisabled(t *testing.T) {
	if NewSlack("") != nil {
		t.Fatal("empty webhook should return nil notifier")
	}
}
