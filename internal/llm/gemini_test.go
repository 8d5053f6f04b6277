package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
)

func TestGeminiRotatesKeysOnQuota(t *testing.T) {
	g := NewGemini([]string{"k1", "k2", "k3"}, "gemini-2.5-flash", "", logger.Discard())

	var used []string
	g.generate = func(ctx context.Context, key string, req Request) (string, error) {
		used = append(used, key)
		if key == "k3" {
			return "ok", nil
		}
		return "", errors.New("Error 429, Message: quota exceeded, Status: RESOURCE_EXHAUSTED")
	}

	text, err := g.Complete(context.Background(), Request{User: "hi"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if text != "ok" {
		t.Errorf("Complete() = %q, want ok", text)
	}
	if strings.Join(used, ",") != "k1,k2,k3" {
		t.Errorf("keys used = %v, want k1,k2,k3", used)
	}

	// The working key stays current for the next call.
	used = nil
	if _, err := g.Complete(context.Background(), Request{User: "again"}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(used) != 1 || used[0] != "k3" {
		t.Errorf("second call keys = %v, want [k3]", used)
	}
}

func TestGeminiAllKeysExhausted(t *testing.T) {
	g := NewGemini([]string{"k1", "k2"}, "m", "", logger.Discard())
	calls := 0
	g.generate = func(ctx context.Context, key string, req Request) (string, error) {
		calls++
		return "", errors.New("429 too many requests")
	}

	_, err := g.Complete(context.Background(), Request{User: "hi"})
	if err == nil || !strings.Contains(err.Error(), "all API keys exhausted") {
		t.Errorf("Complete() error = %v, want exhausted", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestGeminiNonQuotaErrorStops(t *testing.T) {
	g := NewGemini([]string{"k1", "k2"}, "m", "", logger.Discard())
	calls := 0
	g.generate = func(ctx context.Context, key string, req Request) (string, error) {
		calls++
		return "", errors.New("invalid argument")
	}

	if _, err := g.Complete(context.Background(), Request{User: "hi"}); err == nil {
		t.Fatal("Complete() expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestGeminiNoKeys(t *testing.T) {
	g := NewGemini(nil, "m", "", logger.Discard())
	if _, err := g.Complete(context.Background(), Request{User: "hi"}); err == nil {
		t.Error("Complete() expected error without keys")
	}
}

func TestGeminiGenerateContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Bonjour "},{"text":"le monde"}]}}]}`)
	}))
	defer srv.Close()

	g := NewGemini([]string{"k1"}, "gemini-2.5-flash", srv.URL, logger.Discard())
	text, err := g.Complete(context.Background(), Request{System: "translate", User: "hello world", MaxTokens: 100, Temperature: 0.1})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if text != "Bonjour le monde" {
		t.Errorf("Complete() = %q, want Bonjour le monde", text)
	}
}
