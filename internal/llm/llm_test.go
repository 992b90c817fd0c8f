package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompleteSendsChatRequest(t *testing.T) {
	var got completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":" Quack, bring an umbrella. "}}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "sk-test", nil)
	out, err := c.Complete(context.Background(), "system prompt", "will it rain?")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "Quack, bring an umbrella." {
		t.Errorf("out = %q", out)
	}
	if got.Model != DefaultModel || got.Temperature != 0.7 || got.MaxTokens != 500 {
		t.Errorf("request = %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "will it rain?" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestCompleteWithoutKey(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", "", nil)
	if _, err := c.Complete(context.Background(), "s", "u"); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestCompleteNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "k", nil)
	if _, err := c.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected an error on 429")
	}
}

func TestExtractText(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"chat", `{"choices":[{"message":{"content":"hi"}}]}`, "hi"},
		{"legacy", `{"choices":[{"text":"hello"}]}`, "hello"},
		{"empty choice", `{"choices":[{"message":{"content":""}}]}`, ""},
		{"ollama", `{"response":"quack"}`, "quack"},
		{"text", `{"text":"plain"}`, "plain"},
		{"nothing", `{}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractText([]byte(tc.body))
			if err != nil {
				t.Fatalf("extractText: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
	if _, err := extractText([]byte("not json")); err == nil {
		t.Error("expected a decode error")
	}
}
