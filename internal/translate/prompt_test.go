// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/nbrefine/pkg/types"
)

func claudeTextResponse(t *testing.T, result Result) string {
	t.Helper()
	payload, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := json.Marshal(claudeResponse{
		Content: []claudeContent{{Type: "text", Text: string(payload)}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(resp)
}

func withTestServer(t *testing.T, handler http.HandlerFunc) *ClaudeBackend {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	orig := claudeAPIURL
	claudeAPIURL = server.URL
	t.Cleanup(func() { claudeAPIURL = orig })

	return &ClaudeBackend{
		Config: types.TranslationConfig{
			AIConfig: types.AIConfig{Model: "claude-test", APIKey: "test-key"},
			HTTPConfig: types.HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "nbrefine-test",
			},
		},
	}
}

func TestClaudeBackendTranslate(t *testing.T) {
	var captured claudeRequest
	var gotHeaders http.Header

	backend := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(claudeTextResponse(t, Result{
			TranslatedContent: "# Título",
			SourceLanguage:    "en",
		})))
	})

	result, err := backend.Translate(context.Background(), Request{
		TargetLanguage: "Spanish",
		Content:        "# Title",
		Kind:           KindMarkdown,
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if result.TranslatedContent != "# Título" {
		t.Errorf("TranslatedContent = %q", result.TranslatedContent)
	}
	if result.SourceLanguage != "en" {
		t.Errorf("SourceLanguage = %q", result.SourceLanguage)
	}

	if gotHeaders.Get("x-api-key") != "test-key" {
		t.Errorf("x-api-key = %q", gotHeaders.Get("x-api-key"))
	}
	if gotHeaders.Get("anthropic-version") != "2023-06-01" {
		t.Errorf("anthropic-version = %q", gotHeaders.Get("anthropic-version"))
	}
	if gotHeaders.Get("User-Agent") != "nbrefine-test" {
		t.Errorf("User-Agent = %q", gotHeaders.Get("User-Agent"))
	}

	if captured.Model != "claude-test" {
		t.Errorf("model = %q", captured.Model)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" {
		t.Fatalf("messages = %+v", captured.Messages)
	}
	prompt := captured.Messages[0].Content
	if !strings.Contains(prompt, "Translate the following markdown to Spanish") {
		t.Errorf("markdown prompt missing target language:\n%s", prompt)
	}
	if !strings.Contains(prompt, "# Title") {
		t.Errorf("prompt missing content:\n%s", prompt)
	}
}

func TestClaudeBackendCodePrompt(t *testing.T) {
	var captured claudeRequest

	backend := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(claudeTextResponse(t, Result{TranslatedContent: "# comentario\nx = 1"})))
	})

	_, err := backend.Translate(context.Background(), Request{
		TargetLanguage: "Spanish",
		Content:        "# comment\nx = 1",
		Kind:           KindCode,
	})
	if err != nil {
		t.Fatal(err)
	}

	prompt := captured.Messages[0].Content
	if !strings.Contains(prompt, "only the comments and docstrings") {
		t.Errorf("code prompt not used:\n%s", prompt)
	}
}

func TestClaudeBackendAPIError(t *testing.T) {
	backend := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	_, err := backend.Translate(context.Background(), Request{
		TargetLanguage: "French",
		Content:        "# Title",
		Kind:           KindMarkdown,
	})
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Errorf("Translate = %v, want status error", err)
	}
}

func TestClaudeBackendMissingTranslatedContent(t *testing.T) {
	backend := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(claudeTextResponse(t, Result{Notes: "nothing to do"})))
	})

	_, err := backend.Translate(context.Background(), Request{
		TargetLanguage: "German",
		Content:        "# Title",
		Kind:           KindMarkdown,
	})
	if err == nil || !strings.Contains(err.Error(), "translated_content") {
		t.Errorf("Translate = %v, want missing translated_content error", err)
	}
}

func TestClaudeBackendMalformedResponseJSON(t *testing.T) {
	backend := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		resp, _ := json.Marshal(claudeResponse{
			Content: []claudeContent{{Type: "text", Text: "not json"}},
		})
		w.Write(resp)
	})

	_, err := backend.Translate(context.Background(), Request{
		TargetLanguage: "Italian",
		Content:        "# Title",
		Kind:           KindMarkdown,
	})
	if err == nil || !strings.Contains(err.Error(), "parsing translation JSON") {
		t.Errorf("Translate = %v, want parse error", err)
	}
}
