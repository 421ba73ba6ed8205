// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/template"

	"github.com/pdiddy/nbrefine/internal/httputil"
	"github.com/pdiddy/nbrefine/pkg/types"
)

// markdownPromptTmpl is the prompt sent for markdown cells. The model must
// keep markdown syntax, code snippets, and links intact and translate the
// prose.
var markdownPromptTmpl = template.Must(template.New("markdown").Parse(`You are a specialized translator for Jupyter notebook markdown content.
Your task is to translate the content while:
1. Preserving all markdown syntax (headers, lists, bold, italic, code blocks, etc.)
2. Maintaining the original formatting and structure
3. Keeping any code snippets or technical terms unchanged
4. Preserving any links, references, or citations

Respond with a JSON object with the fields "translated_content" (required), "source_language", "notes", and "metadata". Do not include any text outside the JSON object.

Translate the following markdown to {{.TargetLanguage}}:

{{.Content}}`))

// codePromptTmpl is the prompt sent for code cells. Only comments and
// docstrings may change; identifiers and executable code must come back
// byte-identical.
var codePromptTmpl = template.Must(template.New("code").Parse(`You are a specialized translator for code comments and docstrings.
Your task is to translate only the comments and docstrings while:
1. Preserving all code functionality
2. Maintaining the original code structure
3. Keeping all variable names, function names, and other code elements unchanged
4. Preserving any special formatting in comments

Respond with a JSON object with the fields "translated_content" (required), "source_language", "notes", and "metadata". Do not include any text outside the JSON object.

Translate only the comments and docstrings in the following code to {{.TargetLanguage}}:

{{.Content}}`))

// claudeAPIURL is the Claude API endpoint. Package-level var for test
// substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend calls the Claude API to translate one cell's content.
type ClaudeBackend struct {
	Config types.TranslationConfig
	Client *http.Client
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Translate renders the prompt for the request's content kind and calls the
// Claude API, retrying on rate-limit and overload responses.
func (c *ClaudeBackend) Translate(ctx context.Context, req Request) (Result, error) {
	prompt, err := renderPrompt(req)
	if err != nil {
		return Result{}, fmt.Errorf("rendering prompt: %w", err)
	}

	reqBody := claudeRequest{
		Model:     c.Config.Model,
		MaxTokens: 4096,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.Config.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
	if c.Config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.Config.UserAgent)
	}

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: c.Config.Timeout}
	}

	resp, err := httputil.DoWithRetry(ctx, client, httpReq, c.Config.MaxRetries)
	if err != nil {
		return Result{}, fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return Result{}, fmt.Errorf("decoding Claude response: %w", err)
	}

	for _, block := range cResp.Content {
		if block.Type != "text" {
			continue
		}
		var result Result
		if err := json.Unmarshal([]byte(block.Text), &result); err != nil {
			return Result{}, fmt.Errorf("parsing translation JSON: %w", err)
		}
		if result.TranslatedContent == "" {
			return Result{}, fmt.Errorf("translation response missing translated_content")
		}
		return result, nil
	}

	return Result{}, fmt.Errorf("no text content in Claude API response")
}

// renderPrompt executes the template matching the request's content kind.
func renderPrompt(req Request) (string, error) {
	tmpl := markdownPromptTmpl
	if req.Kind == KindCode {
		tmpl = codePromptTmpl
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
