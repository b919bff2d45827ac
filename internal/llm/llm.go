package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Jawbreaker1/TwentyQBot/internal/config"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model           string
	Input           []Message
	MaxOutputTokens int
}

// Client is the transport collaborator: given an ordered message list it
// returns completion text or fails with an error the caller treats as
// retryable.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

const (
	// DefaultMaxOutputTokens leaves room for reasoning plus the final answer.
	DefaultMaxOutputTokens = 512
	minOutputTokens        = 128
	maxOutputTokensLimit   = 4096
	tokenRetryAttempts     = 3
)

// ResponsesClient talks to the completion service's responses API. It
// retries internally when a response is cut short by the output-token limit
// and fails over across configured endpoints.
type ResponsesClient struct {
	baseURLs  []string
	model     string
	apiKey    string
	maxTokens int
	http      *http.Client
}

func NewResponsesClient(cfg config.Config) *ResponsesClient {
	baseURLs := splitBaseURLs(cfg.LLM.BaseURL)
	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxTokens := cfg.LLM.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxOutputTokens
	}
	return &ResponsesClient{
		baseURLs:  baseURLs,
		model:     cfg.LLM.Model,
		apiKey:    cfg.LLM.APIKey,
		maxTokens: maxTokens,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

func (c *ResponsesClient) Complete(ctx context.Context, req Request) (string, error) {
	if c == nil {
		return "", fmt.Errorf("llm client is nil")
	}
	if len(req.Input) == 0 {
		return "", fmt.Errorf("llm request requires at least one message")
	}
	if req.Model == "" {
		req.Model = c.model
	}
	if req.MaxOutputTokens <= 0 {
		req.MaxOutputTokens = c.maxTokens
	}
	if len(c.baseURLs) == 0 {
		return "", fmt.Errorf("llm base URL is not configured")
	}

	failures := make([]string, 0, len(c.baseURLs))
	for _, baseURL := range c.baseURLs {
		text, err := c.completeAtEndpoint(ctx, baseURL+"/responses", req)
		if err == nil {
			return text, nil
		}
		failures = append(failures, fmt.Sprintf("%s (%v)", baseURL, err))
	}
	return "", fmt.Errorf("llm request failed across endpoints: %s", strings.Join(failures, " | "))
}

type responsesPayload struct {
	Model           string    `json:"model"`
	Input           []Message `json:"input"`
	MaxOutputTokens int       `json:"max_output_tokens"`
}

type responsesBody struct {
	Status            string `json:"status"`
	IncompleteDetails struct {
		Reason string `json:"reason"`
	} `json:"incomplete_details"`
	Output []struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
}

// completeAtEndpoint issues the request, growing the output-token budget
// when the service reports the response was truncated by it.
func (c *ResponsesClient) completeAtEndpoint(ctx context.Context, endpoint string, req Request) (string, error) {
	tokens := req.MaxOutputTokens
	if tokens < minOutputTokens {
		tokens = minOutputTokens
	}
	for attempt := 0; attempt < tokenRetryAttempts; attempt++ {
		if tokens > maxOutputTokensLimit {
			tokens = maxOutputTokensLimit
		}
		decoded, err := c.post(ctx, endpoint, responsesPayload{
			Model:           req.Model,
			Input:           req.Input,
			MaxOutputTokens: tokens,
		})
		if err != nil {
			return "", err
		}
		if decoded.Status != "" && decoded.Status != "completed" {
			if decoded.IncompleteDetails.Reason == "max_output_tokens" && attempt < tokenRetryAttempts-1 {
				tokens *= 2
				continue
			}
			return "", fmt.Errorf("response not completed: status=%s reason=%s", decoded.Status, decoded.IncompleteDetails.Reason)
		}
		for _, item := range decoded.Output {
			for _, content := range item.Content {
				if text := strings.TrimSpace(content.Text); text != "" {
					return text, nil
				}
			}
		}
		if text := strings.TrimSpace(decoded.Text.Content); text != "" {
			return text, nil
		}
		return "", fmt.Errorf("response missing output text")
	}
	return "", fmt.Errorf("output token retries exhausted")
}

func (c *ResponsesClient) post(ctx context.Context, endpoint string, payload responsesPayload) (responsesBody, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return responsesBody{}, fmt.Errorf("marshal request: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return responsesBody{}, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		request.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(request)
	if err != nil {
		return responsesBody{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return responsesBody{}, fmt.Errorf("status %s", resp.Status)
	}

	var decoded responsesBody
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return responsesBody{}, fmt.Errorf("decode response: %w", err)
	}
	return decoded, nil
}

func normalizeBaseURL(baseURL string) string {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return trimmed
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	trimmed = strings.TrimRight(trimmed, "/")
	trimmed = strings.TrimSuffix(trimmed, "/responses")
	if strings.HasSuffix(trimmed, "/v1") {
		return trimmed
	}
	return trimmed + "/v1"
}

func splitBaseURLs(raw string) []string {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r' || r == '\t' || r == ' '
	})
	out := make([]string, 0, len(tokens))
	seen := map[string]struct{}{}
	for _, token := range tokens {
		normalized := normalizeBaseURL(token)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
