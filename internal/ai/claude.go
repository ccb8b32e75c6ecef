package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const claudeEndpoint = "https://api.anthropic.com/v1/messages"

type claudeReq struct {
	Model       string      `json:"model"`
	MaxTokens   int         `json:"max_tokens"`
	Temperature float64     `json:"temperature"`
	System      string      `json:"system,omitempty"`
	Messages    []claudeMsg `json:"messages"`
}

type claudeMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResp struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// ClaudeProvider implements Extractor against the Anthropic messages API.
type ClaudeProvider struct {
	BaseURL      string
	APIKey       string
	Model        string
	Temperature  float64
	HistoryTurns int
	Client       *http.Client
}

func NewClaudeProvider(apiKey, model string, temperature float64, historyTurns int, timeout time.Duration) (*ClaudeProvider, error) {
	if apiKey == "" {
		return nil, errors.New("CLAUDE_API_KEY missing")
	}
	if model == "" {
		model = "claude-3-5-sonnet-latest"
	}
	return &ClaudeProvider{
		BaseURL:      claudeEndpoint,
		APIKey:       apiKey,
		Model:        model,
		Temperature:  temperature,
		HistoryTurns: historyTurns,
		Client:       &http.Client{Timeout: timeout},
	}, nil
}

func (c *ClaudeProvider) Name() string { return "claude" }

func (c *ClaudeProvider) Extract(ctx context.Context, utterance string, cx Context) (*Extraction, error) {
	var msgs []claudeMsg
	for _, t := range buildConversation(utterance, cx, c.HistoryTurns) {
		msgs = append(msgs, claudeMsg{Role: t.Role, Content: t.Content})
	}
	payload := claudeReq{
		Model:       c.Model,
		MaxTokens:   1000,
		Temperature: c.Temperature,
		System:      SystemPrompt(cx.Now),
		Messages:    msgs,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("claude: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("claude: build request: %w", err)
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("anthropic-version", "2023-06-01")

	res, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("claude: do request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("claude: read response: %w", err)
	}
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("claude: %s", truncate(string(body), 200))
	}

	var out claudeResp
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("claude: unmarshal response: %w", err)
	}
	if len(out.Content) == 0 {
		return nil, errors.New("claude: no content")
	}
	return ParseExtraction(out.Content[0].Text)
}
