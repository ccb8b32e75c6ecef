package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenAIProvider implements Extractor against the chat completions endpoint.
type OpenAIProvider struct {
	apiKey       string
	model        string
	temperature  float64
	historyTurns int
	endpoint     string
	httpClient   *http.Client
}

func NewOpenAIProvider(apiKey, model string, temperature float64, historyTurns int, timeout time.Duration) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		apiKey:       apiKey,
		model:        model,
		temperature:  temperature,
		historyTurns: historyTurns,
		endpoint:     openAIEndpoint,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Extract(ctx context.Context, utterance string, c Context) (*Extraction, error) {
	msgs := []chatMessage{{Role: "system", Content: SystemPrompt(c.Now)}}
	for _, t := range buildConversation(utterance, c, p.historyTurns) {
		msgs = append(msgs, chatMessage{Role: t.Role, Content: t.Content})
	}

	reqBody, err := json.Marshal(chatRequest{
		Model:          p.model,
		Messages:       msgs,
		Temperature:    p.temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("openai: unmarshal response: %w", err)
	}
	if cr.Error != nil {
		return nil, fmt.Errorf("openai: api error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("openai: API returned empty choices array (raw: %s)", truncate(string(body), 200))
	}
	return ParseExtraction(cr.Choices[0].Message.Content)
}
