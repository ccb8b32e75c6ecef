package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfarer/internal/config"
)

func TestParseExtraction(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		intent    string
		slots     map[string]any
		wantReply bool
	}{
		{"plain", `{"intent":"HotelSearch","slots":{"location":"Paris"},"user_reply":null}`, "HotelSearch", map[string]any{"location": "Paris"}, false},
		{"fenced", "```json\n{\"intent\":\"Greeting\",\"slots\":{}}\n```", "Greeting", map[string]any{}, false},
		{"prose around object", `Sure! {"intent":"FlightSearch","slots":{"origin":"NYC","note":"a } brace"}} hope that helps`, "FlightSearch", map[string]any{"origin": "NYC", "note": "a } brace"}, false},
		{"missing fields default", `{}`, "Unknown", map[string]any{}, false},
		{"blank reply dropped", `{"intent":"HotelBooking","user_reply":"   "}`, "HotelBooking", map[string]any{}, false},
		{"reply kept", `{"intent":"HotelBooking","user_reply":"Which city?"}`, "HotelBooking", map[string]any{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExtraction(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.intent, got.Intent)
			assert.Equal(t, tt.slots, got.Slots)
			assert.Equal(t, tt.wantReply, got.UserReply != nil)
		})
	}
}

func TestParseExtraction_NoJSON(t *testing.T) {
	_, err := ParseExtraction("I cannot help with that.")
	assert.ErrorIs(t, err, ErrNoJSON)

	_, err = ParseExtraction(`{"intent": "Greeting", "slots": {`)
	assert.Error(t, err)
}

func TestFallbackExtraction(t *testing.T) {
	fb := FallbackExtraction()
	assert.Equal(t, "Unknown", fb.Intent)
	assert.Empty(t, fb.Slots)
	require.NotNil(t, fb.UserReply)
	assert.Equal(t, FallbackReply, *fb.UserReply)
}

func TestSystemPromptInjectsDate(t *testing.T) {
	p := SystemPrompt(time.Date(2025, 3, 9, 15, 0, 0, 0, time.UTC))
	assert.Contains(t, p, "Current date: 2025-03-09")
	assert.Contains(t, p, "CancelBooking")
}

func TestBuildConversation_FirstTurnUsesFewShots(t *testing.T) {
	msgs := buildConversation("hello", Context{}, 10)
	require.Len(t, msgs, 2*maxFewShots+1)
	assert.Equal(t, fewShots[0].User, msgs[0].Content)
	assert.Equal(t, Turn{Role: RoleUser, Content: "hello"}, msgs[len(msgs)-1])
	assertAlternates(t, msgs)
}

func TestBuildConversation_RepairsAlternation(t *testing.T) {
	c := Context{History: []Turn{
		{Role: RoleAssistant, Content: "stray"},
		{Role: RoleUser, Content: "a"},
		{Role: RoleUser, Content: "b"},
		{Role: RoleAssistant, Content: "c"},
		{Role: RoleAssistant, Content: "d"},
		{Role: "system", Content: "ignored"},
	}}
	msgs := buildConversation("now", c, 10)

	want := []Turn{
		{Role: RoleUser, Content: "a"},
		{Role: RoleAssistant, Content: acknowledgement},
		{Role: RoleUser, Content: "b"},
		{Role: RoleAssistant, Content: "c"},
		{Role: RoleUser, Content: "now"},
	}
	assert.Equal(t, want, msgs)
}

func TestBuildConversation_LimitsHistoryAndAppendsSlots(t *testing.T) {
	var history []Turn
	for i := 0; i < 30; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		history = append(history, Turn{Role: role, Content: string(rune('a' + i%26))})
	}
	c := Context{History: history, Slots: map[string]any{"location": "Chicago"}}
	msgs := buildConversation("book it", c, 10)

	assert.Len(t, msgs, 11)
	assertAlternates(t, msgs)
	last := msgs[len(msgs)-1]
	assert.True(t, strings.HasPrefix(last.Content, "book it\n\nCurrent session slots: "))
	assert.Contains(t, last.Content, `"location":"Chicago"`)
}

func TestBuildConversation_TrailingUserGetsAcknowledged(t *testing.T) {
	msgs := buildConversation("again", Context{History: []Turn{{Role: RoleUser, Content: "first"}}}, 10)
	require.Len(t, msgs, 3)
	assert.Equal(t, acknowledgement, msgs[1].Content)
	assertAlternates(t, msgs)
}

func assertAlternates(t *testing.T, msgs []Turn) {
	t.Helper()
	require.NotEmpty(t, msgs)
	assert.Equal(t, RoleUser, msgs[0].Role)
	for i := 1; i < len(msgs); i++ {
		assert.NotEqual(t, msgs[i-1].Role, msgs[i].Role, "turns %d and %d share a role", i-1, i)
	}
}

func TestMockExtractor(t *testing.T) {
	tests := []struct {
		in     string
		intent string
		slots  map[string]any
	}{
		{"Hello there", "Greeting", map[string]any{}},
		{"Find flights from New York to Los Angeles on 2025-06-01", "FlightSearch",
			map[string]any{"origin": "New York", "destination": "Los Angeles", "departure_date": "2025-06-01"}},
		{"I need a hotel in Chicago for 2 people", "HotelSearch",
			map[string]any{"location": "Chicago", "num_guests": "2"}},
		{"Please cancel htl-ab12cd", "CancelBooking", map[string]any{"confirmation_number": "HTL-AB12CD"}},
		{"Thanks, bye", "Farewell", map[string]any{}},
		{"zzz", "Unknown", map[string]any{}},
	}
	m := NewMockExtractor()
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := m.Extract(context.Background(), tt.in, Context{})
			require.NoError(t, err)
			assert.Equal(t, tt.intent, got.Intent)
			assert.Equal(t, tt.slots, got.Slots)
			assert.Nil(t, got.UserReply)
		})
	}
}

func TestOpenAIProvider_Extract(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"intent\":\"HotelSearch\",\"slots\":{\"location\":\"Boston\"}}"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "", 0.3, 10, 5*time.Second)
	p.endpoint = srv.URL

	res, err := p.Extract(context.Background(), "hotel in Boston", Context{Now: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "HotelSearch", res.Intent)
	assert.Equal(t, "Boston", res.Slots["location"])

	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "hotel in Boston", got.Messages[len(got.Messages)-1].Content)
}

func TestOpenAIProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-bad", "gpt-4o", 0.3, 10, 5*time.Second)
	p.endpoint = srv.URL
	_, err := p.Extract(context.Background(), "hi", Context{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
}

func TestClaudeProvider_Extract(t *testing.T) {
	var got claudeReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"{\"intent\":\"Farewell\",\"slots\":{},\"user_reply\":null}"}]}`))
	}))
	defer srv.Close()

	p, err := NewClaudeProvider("key", "", 0.3, 10, 5*time.Second)
	require.NoError(t, err)
	p.BaseURL = srv.URL

	res, err := p.Extract(context.Background(), "bye", Context{History: []Turn{{Role: RoleAssistant, Content: "hello"}}})
	require.NoError(t, err)
	assert.Equal(t, "Farewell", res.Intent)
	assert.Equal(t, 1000, got.MaxTokens)
	assert.NotEmpty(t, got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestClaudeProvider_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"type":"error"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p, err := NewClaudeProvider("key", "", 0.3, 10, 5*time.Second)
	require.NoError(t, err)
	p.BaseURL = srv.URL
	_, err = p.Extract(context.Background(), "hi", Context{})
	assert.Error(t, err)
}

func TestNewExtractor(t *testing.T) {
	ctx := context.Background()

	_, err := NewExtractor(ctx, config.LLMConfig{Provider: "gemini"})
	assert.True(t, errors.Is(err, ErrNotConfigured))

	_, err = NewExtractor(ctx, config.LLMConfig{Provider: "openai"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewExtractor(ctx, config.LLMConfig{Provider: "claude"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewExtractor(ctx, config.LLMConfig{Provider: "palm"})
	assert.ErrorIs(t, err, ErrUnknownProvider)

	ex, err := NewExtractor(ctx, config.LLMConfig{Provider: "mock"})
	require.NoError(t, err)
	assert.Equal(t, "mock", ex.Name())

	ex, err = NewExtractor(ctx, config.LLMConfig{Provider: "openai", OpenAIKey: "sk"})
	require.NoError(t, err)
	assert.Equal(t, "openai", ex.Name())
}
