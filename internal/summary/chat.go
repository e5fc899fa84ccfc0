package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxResponseBytes = 1 << 20

// ChatClient calls an OpenAI-compatible /chat/completions endpoint.
type ChatClient struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
}

// NewChatClient builds a client for endpoint (the API base URL, e.g.
// "https://api.openai.com/v1").
func NewChatClient(endpoint, apiKey, model string, timeout time.Duration) *ChatClient {
	return &ChatClient{
		endpoint: strings.TrimRight(endpoint, "/") + "/chat/completions",
		apiKey:   apiKey,
		model:    model,
		http:     &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize sends instruction as the system message and text as the user message.
func (c *ChatClient) Summarize(ctx context.Context, instruction, text string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: instruction},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summary: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("summary: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return "", fmt.Errorf("summary: unexpected status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return "", fmt.Errorf("summary: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("summary: empty response")
	}
	return out.Choices[0].Message.Content, nil
}
