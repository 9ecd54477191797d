package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yungbote/luxtick-backend/internal/platform/envutil"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

// Client is the OpenAI API client used for item normalization. Only JSON-mode
// chat completions are needed here.
type Client interface {
	GenerateJSON(ctx context.Context, system string, user string) (map[string]any, error)
}

type client struct {
	log        *logger.Logger
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

func NewClient(baseLog *logger.Logger) (Client, error) {
	apiKey := envutil.String("OPENAI_API_KEY", "")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	timeout := time.Duration(envutil.Int("OPENAI_TIMEOUT_SECONDS", 60)) * time.Second
	return &client{
		log:        baseLog.With("client", "OpenAIClient"),
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    envutil.String("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		model:      envutil.String("OPENAI_MODEL", "gpt-4o-mini"),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *client) GenerateJSON(ctx context.Context, system string, user string) (map[string]any, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.1,
		MaxTokens:   1500,
	}
	reqBody.ResponseFormat.Type = "json_object"

	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call openai: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai error (%s): %s", parsed.Error.Type, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}

	content := parsed.Choices[0].Message.Content
	var out map[string]any
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("decode completion content: %w", err)
	}
	return out, nil
}
