package openai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopchat/internal/logger"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Client struct {
	baseURL        string
	apiKey         string
	embeddingModel string
	chatModel      string
	httpClient     *http.Client
	logger         *logger.Logger
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// NewClient returns an OpenAI-compatible API client. An empty baseURL
// selects the production API.
func NewClient(baseURL, apiKey, embeddingModel, chatModel string, logger *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:        baseURL,
		apiKey:         apiKey,
		embeddingModel: embeddingModel,
		chatModel:      chatModel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// CreateEmbedding returns the embedding vector for the input text.
func (c *Client) CreateEmbedding(input string) ([]float32, error) {
	var embResp embeddingResponse
	if err := c.post("/embeddings", embeddingRequest{Model: c.embeddingModel, Input: input}, &embResp); err != nil {
		return nil, err
	}
	if len(embResp.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return embResp.Data[0].Embedding, nil
}

// ChatCompletion returns the completion text for the conversation.
func (c *Client) ChatCompletion(messages []Message, temperature float64) (string, error) {
	var completion chatResponse
	req := chatRequest{
		Model:       c.chatModel,
		Messages:    messages,
		Temperature: temperature,
	}
	if err := c.post("/chat/completions", req, &completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *Client) post(path string, payload, out interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OpenAI API error: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
