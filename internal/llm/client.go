package llm

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

const (
	chatCompletionsPath = "/v1/chat/completions"
	modelsPath          = "/v1/models"
)

var (
	// ErrUnexpectedStatus is returned when the endpoint answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("llm: unexpected response status")
	// ErrMalformedResponse is returned when the body lacks choices[0].message.content.
	ErrMalformedResponse = errors.New("llm: malformed response body")
)

// CompletionProvider defines the interface for talking to a chat-completion endpoint.
type CompletionProvider interface {
	Complete(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
	ListModels(ctx context.Context) (*ListModelsResponse, error)
}

type openAIProvider struct {
	client  *http.Client
	baseURL string
}

// NewOpenAIProvider returns a client for an OpenAI-compatible server (LM Studio,
// llama.cpp, vLLM...). baseURL may be given with or without the
// /v1/chat/completions suffix. A zero timeout means requests never time out.
func NewOpenAIProvider(baseURL string, timeout time.Duration) CompletionProvider {
	base := strings.TrimSpace(baseURL)
	base = strings.TrimSuffix(base, "/")
	base = strings.TrimSuffix(base, chatCompletionsPath)
	return &openAIProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: base,
	}
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest carries the whole conversation; the endpoint keeps no state between calls.
type ChatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type ChatCompletionResponse struct {
	ID      string   `json:"id,omitempty"`
	Model   string   `json:"model,omitempty"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason,omitempty"`
}

// ChoiceMessage uses a pointer so a missing content field can be told apart from an empty reply.
type ChoiceMessage struct {
	Role    string  `json:"role,omitempty"`
	Content *string `json:"content"`
}

// Content returns choices[0].message.content. Complete only returns responses for which this is set.
func (r *ChatCompletionResponse) Content() string {
	if r == nil || len(r.Choices) == 0 || r.Choices[0].Message.Content == nil {
		return ""
	}
	return *r.Choices[0].Message.Content
}

type ListModelsResponse struct {
	Object string  `json:"object,omitempty"`
	Data   []Model `json:"data"`
}

type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object,omitempty"`
	OwnedBy string `json:"owned_by,omitempty"`
}

func (p *openAIProvider) Complete(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	bodyBytes, err := p.do(httpReq)
	if err != nil {
		return nil, err
	}

	var resp ChatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}
	if resp.Choices[0].Message.Content == nil {
		return nil, fmt.Errorf("%w: first choice has no message content", ErrMalformedResponse)
	}
	return &resp, nil
}

func (p *openAIProvider) ListModels(ctx context.Context) (*ListModelsResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+modelsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}

	bodyBytes, err := p.do(httpReq)
	if err != nil {
		return nil, err
	}

	var resp ListModelsResponse
	if err := json.Unmarshal(bodyBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &resp, nil
}

// do sends the request and returns the body of a 2xx response.
func (p *openAIProvider) do(httpReq *http.Request) ([]byte, error) {
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, truncateBody(bodyBytes))
	}
	return bodyBytes, nil
}

func truncateBody(b []byte) string {
	const limit = 256
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit]) + "..."
}
