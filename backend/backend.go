package backend

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// ErrNoChoices is returned when the completion API answers without any choices.
var ErrNoChoices = errors.New("no choices in completion response")

// Options configures a Client.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds a single upstream call. Zero disables it.
	Timeout time.Duration
	// HTTPClient replaces the default transport; Timeout is still applied.
	HTTPClient *http.Client
}

// Client represents a client to communicate with the chat completion API.
type Client struct {
	model string
	api   openai.Client
}

// NewBackendClient creates a Client for the given options.
// Each Complete call makes exactly one attempt; SDK retries are disabled.
func NewBackendClient(opts Options) *Client {
	httpClient := &http.Client{}
	if opts.HTTPClient != nil {
		c := *opts.HTTPClient
		httpClient = &c
	}
	httpClient.Timeout = opts.Timeout

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &Client{
		model: opts.Model,
		api:   openai.NewClient(reqOpts...),
	}
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

// Complete sends prompt as a single user message and returns the content of
// the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", ErrNoChoices
	}
	return completion.Choices[0].Message.Content, nil
}
