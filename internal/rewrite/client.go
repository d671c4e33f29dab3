package rewrite

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Options contains rewriting client settings.
type Options struct {
	APIKey      string
	BaseURL     string // OpenAI-compatible endpoint, e.g. Groq's
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client rewrites transcripts through an OpenAI-compatible chat API.
type Client struct {
	client      openai.Client
	model       string
	temperature float64
	timeout     time.Duration
}

// NewClient creates a rewriting client.
func NewClient(opts Options) *Client {
	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		client:      openai.NewClient(reqOpts...),
		model:       opts.Model,
		temperature: opts.Temperature,
		timeout:     timeout,
	}
}

// Rewrite edits the transcript according to the system instruction and
// returns the model's text.
func (c *Client) Rewrite(ctx context.Context, instruction, transcript string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instruction),
			openai.UserMessage(transcript),
		},
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("rewrite request: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("rewrite request: empty completion")
	}
	return completion.Choices[0].Message.Content, nil
}
