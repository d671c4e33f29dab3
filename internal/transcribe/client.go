package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Options contains transcription client settings.
type Options struct {
	APIKey   string
	BaseURL  string // override for tests, empty means the OpenAI default
	Language string // language hint passed to the model, may be empty
	Timeout  time.Duration
}

// Client transcribes voice audio through the Whisper API.
type Client struct {
	client   openai.Client
	language string
	timeout  time.Duration
}

// NewClient creates a transcription client.
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
		client:   openai.NewClient(reqOpts...),
		language: opts.Language,
		timeout:  timeout,
	}
}

// Transcribe sends OGG voice bytes to Whisper and returns the text.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(audio), "voice.ogg", "audio/ogg"),
		Model: openai.AudioModelWhisper1,
	}
	if c.language != "" {
		params.Language = openai.String(c.language)
	}

	resp, err := c.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	return resp.Text, nil
}
