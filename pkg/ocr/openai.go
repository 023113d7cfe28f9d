package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/medscan-io/medscan-engine/pkg/retry"
)

const recognitionPrompt = "Extract all text visible on this medication packaging. " +
	"Return the text exactly as printed, one line per printed line, with no commentary."

var retryConfig = &retry.Config{
	MaxRetries:   2,
	InitialDelay: 250 * time.Millisecond,
	MaxDelay:     2 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.1,
}

// Config holds configuration for the vision-model recognizer.
type Config struct {
	Endpoint string // Base URL, e.g., "https://api.openai.com/v1"
	Model    string // Vision-capable model name, e.g., "gpt-4o-mini"
	APIKey   string // Optional for local endpoints
	Timeout  time.Duration
}

// VisionRecognizer implements Recognizer using an OpenAI-compatible
// vision model endpoint.
type VisionRecognizer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewVisionRecognizer creates a recognizer backed by an
// OpenAI-compatible endpoint.
func NewVisionRecognizer(cfg *Config, logger *zap.Logger) (*VisionRecognizer, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &VisionRecognizer{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		timeout: timeout,
		logger:  logger.Named("ocr"),
	}, nil
}

// Recognise sends the image to the vision model and returns the
// extracted text. The call is bounded by the configured timeout; a
// slow upstream otherwise blocks the whole request.
func (r *VisionRecognizer) Recognise(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("empty image")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	dataURI := fmt.Sprintf("data:%s;base64,%s",
		http.DetectContentType(image),
		base64.StdEncoding.EncodeToString(image))

	start := time.Now()

	request := openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: recognitionPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURI,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}

	// Rate limits and 5xx responses from the vision endpoint are
	// transient; retry them within the overall timeout.
	resp, err := retry.DoWithResult(ctx, retryConfig, func() (openai.ChatCompletionResponse, error) {
		return r.client.CreateChatCompletion(ctx, request)
	})
	if err != nil {
		r.logger.Error("Recognition request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("recognition request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	text := resp.Choices[0].Message.Content

	r.logger.Info("Recognition completed",
		zap.Int("image_bytes", len(image)),
		zap.Int("text_len", len(text)),
		zap.Duration("elapsed", time.Since(start)))

	return text, nil
}

// Ensure VisionRecognizer implements Recognizer at compile time.
var _ Recognizer = (*VisionRecognizer)(nil)
