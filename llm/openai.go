package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/drsixthsense/lifelog-public/imgutil"
)

// DefaultChatGPTModel is the vision-capable model every submission uses.
const DefaultChatGPTModel = "gpt-4o-mini"

// ChatGPTClient sends a single vision chat completion per submission. It is
// stateless between submissions; there is no conversation to carry over.
type ChatGPTClient struct {
	cfg    Config
	client *openai.Client
}

// NewChatGPTClient builds a client. An empty API key is allowed here and
// rejected on use, so the caller can construct clients unconditionally.
func NewChatGPTClient(cfg Config) *ChatGPTClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultChatGPTModel
	}
	return &ChatGPTClient{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Describe sends the photo and comment with the personalized system prompt
// and returns the model's raw reply, which still carries the embedded diary
// JSON plus whatever prose surrounds it. No network I/O happens when the
// API key is absent.
func (c *ChatGPTClient) Describe(ctx context.Context, req Request) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	resized, err := imgutil.Resize(req.Image, maxImageWidth, maxImageHeight)
	if err != nil {
		return "", fmt.Errorf("failed to prepare image: %w", err)
	}
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(resized)

	completion := openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: BuildChatGPTSystemPrompt(req.Profile, req.language()),
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: chatGPTUserText(req.Now, req.Comment),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, completion)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}
