package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/drsixthsense/lifelog-public/imgutil"
)

// DefaultGeminiModel is the generateContent model every submission uses.
const DefaultGeminiModel = "gemini-2.0-flash"

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient talks to the generateContent endpoint directly. Unlike the
// ChatGPT path this is a conversation: the caller owns a Transcript that is
// replayed on every call and grows by up to two turns per submission.
type GeminiClient struct {
	cfg    Config
	client *http.Client
}

// GeminiContent is one turn of a generateContent request.
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart is either text or inline image data.
type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inline_data,omitempty"`
}

// GeminiInlineData carries a base64 image alongside a text part.
type GeminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// GeminiRequest is the generateContent request body.
type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

// GeminiResponse mirrors the part of the generateContent reply this client
// reads. Content is a pointer so a missing object and an empty one are
// distinguishable.
type GeminiResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []GeminiPart `json:"parts"`
			Role  string       `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback json.RawMessage `json:"promptFeedback,omitempty"`
}

// NewGeminiClient builds a client. As with ChatGPT, an empty API key is
// rejected on use rather than here.
func NewGeminiClient(cfg Config) *GeminiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGeminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	// No client timeout: a submission runs until the provider answers or
	// the context says otherwise.
	return &GeminiClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Describe replays the transcript, appends the current turn and returns the
// model's raw reply text.
//
// Transcript bookkeeping follows the conversation contract: the user turn
// is recorded as soon as the endpoint has accepted the request, so a reply
// that turns out to be structurally unusable leaves exactly one new turn.
// A transport failure, or a missing key, leaves the transcript untouched.
// The model turn is appended only when reply text was actually extracted.
func (c *GeminiClient) Describe(ctx context.Context, req Request, transcript *Transcript) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	contents := make([]GeminiContent, 0, len(transcript.Turns)+1)
	for _, turn := range transcript.Turns {
		contents = append(contents, GeminiContent{
			Role:  turn.Role,
			Parts: []GeminiPart{{Text: turn.Text}},
		})
	}

	// The first turn carries the full personalization prompt; later turns
	// only the wall clock and the comment.
	current := geminiTurnText(req.Now, req.Comment)
	if transcript.Empty() {
		current = BuildGeminiSystemPrompt(req.Profile, req.language()) + " " + current
	}

	parts := []GeminiPart{{Text: current}}
	if len(req.Image) > 0 {
		resized, err := imgutil.Resize(req.Image, maxImageWidth, maxImageHeight)
		if err != nil {
			return "", fmt.Errorf("failed to prepare image: %w", err)
		}
		// The image rides on the current turn only; replayed history stays
		// text-only.
		parts = append(parts, GeminiPart{
			InlineData: &GeminiInlineData{
				MimeType: "image/jpeg",
				Data:     base64.StdEncoding.EncodeToString(resized),
			},
		})
	}
	contents = append(contents, GeminiContent{Role: "user", Parts: parts})

	body, err := json.Marshal(GeminiRequest{Contents: contents})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(errBody))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if len(raw) == 0 {
		return "", ErrEmptyBody
	}

	var parsed GeminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	// The request went through; the user turn is part of the conversation
	// from here on regardless of how the reply parses.
	transcript.append("user", current)

	if len(parsed.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	candidate := parsed.Candidates[0]
	if candidate.Content == nil {
		return "", ErrNoContent
	}
	if len(candidate.Content.Parts) == 0 {
		return "", ErrNoParts
	}
	text := candidate.Content.Parts[0].Text
	if text == "" {
		return "", ErrNoText
	}

	transcript.append("model", text)
	return text, nil
}
