package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/drsixthsense/lifelog-public/journal"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	notionVersion  = "2022-06-28"
)

// ErrMissingCredentials is returned before any network I/O when the token
// or the database ID is absent.
var ErrMissingCredentials = errors.New("notion token or database id missing")

// Publisher creates diary pages in one Notion database. One page per
// submission, no retries.
type Publisher struct {
	cfg    Config
	client *http.Client
}

// Config configures the publisher. BaseURL is an override for tests.
type Config struct {
	Token      string
	DatabaseID string
	BaseURL    string
}

// NewPublisher builds a publisher. Missing credentials are allowed here and
// rejected on use.
func NewPublisher(cfg Config) *Publisher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Publisher{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Request body for the pages endpoint, shaped for a database whose schema
// is Title / Date / Text / Tags / Mood.

type CreatePageRequest struct {
	Parent     Parent         `json:"parent"`
	Properties PageProperties `json:"properties"`
}

type Parent struct {
	DatabaseID string `json:"database_id"`
}

type PageProperties struct {
	Title TitleProperty       `json:"Title"`
	Date  DateProperty        `json:"Date"`
	Text  RichTextProperty    `json:"Text"`
	Tags  MultiSelectProperty `json:"Tags"`
	Mood  SelectProperty      `json:"Mood"`
}

type TitleProperty struct {
	Title []RichTextObject `json:"title"`
}

type DateProperty struct {
	Date DateObject `json:"date"`
}

type DateObject struct {
	Start string `json:"start"`
}

type RichTextProperty struct {
	RichText []RichTextObject `json:"rich_text"`
}

type RichTextObject struct {
	Text TextObject `json:"text"`
}

type TextObject struct {
	Content string `json:"content"`
}

type MultiSelectProperty struct {
	MultiSelect []SelectOption `json:"multi_select"`
}

type SelectProperty struct {
	Select SelectOption `json:"select"`
}

type SelectOption struct {
	Name string `json:"name"`
}

// PageFromRecord maps a diary record onto the database schema. The date
// goes through verbatim; if the model produced something Notion cannot
// parse, Notion says so in the response.
func PageFromRecord(databaseID string, rec journal.Record) CreatePageRequest {
	tags := make([]SelectOption, 0, len(rec.Tags))
	for _, tag := range rec.Tags {
		tags = append(tags, SelectOption{Name: tag})
	}

	return CreatePageRequest{
		Parent: Parent{DatabaseID: databaseID},
		Properties: PageProperties{
			Title: TitleProperty{Title: []RichTextObject{{Text: TextObject{Content: rec.Title}}}},
			Date:  DateProperty{Date: DateObject{Start: rec.Date}},
			Text:  RichTextProperty{RichText: []RichTextObject{{Text: TextObject{Content: rec.Text}}}},
			Tags:  MultiSelectProperty{MultiSelect: tags},
			Mood:  SelectProperty{Select: SelectOption{Name: strconv.Itoa(rec.Mood)}},
		},
	}
}

// Publish creates one page for the record. It fails fast without a network
// call when credentials are absent; a non-2xx response comes back as an
// error carrying the response body for diagnostics.
func (p *Publisher) Publish(ctx context.Context, rec journal.Record) error {
	if p.cfg.Token == "" || p.cfg.DatabaseID == "" {
		return ErrMissingCredentials
	}

	body, err := json.Marshal(PageFromRecord(p.cfg.DatabaseID, rec))
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/pages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.Token)
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notion API error (status %d): %s", resp.StatusCode, string(errBody))
	}
	return nil
}

// PublishRaw parses the diary record out of a raw provider reply and
// publishes it. Credentials are checked before any parsing work so a
// missing token never reaches the extractor.
func (p *Publisher) PublishRaw(ctx context.Context, raw string) error {
	if p.cfg.Token == "" || p.cfg.DatabaseID == "" {
		return ErrMissingCredentials
	}
	rec, err := journal.ParseRecord(raw)
	if err != nil {
		return err
	}
	return p.Publish(ctx, rec)
}
