package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/drsixthsense/lifelog-public/journal"
)

var testRecord = journal.Record{
	Title: "A walk in the park",
	Date:  "2026-08-31",
	Text:  "Took a long walk and watched the ducks.",
	Mood:  4,
	Tags:  []string{"outdoors", "relaxing"},
}

func TestPublish_MissingCredentials(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"no token", Config{DatabaseID: "db-1", BaseURL: srv.URL}},
		{"no database", Config{Token: "secret", BaseURL: srv.URL}},
		{"neither", Config{BaseURL: srv.URL}},
	}
	for _, tt := range tests {
		pub := NewPublisher(tt.cfg)
		if err := pub.Publish(context.Background(), testRecord); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("%s: expected ErrMissingCredentials, got: %v", tt.name, err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("expected no network calls, got %d", n)
	}
}

func TestPublish_MapsRecordToPage(t *testing.T) {
	var captured CreatePageRequest
	var gotAuth, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/pages" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Write([]byte(`{"object":"page"}`))
	}))
	defer srv.Close()

	pub := NewPublisher(Config{Token: "secret-token", DatabaseID: "db-123", BaseURL: srv.URL})
	if err := pub.Publish(context.Background(), testRecord); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("wrong Authorization header: %s", gotAuth)
	}
	if gotVersion != "2022-06-28" {
		t.Errorf("wrong Notion-Version header: %s", gotVersion)
	}
	if captured.Parent.DatabaseID != "db-123" {
		t.Errorf("wrong parent database: %s", captured.Parent.DatabaseID)
	}

	props := captured.Properties
	if len(props.Title.Title) != 1 || props.Title.Title[0].Text.Content != testRecord.Title {
		t.Errorf("wrong Title property: %+v", props.Title)
	}
	if props.Date.Date.Start != "2026-08-31" {
		t.Errorf("date should pass through verbatim, got: %s", props.Date.Date.Start)
	}
	if len(props.Text.RichText) != 1 || props.Text.RichText[0].Text.Content != testRecord.Text {
		t.Errorf("wrong Text property: %+v", props.Text)
	}
	if len(props.Tags.MultiSelect) != 2 ||
		props.Tags.MultiSelect[0].Name != "outdoors" ||
		props.Tags.MultiSelect[1].Name != "relaxing" {
		t.Errorf("wrong Tags property: %+v", props.Tags)
	}
	if props.Mood.Select.Name != "4" {
		t.Errorf("mood should be the number as a select name, got: %s", props.Mood.Select.Name)
	}
}

func TestPublish_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Date is not a valid date"}`))
	}))
	defer srv.Close()

	pub := NewPublisher(Config{Token: "secret", DatabaseID: "db-1", BaseURL: srv.URL})
	err := pub.Publish(context.Background(), testRecord)
	if err == nil {
		t.Fatal("expected an error for a 400 response")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Errorf("error should carry the status, got: %v", err)
	}
	if !strings.Contains(err.Error(), "not a valid date") {
		t.Errorf("error should carry the response body, got: %v", err)
	}
}

func TestPublishRaw(t *testing.T) {
	var captured CreatePageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"object":"page"}`))
	}))
	defer srv.Close()

	raw := `Here is the entry:
{"title":"Morning coffee","date":"2026-08-31","text":"Quiet morning.","mood":5,"tags":["home"]}
Hope that helps!`

	pub := NewPublisher(Config{Token: "secret", DatabaseID: "db-1", BaseURL: srv.URL})
	if err := pub.PublishRaw(context.Background(), raw); err != nil {
		t.Fatalf("PublishRaw failed: %v", err)
	}
	if captured.Properties.Title.Title[0].Text.Content != "Morning coffee" {
		t.Errorf("wrong title: %+v", captured.Properties.Title)
	}
	if captured.Properties.Mood.Select.Name != "5" {
		t.Errorf("wrong mood: %s", captured.Properties.Mood.Select.Name)
	}
}

func TestPublishRaw_NoJSON(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	pub := NewPublisher(Config{Token: "secret", DatabaseID: "db-1", BaseURL: srv.URL})
	err := pub.PublishRaw(context.Background(), "I could not describe this image.")
	if !errors.Is(err, journal.ErrNoJSON) {
		t.Errorf("expected ErrNoJSON, got: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("unparseable reply must not reach the network, got %d calls", n)
	}
}

func TestPublishRaw_MissingCredentialsBeforeParsing(t *testing.T) {
	pub := NewPublisher(Config{})
	err := pub.PublishRaw(context.Background(), "not json at all")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("credentials check must come before parsing, got: %v", err)
	}
}
