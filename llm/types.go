package llm

import (
	"errors"
	"time"

	"github.com/drsixthsense/lifelog-public/journal"
)

// Submitted images are shrunk to a thumbnail before upload; the providers
// only need enough pixels to recognize the scene.
const (
	maxImageWidth  = 400
	maxImageHeight = 400
)

// Sentinel errors. The pipeline logs them and collapses every one into the
// same user-visible failure, but tests and logs can tell them apart.
var (
	// ErrMissingAPIKey is returned before any network I/O when the
	// provider's key is absent or empty.
	ErrMissingAPIKey = errors.New("API key missing or empty")

	// ErrNoChoices means the chat-completions response carried no choices.
	ErrNoChoices = errors.New("response has no choices")

	// The generateContent response chain can break at any link.
	ErrEmptyBody    = errors.New("response body is empty")
	ErrNoCandidates = errors.New("response has no candidates")
	ErrNoContent    = errors.New("first candidate has no content")
	ErrNoParts      = errors.New("candidate content has no parts")
	ErrNoText       = errors.New("candidate part has no text")
)

// Config configures one provider client.
type Config struct {
	APIKey  string
	BaseURL string // override for tests; empty means the real endpoint
	Model   string // empty means the provider default
}

// Request carries one submission's inputs to a provider.
type Request struct {
	Profile  journal.Profile
	Language string // session selection; falls back to the profile language
	Image    []byte // raw picked bytes; nil means a text-only turn (Gemini)
	Comment  string
	Now      time.Time
}

func (r Request) language() string {
	if r.Language != "" {
		return r.Language
	}
	if r.Profile.Language != "" {
		return r.Profile.Language
	}
	return journal.DefaultLanguage
}

// Turn is one entry of a Gemini conversation transcript.
type Turn struct {
	Role string // "user" or "model"
	Text string
}

// Transcript is the ordered Gemini conversation history for one screen
// session. It lives in memory with the open window and is discarded on
// exit. Only the Gemini client appends to it.
type Transcript struct {
	Turns []Turn
}

// Empty reports whether the conversation has not started yet.
func (t *Transcript) Empty() bool {
	return len(t.Turns) == 0
}

func (t *Transcript) append(role, text string) {
	t.Turns = append(t.Turns, Turn{Role: role, Text: text})
}
