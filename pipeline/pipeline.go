package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/drsixthsense/lifelog-public/db"
	"github.com/drsixthsense/lifelog-public/journal"
	"github.com/drsixthsense/lifelog-public/llm"
	"github.com/drsixthsense/lifelog-public/notion"
	"github.com/drsixthsense/lifelog-public/utils"
)

// State tracks a submission through the request chain.
type State int

const (
	StateIdle State = iota
	StatePreparing
	StateAwaitingProvider
	StateAwaitingPublish
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreparing:
		return "preparing"
	case StateAwaitingProvider:
		return "awaiting provider"
	case StateAwaitingPublish:
		return "awaiting publish"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// ProviderKind selects which LLM backs a submission.
type ProviderKind string

const (
	ProviderChatGPT ProviderKind = "ChatGPT"
	ProviderGemini  ProviderKind = "Gemini"
)

// ProviderKinds in menu order.
var ProviderKinds = []ProviderKind{ProviderChatGPT, ProviderGemini}

// ErrSubmissionInFlight is returned by Run when the optional single-flight
// guard is enabled and a submission is already running.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// Submission is one user-initiated generate request.
type Submission struct {
	Provider ProviderKind
	Language string // session language selection
	Image    []byte // required for ChatGPT, optional for Gemini
	Comment  string
}

// Result is what the UI renders when a submission finishes.
type Result struct {
	State  State
	Text   string         // raw provider reply, shown to the user verbatim
	Record journal.Record // parsed record when extraction succeeded
	Err    error          // why the submission failed, when State is StateFailed
	// PublishErr reports a Notion failure on the Gemini path, where the
	// diary text is still shown and the publish problem is a separate
	// notice.
	PublishErr error
}

// Pipeline drives submissions: profile load, provider call, JSON
// extraction, Notion publish. The two network stages are strictly
// sequential; the publish consumes the provider's output.
type Pipeline struct {
	store  *db.DB
	logger *utils.Logger
	cfg    *utils.Config

	// transcript is the Gemini conversation for this screen session. It is
	// only ever touched from the single running submission goroutine.
	transcript llm.Transcript

	// OnState, when set, observes every state transition. Called from the
	// submission goroutine.
	OnState func(State)

	mu       sync.Mutex
	inFlight bool
}

// New creates a pipeline bound to the profile store.
func New(store *db.DB, cfg *utils.Config, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		store:  store,
		logger: logger,
		cfg:    cfg,
	}
}

// ResetConversation drops the Gemini transcript, starting the next
// submission from a clean first turn.
func (p *Pipeline) ResetConversation() {
	p.transcript = llm.Transcript{}
}

// Run drives one submission to completion. It is synchronous; the UI
// dispatches it on its own goroutine and renders the returned Result.
//
// Failure containment: provider and publisher errors never escape as
// anything but a Result; the UI only ever sees success or failure plus a
// message to show.
func (p *Pipeline) Run(ctx context.Context, sub Submission) Result {
	if p.cfg.Requests.SingleFlight {
		p.mu.Lock()
		if p.inFlight {
			p.mu.Unlock()
			return Result{State: StateFailed, Err: ErrSubmissionInFlight}
		}
		p.inFlight = true
		p.mu.Unlock()
		defer func() {
			p.mu.Lock()
			p.inFlight = false
			p.mu.Unlock()
		}()
	}

	if seconds := p.cfg.Requests.TimeoutSeconds; seconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
		defer cancel()
	}

	p.setState(StatePreparing)
	profile, err := p.store.LoadProfile()
	if err != nil {
		return p.fail(fmt.Errorf("failed to load profile: %w", err))
	}

	req := llm.Request{
		Profile:  *profile,
		Language: sub.Language,
		Image:    sub.Image,
		Comment:  sub.Comment,
		Now:      time.Now(),
	}

	p.setState(StateAwaitingProvider)
	text, err := p.callProvider(ctx, sub.Provider, req, profile)
	if err != nil {
		p.logger.Error("Provider %s failed: %v", sub.Provider, err)
		return p.fail(err)
	}

	// Provider success always leads to a publish attempt, whichever
	// provider produced the text.
	p.setState(StateAwaitingPublish)
	record, publishErr := p.publish(ctx, profile, text)
	if publishErr != nil {
		p.logger.Error("Notion publish failed: %v", publishErr)
	}

	// The ChatGPT path treats the Notion page as part of the submission:
	// no page, no success. The Gemini path still shows the diary text and
	// reports the publish problem separately.
	if sub.Provider != ProviderGemini && publishErr != nil {
		return p.fail(publishErr)
	}

	p.setState(StateDone)
	return Result{State: StateDone, Text: text, Record: record, PublishErr: publishErr}
}

func (p *Pipeline) callProvider(ctx context.Context, kind ProviderKind, req llm.Request, profile *journal.Profile) (string, error) {
	switch kind {
	case ProviderGemini:
		client := llm.NewGeminiClient(llm.Config{
			APIKey:  profile.GeminiAPIKey,
			BaseURL: p.cfg.Endpoints.Gemini,
		})
		return client.Describe(ctx, req, &p.transcript)
	default:
		client := llm.NewChatGPTClient(llm.Config{
			APIKey:  profile.ChatGPTAPIKey,
			BaseURL: p.cfg.Endpoints.OpenAI,
		})
		return client.Describe(ctx, req)
	}
}

func (p *Pipeline) publish(ctx context.Context, profile *journal.Profile, text string) (journal.Record, error) {
	record, err := p.parseRecord(text)
	if err != nil {
		return journal.Record{}, err
	}

	publisher := notion.NewPublisher(notion.Config{
		Token:      profile.NotionToken,
		DatabaseID: profile.NotionDatabaseID,
		BaseURL:    p.cfg.Endpoints.Notion,
	})
	return record, publisher.Publish(ctx, record)
}

func (p *Pipeline) parseRecord(text string) (journal.Record, error) {
	if p.cfg.Requests.StrictExtract {
		return journal.ParseRecordStrict(text)
	}
	return journal.ParseRecord(text)
}

func (p *Pipeline) setState(s State) {
	p.logger.Debug("Submission state: %s", s)
	if p.OnState != nil {
		p.OnState(s)
	}
}

func (p *Pipeline) fail(err error) Result {
	p.setState(StateFailed)
	return Result{State: StateFailed, Err: err}
}
