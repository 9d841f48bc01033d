package store

import (
	"context"
	"time"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/spacedrep"
)

// QueryOpts configures record queries with filtering and pagination.
// Results come back newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Kind   string    // interaction kind or LLM purpose; empty matches all
}

// ResultRepo persists completed assessments. Results are append-only.
type ResultRepo interface {
	// Save stores a result.
	Save(ctx context.Context, r assessment.Result) error

	// LoadAll returns every readable result in completion order.
	// Unreadable records are skipped with a warning.
	LoadAll(ctx context.Context) ([]assessment.Result, error)

	// Get returns one result by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*assessment.Result, error)
}

// Interaction is one use of a study tool.
type Interaction struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Student   string    `json:"student,omitempty"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	Sequence  int64     `json:"sequence,omitempty"`
}

// InteractionRepo records study tool usage.
type InteractionRepo interface {
	// Append stores an interaction, assigning an ID and timestamp if unset.
	Append(ctx context.Context, in Interaction) error

	// List returns interactions matching opts, newest first.
	List(ctx context.Context, opts QueryOpts) ([]Interaction, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	Student      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	Outcome      string
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	LLMRequestEventData
	ID        int
	Sequence  int64
	Timestamp time.Time
}

// LLMPurposeUsage aggregates LLM calls per purpose.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM tokens per model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first. opts.Kind filters by purpose.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates calls and tokens per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel aggregates calls and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// ProfileRepo stores the student identity used for new results.
type ProfileRepo interface {
	// Save records a new profile version.
	Save(ctx context.Context, st assessment.Student) error

	// Latest returns the most recent profile, or nil if none exist.
	Latest(ctx context.Context) (*assessment.Student, error)
}

// Card is one flashcard and its review schedule.
type Card struct {
	ID     string              `json:"id"`
	Front  string              `json:"front"`
	Back   string              `json:"back"`
	Hint   string              `json:"hint,omitempty"`
	Review spacedrep.CardState `json:"review"`
}

// Deck is a saved flashcard deck.
type Deck struct {
	ID        string
	Subject   string
	Topic     string
	Cards     []Card
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewStates returns every card's schedule keyed by card ID.
func (d *Deck) ReviewStates() map[string]spacedrep.CardState {
	out := make(map[string]spacedrep.CardState, len(d.Cards))
	for _, c := range d.Cards {
		out[c.ID] = c.Review
	}
	return out
}

// ApplyReviewStates copies schedules back onto the deck's cards.
func (d *Deck) ApplyReviewStates(states map[string]spacedrep.CardState) {
	for i, c := range d.Cards {
		if cs, ok := states[c.ID]; ok {
			d.Cards[i].Review = cs
		}
	}
}

// DeckRepo stores flashcard decks.
type DeckRepo interface {
	// SaveDeck stores a new deck, assigning an ID if unset.
	SaveDeck(ctx context.Context, d *Deck) error

	// ListDecks returns every readable deck, newest first.
	ListDecks(ctx context.Context) ([]Deck, error)

	// GetDeck returns a deck by ID, or ErrNotFound.
	GetDeck(ctx context.Context, id string) (*Deck, error)

	// UpdateDeck rewrites a deck's cards and bumps UpdatedAt.
	UpdateDeck(ctx context.Context, d *Deck) error
}
