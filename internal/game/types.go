// Package game implements the session state machine: creation, per-round
// location selection, guess scoring, advancement, and termination.
package game

import (
	"context"
	"errors"
	"time"
)

// Mode is the session game mode.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeEndless  Mode = "endless"
)

// Difficulty filters candidate locations. Impossible additionally redacts
// the true location in guess responses.
type Difficulty string

const (
	DifficultyEasy       Difficulty = "easy"
	DifficultyMedium     Difficulty = "medium"
	DifficultyHard       Difficulty = "hard"
	DifficultyImpossible Difficulty = "impossible"
)

// Tag classifies a location. TagAll is the wildcard used when no tag filter
// applies.
type Tag string

const (
	TagAll     Tag = "all"
	TagIndoor  Tag = "indoor"
	TagOutdoor Tag = "outdoor"
	TagCarpark Tag = "carpark"
)

var (
	// ErrSessionNotFound is returned when an operation references a session
	// id absent from the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoLocation is returned when no catalog entry matches the requested
	// difficulty/tag filters.
	ErrNoLocation = errors.New("no location matches the requested filters")

	// ErrBadParams is returned when session parameters match neither the
	// standard nor the custom shape.
	ErrBadParams = errors.New("malformed session parameters")
)

// Location is read-only catalog data: a photographed point on the grid.
type Location struct {
	ID         int64
	Difficulty Difficulty
	Tags       []Tag
	X          int64
	Y          int64
}

// CustomSettings are the client-chosen parameters of a custom session.
// The JSON encoding doubles as the stored custom_params document, so the
// field names mirror the wire shape.
type CustomSettings struct {
	Mode         Mode         `json:"gamemode"`
	Target       int64        `json:"gamemodeParam"`
	TimerSeconds int          `json:"timerSeconds"`
	Difficulties []Difficulty `json:"difficulties"`
	Tags         []Tag        `json:"tags"`
}

// Session is one in-progress game run. Score holds accumulated points in
// standard mode and remaining health in endless mode. Exactly one of
// Difficulty (non-custom) or Custom (custom) is set, discriminated by
// IsCustom.
type Session struct {
	ID           int64
	Mode         Mode
	Difficulty   Difficulty
	LocationID   int64
	Score        int64
	Round        int64
	IsCustom     bool
	Custom       *CustomSettings
	LastActivity time.Time
}

// Difficulties returns the location filter for the session's next round.
func (s *Session) Difficulties() []Difficulty {
	if s.IsCustom {
		return s.Custom.Difficulties
	}
	return []Difficulty{s.Difficulty}
}

// TagFilter returns the tag filter for the session's next round.
func (s *Session) TagFilter() []Tag {
	if s.IsCustom {
		return s.Custom.Tags
	}
	return []Tag{TagAll}
}

// Params is a session-creation request. The standard shape populates
// Difficulty; the custom shape populates Difficulties (plus target, timer
// and tags). Which of the two semantic fields is present decides the kind —
// never the number of keys on the wire.
type Params struct {
	Mode         Mode         `json:"gamemode"`
	Difficulty   Difficulty   `json:"difficulty,omitempty"`
	Target       int64        `json:"gamemodeParam,omitempty"`
	TimerSeconds int          `json:"timerSeconds,omitempty"`
	Difficulties []Difficulty `json:"difficulties,omitempty"`
	Tags         []Tag        `json:"tags,omitempty"`
}

// Custom reports whether p is a custom-session request.
func (p Params) Custom() bool { return len(p.Difficulties) > 0 }

// Validate checks that p matches exactly one of the two request shapes.
func (p Params) Validate() error {
	if p.Mode != ModeStandard && p.Mode != ModeEndless {
		return ErrBadParams
	}
	if p.Custom() {
		if p.Difficulty != "" || p.Target < 1 {
			return ErrBadParams
		}
		for _, d := range p.Difficulties {
			if !ValidDifficulty(d) {
				return ErrBadParams
			}
		}
		for _, t := range p.Tags {
			switch t {
			case TagAll, TagIndoor, TagOutdoor, TagCarpark:
			default:
				return ErrBadParams
			}
		}
		return nil
	}
	if !ValidDifficulty(p.Difficulty) {
		return ErrBadParams
	}
	return nil
}

// ValidDifficulty reports whether d is one of the four known difficulties.
func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyImpossible:
		return true
	}
	return false
}

// GuessResult is the outcome of one scored guess. X and Y are nil when the
// true location is redacted (impossible difficulty). DistanceKM is rounded
// up to whole kilometers.
type GuessResult struct {
	X          *int64
	Y          *int64
	DistanceKM int64
	Score      int64
	Round      int64
	GameOver   bool
}

// SessionStore is the persistence contract for sessions. Get returns the
// session joined with its current location; Advance persists the next
// location, score, and round as a single atomic update.
type SessionStore interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id int64) (Session, Location, error)
	Advance(ctx context.Context, id, locationID, score, round int64) error
	Touch(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	SweepExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Catalog is the read contract against the location catalog.
type Catalog interface {
	PickLocation(ctx context.Context, difficulties []Difficulty, tags []Tag) (int64, error)
}
