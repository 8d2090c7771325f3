package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/YaBoiMega0/monguessr/internal/geo"
)

// Engine orchestrates the per-session state machine on top of a SessionStore
// and a location Catalog. All mutation of a session goes through the engine;
// concurrent guesses on the same id are serialized by a per-session lock.
type Engine struct {
	store   SessionStore
	catalog Catalog
	logger  *slog.Logger

	endlessStartHP int64
	standardRounds int64
	sessionTTL     time.Duration

	locks sessionLocks
}

// Options tune engine defaults. Zero values fall back to the classic game:
// 5 rounds, 5000 starting health, one hour of allowed inactivity.
type Options struct {
	EndlessStartHP int64
	StandardRounds int64
	SessionTTL     time.Duration
}

func New(store SessionStore, catalog Catalog, logger *slog.Logger, opts Options) *Engine {
	if opts.EndlessStartHP <= 0 {
		opts.EndlessStartHP = 5000
	}
	if opts.StandardRounds <= 0 {
		opts.StandardRounds = 5
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = time.Hour
	}
	return &Engine{
		store:          store,
		catalog:        catalog,
		logger:         logger,
		endlessStartHP: opts.EndlessStartHP,
		standardRounds: opts.StandardRounds,
		sessionTTL:     opts.SessionTTL,
	}
}

// NewSession validates params, picks the first location, and persists a new
// session. No session is created when the filters match nothing.
func (e *Engine) NewSession(ctx context.Context, p Params) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	s := Session{ID: newSessionID(p), Mode: p.Mode}
	if p.Custom() {
		s.IsCustom = true
		s.Custom = &CustomSettings{
			Mode:         p.Mode,
			Target:       p.Target,
			TimerSeconds: p.TimerSeconds,
			Difficulties: p.Difficulties,
			Tags:         p.Tags,
		}
		if p.Mode == ModeEndless {
			s.Score = p.Target
		}
	} else {
		s.Difficulty = p.Difficulty
		if p.Mode == ModeEndless {
			s.Score = e.endlessStartHP
		}
	}

	locID, err := e.catalog.PickLocation(ctx, s.Difficulties(), s.TagFilter())
	if err != nil {
		return 0, fmt.Errorf("picking initial location: %w", err)
	}
	s.LocationID = locID
	s.Round = 1

	if err := e.store.Create(ctx, s); err != nil {
		return 0, fmt.Errorf("creating session: %w", err)
	}

	e.logger.Info("session created",
		"sessionid", s.ID,
		"gamemode", s.Mode,
		"custom", s.IsCustom,
	)
	return s.ID, nil
}

// SubmitGuess scores a guess against the session's current location and
// advances or terminates the session. Guess coordinates are taken literally:
// a forced guess at the grid origin is scored like any other, never clamped.
func (e *Engine) SubmitGuess(ctx context.Context, sessionID, x, y int64) (GuessResult, error) {
	unlock := e.locks.lock(sessionID)
	defer unlock()

	s, loc, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return GuessResult{}, err
	}

	dist := geo.Distance(loc.X, loc.Y, x, y)
	points := geo.Score(dist)

	res := GuessResult{
		DistanceKM: int64(math.Ceil(dist / 1000)),
	}
	if loc.Difficulty != DifficultyImpossible {
		res.X = &loc.X
		res.Y = &loc.Y
	}

	round := s.Round + 1
	switch s.Mode {
	case ModeEndless:
		res.Score = s.Score - (geo.MaxScore - points)
		if res.Score <= 0 {
			res.GameOver = true
			// The depletion round does not count as completed.
			res.Round = s.Round - 1
		} else {
			res.Round = round
		}
	default:
		res.Score = s.Score + points
		res.Round = round
		target := e.standardRounds
		if s.IsCustom {
			target = s.Custom.Target
		}
		if round > target {
			res.GameOver = true
		}
	}

	if !res.GameOver {
		locID, err := e.catalog.PickLocation(ctx, s.Difficulties(), s.TagFilter())
		switch {
		case err == nil:
			if err := e.store.Advance(ctx, sessionID, locID, res.Score, round); err != nil {
				return GuessResult{}, fmt.Errorf("advancing session %d: %w", sessionID, err)
			}
			return res, nil
		case errors.Is(err, ErrNoLocation):
			// The catalog shrank under us; end the run instead of persisting
			// a dangling location reference.
			e.logger.Warn("no location for next round, terminating session", "sessionid", sessionID)
			res.GameOver = true
		default:
			return GuessResult{}, fmt.Errorf("picking next location: %w", err)
		}
	}

	if err := e.store.Delete(ctx, sessionID); err != nil {
		return GuessResult{}, fmt.Errorf("deleting finished session %d: %w", sessionID, err)
	}
	e.logger.Info("session finished",
		"sessionid", sessionID,
		"gamemode", s.Mode,
		"score", res.Score,
		"rounds", res.Round,
	)
	return res, nil
}

// KillSession deletes a session. Unknown ids are not an error: the client
// fires this during teardown when the session may already be gone.
func (e *Engine) KillSession(ctx context.Context, sessionID int64) error {
	unlock := e.locks.lock(sessionID)
	defer unlock()

	if err := e.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("killing session %d: %w", sessionID, err)
	}
	return nil
}

// PictureLocation returns the session's current location id for picture
// delivery and refreshes its activity timestamp.
func (e *Engine) PictureLocation(ctx context.Context, sessionID int64) (int64, error) {
	s, _, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if err := e.store.Touch(ctx, sessionID); err != nil {
		return 0, fmt.Errorf("touching session %d: %w", sessionID, err)
	}
	return s.LocationID, nil
}

// SweepExpired deletes sessions idle for longer than the configured TTL.
// Expired rows have no live client by construction, so the sweep never
// contends with in-flight guesses.
func (e *Engine) SweepExpired(ctx context.Context) (int64, error) {
	n, err := e.store.SweepExpired(ctx, e.sessionTTL)
	if err != nil {
		return 0, fmt.Errorf("sweeping expired sessions: %w", err)
	}
	if n > 0 {
		e.logger.Info("swept expired sessions", "count", n)
	}
	return n, nil
}
