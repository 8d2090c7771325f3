// Package store persists sessions and the location catalog in SQLite.
// Difficulty and mode are stored as single-letter codes and tags as flag
// columns; that encoding never leaves this package — callers only see the
// game package's semantic values.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YaBoiMega0/monguessr/internal/game"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Create(ctx context.Context, sess game.Session) error {
	if sess.IsCustom {
		params, err := json.Marshal(sess.Custom)
		if err != nil {
			return fmt.Errorf("encoding custom params: %w", err)
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO sessions (sessionid, gamemode, locationid, score, curr_round, is_custom, custom_params)
			VALUES (?, ?, ?, ?, ?, 1, ?)
		`, sess.ID, encodeMode(sess.Mode), sess.LocationID, sess.Score, sess.Round, string(params))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (sessionid, gamemode, difficulty, locationid, score, curr_round)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sess.ID, encodeMode(sess.Mode), encodeDifficulty(sess.Difficulty), sess.LocationID, sess.Score, sess.Round)
	return err
}

// Get loads a session joined with its current location in one query.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (game.Session, game.Location, error) {
	var (
		sess         game.Session
		loc          game.Location
		gm, locDif   string
		sessDif      sql.NullString
		customParams sql.NullString
		isCustom     int
		indoor       int
		outdoor      int
		carpark      int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT s.sessionid, s.gamemode, s.difficulty, s.score, s.curr_round, s.is_custom, s.custom_params,
		       l.id, l.difficulty, l.xpos, l.ypos, l.is_indoor, l.is_outdoor, l.is_carpark
		FROM sessions s
		JOIN locations l ON l.id = s.locationid
		WHERE s.sessionid = ?
	`, id).Scan(&sess.ID, &gm, &sessDif, &sess.Score, &sess.Round, &isCustom, &customParams,
		&loc.ID, &locDif, &loc.X, &loc.Y, &indoor, &outdoor, &carpark)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Session{}, game.Location{}, game.ErrSessionNotFound
	}
	if err != nil {
		return game.Session{}, game.Location{}, err
	}

	sess.Mode = decodeMode(gm)
	sess.IsCustom = isCustom == 1
	if sess.IsCustom {
		if !customParams.Valid {
			return game.Session{}, game.Location{}, fmt.Errorf("session %d: custom flag set but no params stored", id)
		}
		var cs game.CustomSettings
		if err := json.Unmarshal([]byte(customParams.String), &cs); err != nil {
			return game.Session{}, game.Location{}, fmt.Errorf("decoding custom params for session %d: %w", id, err)
		}
		sess.Custom = &cs
	} else if sessDif.Valid {
		sess.Difficulty = decodeDifficulty(sessDif.String)
	}

	sess.LocationID = loc.ID
	loc.Difficulty = decodeDifficulty(locDif)
	loc.Tags = decodeTags(indoor, outdoor, carpark)
	return sess, loc, nil
}

// Advance writes the next round's location, score, and round counter in a
// single statement, refreshing the activity timestamp as it goes.
func (s *SQLiteStore) Advance(ctx context.Context, id, locationID, score, round int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET locationid = ?, score = ?, curr_round = ?,
		    last_activity = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE sessionid = ?
	`, locationID, score, round, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return game.ErrSessionNotFound
	}
	return nil
}

func (s *SQLiteStore) Touch(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET last_activity = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE sessionid = ?
	`, id)
	return err
}

// Delete is idempotent: removing an absent session succeeds.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE sessionid = ?`, id)
	return err
}

// SweepExpired removes sessions whose last activity is older than olderThan
// and returns how many were deleted.
func (s *SQLiteStore) SweepExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format("2006-01-02T15:04:05.000Z")
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE last_activity < ?
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PickLocation returns a uniformly random catalog entry matching the
// difficulty set and tag filter. An empty result is game.ErrNoLocation —
// never a fabricated id.
func (s *SQLiteStore) PickLocation(ctx context.Context, difficulties []game.Difficulty, tags []game.Tag) (int64, error) {
	if len(difficulties) == 0 {
		return 0, game.ErrNoLocation
	}

	var sb strings.Builder
	args := make([]any, 0, len(difficulties))
	sb.WriteString(`SELECT id FROM locations WHERE difficulty IN (`)
	for i, d := range difficulties {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("?")
		args = append(args, encodeDifficulty(d))
	}
	sb.WriteString(")")

	if cond := tagCondition(tags); cond != "" {
		sb.WriteString(" AND (")
		sb.WriteString(cond)
		sb.WriteString(")")
	}
	sb.WriteString(" ORDER BY RANDOM() LIMIT 1")

	var id int64
	err := s.db.QueryRowContext(ctx, sb.String(), args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, game.ErrNoLocation
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// AddLocation inserts a catalog entry and returns its id.
func (s *SQLiteStore) AddLocation(ctx context.Context, loc game.Location) (int64, error) {
	indoor, outdoor, carpark := encodeTags(loc.Tags)
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO locations (difficulty, xpos, ypos, is_indoor, is_outdoor, is_carpark)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`, encodeDifficulty(loc.Difficulty), loc.X, loc.Y, indoor, outdoor, carpark).Scan(&id)
	return id, err
}

// tagCondition builds the tag half of the selection filter. An empty filter
// or a wildcard matches everything; otherwise a location qualifies when it
// carries any requested tag.
func tagCondition(tags []game.Tag) string {
	var conds []string
	for _, t := range tags {
		switch t {
		case game.TagAll:
			return ""
		case game.TagIndoor:
			conds = append(conds, "is_indoor = 1")
		case game.TagOutdoor:
			conds = append(conds, "is_outdoor = 1")
		case game.TagCarpark:
			conds = append(conds, "is_carpark = 1")
		}
	}
	return strings.Join(conds, " OR ")
}
