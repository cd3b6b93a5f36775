package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Pato1236897/Golf/logging"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS matches (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	match_type   TEXT NOT NULL,
	holes        INTEGER NOT NULL,
	teams        TEXT NOT NULL,
	status       TEXT NOT NULL,
	created_at   INTEGER NOT NULL,
	started_at   INTEGER,
	completed_at INTEGER,
	creator_id   TEXT NOT NULL,
	awards       TEXT
);

CREATE TABLE IF NOT EXISTS scores (
	seq                   INTEGER PRIMARY KEY AUTOINCREMENT,
	id                    TEXT NOT NULL UNIQUE,
	match_id              TEXT NOT NULL,
	player_id             TEXT NOT NULL,
	hole                  INTEGER NOT NULL,
	strokes               INTEGER NOT NULL,
	putts                 INTEGER NOT NULL,
	penalties             INTEGER NOT NULL,
	best_shot             INTEGER NOT NULL,
	best_shot_description TEXT NOT NULL,
	submitted_at          INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS scores_match_id ON scores (match_id, seq);
`

// SQLiteStorage keeps matches and the score ledger in a single SQLite file.
// It satisfies both MatchStorage and ScoreStorage.
type SQLiteStorage struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStorage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	if path == ":memory:" {
		dsn = path
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer keeps ledger appends strictly ordered and makes :memory: usable.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func nullableNanos(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toNanos(*t), Valid: true}
}

func (s *SQLiteStorage) Create(ctx context.Context, match *Match) error {
	teams, err := json.Marshal(match.Teams)
	if err != nil {
		logging.Log.Errorf("MATCH: failed to marshal teams: %v", err)
		return err
	}
	var awards sql.NullString
	if match.Awards != nil {
		b, err := json.Marshal(match.Awards)
		if err != nil {
			return err
		}
		awards = sql.NullString{String: string(b), Valid: true}
	}

	var exists int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM matches WHERE id = ?`, match.ID).Scan(&exists)
	if err != nil {
		logging.Log.Errorf("MATCH: failed to check match %s: %v", match.ID, err)
		return err
	}
	if exists > 0 {
		logging.Log.Warnf("MATCH: item with ID %s already exists", match.ID)
		return ErrItemWithIDAlreadyExists
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO matches (id, name, match_type, holes, teams, status, created_at, started_at, completed_at, creator_id, awards)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		match.ID,
		match.Name,
		string(match.MatchType),
		match.Holes,
		string(teams),
		string(match.Status),
		toNanos(match.CreatedAt),
		nullableNanos(match.StartedAt),
		nullableNanos(match.CompletedAt),
		match.CreatorID,
		awards,
	)
	if err != nil {
		logging.Log.Errorf("MATCH: failed to create match: %v", err)
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

const matchColumns = `id, name, match_type, holes, teams, status, created_at, started_at, completed_at, creator_id, awards`

func scanMatch(row rowScanner) (*Match, error) {
	var (
		m           Match
		matchType   string
		status      string
		teams       string
		createdAt   int64
		startedAt   sql.NullInt64
		completedAt sql.NullInt64
		awards      sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Name, &matchType, &m.Holes, &teams, &status, &createdAt, &startedAt, &completedAt, &m.CreatorID, &awards); err != nil {
		return nil, err
	}
	m.MatchType = MatchType(matchType)
	m.Status = MatchStatus(status)
	m.CreatedAt = fromNanos(createdAt)
	if startedAt.Valid {
		t := fromNanos(startedAt.Int64)
		m.StartedAt = &t
	}
	if completedAt.Valid {
		t := fromNanos(completedAt.Int64)
		m.CompletedAt = &t
	}
	if err := json.Unmarshal([]byte(teams), &m.Teams); err != nil {
		return nil, fmt.Errorf("decode teams: %w", err)
	}
	if awards.Valid {
		m.Awards = &Awards{}
		if err := json.Unmarshal([]byte(awards.String), m.Awards); err != nil {
			return nil, fmt.Errorf("decode awards: %w", err)
		}
	}
	return &m, nil
}

func (s *SQLiteStorage) Get(ctx context.Context, id string) (*Match, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	match, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		logging.Log.Warnf("MATCH: no match found with ID %s", id)
		return nil, ErrMatchNotFound
	}
	if err != nil {
		logging.Log.Errorf("MATCH: get %s failed: %v", id, err)
		return nil, err
	}
	return match, nil
}

func (s *SQLiteStorage) GetAll(ctx context.Context, limit int) ([]*Match, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY created_at, rowid LIMIT ?`, limit)
	if err != nil {
		logging.Log.Errorf("MATCH: list failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			logging.Log.Errorf("MATCH: failed to scan match row: %v", err)
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (s *SQLiteStorage) UpdateStatus(ctx context.Context, id string, from, to MatchStatus, at time.Time) error {
	column := "started_at"
	if to == StatusCompleted {
		column = "completed_at"
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE matches SET status = ?, `+column+` = ? WHERE id = ? AND status = ?`,
		string(to), toNanos(at), id, string(from))
	if err != nil {
		logging.Log.Errorf("MATCH: failed to update status of %s: %v", id, err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		logging.Log.Warnf("MATCH: status of %s is no longer %s", id, from)
		return ErrStatusConflict
	}
	logging.Log.Infof("MATCH: %s moved from %s to %s", id, from, to)
	return nil
}

func (s *SQLiteStorage) SaveAwards(ctx context.Context, id string, awards *Awards) error {
	b, err := json.Marshal(awards)
	if err != nil {
		logging.Log.Errorf("MATCH: failed to marshal awards for %s: %v", id, err)
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE matches SET awards = ? WHERE id = ?`, string(b), id)
	if err != nil {
		logging.Log.Errorf("MATCH: failed to save awards for %s: %v", id, err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (s *SQLiteStorage) Append(ctx context.Context, score *Score) error {
	bestShot := 0
	if score.BestShot {
		bestShot = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (id, match_id, player_id, hole, strokes, putts, penalties, best_shot, best_shot_description, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		score.ID,
		score.MatchID,
		score.PlayerID,
		score.Hole,
		score.Strokes,
		score.Putts,
		score.Penalties,
		bestShot,
		score.BestShotDescription,
		toNanos(score.SubmittedAt),
	)
	if err != nil {
		logging.Log.Errorf("SCORE: failed to append score for match %s: %v", score.MatchID, err)
		return err
	}
	if seq, err := res.LastInsertId(); err == nil {
		score.SortKey = fmt.Sprintf("%019d", seq)
	}
	return nil
}

func (s *SQLiteStorage) ListByMatch(ctx context.Context, matchID string) ([]*Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, id, match_id, player_id, hole, strokes, putts, penalties, best_shot, best_shot_description, submitted_at
		 FROM scores WHERE match_id = ? ORDER BY seq`, matchID)
	if err != nil {
		logging.Log.Errorf("SCORE: failed to query scores for match %s: %v", matchID, err)
		return nil, err
	}
	defer rows.Close()

	var scores []*Score
	for rows.Next() {
		var (
			sc          Score
			seq         int64
			bestShot    int
			submittedAt int64
		)
		if err := rows.Scan(&seq, &sc.ID, &sc.MatchID, &sc.PlayerID, &sc.Hole, &sc.Strokes, &sc.Putts, &sc.Penalties, &bestShot, &sc.BestShotDescription, &submittedAt); err != nil {
			logging.Log.Errorf("SCORE: failed to scan score row: %v", err)
			return nil, err
		}
		sc.SortKey = fmt.Sprintf("%019d", seq)
		sc.BestShot = bestShot != 0
		sc.SubmittedAt = fromNanos(submittedAt)
		scores = append(scores, &sc)
	}
	return scores, rows.Err()
}
