package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Pato1236897/Golf/events"
	"github.com/Pato1236897/Golf/logging"
	"github.com/Pato1236897/Golf/realtime"
	"github.com/Pato1236897/Golf/scoring"
	"github.com/Pato1236897/Golf/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	matchID string
	teamID  string
	msg     any
}

type recordingNotifier struct {
	mu      sync.Mutex
	toMatch []sentMessage
	toTeam  []sentMessage
	teamErr error
}

func (n *recordingNotifier) SendToMatch(matchID string, msg any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toMatch = append(n.toMatch, sentMessage{matchID: matchID, msg: msg})
}

func (n *recordingNotifier) SendToTeam(_ context.Context, matchID, teamID string, msg any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.teamErr != nil {
		return n.teamErr
	}
	n.toTeam = append(n.toTeam, sentMessage{matchID: matchID, teamID: teamID, msg: msg})
	return nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	keys     []string
	payloads []any
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.payloads = append(p.payloads, payload)
	return p.err
}

func (p *recordingPublisher) last(key string) any {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.keys) - 1; i >= 0; i-- {
		if p.keys[i] == key {
			return p.payloads[i]
		}
	}
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type brokenMatchStorage struct {
	storage.MatchStorage
}

func (brokenMatchStorage) Get(context.Context, string) (*storage.Match, error) {
	return nil, errors.New("connection refused")
}

type duplicateMatchStorage struct {
	storage.MatchStorage
}

func (duplicateMatchStorage) Create(context.Context, *storage.Match) error {
	return storage.ErrItemWithIDAlreadyExists
}

// failingLedger fails every ledger read while failReads is set.
type failingLedger struct {
	storage.ScoreStorage
	failReads bool
}

func (l *failingLedger) ListByMatch(ctx context.Context, matchID string) ([]*storage.Score, error) {
	if l.failReads {
		return nil, errors.New("timeout")
	}
	return l.ScoreStorage.ListByMatch(ctx, matchID)
}

func openStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	logging.Log = logrus.New()
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "golf.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func setupService(t *testing.T) (*MatchService, *recordingNotifier, *recordingPublisher) {
	t.Helper()
	store := openStore(t)
	notifier := &recordingNotifier{}
	publisher := &recordingPublisher{}
	return NewMatchService(store, store, notifier, publisher, 100), notifier, publisher
}

func newMatch() *storage.Match {
	return &storage.Match{
		Name:      "Club championship",
		CreatorID: "organizer",
		Teams: []storage.Team{
			{Name: "Eagles", Players: []storage.Player{{Name: "Ann"}, {Name: "Ben"}}},
			{Name: "Birdies", Color: "#EF4444", Players: []storage.Player{{Name: "Cid"}}},
		},
	}
}

// startedScenario creates teams A={p1,p2}, B={p3} and starts the match.
func startedScenario(t *testing.T, svc *MatchService) (match *storage.Match, p1, p2, p3 string) {
	t.Helper()
	ctx := context.Background()
	match, err := svc.Create(ctx, newMatch())
	require.NoError(t, err)
	require.NoError(t, svc.Start(ctx, match.ID))
	return match, match.Teams[0].Players[0].ID, match.Teams[0].Players[1].ID, match.Teams[1].Players[0].ID
}

func TestCreate(t *testing.T) {
	svc, _, publisher := setupService(t)
	ctx := context.Background()

	t.Run("Happy path - defaults and ids", func(t *testing.T) {
		match, err := svc.Create(ctx, newMatch())
		require.NoError(t, err)

		assert.NotEmpty(t, match.ID)
		assert.Equal(t, storage.StatusSetup, match.Status)
		assert.Equal(t, storage.MatchTypeStrokePlay, match.MatchType)
		assert.Equal(t, DefaultHoles, match.Holes)
		assert.Equal(t, DefaultTeamColor, match.Teams[0].Color)
		assert.Equal(t, "#EF4444", match.Teams[1].Color)
		assert.Equal(t, match.Teams[0].Players[0].ID, match.Teams[0].CaptainID, "first player captains the team")
		assert.NotEqual(t, match.Teams[0].Players[0].ID, match.Teams[0].Players[1].ID)

		stored, err := svc.Get(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, match.Teams, stored.Teams)
		assert.Contains(t, publisher.keys, events.RKMatchCreated)
	})

	t.Run("Team without players has no captain", func(t *testing.T) {
		m := newMatch()
		m.Teams = append(m.Teams, storage.Team{Name: "Empty"})
		match, err := svc.Create(ctx, m)
		require.NoError(t, err)
		assert.Empty(t, match.Teams[2].CaptainID)
		assert.NotNil(t, match.Teams[2].Players)
	})

	t.Run("Unhappy path - missing name", func(t *testing.T) {
		m := newMatch()
		m.Name = " "
		_, err := svc.Create(ctx, m)
		assert.ErrorIs(t, err, ErrInvalidMatch)
	})

	t.Run("Unhappy path - unknown match type", func(t *testing.T) {
		m := newMatch()
		m.MatchType = "skins"
		_, err := svc.Create(ctx, m)
		assert.ErrorIs(t, err, ErrInvalidMatch)
	})
}

func TestListIsCapped(t *testing.T) {
	store := openStore(t)
	svc := NewMatchService(store, store, &recordingNotifier{}, nil, 2)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), newMatch())
		require.NoError(t, err)
	}

	matches, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestStart(t *testing.T) {
	svc, notifier, _ := setupService(t)
	ctx := context.Background()
	match, err := svc.Create(ctx, newMatch())
	require.NoError(t, err)

	require.NoError(t, svc.Start(ctx, match.ID))

	stored, err := svc.Get(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusInProgress, stored.Status)
	assert.NotNil(t, stored.StartedAt)

	require.Len(t, notifier.toMatch, 1)
	started, ok := notifier.toMatch[0].msg.(realtime.MatchStarted)
	require.True(t, ok)
	assert.Equal(t, realtime.TypeMatchStarted, started.Type)
	assert.Equal(t, match.ID, started.MatchID)

	assert.ErrorIs(t, svc.Start(ctx, match.ID), ErrInvalidState, "starting twice is rejected")
	assert.ErrorIs(t, svc.Start(ctx, "missing"), ErrNotFound)
	assert.Len(t, notifier.toMatch, 1)
}

func TestSubmitScoreStateGates(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	match, err := svc.Create(ctx, newMatch())
	require.NoError(t, err)
	player := match.Teams[0].Players[0].ID

	_, err = svc.SubmitScore(ctx, match.ID, &storage.Score{PlayerID: player, Hole: 1, Strokes: 4})
	assert.ErrorIs(t, err, ErrInvalidState, "setup matches reject scores")

	require.NoError(t, svc.Start(ctx, match.ID))
	_, err = svc.Complete(ctx, match.ID)
	require.NoError(t, err)

	_, err = svc.SubmitScore(ctx, match.ID, &storage.Score{PlayerID: player, Hole: 1, Strokes: 4})
	assert.ErrorIs(t, err, ErrInvalidState, "completed matches reject scores")

	_, err = svc.SubmitScore(ctx, "missing", &storage.Score{PlayerID: player, Hole: 1, Strokes: 4})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitScoreValidation(t *testing.T) {
	svc, _, _ := setupService(t)
	match, p1, _, _ := startedScenario(t, svc)
	ctx := context.Background()

	_, err := svc.SubmitScore(ctx, match.ID, &storage.Score{PlayerID: "stranger", Hole: 1, Strokes: 4})
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = svc.SubmitScore(ctx, match.ID, &storage.Score{PlayerID: p1, Hole: 0, Strokes: 4})
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = svc.SubmitScore(ctx, match.ID, &storage.Score{PlayerID: p1, Hole: 19, Strokes: 4})
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestSubmitScoreAppendsAndNotifiesTeam(t *testing.T) {
	svc, notifier, publisher := setupService(t)
	match, p1, _, _ := startedScenario(t, svc)
	ctx := context.Background()

	first, err := svc.SubmitScore(ctx, match.ID, &storage.Score{PlayerID: p1, Hole: 1, Strokes: 4})
	require.NoError(t, err)
	_, err = svc.SubmitScore(ctx, match.ID, &storage.Score{PlayerID: p1, Hole: 1, Strokes: 6})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.Equal(t, match.ID, first.MatchID)
	assert.False(t, first.SubmittedAt.IsZero())

	board, err := svc.Leaderboard(ctx, match.ID, match.Teams[0].ID)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, scoring.Shown(10), board[0].TotalStrokes, "duplicate hole rows both count")
	assert.Equal(t, scoring.Shown(2), board[0].HolesPlayed)

	require.Len(t, notifier.toTeam, 2)
	assert.Equal(t, match.Teams[0].ID, notifier.toTeam[0].teamID)
	update, ok := notifier.toTeam[0].msg.(realtime.ScoreUpdate)
	require.True(t, ok)
	assert.Equal(t, "Ann", update.Score.PlayerName)
	assert.Equal(t, 4, update.Score.Strokes)
	assert.Contains(t, publisher.keys, events.RKScoreSubmitted)

	event, ok := publisher.last(events.RKScoreSubmitted).(events.ScoreSubmitted)
	require.True(t, ok)
	assert.Equal(t, match.ID, event.MatchID)
	assert.Equal(t, match.Teams[0].ID, event.TeamID)
	assert.Equal(t, "Ann", event.PlayerName)
	require.NotNil(t, event.Score)
	assert.NotEmpty(t, event.Score.ID)
	assert.Equal(t, match.ID, event.Score.MatchID)
	assert.Equal(t, 6, event.Score.Strokes)
}

func TestSubmitScoreSurvivesNotificationFailure(t *testing.T) {
	svc, notifier, publisher := setupService(t)
	match, p1, _, _ := startedScenario(t, svc)
	notifier.teamErr = errors.New("roster lookup failed")
	publisher.err = errors.New("broker down")

	_, err := svc.SubmitScore(context.Background(), match.ID, &storage.Score{PlayerID: p1, Hole: 1, Strokes: 4})
	require.NoError(t, err)

	scores, err := svc.Scores(context.Background(), match.ID, match.Teams[0].ID)
	require.NoError(t, err)
	assert.Len(t, scores, 1, "the append is kept")
}

func TestScenario(t *testing.T) {
	svc, notifier, _ := setupService(t)
	match, p1, p2, p3 := startedScenario(t, svc)
	ctx := context.Background()
	teamA, teamB := match.Teams[0].ID, match.Teams[1].ID

	_, err := svc.SubmitScore(ctx, match.ID, &storage.Score{PlayerID: p1, Hole: 1, Strokes: 4, BestShot: true})
	require.NoError(t, err)
	_, err = svc.SubmitScore(ctx, match.ID, &storage.Score{PlayerID: p2, Hole: 1, Strokes: 5})
	require.NoError(t, err)
	_, err = svc.SubmitScore(ctx, match.ID, &storage.Score{PlayerID: p3, Hole: 1, Strokes: 3})
	require.NoError(t, err)

	t.Run("Scores without team context are empty", func(t *testing.T) {
		scores, err := svc.Scores(ctx, match.ID, "")
		require.NoError(t, err)
		assert.Empty(t, scores)
	})

	t.Run("Scores for team A in insertion order", func(t *testing.T) {
		scores, err := svc.Scores(ctx, match.ID, teamA)
		require.NoError(t, err)
		require.Len(t, scores, 2)
		assert.Equal(t, p1, scores[0].PlayerID)
		assert.Equal(t, p2, scores[1].PlayerID)
	})

	t.Run("Leaderboard for team A", func(t *testing.T) {
		board, err := svc.Leaderboard(ctx, match.ID, teamA)
		require.NoError(t, err)
		require.Len(t, board, 3)
		assert.Equal(t, p1, board[0].PlayerID)
		assert.Equal(t, scoring.Shown(4), board[0].TotalStrokes)
		assert.Equal(t, p2, board[1].PlayerID)
		assert.Equal(t, scoring.Shown(5), board[1].TotalStrokes)
		assert.Equal(t, p3, board[2].PlayerID)
		assert.Equal(t, scoring.Hidden(), board[2].TotalStrokes)
	})

	t.Run("Fan-out stays within the scorer's team", func(t *testing.T) {
		require.Len(t, notifier.toTeam, 3)
		assert.Equal(t, teamA, notifier.toTeam[0].teamID)
		assert.Equal(t, teamA, notifier.toTeam[1].teamID)
		assert.Equal(t, teamB, notifier.toTeam[2].teamID)
	})

	t.Run("Completion awards", func(t *testing.T) {
		awards, err := svc.Complete(ctx, match.ID)
		require.NoError(t, err)

		require.Len(t, awards.BestShots, 1)
		assert.Equal(t, 1, awards.BestShots[0].Hole)
		assert.Equal(t, p1, awards.BestShots[0].PlayerID)
		assert.Equal(t, p1, awards.BestPlayers[teamA].PlayerID)
		assert.Equal(t, p3, awards.BestPlayers[teamB].PlayerID)

		stored, err := svc.Get(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, storage.StatusCompleted, stored.Status)
		assert.NotNil(t, stored.CompletedAt)
		require.NotNil(t, stored.Awards)
		assert.Equal(t, awards.BestPlayers, stored.Awards.BestPlayers)

		last := notifier.toMatch[len(notifier.toMatch)-1].msg.(realtime.MatchCompleted)
		assert.Equal(t, realtime.TypeMatchCompleted, last.Type)
		assert.Len(t, last.BestShots, 1)
	})

	t.Run("Completed match shows everything, sorted", func(t *testing.T) {
		scores, err := svc.Scores(ctx, match.ID, "")
		require.NoError(t, err)
		assert.Len(t, scores, 3)

		board, err := svc.Leaderboard(ctx, match.ID, "")
		require.NoError(t, err)
		require.Len(t, board, 3)
		assert.Equal(t, p3, board[0].PlayerID)
		for i := 1; i < len(board); i++ {
			assert.LessOrEqual(t, board[i-1].TotalStrokes.Value, board[i].TotalStrokes.Value)
		}
	})

	t.Run("Completing twice is rejected", func(t *testing.T) {
		_, err := svc.Complete(ctx, match.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestCompleteRequiresInProgress(t *testing.T) {
	svc, _, _ := setupService(t)
	match, err := svc.Create(context.Background(), newMatch())
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), match.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.Complete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreFailureIsUnavailable(t *testing.T) {
	store := openStore(t)
	svc := NewMatchService(brokenMatchStorage{MatchStorage: store}, store, &recordingNotifier{}, nil, 0)

	_, err := svc.Get(context.Background(), "any")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)
}

type recordingConn struct {
	mu     sync.Mutex
	frames []string
}

func (c *recordingConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, string(p))
	return len(p), nil
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) count(substr string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, f := range c.frames {
		if strings.Contains(f, substr) {
			n++
		}
	}
	return n
}

func TestScoreUpdatesNeverReachOpponents(t *testing.T) {
	store := openStore(t)
	hub := realtime.NewHub(store)
	t.Cleanup(hub.Close)
	svc := NewMatchService(store, store, hub, nil, 0)
	ctx := context.Background()

	match, err := svc.Create(ctx, newMatch())
	require.NoError(t, err)
	p1, p3 := match.Teams[0].Players[0].ID, match.Teams[1].Players[0].ID

	connA, connB := &recordingConn{}, &recordingConn{}
	_, err = hub.Register(match.ID, p1, realtime.NewPeer(connA, time.Second))
	require.NoError(t, err)
	_, err = hub.Register(match.ID, p3, realtime.NewPeer(connB, time.Second))
	require.NoError(t, err)

	require.NoError(t, svc.Start(ctx, match.ID))
	_, err = svc.SubmitScore(ctx, match.ID, &storage.Score{PlayerID: p1, Hole: 1, Strokes: 4})
	require.NoError(t, err)
	_, err = svc.Complete(ctx, match.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, connA.count(`"type":"score_update"`))
	assert.Equal(t, 0, connB.count(`"type":"score_update"`))
	assert.Equal(t, 1, connB.count(`"type":"match_started"`))
	assert.Equal(t, 1, connB.count(`"type":"match_completed"`))
}

func TestCreateDuplicateIDIsNotAnOutage(t *testing.T) {
	store := openStore(t)
	svc := NewMatchService(duplicateMatchStorage{MatchStorage: store}, store, &recordingNotifier{}, nil, 0)

	_, err := svc.Create(context.Background(), newMatch())
	assert.ErrorIs(t, err, ErrInvalidMatch)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestCompleteKeepsMatchInProgressWhenLedgerReadFails(t *testing.T) {
	store := openStore(t)
	ledger := &failingLedger{ScoreStorage: store}
	notifier := &recordingNotifier{}
	svc := NewMatchService(store, ledger, notifier, nil, 0)
	match, p1, _, _ := startedScenario(t, svc)
	ctx := context.Background()

	_, err := svc.SubmitScore(ctx, match.ID, &storage.Score{PlayerID: p1, Hole: 1, Strokes: 4, BestShot: true})
	require.NoError(t, err)

	ledger.failReads = true
	_, err = svc.Complete(ctx, match.ID)
	assert.ErrorIs(t, err, ErrUnavailable)

	stored, err := svc.Get(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusInProgress, stored.Status)
	assert.Nil(t, stored.CompletedAt)
	assert.Nil(t, stored.Awards)
	for _, sent := range notifier.toMatch {
		_, completed := sent.msg.(realtime.MatchCompleted)
		assert.False(t, completed, "no completion broadcast after a failed read")
	}

	ledger.failReads = false
	awards, err := svc.Complete(ctx, match.ID)
	require.NoError(t, err)
	require.Len(t, awards.BestShots, 1)

	stored, err = svc.Get(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.StatusCompleted, stored.Status)
	require.NotNil(t, stored.Awards)
}
