// Package service runs the match lifecycle: it gates ledger writes on match status,
// applies the visibility rules on reads and triggers realtime fan-out.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Pato1236897/Golf/events"
	"github.com/Pato1236897/Golf/logging"
	"github.com/Pato1236897/Golf/realtime"
	"github.com/Pato1236897/Golf/scoring"
	"github.com/Pato1236897/Golf/storage"
	"github.com/google/uuid"
)

const (
	DefaultHoles     = 18
	DefaultTeamColor = "#3B82F6"
)

// Notifier fans events out to connected clients.
type Notifier interface {
	SendToMatch(matchID string, msg any)
	SendToTeam(ctx context.Context, matchID, teamID string, msg any) error
}

type MatchService struct {
	matches   storage.MatchStorage
	scores    storage.ScoreStorage
	notifier  Notifier
	publisher events.Publisher
	listLimit int
	now       func() time.Time
}

func NewMatchService(matches storage.MatchStorage, scores storage.ScoreStorage, notifier Notifier, publisher events.Publisher, listLimit int) *MatchService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if listLimit <= 0 {
		listLimit = storage.DefaultListLimit
	}
	return &MatchService{
		matches:   matches,
		scores:    scores,
		notifier:  notifier,
		publisher: publisher,
		listLimit: listLimit,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create assigns ids and defaults to a new match and persists it in setup state.
// The first player of each team becomes its captain.
func (s *MatchService) Create(ctx context.Context, match *storage.Match) (*storage.Match, error) {
	if strings.TrimSpace(match.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidMatch)
	}
	if strings.TrimSpace(match.CreatorID) == "" {
		return nil, fmt.Errorf("%w: creator_id is required", ErrInvalidMatch)
	}
	switch match.MatchType {
	case "":
		match.MatchType = storage.MatchTypeStrokePlay
	case storage.MatchTypeStrokePlay, storage.MatchTypeScramble:
	default:
		return nil, fmt.Errorf("%w: unknown match type %q", ErrInvalidMatch, match.MatchType)
	}
	if match.Holes == 0 {
		match.Holes = DefaultHoles
	}
	if match.Holes < 0 {
		return nil, fmt.Errorf("%w: holes must be positive", ErrInvalidMatch)
	}

	match.ID = uuid.NewString()
	for i := range match.Teams {
		team := &match.Teams[i]
		team.ID = uuid.NewString()
		if team.Color == "" {
			team.Color = DefaultTeamColor
		}
		if team.Players == nil {
			team.Players = []storage.Player{}
		}
		for j := range team.Players {
			team.Players[j].ID = uuid.NewString()
		}
		team.CaptainID = ""
		if len(team.Players) > 0 {
			team.CaptainID = team.Players[0].ID
		}
	}
	if match.Teams == nil {
		match.Teams = []storage.Team{}
	}
	match.Status = storage.StatusSetup
	match.CreatedAt = s.now()
	match.StartedAt = nil
	match.CompletedAt = nil
	match.Awards = nil

	if err := s.matches.Create(ctx, match); err != nil {
		if errors.Is(err, storage.ErrItemWithIDAlreadyExists) {
			return nil, fmt.Errorf("%w: match %s already exists", ErrInvalidMatch, match.ID)
		}
		return nil, fmt.Errorf("%w: create match: %v", ErrUnavailable, err)
	}
	logging.Log.Infof("MATCH: created %s (%q) with %d teams", match.ID, match.Name, len(match.Teams))

	s.publish(ctx, events.RKMatchCreated, match)
	return match, nil
}

func (s *MatchService) List(ctx context.Context) ([]*storage.Match, error) {
	matches, err := s.matches.GetAll(ctx, s.listLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: list matches: %v", ErrUnavailable, err)
	}
	return matches, nil
}

func (s *MatchService) Get(ctx context.Context, id string) (*storage.Match, error) {
	match, err := s.matches.Get(ctx, id)
	if errors.Is(err, storage.ErrMatchNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get match %s: %v", ErrUnavailable, id, err)
	}
	return match, nil
}

// Start moves a match from setup to in_progress and tells every connected client.
func (s *MatchService) Start(ctx context.Context, id string) error {
	match, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if match.Status != storage.StatusSetup {
		return fmt.Errorf("%w: match %s is %s", ErrInvalidState, id, match.Status)
	}

	at := s.now()
	if err := s.transition(ctx, id, storage.StatusSetup, storage.StatusInProgress, at); err != nil {
		return err
	}

	msg := realtime.NewMatchStarted(id, at)
	s.notifier.SendToMatch(id, msg)
	s.publish(ctx, events.RKMatchStarted, msg)
	return nil
}

// SubmitScore appends a score to the ledger of an in-progress match, then sends it to
// the scorer's own team. A failed notification never undoes the append.
func (s *MatchService) SubmitScore(ctx context.Context, matchID string, score *storage.Score) (*storage.Score, error) {
	match, err := s.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status != storage.StatusInProgress {
		return nil, fmt.Errorf("%w: match %s is %s", ErrInvalidState, matchID, match.Status)
	}

	team, player, ok := match.TeamOf(score.PlayerID)
	if !ok {
		return nil, fmt.Errorf("%w: player %q is not part of match %s", ErrInvalidScore, score.PlayerID, matchID)
	}
	if score.Hole < 1 || score.Hole > match.Holes {
		return nil, fmt.Errorf("%w: hole %d outside 1..%d", ErrInvalidScore, score.Hole, match.Holes)
	}

	score.ID = uuid.NewString()
	score.MatchID = matchID
	score.SortKey = ""
	score.SubmittedAt = s.now()
	if err := s.scores.Append(ctx, score); err != nil {
		return nil, fmt.Errorf("%w: append score: %v", ErrUnavailable, err)
	}
	logging.Log.Infof("SCORE: %s recorded hole %d for player %s in match %s", score.ID, score.Hole, score.PlayerID, matchID)

	msg := realtime.NewScoreUpdate(score, player.Name)
	if err := s.notifier.SendToTeam(ctx, matchID, team.ID, msg); err != nil {
		logging.Log.Warnf("SCORE: team notification for match %s failed: %v", matchID, err)
	}
	s.publish(ctx, events.RKScoreSubmitted, events.NewScoreSubmitted(team.ID, player.Name, score))
	return score, nil
}

// Scores returns the part of the ledger the viewer may see.
func (s *MatchService) Scores(ctx context.Context, matchID, teamID string) ([]*storage.Score, error) {
	match, scores, err := s.ledger(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return scoring.FilterScores(match, scores, teamID), nil
}

// Leaderboard aggregates the full ledger and redacts what the viewer may not see.
func (s *MatchService) Leaderboard(ctx context.Context, matchID, teamID string) ([]scoring.LeaderboardEntry, error) {
	match, scores, err := s.ledger(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return scoring.BuildLeaderboard(match, scoring.Aggregate(scores), teamID), nil
}

// Complete closes an in-progress match, computes its awards from the ledger and
// broadcasts them. Awards are stored on the match and not recomputed later.
// The ledger is read before the status write, so a failed read leaves the match in progress.
func (s *MatchService) Complete(ctx context.Context, id string) (*storage.Awards, error) {
	match, scores, err := s.ledger(ctx, id)
	if err != nil {
		return nil, err
	}
	if match.Status != storage.StatusInProgress {
		return nil, fmt.Errorf("%w: match %s is %s", ErrInvalidState, id, match.Status)
	}
	awards := scoring.ComputeAwards(match, scores)

	if err := s.transition(ctx, id, storage.StatusInProgress, storage.StatusCompleted, s.now()); err != nil {
		return nil, err
	}

	if err := s.matches.SaveAwards(ctx, id, awards); err != nil {
		logging.Log.Errorf("MATCH: failed to store awards for %s: %v", id, err)
	}
	logging.Log.Infof("MATCH: %s completed with %d best shots", id, len(awards.BestShots))

	msg := realtime.NewMatchCompleted(id, awards)
	s.notifier.SendToMatch(id, msg)
	s.publish(ctx, events.RKMatchCompleted, msg)
	return awards, nil
}

// Connect checks that a realtime client targets an existing match.
func (s *MatchService) Connect(ctx context.Context, matchID, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidMatch)
	}
	_, err := s.Get(ctx, matchID)
	return err
}

func (s *MatchService) ledger(ctx context.Context, matchID string) (*storage.Match, []*storage.Score, error) {
	match, err := s.Get(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}
	scores, err := s.scores.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: list scores: %v", ErrUnavailable, err)
	}
	return match, scores, nil
}

func (s *MatchService) transition(ctx context.Context, id string, from, to storage.MatchStatus, at time.Time) error {
	err := s.matches.UpdateStatus(ctx, id, from, to, at)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrMatchNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	case errors.Is(err, storage.ErrStatusConflict):
		return fmt.Errorf("%w: match %s is no longer %s", ErrInvalidState, id, from)
	default:
		return fmt.Errorf("%w: update status: %v", ErrUnavailable, err)
	}
}

func (s *MatchService) publish(ctx context.Context, key string, payload any) {
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		logging.Log.Warnf("EVENTS: failed to publish %s: %v", key, err)
	}
}
