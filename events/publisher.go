// Package events publishes match domain events for downstream consumers.
package events

import (
	"context"

	"github.com/Pato1236897/Golf/storage"
)

const (
	RKMatchCreated   = "match.created"
	RKMatchStarted   = "match.started"
	RKScoreSubmitted = "score.submitted"
	RKMatchCompleted = "match.completed"
)

// ScoreSubmitted is the payload of score.submitted: the persisted ledger row
// plus the team it counts for.
type ScoreSubmitted struct {
	MatchID    string         `json:"match_id"`
	TeamID     string         `json:"team_id"`
	PlayerName string         `json:"player_name"`
	Score      *storage.Score `json:"score"`
}

func NewScoreSubmitted(teamID, playerName string, score *storage.Score) ScoreSubmitted {
	return ScoreSubmitted{
		MatchID:    score.MatchID,
		TeamID:     teamID,
		PlayerName: playerName,
		Score:      score,
	}
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }
