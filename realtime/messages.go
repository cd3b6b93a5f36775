package realtime

import (
	"time"

	"github.com/Pato1236897/Golf/storage"
)

const (
	TypeMatchStarted   = "match_started"
	TypeScoreUpdate    = "score_update"
	TypeMatchCompleted = "match_completed"
)

type MatchStarted struct {
	Type      string    `json:"type"`
	MatchID   string    `json:"match_id"`
	Timestamp time.Time `json:"timestamp"`
}

type ScoreUpdate struct {
	Type  string       `json:"type"`
	Score ScorePayload `json:"score"`
}

type ScorePayload struct {
	PlayerID            string `json:"player_id"`
	PlayerName          string `json:"player_name"`
	Hole                int    `json:"hole"`
	Strokes             int    `json:"strokes"`
	Putts               int    `json:"putts"`
	Penalties           int    `json:"penalties"`
	BestShot            bool   `json:"best_shot"`
	BestShotDescription string `json:"best_shot_description,omitempty"`
}

type MatchCompleted struct {
	Type        string                        `json:"type"`
	MatchID     string                        `json:"match_id"`
	BestShots   []storage.BestShot            `json:"best_shots"`
	BestPlayers map[string]storage.BestPlayer `json:"best_players"`
}

func NewMatchStarted(matchID string, at time.Time) MatchStarted {
	return MatchStarted{Type: TypeMatchStarted, MatchID: matchID, Timestamp: at.UTC()}
}

func NewScoreUpdate(score *storage.Score, playerName string) ScoreUpdate {
	return ScoreUpdate{
		Type: TypeScoreUpdate,
		Score: ScorePayload{
			PlayerID:            score.PlayerID,
			PlayerName:          playerName,
			Hole:                score.Hole,
			Strokes:             score.Strokes,
			Putts:               score.Putts,
			Penalties:           score.Penalties,
			BestShot:            score.BestShot,
			BestShotDescription: score.BestShotDescription,
		},
	}
}

func NewMatchCompleted(matchID string, awards *storage.Awards) MatchCompleted {
	return MatchCompleted{
		Type:        TypeMatchCompleted,
		MatchID:     matchID,
		BestShots:   awards.BestShots,
		BestPlayers: awards.BestPlayers,
	}
}
