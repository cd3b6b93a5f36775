package models

import (
	"time"

	"github.com/Pato1236897/Golf/storage"
)

type SubmitScoreRequest struct {
	PlayerID            string `json:"player_id" binding:"required"`
	Hole                int    `json:"hole" binding:"required"`
	Strokes             *int   `json:"strokes" binding:"required"`
	Putts               int    `json:"putts"`
	Penalties           int    `json:"penalties"`
	BestShot            bool   `json:"best_shot"`
	BestShotDescription string `json:"best_shot_description"`
}

type ScoreResponse struct {
	ID                  string    `json:"id"`
	MatchID             string    `json:"match_id"`
	PlayerID            string    `json:"player_id"`
	Hole                int       `json:"hole"`
	Strokes             int       `json:"strokes"`
	Putts               int       `json:"putts"`
	Penalties           int       `json:"penalties"`
	BestShot            bool      `json:"best_shot"`
	BestShotDescription string    `json:"best_shot_description,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

func TransformScoreToStorage(req *SubmitScoreRequest) *storage.Score {
	strokes := 0
	if req.Strokes != nil {
		strokes = *req.Strokes
	}
	return &storage.Score{
		PlayerID:            req.PlayerID,
		Hole:                req.Hole,
		Strokes:             strokes,
		Putts:               req.Putts,
		Penalties:           req.Penalties,
		BestShot:            req.BestShot,
		BestShotDescription: req.BestShotDescription,
	}
}

func TransformScoreFromStorage(s *storage.Score) ScoreResponse {
	return ScoreResponse{
		ID:                  s.ID,
		MatchID:             s.MatchID,
		PlayerID:            s.PlayerID,
		Hole:                s.Hole,
		Strokes:             s.Strokes,
		Putts:               s.Putts,
		Penalties:           s.Penalties,
		BestShot:            s.BestShot,
		BestShotDescription: s.BestShotDescription,
		Timestamp:           s.SubmittedAt,
	}
}

type ScoreSubmittedResponse struct {
	Message string        `json:"message"`
	Score   ScoreResponse `json:"score"`
}
