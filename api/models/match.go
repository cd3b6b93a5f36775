package models

import (
	"time"

	"github.com/Pato1236897/Golf/storage"
)

type PlayerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Handicap int    `json:"handicap"`
}

type TeamRequest struct {
	Name    string          `json:"name" binding:"required"`
	Color   string          `json:"color"`
	Players []PlayerRequest `json:"players"`
}

type CreateMatchRequest struct {
	Name      string        `json:"name" binding:"required"`
	MatchType string        `json:"match_type"`
	Holes     int           `json:"holes"`
	Teams     []TeamRequest `json:"teams"`
	CreatorID string        `json:"creator_id" binding:"required"`
}

type PlayerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Handicap int    `json:"handicap"`
}

type TeamResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Color     string           `json:"color"`
	Players   []PlayerResponse `json:"players"`
	CaptainID string           `json:"captain_id,omitempty"`
}

type MatchResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	MatchType   string          `json:"match_type"`
	Holes       int             `json:"holes"`
	Teams       []TeamResponse  `json:"teams"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatorID   string          `json:"creator_id"`
	Awards      *storage.Awards `json:"awards,omitempty"`
}

type CompleteMatchResponse struct {
	Message     string                        `json:"message"`
	BestShots   []storage.BestShot            `json:"best_shots"`
	BestPlayers map[string]storage.BestPlayer `json:"best_players"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func TransformMatchToStorage(req *CreateMatchRequest) *storage.Match {
	teams := make([]storage.Team, 0, len(req.Teams))
	for _, t := range req.Teams {
		players := make([]storage.Player, 0, len(t.Players))
		for _, p := range t.Players {
			players = append(players, storage.Player{
				Name:     p.Name,
				Email:    p.Email,
				Handicap: p.Handicap,
			})
		}
		teams = append(teams, storage.Team{
			Name:    t.Name,
			Color:   t.Color,
			Players: players,
		})
	}
	return &storage.Match{
		Name:      req.Name,
		MatchType: storage.MatchType(req.MatchType),
		Holes:     req.Holes,
		Teams:     teams,
		CreatorID: req.CreatorID,
	}
}

func TransformMatchFromStorage(m *storage.Match) MatchResponse {
	teams := make([]TeamResponse, 0, len(m.Teams))
	for _, t := range m.Teams {
		players := make([]PlayerResponse, 0, len(t.Players))
		for _, p := range t.Players {
			players = append(players, PlayerResponse{
				ID:       p.ID,
				Name:     p.Name,
				Email:    p.Email,
				Handicap: p.Handicap,
			})
		}
		teams = append(teams, TeamResponse{
			ID:        t.ID,
			Name:      t.Name,
			Color:     t.Color,
			Players:   players,
			CaptainID: t.CaptainID,
		})
	}
	return MatchResponse{
		ID:          m.ID,
		Name:        m.Name,
		MatchType:   string(m.MatchType),
		Holes:       m.Holes,
		Teams:       teams,
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
		CreatorID:   m.CreatorID,
		Awards:      m.Awards,
	}
}
