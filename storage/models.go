package storage

import "time"

type MatchType string

const (
	MatchTypeStrokePlay MatchType = "stroke_play"
	MatchTypeScramble   MatchType = "scramble"
)

type MatchStatus string

const (
	StatusSetup      MatchStatus = "setup"
	StatusInProgress MatchStatus = "in_progress"
	StatusCompleted  MatchStatus = "completed"
)

type Player struct {
	ID       string `dynamodbav:"ID" json:"id"`
	Name     string `dynamodbav:"Name" json:"name"`
	Email    string `dynamodbav:"Email,omitempty" json:"email,omitempty"`
	Handicap int    `dynamodbav:"Handicap" json:"handicap"`
}

type Team struct {
	ID        string   `dynamodbav:"ID" json:"id"`
	Name      string   `dynamodbav:"Name" json:"name"`
	Color     string   `dynamodbav:"Color" json:"color"`
	Players   []Player `dynamodbav:"Players" json:"players"`
	CaptainID string   `dynamodbav:"CaptainID,omitempty" json:"captain_id,omitempty"`
}

type Match struct {
	ID          string      `dynamodbav:"PK" json:"id"`
	Name        string      `dynamodbav:"Name" json:"name"`
	MatchType   MatchType   `dynamodbav:"MatchType" json:"match_type"`
	Holes       int         `dynamodbav:"Holes" json:"holes"`
	Teams       []Team      `dynamodbav:"Teams" json:"teams"`
	Status      MatchStatus `dynamodbav:"Status" json:"status"`
	CreatedAt   time.Time   `dynamodbav:"CreatedAt" json:"created_at"`
	StartedAt   *time.Time  `dynamodbav:"StartedAt,omitempty" json:"started_at,omitempty"`
	CompletedAt *time.Time  `dynamodbav:"CompletedAt,omitempty" json:"completed_at,omitempty"`
	CreatorID   string      `dynamodbav:"CreatorID" json:"creator_id"`
	Awards      *Awards     `dynamodbav:"Awards,omitempty" json:"awards,omitempty"`
}

// TeamOf returns the team owning playerID and the player itself.
func (m *Match) TeamOf(playerID string) (*Team, *Player, bool) {
	for i := range m.Teams {
		team := &m.Teams[i]
		for j := range team.Players {
			if team.Players[j].ID == playerID {
				return team, &team.Players[j], true
			}
		}
	}
	return nil, nil, false
}

// Team returns the team with the given id.
func (m *Match) Team(teamID string) (*Team, bool) {
	for i := range m.Teams {
		if m.Teams[i].ID == teamID {
			return &m.Teams[i], true
		}
	}
	return nil, false
}

type Score struct {
	MatchID             string    `dynamodbav:"PK" json:"match_id"`
	SortKey             string    `dynamodbav:"SK" json:"-"` // submission order within the match
	ID                  string    `dynamodbav:"ScoreID" json:"id"`
	PlayerID            string    `dynamodbav:"PlayerID" json:"player_id"`
	Hole                int       `dynamodbav:"Hole" json:"hole"`
	Strokes             int       `dynamodbav:"Strokes" json:"strokes"`
	Putts               int       `dynamodbav:"Putts" json:"putts"`
	Penalties           int       `dynamodbav:"Penalties" json:"penalties"`
	BestShot            bool      `dynamodbav:"BestShot" json:"best_shot"`
	BestShotDescription string    `dynamodbav:"BestShotDescription,omitempty" json:"best_shot_description,omitempty"`
	SubmittedAt         time.Time `dynamodbav:"SubmittedAt" json:"timestamp"`
}

type BestShot struct {
	Hole        int    `dynamodbav:"Hole" json:"hole"`
	PlayerID    string `dynamodbav:"PlayerID" json:"player_id"`
	PlayerName  string `dynamodbav:"PlayerName" json:"player_name"`
	TeamID      string `dynamodbav:"TeamID" json:"team_id"`
	Description string `dynamodbav:"Description" json:"description"`
	Votes       int    `dynamodbav:"Votes" json:"votes"`
}

type BestPlayer struct {
	PlayerID     string `dynamodbav:"PlayerID" json:"player_id"`
	PlayerName   string `dynamodbav:"PlayerName" json:"player_name"`
	TotalStrokes int    `dynamodbav:"TotalStrokes" json:"total_strokes"`
	BestShots    int    `dynamodbav:"BestShots" json:"best_shots"`
}

// Awards is computed once when a match completes.
type Awards struct {
	BestShots   []BestShot            `dynamodbav:"BestShots" json:"best_shots"`
	BestPlayers map[string]BestPlayer `dynamodbav:"BestPlayers" json:"best_players"`
}
