package scoring

import (
	"sort"

	"github.com/Pato1236897/Golf/storage"
)

// PlayerTotals is one player's sums over the whole ledger, regardless of who is looking.
type PlayerTotals struct {
	TotalStrokes int
	HolesPlayed  int
	BestShots    int
}

type LeaderboardEntry struct {
	PlayerID     string `json:"player_id"`
	PlayerName   string `json:"player_name"`
	TeamID       string `json:"team_id"`
	TeamName     string `json:"team_name"`
	TeamColor    string `json:"team_color"`
	TotalStrokes Stat   `json:"total_strokes"`
	HolesPlayed  Stat   `json:"holes_played"`
	BestShots    Stat   `json:"best_shots"`
}

// Aggregate sums the ledger per player. Every row counts, including repeated
// rows for the same hole.
func Aggregate(scores []*storage.Score) map[string]PlayerTotals {
	totals := make(map[string]PlayerTotals)
	for _, score := range scores {
		t := totals[score.PlayerID]
		t.TotalStrokes += score.Strokes
		t.HolesPlayed++
		if score.BestShot {
			t.BestShots++
		}
		totals[score.PlayerID] = t
	}
	return totals
}

// BuildLeaderboard lists every player with at least one score in team then player order,
// redacting the numbers the viewer may not see. The list is sorted by total strokes
// whenever the viewer can see any numbers; redacted entries go last.
func BuildLeaderboard(match *storage.Match, totals map[string]PlayerTotals, requestingTeamID string) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(totals))
	for _, team := range match.Teams {
		for _, player := range team.Players {
			t, ok := totals[player.ID]
			if !ok {
				continue
			}
			entry := LeaderboardEntry{
				PlayerID:   player.ID,
				PlayerName: player.Name,
				TeamID:     team.ID,
				TeamName:   team.Name,
				TeamColor:  team.Color,
			}
			if Visible(match.Status, team.ID, requestingTeamID) {
				entry.TotalStrokes = Shown(t.TotalStrokes)
				entry.HolesPlayed = Shown(t.HolesPlayed)
				entry.BestShots = Shown(t.BestShots)
			} else {
				entry.TotalStrokes = Hidden()
				entry.HolesPlayed = Hidden()
				entry.BestShots = Hidden()
			}
			entries = append(entries, entry)
		}
	}

	if match.Status == storage.StatusCompleted || requestingTeamID != "" {
		sort.SliceStable(entries, func(i, j int) bool {
			return strokesLess(entries[i].TotalStrokes, entries[j].TotalStrokes)
		})
	}
	return entries
}

func strokesLess(a, b Stat) bool {
	switch {
	case a.Hidden:
		return false
	case b.Hidden:
		return true
	default:
		return a.Value < b.Value
	}
}
