// Package scoring holds the privacy rules and the aggregation that turn a match's
// score ledger into what a given viewer is allowed to see.
package scoring

import "github.com/Pato1236897/Golf/storage"

// Visible reports whether a score by a player on playerTeamID may be shown to a viewer
// from requestingTeamID. An empty requestingTeamID means the viewer has no team context.
func Visible(status storage.MatchStatus, playerTeamID, requestingTeamID string) bool {
	if status == storage.StatusCompleted {
		return true
	}
	return requestingTeamID != "" && playerTeamID == requestingTeamID
}

// FilterScores drops every score the viewer may not see, keeping ledger order.
// With no team context on an unfinished match the result is empty.
func FilterScores(match *storage.Match, scores []*storage.Score, requestingTeamID string) []*storage.Score {
	out := make([]*storage.Score, 0, len(scores))
	if match.Status != storage.StatusCompleted && requestingTeamID == "" {
		return out
	}

	teamByPlayer := playerTeams(match)
	for _, score := range scores {
		if Visible(match.Status, teamByPlayer[score.PlayerID], requestingTeamID) {
			out = append(out, score)
		}
	}
	return out
}

func playerTeams(match *storage.Match) map[string]string {
	teams := make(map[string]string)
	for _, team := range match.Teams {
		for _, player := range team.Players {
			teams[player.ID] = team.ID
		}
	}
	return teams
}
