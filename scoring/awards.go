package scoring

import "github.com/Pato1236897/Golf/storage"

const (
	DefaultShotDescription = "Great shot!"
	unknownPlayerName      = "Unknown"
)

// ComputeAwards derives the end-of-match awards from the ledger as it stands.
//
// Best shots: the first flagged score for each hole, in ledger order.
// Best players: per team, the lowest total among players with at least one score;
// ties keep the player listed first on the team.
func ComputeAwards(match *storage.Match, scores []*storage.Score) *storage.Awards {
	awards := &storage.Awards{
		BestShots:   make([]storage.BestShot, 0),
		BestPlayers: make(map[string]storage.BestPlayer),
	}

	seenHoles := make(map[int]bool)
	for _, score := range scores {
		if !score.BestShot || seenHoles[score.Hole] {
			continue
		}
		seenHoles[score.Hole] = true

		shot := storage.BestShot{
			Hole:        score.Hole,
			PlayerID:    score.PlayerID,
			PlayerName:  unknownPlayerName,
			Description: score.BestShotDescription,
		}
		if team, player, ok := match.TeamOf(score.PlayerID); ok {
			shot.PlayerName = player.Name
			shot.TeamID = team.ID
		}
		if shot.Description == "" {
			shot.Description = DefaultShotDescription
		}
		awards.BestShots = append(awards.BestShots, shot)
	}

	totals := Aggregate(scores)
	for _, team := range match.Teams {
		var best *storage.BestPlayer
		for _, player := range team.Players {
			t, ok := totals[player.ID]
			if !ok {
				continue
			}
			if best == nil || t.TotalStrokes < best.TotalStrokes {
				best = &storage.BestPlayer{
					PlayerID:     player.ID,
					PlayerName:   player.Name,
					TotalStrokes: t.TotalStrokes,
					BestShots:    t.BestShots,
				}
			}
		}
		if best != nil {
			awards.BestPlayers[team.ID] = *best
		}
	}
	return awards
}
