package game

import (
	"sort"

	"leaderboard/domain"
)

// CurrentRanking sorts live players by score descending. Ties break on
// username ascending so repeated queries over the same state return the
// same order regardless of map iteration.
func CurrentRanking(players []domain.Player) []domain.Player {
	ranked := append([]domain.Player(nil), players...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Username < ranked[j].Username
	})
	return ranked
}

// AlltimeRanking extracts the embedded player of each peak-score update
// and sorts them by score descending, username ascending on ties.
func AlltimeRanking(peaks []domain.Update) []domain.Player {
	players := make([]domain.Player, 0, len(peaks))
	for _, update := range peaks {
		players = append(players, update.Player)
	}
	return CurrentRanking(players)
}

// MedianFps computes the median over each player's most recent fps
// sample. Even counts average the two middle samples; an empty input
// yields 0.
func MedianFps(latest []domain.Update) float64 {
	if len(latest) == 0 {
		return 0
	}

	samples := make([]float64, 0, len(latest))
	for _, update := range latest {
		samples = append(samples, update.Fps)
	}
	sort.Float64s(samples)

	n := len(samples)
	if n%2 == 1 {
		return samples[n/2]
	}
	return (samples[n/2-1] + samples[n/2]) / 2
}
