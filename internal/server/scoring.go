package server

import (
	"math"
	"strings"

	"dailyread/internal/attempt"
	"dailyread/internal/playbook"
	"dailyread/internal/sim"
)

const (
	readBonusCorrect = 350.0
	readBonusMissed  = 150.0
	maxScore         = 1000.0
)

// Rescore grades an attempt from its own event log against the play it names.
// Client-reported scores are ignored.
func Rescore(a attempt.Attempt) (score float64, coverage string, correct bool) {
	play := playbook.ByID(a.PlayID)
	coverage = play.Coverage
	correct = a.CoverageGuess != "" && strings.EqualFold(strings.TrimSpace(a.CoverageGuess), coverage)

	score = sim.Score(sim.ObjectivesFromDefs(play.Objectives), a.Events)
	if correct {
		score += readBonusCorrect
	} else {
		score += readBonusMissed
	}
	score = math.Max(0, math.Min(maxScore, score))
	return math.Round(score*100) / 100, coverage, correct
}
