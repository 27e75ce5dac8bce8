package generator

import (
	"math/rand"
	"time"
)

// randomOrderTime draws one timestamp in [start, end] whose day is
// distributed proportionally to SeasonalMultiplier and whose hour follows
// hourWeights. Rejection sampling: a uniform candidate day is accepted with
// probability multiplier/maxMultiplier, so the loop terminates almost surely
// with ~2.6 expected iterations. start and end must be midnight-aligned with
// start <= end; a single-day range (start == end) is valid.
func randomOrderTime(rng *rand.Rand, start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)

	for {
		day := start.AddDate(0, 0, rng.Intn(days+1))
		if rng.Float64() >= SeasonalMultiplier(day)/maxMultiplier {
			continue
		}

		hour := choiceWeighted(rng, hoursOfDay, hourWeights)
		minute := rng.Intn(60)
		second := rng.Intn(60)
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, day.Location())
	}
}
