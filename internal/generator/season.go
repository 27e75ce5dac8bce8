package generator

import "time"

// maxMultiplier bounds SeasonalMultiplier; the rejection sampler divides by
// it so the acceptance probability never exceeds 1.
const maxMultiplier = 2.6

// SeasonalMultiplier scales a date's baseline order-arrival rate. Rules are
// evaluated top-down; the first match wins.
func SeasonalMultiplier(t time.Time) float64 {
	month := t.Month()
	day := t.Day()

	switch {
	// Black Friday / Cyber Monday window
	case month == time.November && day >= 20:
		return 2.5
	// December holiday shopping
	case month == time.December && day <= 24:
		return 2.2
	// Valentine's week
	case month == time.February && day >= 7 && day <= 14:
		return 1.6
	// Mother's Day bump
	case month == time.May && day <= 14:
		return 1.5
	// Back-to-school
	case month == time.August || month == time.September:
		return 1.2
	// January & July sales
	case month == time.January || month == time.July:
		return 1.15
	// Summer lull
	case month == time.June:
		return 0.85
	default:
		return 1.0
	}
}

// hourWeights is the intraday order-volume profile, one weight per hour of
// day. Near-zero overnight, peaking around lunchtime and evening.
var hourWeights = []float64{
	1, 1, 1, 1, 1, 2, 3, 4, 6, 8, 9, 10,
	10, 9, 8, 7, 7, 8, 9, 10, 9, 7, 4, 2,
}

var hoursOfDay = func() []int {
	hours := make([]int, 24)
	for h := range hours {
		hours[h] = h
	}
	return hours
}()
