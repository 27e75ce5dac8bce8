package generator

import (
	"math/rand"
	"testing"
	"time"
)

func TestRandomOrderTime_StaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	start := date(2025, time.March, 1)
	end := date(2025, time.March, 31)
	endOfRange := end.AddDate(0, 0, 1)

	for i := 0; i < 5000; i++ {
		got := randomOrderTime(rng, start, end)
		if got.Before(start) || !got.Before(endOfRange) {
			t.Fatalf("timestamp %s outside [%s, %s]", got, start, end)
		}
	}
}

func TestRandomOrderTime_SingleDayRange(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	day := date(2025, time.June, 10)

	for i := 0; i < 200; i++ {
		got := randomOrderTime(rng, day, day)
		if got.Year() != 2025 || got.Month() != time.June || got.Day() != 10 {
			t.Fatalf("single-day draw landed on %s", got)
		}
	}
}

func TestRandomOrderTime_SeasonalSkew(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	start := date(2025, time.January, 1)
	end := date(2025, time.December, 31)

	var dec10, jun10 int
	for i := 0; i < 60000; i++ {
		got := randomOrderTime(rng, start, end)
		switch {
		case got.Month() == time.December && got.Day() == 10:
			dec10++
		case got.Month() == time.June && got.Day() == 10:
			jun10++
		}
	}

	// Multipliers 2.2 vs 0.85 give an expected density ratio of ~2.6;
	// require at least 2x to leave room for sampling noise.
	if jun10 == 0 || float64(dec10) < 2*float64(jun10) {
		t.Errorf("Dec 10 count %d not at least 2x Jun 10 count %d", dec10, jun10)
	}
}

func TestRandomOrderTime_HourProfile(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	start := date(2025, time.March, 1)
	end := date(2025, time.March, 31)

	var hours [24]int
	for i := 0; i < 30000; i++ {
		hours[randomOrderTime(rng, start, end).Hour()]++
	}

	// Midday should far outweigh the small hours.
	if hours[12] <= hours[2]*3 {
		t.Errorf("hour 12 count %d not well above hour 2 count %d", hours[12], hours[2])
	}
}
