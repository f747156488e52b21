package analytics

import "time"

// AllTime disables the year filter of MonthlyBuckets.
const AllTime = 0

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthlyBuckets counts timestamps per calendar month (UTC), January first.
// With year == AllTime the year is ignored, so the same month of different
// years lands in one bucket. Any other year keeps only timestamps from that year.
func MonthlyBuckets(createdAts []time.Time, year int) []MonthCount {
	var counts [12]int
	for _, t := range createdAts {
		u := t.UTC()
		if year != AllTime && u.Year() != year {
			continue
		}
		counts[int(u.Month())-1]++
	}

	out := make([]MonthCount, 12)
	for i := range out {
		out[i] = MonthCount{Month: time.Month(i + 1).String()[:3], Count: counts[i]}
	}
	return out
}
