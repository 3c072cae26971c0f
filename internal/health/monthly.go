package health

import (
	"math"
	"sort"
	"strconv"
)

// CheckInRecord is the decoded answers payload of one day's care log.
// Tendency fields hold either a canonical token or a display label — both
// forms occur in historical data and both are accepted everywhere below.
// Weight is the raw decimal string as entered ("4.25"); empty when skipped.
type CheckInRecord struct {
	Date   string `json:"date"`
	Food   string `json:"food"`
	Water  string `json:"water"`
	Weight string `json:"weight"`
	Stool  string `json:"stool"`
	Urine  string `json:"urine"`
}

// TendencyCount buckets one field's answers over a month. A day lands in at
// most one bucket; unrecognized answers land in none.
type TendencyCount struct {
	Normal int `json:"normal"`
	Less   int `json:"less"`
	More   int `json:"more"`
	None   int `json:"none"`
}

// StoolCount extends TendencyCount with the stool-only diarrhea bucket.
type StoolCount struct {
	Normal   int `json:"normal"`
	Less     int `json:"less"`
	More     int `json:"more"`
	None     int `json:"none"`
	Diarrhea int `json:"diarrhea"`
}

// DailyEntry is the day-indexed chart row combining the scored and labeled
// views of each field. Weight is present only on days it was recorded.
type DailyEntry struct {
	Day        int      `json:"day"`
	FoodScore  int      `json:"foodScore"`
	FoodLabel  string   `json:"foodLabel"`
	WaterScore int      `json:"waterScore"`
	WaterLabel string   `json:"waterLabel"`
	StoolScore int      `json:"stoolScore"`
	StoolLabel string   `json:"stoolLabel"`
	UrineScore int      `json:"urineScore"`
	UrineLabel string   `json:"urineLabel"`
	Weight     *float64 `json:"weight,omitempty"`
}

// MonthlyStats summarizes one month of check-ins for the calendar screen:
// per-field counters, the weight series digest, and the per-day chart rows.
type MonthlyStats struct {
	TotalDays    int           `json:"totalDays"`
	Food         TendencyCount `json:"food"`
	Water        TendencyCount `json:"water"`
	Stool        StoolCount    `json:"stool"`
	Urine        TendencyCount `json:"urine"`
	LatestWeight *float64      `json:"latestWeight"`
	WeightChange *float64      `json:"weightChange"`
	AvgWeight    *float64      `json:"avgWeight"`
	DailyData    []DailyEntry  `json:"dailyData"`
}

// BuildMonthlyStats aggregates one month of check-in records.
//
// Records are sorted ascending by date before the scan; several steps
// (latestWeight, weightChange) rely on last-write-wins over an ascending
// iteration, so the order is enforced here rather than assumed from the
// fetch. An empty input produces zeroed counters and nil weight digests.
func BuildMonthlyStats(records []CheckInRecord) MonthlyStats {
	sorted := make([]CheckInRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	stats := MonthlyStats{
		TotalDays: len(sorted),
		DailyData: make([]DailyEntry, 0, len(sorted)),
	}
	var weights []float64

	for _, rec := range sorted {
		entry := DailyEntry{
			Day:        dayOfMonth(rec.Date),
			FoodScore:  TendencyScore(FieldFood, rec.Food),
			FoodLabel:  TendencyLabel(FieldFood, rec.Food),
			WaterScore: TendencyScore(FieldWater, rec.Water),
			WaterLabel: TendencyLabel(FieldWater, rec.Water),
			StoolScore: TendencyScore(FieldStool, rec.Stool),
			StoolLabel: TendencyLabel(FieldStool, rec.Stool),
			UrineScore: TendencyScore(FieldUrine, rec.Urine),
			UrineLabel: TendencyLabel(FieldUrine, rec.Urine),
		}

		if w, err := strconv.ParseFloat(rec.Weight, 64); err == nil && !math.IsNaN(w) && !math.IsInf(w, 0) {
			wc := w
			entry.Weight = &wc
			weights = append(weights, w)
			latest := w
			stats.LatestWeight = &latest
		}

		countTendency(&stats.Food, FieldFood, rec.Food)
		countTendency(&stats.Water, FieldWater, rec.Water)
		countStool(&stats.Stool, rec.Stool)
		countTendency(&stats.Urine, FieldUrine, rec.Urine)

		stats.DailyData = append(stats.DailyData, entry)
	}

	if len(weights) >= 2 {
		change := round2(weights[len(weights)-1] - weights[0])
		stats.WeightChange = &change
	}
	if len(weights) > 0 {
		var sum float64
		for _, w := range weights {
			sum += w
		}
		avg := round2(sum / float64(len(weights)))
		stats.AvgWeight = &avg
	}

	return stats
}

// countTendency increments the matching bucket for a non-stool field.
func countTendency(c *TendencyCount, field TendencyField, value string) {
	tok, ok := CanonicalTendency(field, value)
	if !ok {
		return
	}
	switch tok {
	case TendencyNormal:
		c.Normal++
	case TendencyLess:
		c.Less++
	case TendencyMore:
		c.More++
	case TendencyNone:
		c.None++
	}
}

// countStool increments the matching stool bucket, including diarrhea.
func countStool(c *StoolCount, value string) {
	tok, ok := CanonicalTendency(FieldStool, value)
	if !ok {
		return
	}
	switch tok {
	case TendencyNormal:
		c.Normal++
	case TendencyLess:
		c.Less++
	case TendencyMore:
		c.More++
	case TendencyNone:
		c.None++
	case TendencyDiarrhea:
		c.Diarrhea++
	}
}

// dayOfMonth parses the day component of a YYYY-MM-DD date, 0 when malformed.
func dayOfMonth(date string) int {
	if len(date) < 10 {
		return 0
	}
	d, err := strconv.Atoi(date[8:10])
	if err != nil {
		return 0
	}
	return d
}

// round2 rounds to two decimal places (banker's rounding is not required by
// any consumer; plain half-away-from-zero matches the original output).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
