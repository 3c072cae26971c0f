package health

import (
	"math"
	"time"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// Trend direction spellings (API contract).
const (
	TrendIncreased = "increased"
	TrendDecreased = "decreased"
	TrendUnchanged = "unchanged"
)

// Point is one chart data point in the Recharts-compatible {x, y} shape the
// mobile dashboard consumes.
type Point struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// Metric is a chart-ready series for one dashboard indicator: the per-day
// points, the latest period-over-period change, and a trend direction word.
type Metric struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	ChangePercent float64 `json:"changePercent"`
	Trend         string  `json:"trendLabel"`
	ChartData     []Point `json:"chartData"`
}

// BuildMetric turns an ordered history window into a Metric. The history must
// be oldest→newest; callers holding a newest-first fetch reverse it first
// (see DashboardService). Each point takes its value from extract(rec),
// with NaN/Inf coerced to 0, and its x-label from the record's SK timestamp.
//
// ChangePercent compares the last two points: ((cur-prev)/prev)*100 rounded
// to one decimal, with prev==0 (and series shorter than 2) yielding 0 rather
// than Inf.
func BuildMetric(id, label string, history []domain.DailyRecord, extract func(domain.DailyRecord) float64) Metric {
	points := make([]Point, 0, len(history))
	for _, rec := range history {
		y := extract(rec)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			y = 0
		}
		points = append(points, Point{X: dayLabel(rec.SK), Y: y})
	}

	var change float64
	if n := len(points); n >= 2 {
		prev, cur := points[n-2].Y, points[n-1].Y
		if prev != 0 {
			change = math.Round((cur-prev)/prev*1000) / 10
		}
	}

	trend := TrendUnchanged
	switch {
	case change > 0:
		trend = TrendIncreased
	case change < 0:
		trend = TrendDecreased
	}

	return Metric{ID: id, Label: label, ChangePercent: change, Trend: trend, ChartData: points}
}

// dayLabel derives a short weekday label ("Mon".."Sun") from an ISO-8601
// record timestamp. Unparseable timestamps fall back to the raw date part so
// a malformed row still renders something stable on the axis.
func dayLabel(sk string) string {
	if t, err := time.Parse(time.RFC3339, sk); err == nil {
		return t.Weekday().String()[:3]
	}
	if len(sk) >= 10 {
		if t, err := time.Parse("2006-01-02", sk[:10]); err == nil {
			return t.Weekday().String()[:3]
		}
		return sk[:10]
	}
	return sk
}
