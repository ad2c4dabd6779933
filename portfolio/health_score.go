// Package portfolio holds the pure scoring and aggregation logic of the
// dashboard: brand health scores, status recomputation, and the landing
// dashboard reduction. Nothing here performs I/O.
package portfolio

import (
	"math"

	"gtm-portfolio/database"
)

// Health score weights and targets. The five factors always sum to weight 1.0.
const (
	weightRoas      = 0.25
	weightTrend     = 0.25
	weightMargin    = 0.20
	weightBreakeven = 0.15
	weightStatus    = 0.15

	targetRoas          = 3.0 // front-end ROAS considered fully healthy
	targetMarginPct     = 25.0
	targetBreakevenDays = 60.0

	// Score assumed when a brand has no breakeven figure yet (pre-launch).
	defaultBreakevenScore = 75.0

	// A flat week-over-week revenue trend scores 50; each 1% swing moves the
	// trend factor 2 points.
	trendBase       = 50.0
	trendSlope      = 2.0
	trendWindowDays = 7
)

// statusScores maps brand status to its factor score. Unknown statuses score
// the neutral 50.
var statusScores = map[string]float64{
	"ON_TRACK":        100,
	"NEEDS_ATTENTION": 50,
	"CRITICAL":        0,
}

// HealthBreakdown is the per-factor view shown in the score tooltip. Each
// sub-score is individually rounded for display.
type HealthBreakdown struct {
	Roas      int `json:"roas"`
	Trend     int `json:"trend"`
	Margin    int `json:"margin"`
	Breakeven int `json:"breakeven"`
	Status    int `json:"status"`
}

// HealthScore is a 0-100 composite indicator of brand performance.
type HealthScore struct {
	Score     int             `json:"score"`
	Breakdown HealthBreakdown `json:"breakdown"`
}

// ComputeHealthScore scores a brand from its snapshot and its REVENUE metric
// history. revenueMetrics must be ordered newest-first; entries of other
// metric types are ignored so callers may pass the full history.
//
// This is a total function: missing history, zero values, and absent
// breakeven all degrade to defined scores rather than errors.
func ComputeHealthScore(brand *database.Brand, revenueMetrics []database.Metric) HealthScore {
	revenue := filterRevenue(revenueMetrics)

	// 1. ROAS vs target, saturating at 100.
	roasScore := math.Min(100, brand.FrontEndRoas/targetRoas*100)

	// 2. Revenue trend: this week's sum vs last week's.
	recent := sumValues(revenue, 0, trendWindowDays)
	previous := sumValues(revenue, trendWindowDays, 2*trendWindowDays)
	trendPct := 0.0
	if previous > 0 {
		trendPct = (recent - previous) / previous * 100
	}
	trendScore := clamp(trendBase+trendPct*trendSlope, 0, 100)

	// 3. Contribution margin vs target.
	marginScore := math.Min(100, brand.ContributionMargin/targetMarginPct*100)

	// 4. Days to breakeven: longer than target penalized linearly, floor 0.
	breakevenScore := defaultBreakevenScore
	if brand.DaysToBreakeven != nil {
		days := float64(*brand.DaysToBreakeven)
		breakevenScore = math.Max(0, 100-days/targetBreakevenDays*50)
	}

	// 5. Status lookup.
	statusScore, ok := statusScores[brand.Status]
	if !ok {
		statusScore = 50
	}

	total := roasScore*weightRoas +
		trendScore*weightTrend +
		marginScore*weightMargin +
		breakevenScore*weightBreakeven +
		statusScore*weightStatus

	return HealthScore{
		Score: int(math.Round(total)),
		Breakdown: HealthBreakdown{
			Roas:      int(math.Round(roasScore)),
			Trend:     int(math.Round(trendScore)),
			Margin:    int(math.Round(marginScore)),
			Breakeven: int(math.Round(breakevenScore)),
			Status:    int(math.Round(statusScore)),
		},
	}
}

func filterRevenue(metrics []database.Metric) []database.Metric {
	out := metrics[:0:0]
	for _, m := range metrics {
		if m.MetricType == "REVENUE" {
			out = append(out, m)
		}
	}
	return out
}

// sumValues sums metric values in the half-open index range [from, to),
// tolerating ranges past the end of the slice.
func sumValues(metrics []database.Metric, from, to int) float64 {
	if from > len(metrics) {
		return 0
	}
	if to > len(metrics) {
		to = len(metrics)
	}
	sum := 0.0
	for _, m := range metrics[from:to] {
		sum += m.Value
	}
	return sum
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
