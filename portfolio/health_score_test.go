package portfolio

import (
	"testing"
	"time"

	"gtm-portfolio/database"
)

// flatRevenueHistory builds days of identical daily REVENUE rows, newest first.
func flatRevenueHistory(days int, daily float64) []database.Metric {
	metrics := make([]database.Metric, 0, days)
	now := time.Now()
	for i := 0; i < days; i++ {
		metrics = append(metrics, database.Metric{
			MetricType: "REVENUE",
			Value:      daily,
			Date:       now.AddDate(0, 0, -i),
		})
	}
	return metrics
}

func intPtr(v int) *int { return &v }

func TestComputeHealthScoreReferenceBrand(t *testing.T) {
	// ROAS at target, margin at target, on track, breakeven at target, flat
	// trend: 25 + 12.5 + 20 + 7.5... factor-by-factor the weighted sum is
	// 25 + 12.5 + 20 + 7.5 + 15 with breakeven at 60 days scoring 50.
	brand := &database.Brand{
		FrontEndRoas:       3.0,
		ContributionMargin: 25,
		Status:             "ON_TRACK",
		DaysToBreakeven:    intPtr(60),
	}

	got := ComputeHealthScore(brand, flatRevenueHistory(14, 1000))

	if got.Breakdown.Roas != 100 {
		t.Errorf("roas factor = %d, want 100", got.Breakdown.Roas)
	}
	if got.Breakdown.Trend != 50 {
		t.Errorf("trend factor = %d, want 50 for flat history", got.Breakdown.Trend)
	}
	if got.Breakdown.Margin != 100 {
		t.Errorf("margin factor = %d, want 100", got.Breakdown.Margin)
	}
	if got.Breakdown.Breakeven != 50 {
		t.Errorf("breakeven factor = %d, want 50 at 60 days", got.Breakdown.Breakeven)
	}
	if got.Breakdown.Status != 100 {
		t.Errorf("status factor = %d, want 100", got.Breakdown.Status)
	}
	// 100*.25 + 50*.25 + 100*.20 + 50*.15 + 100*.15 = 80
	if got.Score != 80 {
		t.Errorf("score = %d, want 80", got.Score)
	}
}

func TestComputeHealthScoreNilBreakevenDefaults75(t *testing.T) {
	brand := &database.Brand{
		FrontEndRoas:       3.0,
		ContributionMargin: 25,
		Status:             "ON_TRACK",
		DaysToBreakeven:    nil,
	}

	got := ComputeHealthScore(brand, flatRevenueHistory(14, 1000))

	if got.Breakdown.Breakeven != 75 {
		t.Errorf("breakeven factor = %d, want default 75 when unset", got.Breakdown.Breakeven)
	}
	// 25 + 12.5 + 20 + 11.25 + 15 = 83.75 -> 84
	if got.Score != 84 {
		t.Errorf("score = %d, want 84", got.Score)
	}
}

func TestComputeHealthScoreMonotonicInRoas(t *testing.T) {
	history := flatRevenueHistory(14, 1000)
	prev := -1
	for _, roas := range []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 4, 10} {
		brand := &database.Brand{
			FrontEndRoas:       roas,
			ContributionMargin: 20,
			Status:             "NEEDS_ATTENTION",
			DaysToBreakeven:    intPtr(45),
		}
		score := ComputeHealthScore(brand, history).Score
		if score < prev {
			t.Errorf("score decreased from %d to %d when roas rose to %.1f", prev, score, roas)
		}
		prev = score
	}
}

func TestComputeHealthScoreMonotonicInStatus(t *testing.T) {
	history := flatRevenueHistory(14, 1000)
	prev := -1
	for _, status := range []string{"CRITICAL", "NEEDS_ATTENTION", "ON_TRACK"} {
		brand := &database.Brand{
			FrontEndRoas:       2.0,
			ContributionMargin: 20,
			Status:             status,
			DaysToBreakeven:    intPtr(45),
		}
		score := ComputeHealthScore(brand, history).Score
		if score < prev {
			t.Errorf("score decreased from %d to %d at status %s", prev, score, status)
		}
		prev = score
	}
}

func TestComputeHealthScoreTrendClamps(t *testing.T) {
	tests := []struct {
		name      string
		recent    float64
		previous  float64
		wantTrend int
	}{
		{"huge spike clamps at 100", 100000, 10, 100},
		{"collapse clamps at 0", 0, 100000, 0},
		{"flat scores 50", 500, 500, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := make([]database.Metric, 0, 14)
			for i := 0; i < 7; i++ {
				history = append(history, database.Metric{MetricType: "REVENUE", Value: tt.recent / 7})
			}
			for i := 0; i < 7; i++ {
				history = append(history, database.Metric{MetricType: "REVENUE", Value: tt.previous / 7})
			}

			brand := &database.Brand{Status: "ON_TRACK"}
			got := ComputeHealthScore(brand, history)
			if got.Breakdown.Trend != tt.wantTrend {
				t.Errorf("trend factor = %d, want %d", got.Breakdown.Trend, tt.wantTrend)
			}
		})
	}
}

func TestComputeHealthScoreSparseHistory(t *testing.T) {
	brand := &database.Brand{
		FrontEndRoas:       1.5,
		ContributionMargin: 10,
		Status:             "ON_TRACK",
	}

	tests := []struct {
		name    string
		history []database.Metric
	}{
		{"no metrics at all", nil},
		{"fewer than 7 entries", flatRevenueHistory(3, 500)},
		{"between 7 and 14 entries", flatRevenueHistory(10, 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeHealthScore(brand, tt.history)
			// With no full previous week, trendPct is forced to 0.
			if len(tt.history) <= 7 && got.Breakdown.Trend != 50 {
				t.Errorf("trend factor = %d, want fallback 50", got.Breakdown.Trend)
			}
		})
	}
}

func TestComputeHealthScoreZeroInputsScoreZeroFactors(t *testing.T) {
	brand := &database.Brand{
		FrontEndRoas:       0,
		ContributionMargin: 0,
		Status:             "CRITICAL",
		DaysToBreakeven:    intPtr(300),
	}

	got := ComputeHealthScore(brand, nil)

	if got.Breakdown.Roas != 0 || got.Breakdown.Margin != 0 || got.Breakdown.Status != 0 {
		t.Errorf("zero inputs should score zero factors, got %+v", got.Breakdown)
	}
	if got.Breakdown.Breakeven != 0 {
		t.Errorf("breakeven at 300 days should floor at 0, got %d", got.Breakdown.Breakeven)
	}
}

func TestComputeHealthScoreIgnoresOtherMetricTypes(t *testing.T) {
	brand := &database.Brand{Status: "ON_TRACK"}

	mixed := []database.Metric{
		{MetricType: "ROAS", Value: 99999},
		{MetricType: "PROFIT", Value: 99999},
	}
	got := ComputeHealthScore(brand, mixed)

	if got.Breakdown.Trend != 50 {
		t.Errorf("non-revenue metrics leaked into trend: factor = %d", got.Breakdown.Trend)
	}
}

// Brand payloads carry 30 days of per-type history on list views and 90 on
// detail views. Both exceed the 14-day trend window, so the same brand must
// score identically regardless of which payload fed the calculator.
func TestComputeHealthScoreStableAcrossHistoryDepth(t *testing.T) {
	mixedHistory := func(days int) []database.Metric {
		now := time.Now()
		out := make([]database.Metric, 0, days*3)
		for i := 0; i < days; i++ {
			date := now.AddDate(0, 0, -i)
			out = append(out,
				database.Metric{MetricType: "REVENUE", Value: 1000 + float64(i%5)*40, Date: date},
				database.Metric{MetricType: "PROFIT", Value: 300, Date: date},
				database.Metric{MetricType: "ROAS", Value: 2.5, Date: date},
			)
		}
		return out
	}

	brand := &database.Brand{
		FrontEndRoas:       2.4,
		ContributionMargin: 22,
		Status:             "ON_TRACK",
		DaysToBreakeven:    intPtr(50),
	}

	fromList := ComputeHealthScore(brand, mixedHistory(30))
	fromDetail := ComputeHealthScore(brand, mixedHistory(90))
	if fromList != fromDetail {
		t.Errorf("score differs by history depth: list %+v vs detail %+v", fromList, fromDetail)
	}
}

func TestComputeHealthScoreUnknownStatusScores50(t *testing.T) {
	brand := &database.Brand{Status: "SOMETHING_NEW"}
	got := ComputeHealthScore(brand, nil)
	if got.Breakdown.Status != 50 {
		t.Errorf("unknown status factor = %d, want 50", got.Breakdown.Status)
	}
}
