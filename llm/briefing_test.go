package llm

import (
	"strings"
	"testing"

	"gtm-portfolio/database"
)

func briefingBrand() *database.Brand {
	days := 45
	focus := "Scale Meta campaigns to $50k/day"
	return &database.Brand{
		Name:               "MasterClass Pro",
		Stage:              "SCALE",
		Status:             "ON_TRACK",
		MonthlyRevenue:     125000,
		MonthlyProfit:      37500,
		ContributionMargin: 30,
		FrontEndRoas:       3.2,
		BackEndLtv:         580,
		DaysToBreakeven:    &days,
		ThisWeekFocus:      &focus,
	}
}

func revenueHistory(recentDaily, previousDaily float64) []database.Metric {
	metrics := make([]database.Metric, 0, 14)
	for i := 0; i < 7; i++ {
		metrics = append(metrics, database.Metric{MetricType: "REVENUE", Value: recentDaily})
	}
	for i := 0; i < 7; i++ {
		metrics = append(metrics, database.Metric{MetricType: "REVENUE", Value: previousDaily})
	}
	return metrics
}

func TestBuildBriefingPromptIncludesBrandFigures(t *testing.T) {
	prompt := BuildBriefingPrompt(briefingBrand(), revenueHistory(1000, 1000))

	for _, want := range []string{
		"BRAND: MasterClass Pro",
		"STAGE: SCALE",
		"STATUS: ON_TRACK",
		"Monthly Revenue: $125000",
		"Contribution Margin: 30%",
		"Front-End ROAS: 3.2x",
		"Days to Breakeven: 45",
		"THIS WEEK'S FOCUS: Scale Meta campaigns to $50k/day",
		"exactly 4 bullet points",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildBriefingPromptTrendLine(t *testing.T) {
	tests := []struct {
		name          string
		recentDaily   float64
		previousDaily float64
		want          string
	}{
		{"flat week", 1000, 1000, "7-DAY REVENUE TREND: 0.0%"},
		{"up 20 percent", 1200, 1000, "7-DAY REVENUE TREND: 20.0%"},
		{"down 10 percent", 900, 1000, "7-DAY REVENUE TREND: -10.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildBriefingPrompt(briefingBrand(), revenueHistory(tt.recentDaily, tt.previousDaily))
			if !strings.Contains(prompt, tt.want) {
				t.Errorf("prompt missing %q", tt.want)
			}
		})
	}
}

func TestBuildBriefingPromptTrendZeroWithoutPriorWeek(t *testing.T) {
	short := []database.Metric{
		{MetricType: "REVENUE", Value: 5000},
		{MetricType: "REVENUE", Value: 4800},
	}
	prompt := BuildBriefingPrompt(briefingBrand(), short)
	if !strings.Contains(prompt, "7-DAY REVENUE TREND: 0.0%") {
		t.Error("trend should be 0 when there is no full previous week")
	}
}

func TestBuildBriefingPromptDefaults(t *testing.T) {
	brand := briefingBrand()
	brand.DaysToBreakeven = nil
	brand.ThisWeekFocus = nil

	prompt := BuildBriefingPrompt(brand, nil)
	if !strings.Contains(prompt, "Days to Breakeven: N/A") {
		t.Error("missing N/A placeholder for unknown breakeven")
	}
	if !strings.Contains(prompt, "THIS WEEK'S FOCUS: Not set") {
		t.Error("missing Not set placeholder for empty focus")
	}
}

func TestBuildBriefingPromptIgnoresNonRevenueMetrics(t *testing.T) {
	mixed := []database.Metric{
		{MetricType: "ROAS", Value: 99999},
		{MetricType: "PROFIT", Value: 99999},
	}
	prompt := BuildBriefingPrompt(briefingBrand(), mixed)
	if !strings.Contains(prompt, "7-DAY REVENUE TREND: 0.0%") {
		t.Error("non-revenue metrics must not feed the trend line")
	}
}

func TestFallbackBriefingHasFourBullets(t *testing.T) {
	fallback := FallbackBriefing()
	if got := strings.Count(fallback, "•"); got != 4 {
		t.Errorf("fallback has %d bullets, want 4", got)
	}
}
