package llm

import (
	"fmt"
	"strings"

	"gtm-portfolio/database"
	models "gtm-portfolio/database/models_pkg"
)

// Window used for the week-over-week revenue trend line in the prompt.
const trendWindowDays = 7

// BuildBriefingPrompt renders the analyst prompt for one brand. metrics is the
// brand's recent history, newest first; only REVENUE rows feed the trend line.
func BuildBriefingPrompt(brand *database.Brand, metrics []database.Metric) string {
	revenue := make([]float64, 0, 30)
	for _, m := range metrics {
		if m.MetricType == models.MetricRevenue {
			revenue = append(revenue, m.Value)
		}
		if len(revenue) == 30 {
			break
		}
	}

	recent := sumRange(revenue, 0, trendWindowDays)
	previous := sumRange(revenue, trendWindowDays, 2*trendWindowDays)
	trend := 0.0
	if previous > 0 {
		trend = (recent - previous) / previous * 100
	}

	breakeven := "N/A"
	if brand.DaysToBreakeven != nil {
		breakeven = fmt.Sprintf("%d", *brand.DaysToBreakeven)
	}
	focus := "Not set"
	if brand.ThisWeekFocus != nil && *brand.ThisWeekFocus != "" {
		focus = *brand.ThisWeekFocus
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a GTM analyst for a coaching/info product portfolio. Analyze this brand's performance and provide actionable insights.\n\n")
	fmt.Fprintf(&b, "BRAND: %s\n", brand.Name)
	fmt.Fprintf(&b, "STAGE: %s\n", brand.Stage)
	fmt.Fprintf(&b, "STATUS: %s\n\n", brand.Status)
	fmt.Fprintf(&b, "CURRENT METRICS:\n")
	fmt.Fprintf(&b, "- Monthly Revenue: $%.0f\n", brand.MonthlyRevenue)
	fmt.Fprintf(&b, "- Monthly Profit: $%.0f\n", brand.MonthlyProfit)
	fmt.Fprintf(&b, "- Contribution Margin: %.0f%%\n", brand.ContributionMargin)
	fmt.Fprintf(&b, "- Front-End ROAS: %.1fx\n", brand.FrontEndRoas)
	fmt.Fprintf(&b, "- Back-End LTV: $%.0f\n", brand.BackEndLtv)
	fmt.Fprintf(&b, "- Days to Breakeven: %s\n\n", breakeven)
	fmt.Fprintf(&b, "7-DAY REVENUE TREND: %.1f%% vs previous week\n\n", trend)
	fmt.Fprintf(&b, "THIS WEEK'S FOCUS: %s\n\n", focus)
	fmt.Fprintf(&b, "Provide a brief analysis with exactly 4 bullet points:\n")
	fmt.Fprintf(&b, "1. What's working well (be specific with numbers)\n")
	fmt.Fprintf(&b, "2. What needs attention (be specific)\n")
	fmt.Fprintf(&b, "3. One recommended action for this week\n")
	fmt.Fprintf(&b, "4. One risk to monitor\n\n")
	fmt.Fprintf(&b, "Keep each bullet to 1-2 sentences max. Be direct and actionable. Do not use headers or formatting, just the 4 bullet points starting with \"•\".")

	return b.String()
}

// FallbackBriefing is returned with an error flag when the upstream model is
// unavailable. The endpoint still answers 200 so the dashboard degrades
// gracefully.
func FallbackBriefing() string {
	return "• Unable to generate AI insights at this time.\n" +
		"• Please check your API key configuration.\n" +
		"• Try refreshing in a few minutes.\n" +
		"• Contact support if the issue persists."
}

func sumRange(values []float64, from, to int) float64 {
	if from > len(values) {
		return 0
	}
	if to > len(values) {
		to = len(values)
	}
	sum := 0.0
	for _, v := range values[from:to] {
		sum += v
	}
	return sum
}
