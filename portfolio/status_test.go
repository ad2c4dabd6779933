package portfolio

import "testing"

func TestRecomputeStatus(t *testing.T) {
	tests := []struct {
		name          string
		revenue       float64
		margin        float64
		targetRevenue float64
		targetMargin  float64
		want          string
	}{
		{
			name:    "at target on both axes",
			revenue: 100000, margin: 25, targetRevenue: 100000, targetMargin: 25,
			want: "ON_TRACK",
		},
		{
			name:    "above target on both axes",
			revenue: 150000, margin: 30, targetRevenue: 100000, targetMargin: 25,
			want: "ON_TRACK",
		},
		{
			name:    "revenue at 90 percent of target",
			revenue: 90000, margin: 30, targetRevenue: 100000, targetMargin: 25,
			want: "NEEDS_ATTENTION",
		},
		{
			// First-match-wins: the CRITICAL branch fires on revenue alone
			// even though margin is at target.
			name:    "revenue at 79 percent with healthy margin",
			revenue: 79000, margin: 25, targetRevenue: 100000, targetMargin: 25,
			want: "CRITICAL",
		},
		{
			name:    "revenue at exactly 80 percent",
			revenue: 80000, margin: 10, targetRevenue: 100000, targetMargin: 25,
			want: "NEEDS_ATTENTION",
		},
		{
			name:    "margin slightly under target rescues low revenue",
			revenue: 50000, margin: 20, targetRevenue: 100000, targetMargin: 25,
			want: "NEEDS_ATTENTION", // 20 >= 18.75 and < 25
		},
		{
			name:    "margin collapse with low revenue",
			revenue: 50000, margin: 10, targetRevenue: 100000, targetMargin: 25,
			want: "CRITICAL",
		},
		{
			// No revenue target: ratio defaults to 1, so margin decides.
			name:    "zero target revenue with margin ok",
			revenue: 0, margin: 25, targetRevenue: 0, targetMargin: 25,
			want: "ON_TRACK",
		},
		{
			name:    "zero target revenue with margin short",
			revenue: 0, margin: 10, targetRevenue: 0, targetMargin: 25,
			want: "NEEDS_ATTENTION", // ratio 1 >= 0.8 wins before CRITICAL
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecomputeStatus(tt.revenue, tt.margin, tt.targetRevenue, tt.targetMargin)
			if got != tt.want {
				t.Errorf("RecomputeStatus(%.0f, %.0f, %.0f, %.0f) = %s, want %s",
					tt.revenue, tt.margin, tt.targetRevenue, tt.targetMargin, got, tt.want)
			}
		})
	}
}
