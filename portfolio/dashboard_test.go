package portfolio

import (
	"testing"
	"time"

	"gtm-portfolio/database"
)

func testBrand(name, stage string, revenue, profit, roas, ltv float64) database.Brand {
	return database.Brand{
		Name:           name,
		Stage:          stage,
		MonthlyRevenue: revenue,
		MonthlyProfit:  profit,
		FrontEndRoas:   roas,
		BackEndLtv:     ltv,
	}
}

func TestBuildDashboardEmptyPortfolio(t *testing.T) {
	got := BuildDashboard(DashboardInputs{Now: time.Now()})

	if got.Portfolio.ContributionMargin != 0 {
		t.Errorf("contributionMargin = %f, want 0 for empty portfolio", got.Portfolio.ContributionMargin)
	}
	if got.QuickStats.PortfolioMetrics.BlendedRoas != 0 {
		t.Errorf("blendedRoas = %f, want 0, not NaN", got.QuickStats.PortfolioMetrics.BlendedRoas)
	}
	if got.QuickStats.PortfolioMetrics.AverageLtv != 0 {
		t.Errorf("averageLtv = %f, want 0, not NaN", got.QuickStats.PortfolioMetrics.AverageLtv)
	}
	if got.KeyObsessions.SpeedToBreakeven.AverageDays != 90 {
		t.Errorf("averageDays = %d, want planning default 90", got.KeyObsessions.SpeedToBreakeven.AverageDays)
	}
	if got.Portfolio.ActiveBrandsCount != 0 {
		t.Errorf("activeBrandsCount = %d", got.Portfolio.ActiveBrandsCount)
	}
}

func TestBuildDashboardZeroRevenueNoDivideError(t *testing.T) {
	in := DashboardInputs{
		Now: time.Now(),
		ActiveBrands: []database.Brand{
			testBrand("Pre-launch", "IDEATION", 0, 0, 0, 0),
		},
	}

	got := BuildDashboard(in)
	if got.Portfolio.ContributionMargin != 0 {
		t.Errorf("contributionMargin = %f, want exactly 0 when revenue is 0", got.Portfolio.ContributionMargin)
	}
}

func TestBuildDashboardPortfolioTotals(t *testing.T) {
	in := DashboardInputs{
		Now: time.Now(),
		ActiveBrands: []database.Brand{
			testBrand("A", "SCALE", 100000, 30000, 3.0, 500),
			testBrand("B", "PORTFOLIO", 50000, 10000, 2.0, 300),
		},
	}

	got := BuildDashboard(in)

	if got.Portfolio.TotalRevenue != 150000 {
		t.Errorf("totalRevenue = %f", got.Portfolio.TotalRevenue)
	}
	if got.Portfolio.TotalProfit != 40000 {
		t.Errorf("totalProfit = %f", got.Portfolio.TotalProfit)
	}
	wantMargin := 40000.0 / 150000.0 * 100
	if got.Portfolio.ContributionMargin != wantMargin {
		t.Errorf("contributionMargin = %f, want %f", got.Portfolio.ContributionMargin, wantMargin)
	}
	if got.QuickStats.PortfolioMetrics.BlendedRoas != 2.5 {
		t.Errorf("blendedRoas = %f, want 2.5", got.QuickStats.PortfolioMetrics.BlendedRoas)
	}
	if got.QuickStats.PortfolioMetrics.AverageLtv != 400 {
		t.Errorf("averageLtv = %f, want 400", got.QuickStats.PortfolioMetrics.AverageLtv)
	}
}

func TestBuildDashboardMonthOverMonthChange(t *testing.T) {
	in := DashboardInputs{
		Now: time.Now(),
		ActiveBrands: []database.Brand{
			testBrand("A", "SCALE", 120000, 24000, 3.0, 500),
		},
		PreviousMonth: []database.MetricRollup{
			{MetricType: "REVENUE", Sum: 100000},
			{MetricType: "PROFIT", Sum: 20000},
		},
	}

	got := BuildDashboard(in)

	if got.Portfolio.RevenueChange != 20 {
		t.Errorf("revenueChange = %f, want 20", got.Portfolio.RevenueChange)
	}
	if got.Portfolio.ProfitChange != 20 {
		t.Errorf("profitChange = %f, want 20", got.Portfolio.ProfitChange)
	}
}

func TestBuildDashboardChangeZeroWhenNoPriorMonth(t *testing.T) {
	in := DashboardInputs{
		Now:          time.Now(),
		ActiveBrands: []database.Brand{testBrand("A", "SCALE", 120000, 24000, 3.0, 500)},
	}

	got := BuildDashboard(in)
	if got.Portfolio.RevenueChange != 0 || got.Portfolio.ProfitChange != 0 {
		t.Errorf("changes = %f/%f, want 0/0 with no prior month",
			got.Portfolio.RevenueChange, got.Portfolio.ProfitChange)
	}
}

func TestBuildDashboardPipelineBuckets(t *testing.T) {
	in := DashboardInputs{
		Now: time.Now(),
		ActiveBrands: []database.Brand{
			testBrand("Idea1", "IDEATION", 0, 0, 0, 0),
			testBrand("Idea2", "IDEATION", 0, 0, 0, 0),
			testBrand("Test1", "TESTING", 12000, 2400, 1.8, 350),
			testBrand("Launch1", "LAUNCH", 42000, 8400, 2.1, 280),
			testBrand("Scale1", "SCALE", 125000, 37500, 3.2, 580),
		},
		Visionaries: []database.Visionary{
			{Name: "V1", Stage: "INITIAL_CONTACT"},
			{Name: "V2", Stage: "DISCOVERY_CALL"},
			{Name: "V3", Stage: "NEGOTIATION"},
		},
	}

	got := BuildDashboard(in)

	if got.Pipeline.VisionaryCandidates != 1 {
		t.Errorf("visionaryCandidates = %d, want 1", got.Pipeline.VisionaryCandidates)
	}
	if got.Pipeline.InIdeation != 2 || got.Pipeline.InTesting != 1 || got.Pipeline.ReadyToLaunch != 1 {
		t.Errorf("brand buckets = %d/%d/%d, want 2/1/1",
			got.Pipeline.InIdeation, got.Pipeline.InTesting, got.Pipeline.ReadyToLaunch)
	}
	if got.Pipeline.TotalPipeline != 3 {
		t.Errorf("totalPipeline = %d, want 3", got.Pipeline.TotalPipeline)
	}
	// 3 of target 10
	if got.KeyObsessions.VisionaryPipeline.Health != 30 {
		t.Errorf("pipeline health = %f, want 30", got.KeyObsessions.VisionaryPipeline.Health)
	}
}

func TestBuildDashboardPipelineHealthCapsAt100(t *testing.T) {
	visionaries := make([]database.Visionary, 25)
	for i := range visionaries {
		visionaries[i] = database.Visionary{Stage: "EVALUATION"}
	}

	got := BuildDashboard(DashboardInputs{Now: time.Now(), Visionaries: visionaries})
	if got.KeyObsessions.VisionaryPipeline.Health != 100 {
		t.Errorf("pipeline health = %f, want capped 100", got.KeyObsessions.VisionaryPipeline.Health)
	}
}

func TestBuildDashboardWeeklyFocusCounts(t *testing.T) {
	in := DashboardInputs{
		Now: time.Now(),
		Priorities: []database.Priority{
			{Title: "a", Completed: true},
			{Title: "b", Completed: false},
			{Title: "c", Completed: true},
		},
	}

	got := BuildDashboard(in)
	if got.WeeklyFocus.CompletedCount != 2 || got.WeeklyFocus.TotalCount != 3 {
		t.Errorf("weeklyFocus = %d/%d, want 2/3",
			got.WeeklyFocus.CompletedCount, got.WeeklyFocus.TotalCount)
	}
}

func TestBuildDashboardBrandBreakdownKeepsFetchOrder(t *testing.T) {
	in := DashboardInputs{
		Now: time.Now(),
		ActiveBrands: []database.Brand{
			testBrand("High", "SCALE", 125000, 37500, 3.2, 580),
			testBrand("Mid", "PORTFOLIO", 85000, 21250, 2.8, 420),
			testBrand("Low", "LAUNCH", 42000, 8400, 2.1, 280),
		},
	}

	got := BuildDashboard(in)
	names := make([]string, 0, 3)
	for _, row := range got.KeyObsessions.RoasAndLtv.BrandBreakdown {
		names = append(names, row.BrandName)
	}
	if len(names) != 3 || names[0] != "High" || names[1] != "Mid" || names[2] != "Low" {
		t.Errorf("breakdown order = %v, want fetch order preserved", names)
	}
}

func TestBuildDashboardBreakevenAveragesOnlyKnownValues(t *testing.T) {
	fast, slow := 45, 75
	brands := []database.Brand{
		testBrand("Known1", "SCALE", 100, 10, 1, 1),
		testBrand("Known2", "PORTFOLIO", 100, 10, 1, 1),
		testBrand("Unknown", "LAUNCH", 100, 10, 1, 1),
	}
	brands[0].DaysToBreakeven = &fast
	brands[1].DaysToBreakeven = &slow

	got := BuildDashboard(DashboardInputs{Now: time.Now(), ActiveBrands: brands})

	if got.KeyObsessions.SpeedToBreakeven.AverageDays != 60 {
		t.Errorf("averageDays = %d, want 60", got.KeyObsessions.SpeedToBreakeven.AverageDays)
	}
	fastest := got.KeyObsessions.SpeedToBreakeven.FastestLaunch
	if fastest == nil || fastest.BrandName != "Known1" || fastest.Days != 45 {
		t.Errorf("fastestLaunch = %+v, want Known1/45", fastest)
	}
}
