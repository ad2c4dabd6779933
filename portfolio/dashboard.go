package portfolio

import (
	"math"
	"time"

	"gtm-portfolio/database"
	models "gtm-portfolio/database/models_pkg"
)

// Dashboard aggregation. BuildDashboard is a pure reduction over collections
// the handler has already fetched; it performs no I/O, so the fan-out policy
// (concurrent, all-or-nothing) lives entirely in the API layer.

// Targets surfaced in the key obsessions block.
const (
	pipelineTargetHeadcount = 10
	obsessionTargetRoas     = 3.0
	obsessionTargetLtv      = 500.0
	launchTargetDays        = 90
)

// DashboardInputs carries the seven independently fetched collections.
type DashboardInputs struct {
	Now              time.Time
	ActiveBrands     []database.Brand     // stage != HOUSE, monthly revenue desc
	Visionaries      []database.Visionary // stage not in SIGNED/PASSED
	CurrentMonth     []database.MetricRollup
	PreviousMonth    []database.MetricRollup
	Priorities       []database.Priority
	RecentAlerts     []database.Alert
	HouseBrandsCount int64
}

// PortfolioPerformance is the top-line money block.
type PortfolioPerformance struct {
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalProfit        float64 `json:"totalProfit"`
	ContributionMargin float64 `json:"contributionMargin"`
	ActiveBrandsCount  int     `json:"activeBrandsCount"`
	RevenueChange      float64 `json:"revenueChange"`
	ProfitChange       float64 `json:"profitChange"`
	MarginChange       float64 `json:"marginChange"`
}

// PipelineStatus buckets brands and visionaries by funnel position.
type PipelineStatus struct {
	VisionaryCandidates int `json:"visionaryCandidates"`
	InIdeation          int `json:"inIdeation"`
	InTesting           int `json:"inTesting"`
	ReadyToLaunch       int `json:"readyToLaunch"`
	TotalPipeline       int `json:"totalPipeline"`
}

// WeeklyFocus is the week's priorities with completion tallies.
type WeeklyFocus struct {
	Priorities     []database.Priority `json:"priorities"`
	CompletedCount int                 `json:"completedCount"`
	TotalCount     int                 `json:"totalCount"`
}

// QuickStats mirrors the dashboard's right-rail stat cards.
type QuickStats struct {
	PortfolioMetrics struct {
		TotalRevenue  float64 `json:"totalRevenue"`
		TotalProfit   float64 `json:"totalProfit"`
		BlendedRoas   float64 `json:"blendedRoas"`
		AverageLtv    float64 `json:"averageLtv"`
		RevenueChange float64 `json:"revenueChange"`
		ProfitChange  float64 `json:"profitChange"`
	} `json:"portfolioMetrics"`
	TeamPerformance struct {
		AvgCpa          float64 `json:"avgCpa"`
		AvgCloseRate    float64 `json:"avgCloseRate"`
		AvgResponseTime float64 `json:"avgResponseTime"`
	} `json:"teamPerformance"`
	PipelineHealth struct {
		VisionariesInPipeline int `json:"visionariesInPipeline"`
		ConceptsInValidation  int `json:"conceptsInValidation"`
		LaunchingThisQuarter  int `json:"launchingThisQuarter"`
	} `json:"pipelineHealth"`
}

// BrandRoasLtv is one row of the per-brand economics breakdown.
type BrandRoasLtv struct {
	BrandName string  `json:"brandName"`
	Roas      float64 `json:"roas"`
	Ltv       float64 `json:"ltv"`
}

// LaunchProgress tracks one LAUNCH-stage brand against its runway target.
type LaunchProgress struct {
	BrandName   string `json:"brandName"`
	DaysElapsed int    `json:"daysElapsed"`
	TargetDays  int    `json:"targetDays"`
}

// FastestLaunch names the brand with the shortest breakeven.
type FastestLaunch struct {
	BrandName string `json:"brandName"`
	Days      int    `json:"days"`
}

// KeyObsessions is the "what the director stares at" block.
type KeyObsessions struct {
	VisionaryPipeline struct {
		Health             float64              `json:"health"`
		NextCall           *time.Time           `json:"nextCall"`
		DealsInNegotiation []database.Visionary `json:"dealsInNegotiation"`
	} `json:"visionaryPipeline"`
	ConceptValidation struct {
		BrandsInValidation []database.Brand `json:"brandsInValidation"`
	} `json:"conceptValidation"`
	SpeedToBreakeven struct {
		AverageDays     int              `json:"averageDays"`
		FastestLaunch   *FastestLaunch   `json:"fastestLaunch"`
		CurrentLaunches []LaunchProgress `json:"currentLaunches"`
	} `json:"speedToBreakeven"`
	RoasAndLtv struct {
		PortfolioAvgRoas float64        `json:"portfolioAvgRoas"`
		PortfolioAvgLtv  float64        `json:"portfolioAvgLtv"`
		TargetRoas       float64        `json:"targetRoas"`
		TargetLtv        float64        `json:"targetLtv"`
		BrandBreakdown   []BrandRoasLtv `json:"brandBreakdown"`
	} `json:"roasAndLtv"`
	KeepPassDecisions struct {
		BrandsInPortfolio         int   `json:"brandsInPortfolio"`
		BrandsTransitionedToHouse int64 `json:"brandsTransitionedToHouse"`
	} `json:"keepPassDecisions"`
}

// DashboardData is the full landing-dashboard snapshot.
type DashboardData struct {
	Portfolio     PortfolioPerformance `json:"portfolio"`
	Pipeline      PipelineStatus       `json:"pipeline"`
	WeeklyFocus   WeeklyFocus          `json:"weeklyFocus"`
	ActiveBrands  []database.Brand     `json:"activeBrands"`
	RecentAlerts  []database.Alert     `json:"recentAlerts"`
	QuickStats    QuickStats           `json:"quickStats"`
	KeyObsessions KeyObsessions        `json:"keyObsessions"`
}

// BuildDashboard reduces the fetched collections into the dashboard snapshot.
// Every division guards its denominator: empty portfolios produce zeros, not
// NaN.
func BuildDashboard(in DashboardInputs) DashboardData {
	brands := in.ActiveBrands
	visionaries := in.Visionaries

	// Portfolio totals.
	totalRevenue, totalProfit := 0.0, 0.0
	for _, b := range brands {
		totalRevenue += b.MonthlyRevenue
		totalProfit += b.MonthlyProfit
	}
	contributionMargin := 0.0
	if totalRevenue > 0 {
		contributionMargin = totalProfit / totalRevenue * 100
	}

	lastMonthRevenue := rollupSum(in.PreviousMonth, models.MetricRevenue)
	lastMonthProfit := rollupSum(in.PreviousMonth, models.MetricProfit)
	revenueChange := percentChange(totalRevenue, lastMonthRevenue)
	profitChange := percentChange(totalProfit, lastMonthProfit)

	// Pipeline buckets.
	pipeline := PipelineStatus{
		VisionaryCandidates: countVisionariesInStage(visionaries, models.VisionaryInitialContact),
		InIdeation:          countBrandsInStage(brands, models.StageIdeation),
		InTesting:           countBrandsInStage(brands, models.StageTesting),
		ReadyToLaunch:       countBrandsInStage(brands, models.StageLaunch),
		TotalPipeline:       len(visionaries),
	}

	// Weekly focus.
	completed := 0
	for _, p := range in.Priorities {
		if p.Completed {
			completed++
		}
	}
	weeklyFocus := WeeklyFocus{
		Priorities:     in.Priorities,
		CompletedCount: completed,
		TotalCount:     len(in.Priorities),
	}

	// Averages with a denominator floor of 1 so empty portfolios yield 0.
	brandDenominator := float64(len(brands))
	if brandDenominator == 0 {
		brandDenominator = 1
	}
	avgRoas, avgLtv := 0.0, 0.0
	for _, b := range brands {
		avgRoas += b.FrontEndRoas
		avgLtv += b.BackEndLtv
	}
	avgRoas /= brandDenominator
	avgLtv /= brandDenominator

	var quickStats QuickStats
	quickStats.PortfolioMetrics.TotalRevenue = totalRevenue
	quickStats.PortfolioMetrics.TotalProfit = totalProfit
	quickStats.PortfolioMetrics.BlendedRoas = avgRoas
	quickStats.PortfolioMetrics.AverageLtv = avgLtv
	quickStats.PortfolioMetrics.RevenueChange = revenueChange
	quickStats.PortfolioMetrics.ProfitChange = profitChange
	quickStats.TeamPerformance.AvgCpa = rollupAvg(in.CurrentMonth, models.MetricCPA)
	quickStats.TeamPerformance.AvgCloseRate = rollupAvg(in.CurrentMonth, models.MetricCloseRate)
	quickStats.TeamPerformance.AvgResponseTime = 2.5 // hours; no source table yet
	quickStats.PipelineHealth.VisionariesInPipeline = pipeline.VisionaryCandidates
	quickStats.PipelineHealth.ConceptsInValidation = pipeline.InIdeation + pipeline.InTesting
	quickStats.PipelineHealth.LaunchingThisQuarter = pipeline.ReadyToLaunch

	// Key obsessions.
	var obsessions KeyObsessions

	obsessions.VisionaryPipeline.Health = math.Min(100, float64(pipeline.TotalPipeline)/pipelineTargetHeadcount*100)
	deals := visionariesInStage(visionaries, models.VisionaryNegotiation)
	obsessions.VisionaryPipeline.DealsInNegotiation = deals
	if len(deals) > 0 {
		obsessions.VisionaryPipeline.NextCall = deals[0].NextActionDate
	}

	validation := make([]database.Brand, 0)
	for _, b := range brands {
		if b.Stage == models.StageIdeation || b.Stage == models.StageTesting {
			validation = append(validation, b)
		}
	}
	obsessions.ConceptValidation.BrandsInValidation = validation

	breakevenSum, breakevenCount := 0, 0
	var fastest *FastestLaunch
	for _, b := range brands {
		if b.DaysToBreakeven == nil {
			continue
		}
		breakevenSum += *b.DaysToBreakeven
		breakevenCount++
		if fastest == nil || *b.DaysToBreakeven < fastest.Days {
			fastest = &FastestLaunch{BrandName: b.Name, Days: *b.DaysToBreakeven}
		}
	}
	denominator := breakevenCount
	if denominator == 0 {
		denominator = 1
	}
	averageDays := int(math.Round(float64(breakevenSum) / float64(denominator)))
	if averageDays == 0 {
		averageDays = 90 // nothing measured yet; show the planning default
	}
	obsessions.SpeedToBreakeven.AverageDays = averageDays
	obsessions.SpeedToBreakeven.FastestLaunch = fastest

	launches := make([]LaunchProgress, 0)
	for _, b := range brands {
		if b.Stage != models.StageLaunch {
			continue
		}
		elapsed := 0
		if b.LaunchDate != nil {
			elapsed = int(in.Now.Sub(*b.LaunchDate).Hours() / 24)
		}
		launches = append(launches, LaunchProgress{
			BrandName:   b.Name,
			DaysElapsed: elapsed,
			TargetDays:  launchTargetDays,
		})
	}
	obsessions.SpeedToBreakeven.CurrentLaunches = launches

	obsessions.RoasAndLtv.PortfolioAvgRoas = avgRoas
	obsessions.RoasAndLtv.PortfolioAvgLtv = avgLtv
	obsessions.RoasAndLtv.TargetRoas = obsessionTargetRoas
	obsessions.RoasAndLtv.TargetLtv = obsessionTargetLtv
	breakdown := make([]BrandRoasLtv, 0, len(brands))
	for _, b := range brands {
		// Insertion order == revenue-desc fetch order; kept unsorted.
		breakdown = append(breakdown, BrandRoasLtv{BrandName: b.Name, Roas: b.FrontEndRoas, Ltv: b.BackEndLtv})
	}
	obsessions.RoasAndLtv.BrandBreakdown = breakdown

	obsessions.KeepPassDecisions.BrandsInPortfolio = countBrandsInStage(brands, models.StagePortfolio)
	obsessions.KeepPassDecisions.BrandsTransitionedToHouse = in.HouseBrandsCount

	return DashboardData{
		Portfolio: PortfolioPerformance{
			TotalRevenue:       totalRevenue,
			TotalProfit:        totalProfit,
			ContributionMargin: contributionMargin,
			ActiveBrandsCount:  len(brands),
			RevenueChange:      revenueChange,
			ProfitChange:       profitChange,
			MarginChange:       0,
		},
		Pipeline:      pipeline,
		WeeklyFocus:   weeklyFocus,
		ActiveBrands:  brands,
		RecentAlerts:  in.RecentAlerts,
		QuickStats:    quickStats,
		KeyObsessions: obsessions,
	}
}

// percentChange returns the percent delta of current vs previous, 0 when the
// previous-period denominator is 0 or absent.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func rollupSum(rollups []database.MetricRollup, metricType string) float64 {
	for _, r := range rollups {
		if r.MetricType == metricType {
			return r.Sum
		}
	}
	return 0
}

func rollupAvg(rollups []database.MetricRollup, metricType string) float64 {
	for _, r := range rollups {
		if r.MetricType == metricType {
			return r.Avg
		}
	}
	return 0
}

func countBrandsInStage(brands []database.Brand, stage string) int {
	count := 0
	for _, b := range brands {
		if b.Stage == stage {
			count++
		}
	}
	return count
}

func countVisionariesInStage(visionaries []database.Visionary, stage string) int {
	return len(visionariesInStage(visionaries, stage))
}

func visionariesInStage(visionaries []database.Visionary, stage string) []database.Visionary {
	out := make([]database.Visionary, 0)
	for _, v := range visionaries {
		if v.Stage == stage {
			out = append(out, v)
		}
	}
	return out
}
