package api

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"gtm-portfolio/database"
	"gtm-portfolio/helpers"
	"gtm-portfolio/portfolio"
)

// Latest alerts shown on the dashboard.
const dashboardAlertLimit = 10

// dashboardReads is the slice of the repository the dashboard fan-out needs.
// The handler depends on this interface rather than the concrete repository so
// the failure contract can be exercised without a database.
type dashboardReads interface {
	ActiveBrands() ([]database.Brand, error)
	PipelineVisionaries() ([]database.Visionary, error)
	MetricRollups(start, end time.Time) ([]database.MetricRollup, error)
	WeekPriorities(weekStart time.Time) ([]database.Priority, error)
	RecentAlerts(limit int) ([]database.Alert, error)
	CountHouseBrands() (int64, error)
}

// handleGetDashboard assembles the landing dashboard. The seven reads are
// independent, so they run concurrently; any failure fails the request
// rather than serving a partial snapshot.
func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	weekStart := helpers.StartOfWeek(now)
	monthStart, monthEnd := helpers.MonthBounds(now)
	prevStart, prevEnd := helpers.PrevMonthBounds(now)

	inputs := portfolio.DashboardInputs{Now: now}

	var g errgroup.Group
	g.Go(func() error {
		var err error
		inputs.ActiveBrands, err = s.dashboard.ActiveBrands()
		return err
	})
	g.Go(func() error {
		var err error
		inputs.Visionaries, err = s.dashboard.PipelineVisionaries()
		return err
	})
	g.Go(func() error {
		var err error
		inputs.CurrentMonth, err = s.dashboard.MetricRollups(monthStart, monthEnd)
		return err
	})
	g.Go(func() error {
		var err error
		inputs.PreviousMonth, err = s.dashboard.MetricRollups(prevStart, prevEnd)
		return err
	})
	g.Go(func() error {
		var err error
		inputs.Priorities, err = s.dashboard.WeekPriorities(weekStart)
		return err
	})
	g.Go(func() error {
		var err error
		inputs.RecentAlerts, err = s.dashboard.RecentAlerts(dashboardAlertLimit)
		return err
	})
	g.Go(func() error {
		var err error
		inputs.HouseBrandsCount, err = s.dashboard.CountHouseBrands()
		return err
	})

	if err := g.Wait(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch dashboard data", err)
		return
	}

	writeJSON(w, http.StatusOK, portfolio.BuildDashboard(inputs))
}
