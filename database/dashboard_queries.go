package database

import (
	"time"

	models "gtm-portfolio/database/models_pkg"
)

// Dashboard-specific data structures

// MetricRollup is one month's aggregate for a single metric type.
type MetricRollup struct {
	MetricType string  `json:"metricType"`
	Sum        float64 `json:"sum"`
	Avg        float64 `json:"avg"`
}

// Dashboard Query Methods
//
// These seven reads are logically independent; the dashboard handler issues
// them concurrently and fails the whole request if any one errors.

// ActiveBrands returns every brand outside the HOUSE stage, ordered by
// monthly revenue descending, with visionaries attached. This ordering is
// load-bearing: downstream breakdown lists keep it.
func (r *PortfolioRepository) ActiveBrands() ([]Brand, error) {
	var brands []Brand
	err := r.db.db.
		Preload("Visionary").
		Where("stage <> ?", models.StageHouse).
		Order("monthly_revenue DESC").
		Find(&brands).Error
	return brands, err
}

// PipelineVisionaries returns visionaries still in play (not SIGNED or
// PASSED), soonest next action first.
func (r *PortfolioRepository) PipelineVisionaries() ([]Visionary, error) {
	var visionaries []Visionary
	err := r.db.db.
		Where("stage NOT IN ?", []string{models.VisionarySigned, models.VisionaryPassed}).
		Order("next_action_date ASC NULLS LAST").
		Find(&visionaries).Error
	return visionaries, err
}

// MetricRollups aggregates metric rows in [start, end] grouped by type.
func (r *PortfolioRepository) MetricRollups(start, end time.Time) ([]MetricRollup, error) {
	var rollups []MetricRollup
	err := r.db.db.Raw(`
		SELECT
			metric_type,
			COALESCE(SUM(value), 0) AS sum,
			COALESCE(AVG(value), 0) AS avg
		FROM metrics
		WHERE date >= ? AND date <= ?
		GROUP BY metric_type
	`, start, end).Scan(&rollups).Error
	return rollups, err
}

// WeekPriorities returns the given week's priorities, day then manual order.
func (r *PortfolioRepository) WeekPriorities(weekStart time.Time) ([]Priority, error) {
	return r.ListPriorities(weekStart)
}

// RecentAlerts returns the newest alerts, capped at limit.
func (r *PortfolioRepository) RecentAlerts(limit int) ([]Alert, error) {
	var alerts []Alert
	query := r.db.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&alerts).Error
	return alerts, err
}

// CountHouseBrands counts brands that have transitioned to the HOUSE stage.
func (r *PortfolioRepository) CountHouseBrands() (int64, error) {
	var count int64
	err := r.db.db.Model(&Brand{}).
		Where("stage = ?", models.StageHouse).
		Count(&count).Error
	return count, err
}
