package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// How much metric history rides along with brand payloads, per metric type.
// The cap is per type so REVENUE rows are never crowded out of the health
// score's 14-day trend window by other series.
const (
	ListMetricsLimit   = 30
	DetailMetricsLimit = 90
)

// PortfolioRepository handles database operations for the portfolio domain
type PortfolioRepository struct {
	db *Database
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(db *Database) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// InitSchema performs auto-migration for all portfolio tables
func (r *PortfolioRepository) InitSchema() error {
	fmt.Println("🔄 Starting database schema initialization...")

	err := r.db.db.AutoMigrate(
		&User{},
		&Visionary{},
		&Brand{},
		&Metric{},
		&Priority{},
		&Contact{},
		&Decision{},
		&Alert{},
		&Milestone{},
		&Budget{},
		&Note{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	// Composite index for the per-brand metric history reads
	r.db.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_metrics_brand_type_date
		ON metrics (brand_id, metric_type, date DESC)
	`)

	// Week view reads priorities by week, then day and manual order
	r.db.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_priorities_week_day
		ON priorities (week_start_date, day_of_week, sort_order)
	`)

	fmt.Println("✅ Database schema initialization completed successfully")
	return nil
}

// EnsureDemoUser returns the single demo director account, creating it on
// first run. All unauthenticated writes attribute to this user.
func (r *PortfolioRepository) EnsureDemoUser() (*User, error) {
	var user User
	err := r.db.db.Where("role = ?", "DIRECTOR").First(&user).Error
	if err == nil {
		return &user, nil
	}

	user = User{
		Email: "director@company.com",
		Name:  "GTM Director",
		Role:  "DIRECTOR",
	}
	if err := r.db.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create demo user: %w", err)
	}
	return &user, nil
}

// ============================================================================
// Brands
// ============================================================================

// ListBrands returns brands matching the optional stage/status/search filters,
// ordered by monthly revenue descending, each with its visionary and the most
// recent metrics attached.
func (r *PortfolioRepository) ListBrands(stages, statuses []string, search string) ([]Brand, error) {
	var brands []Brand
	query := r.db.db.Preload("Visionary").Order("monthly_revenue DESC")

	if len(stages) > 0 {
		query = query.Where("stage IN ?", stages)
	}
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Find(&brands).Error; err != nil {
		return nil, err
	}

	if err := r.attachRecentMetrics(brands, ListMetricsLimit); err != nil {
		return nil, err
	}
	return brands, nil
}

// GetBrand returns one brand with visionary, recent metric history
// (newest first) and full decision history (newest first).
func (r *PortfolioRepository) GetBrand(id string) (*Brand, error) {
	var brand Brand
	err := r.db.db.
		Preload("Visionary").
		Preload("Decisions", func(db *gorm.DB) *gorm.DB {
			return db.Order("decision_date DESC")
		}).
		First(&brand, "id = ?", id).Error
	if err != nil {
		return nil, notFound("brand", id, err)
	}

	brands := []Brand{brand}
	if err := r.attachRecentMetrics(brands, DetailMetricsLimit); err != nil {
		return nil, err
	}
	return &brands[0], nil
}

// attachRecentMetrics loads up to limit newest metrics per brand and metric
// type. A plain Preload with Limit caps the whole preload query, not each
// brand, so this uses a window-function query instead. Partitioning by type
// keeps the revenue history equally deep on list and detail payloads, so a
// brand's health score is the same on both.
func (r *PortfolioRepository) attachRecentMetrics(brands []Brand, limit int) error {
	if len(brands) == 0 {
		return nil
	}

	ids := make([]string, len(brands))
	for i := range brands {
		ids[i] = brands[i].ID
	}

	var metrics []Metric
	err := r.db.db.Raw(`
		SELECT id, brand_id, metric_type, value, date FROM (
			SELECT m.*, ROW_NUMBER() OVER (PARTITION BY brand_id, metric_type ORDER BY date DESC) AS rn
			FROM metrics m
			WHERE brand_id IN ?
		) ranked
		WHERE rn <= ?
		ORDER BY brand_id, date DESC
	`, ids, limit).Scan(&metrics).Error
	if err != nil {
		return fmt.Errorf("failed to load brand metrics: %w", err)
	}

	byBrand := make(map[string][]Metric, len(brands))
	for _, m := range metrics {
		byBrand[m.BrandID] = append(byBrand[m.BrandID], m)
	}
	for i := range brands {
		brands[i].Metrics = byBrand[brands[i].ID]
	}
	return nil
}

// CreateBrand inserts a new brand and reloads it with its visionary
func (r *PortfolioRepository) CreateBrand(brand *Brand) error {
	if err := r.db.db.Create(brand).Error; err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return r.db.db.Preload("Visionary").First(brand, "id = ?", brand.ID).Error
}

// GetBrandTargets fetches just the fixed targets used by the status recompute
func (r *PortfolioRepository) GetBrandTargets(id string) (targetRevenue, targetMargin float64, err error) {
	var row struct {
		TargetRevenue float64
		TargetMargin  float64
	}
	err = r.db.db.Model(&Brand{}).
		Select("target_revenue", "target_margin").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return 0, 0, notFound("brand", id, err)
	}
	return row.TargetRevenue, row.TargetMargin, nil
}

// UpdateBrand applies a partial update and returns the refreshed brand with
// its visionary. Column names are whitelisted by the handler.
func (r *PortfolioRepository) UpdateBrand(id string, updates map[string]interface{}) (*Brand, error) {
	result := r.db.db.Model(&Brand{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update brand: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: "brand", ID: id}
	}

	var brand Brand
	if err := r.db.db.Preload("Visionary").First(&brand, "id = ?", id).Error; err != nil {
		return nil, notFound("brand", id, err)
	}
	return &brand, nil
}

// DeleteBrand removes a brand and its dependent rows
func (r *PortfolioRepository) DeleteBrand(id string) error {
	return r.db.db.Transaction(func(tx *gorm.DB) error {
		var brand Brand
		if err := tx.First(&brand, "id = ?", id).Error; err != nil {
			return notFound("brand", id, err)
		}
		for _, dependent := range []interface{}{&Metric{}, &Decision{}, &Milestone{}, &Budget{}} {
			if err := tx.Where("brand_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&brand).Error
	})
}

// AppendMetric records a new metric fact for a brand
func (r *PortfolioRepository) AppendMetric(metric *Metric) error {
	return r.db.db.Create(metric).Error
}

// ============================================================================
// Priorities
// ============================================================================

// ListPriorities returns the priorities of one week ordered by day then
// manual order.
func (r *PortfolioRepository) ListPriorities(weekStart time.Time) ([]Priority, error) {
	var priorities []Priority
	err := r.db.db.
		Where("week_start_date = ?", weekStart).
		Order("day_of_week ASC").
		Order("sort_order ASC").
		Find(&priorities).Error
	return priorities, err
}

// CountDayPriorities counts existing tasks on one day of one week; new tasks
// default their order to this count (append to end of day).
func (r *PortfolioRepository) CountDayPriorities(dayOfWeek string, weekStart time.Time) (int64, error) {
	var count int64
	err := r.db.db.Model(&Priority{}).
		Where("day_of_week = ? AND week_start_date = ?", dayOfWeek, weekStart).
		Count(&count).Error
	return count, err
}

// CreatePriority inserts a weekly task
func (r *PortfolioRepository) CreatePriority(priority *Priority) error {
	return r.db.db.Create(priority).Error
}

// UpdatePriority applies a partial update to a weekly task
func (r *PortfolioRepository) UpdatePriority(id string, updates map[string]interface{}) (*Priority, error) {
	result := r.db.db.Model(&Priority{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update priority: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: "priority", ID: id}
	}

	var priority Priority
	if err := r.db.db.First(&priority, "id = ?", id).Error; err != nil {
		return nil, notFound("priority", id, err)
	}
	return &priority, nil
}

// DeletePriority removes a weekly task
func (r *PortfolioRepository) DeletePriority(id string) error {
	result := r.db.db.Delete(&Priority{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "priority", ID: id}
	}
	return nil
}

// ============================================================================
// Visionaries
// ============================================================================

// ListVisionariesWithBrands returns every visionary with owned brands,
// ordered by pipeline stage then next action date.
func (r *PortfolioRepository) ListVisionariesWithBrands() ([]Visionary, error) {
	var visionaries []Visionary
	err := r.db.db.
		Preload("Brands").
		Order("stage ASC").
		Order("next_action_date ASC NULLS LAST").
		Find(&visionaries).Error
	return visionaries, err
}

// CreateVisionary inserts a pipeline candidate
func (r *PortfolioRepository) CreateVisionary(visionary *Visionary) error {
	return r.db.db.Create(visionary).Error
}

// CountBrandsByStage groups brands into stage buckets for the pipeline view
func (r *PortfolioRepository) CountBrandsByStage() (map[string]int64, error) {
	var rows []struct {
		Stage string
		Count int64
	}
	err := r.db.db.Model(&Brand{}).
		Select("stage, COUNT(*) AS count").
		Group("stage").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]int64, len(rows))
	for _, row := range rows {
		breakdown[row.Stage] = row.Count
	}
	return breakdown, nil
}

// ============================================================================
// Contacts
// ============================================================================

// ListContacts returns contacts with optional category/search filters,
// favorites first, then most recently contacted.
func (r *PortfolioRepository) ListContacts(category, search string) ([]Contact, error) {
	var contacts []Contact
	query := r.db.db.
		Order("is_favorite DESC").
		Order("last_contacted DESC NULLS LAST").
		Order("name ASC")

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		query = query.Where("name ILIKE ? OR role ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	err := query.Find(&contacts).Error
	return contacts, err
}

// CreateContact inserts a contact
func (r *PortfolioRepository) CreateContact(contact *Contact) error {
	return r.db.db.Create(contact).Error
}

// ============================================================================
// Notes
// ============================================================================

// ListNotes returns the notes pinned to one entity, newest first, with author
func (r *PortfolioRepository) ListNotes(entityType, entityID string) ([]Note, error) {
	var notes []Note
	err := r.db.db.
		Preload("User").
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

// CreateNote inserts a note and reloads it with its author
func (r *PortfolioRepository) CreateNote(note *Note) error {
	if err := r.db.db.Create(note).Error; err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return r.db.db.Preload("User").First(note, "id = ?", note.ID).Error
}

// ============================================================================
// Alerts
// ============================================================================

// CreateAlert inserts an alert row
func (r *PortfolioRepository) CreateAlert(alert *Alert) error {
	return r.db.db.Create(alert).Error
}

// MarkAlertRead flips an alert's read flag and returns the updated row
func (r *PortfolioRepository) MarkAlertRead(id string) (*Alert, error) {
	result := r.db.db.Model(&Alert{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to mark alert read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: "alert", ID: id}
	}

	var alert Alert
	if err := r.db.db.First(&alert, "id = ?", id).Error; err != nil {
		return nil, notFound("alert", id, err)
	}
	return &alert, nil
}

// ============================================================================
// Decisions / Milestones / Budgets
// ============================================================================

// ListDecisions returns a brand's decision history, newest first
func (r *PortfolioRepository) ListDecisions(brandID string) ([]Decision, error) {
	var decisions []Decision
	err := r.db.db.
		Where("brand_id = ?", brandID).
		Order("decision_date DESC").
		Find(&decisions).Error
	return decisions, err
}

// CreateDecision records an immutable keep/pass/transition judgment
func (r *PortfolioRepository) CreateDecision(decision *Decision) error {
	return r.db.db.Create(decision).Error
}

// ListMilestones returns a brand's milestones ordered by due date
func (r *PortfolioRepository) ListMilestones(brandID string) ([]Milestone, error) {
	var milestones []Milestone
	err := r.db.db.
		Where("brand_id = ?", brandID).
		Order("due_date ASC").
		Find(&milestones).Error
	return milestones, err
}

// CreateMilestone inserts a milestone
func (r *PortfolioRepository) CreateMilestone(milestone *Milestone) error {
	return r.db.db.Create(milestone).Error
}

// ListBudgets returns a brand's monthly budgets, newest month first
func (r *PortfolioRepository) ListBudgets(brandID string) ([]Budget, error) {
	var budgets []Budget
	err := r.db.db.
		Where("brand_id = ?", brandID).
		Order("month DESC").
		Find(&budgets).Error
	return budgets, err
}

// CreateBudget inserts a monthly budget row
func (r *PortfolioRepository) CreateBudget(budget *Budget) error {
	return r.db.db.Create(budget).Error
}

// BrandExists reports whether a brand row exists
func (r *PortfolioRepository) BrandExists(id string) (bool, error) {
	var count int64
	err := r.db.db.Model(&Brand{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
