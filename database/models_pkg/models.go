// Package models defines the data models for the GTM portfolio service.
//
// All entities use string UUID primary keys (assigned in BeforeCreate hooks)
// so that API paths like /api/brands/{id} carry opaque string identifiers.
// Enum-like columns are plain strings constrained by the constants below;
// the values are part of the JSON contract and must not be renamed.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brand lifecycle stages. Stage is lifecycle position; Status (below) is
// performance health. The two axes are independent.
const (
	StageIdeation  = "IDEATION"
	StageTesting   = "TESTING"
	StageLaunch    = "LAUNCH"
	StageScale     = "SCALE"
	StagePortfolio = "PORTFOLIO"
	StageHouse     = "HOUSE"
)

// Brand performance statuses.
const (
	StatusOnTrack        = "ON_TRACK"
	StatusNeedsAttention = "NEEDS_ATTENTION"
	StatusCritical       = "CRITICAL"
)

// Visionary pipeline stages.
const (
	VisionaryInitialContact = "INITIAL_CONTACT"
	VisionaryDiscoveryCall  = "DISCOVERY_CALL"
	VisionaryEvaluation     = "EVALUATION"
	VisionaryNegotiation    = "NEGOTIATION"
	VisionarySigned         = "SIGNED"
	VisionaryPassed         = "PASSED"
)

// Metric types.
const (
	MetricRevenue   = "REVENUE"
	MetricProfit    = "PROFIT"
	MetricRoas      = "ROAS"
	MetricCPA       = "CPA"
	MetricCloseRate = "CLOSE_RATE"
)

// Days of week for priorities.
const (
	DayMonday    = "MONDAY"
	DayTuesday   = "TUESDAY"
	DayWednesday = "WEDNESDAY"
	DayThursday  = "THURSDAY"
	DayFriday    = "FRIDAY"
	DaySaturday  = "SATURDAY"
	DaySunday    = "SUNDAY"
)

// Contact categories.
const (
	ContactExecutive = "EXECUTIVE"
	ContactTeam      = "TEAM"
	ContactPartner   = "PARTNER"
	ContactVendor    = "VENDOR"
)

// Decision types.
const (
	DecisionKeep            = "KEEP"
	DecisionPass            = "PASS"
	DecisionTransitionHouse = "TRANSITION_HOUSE"
)

// Alert types.
const (
	AlertDecisionDue = "DECISION_DUE"
	AlertMetricDrop  = "METRIC_DROP"
	AlertMilestone   = "MILESTONE"
	AlertPipeline    = "PIPELINE"
)

// Note entity types.
const (
	EntityBrand     = "BRAND"
	EntityVisionary = "VISIONARY"
	EntityContact   = "CONTACT"
)

// Brand represents a tracked product/venture moving through lifecycle stages.
//
// Key Fields:
//   - Stage: lifecycle position (IDEATION through HOUSE)
//   - Status: performance health, recomputed on PATCH when revenue/margin change
//   - MonthlyRevenue/MonthlyProfit/ContributionMargin: current financial snapshot
//   - FrontEndRoas/BackEndLtv: acquisition economics
//   - TargetRevenue/TargetMargin: fixed targets the status recompute measures against
//   - DaysToBreakeven: nil until known; the health score substitutes a default
type Brand struct {
	ID                 string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string     `gorm:"size:120;not null;index" json:"name"`
	VisionaryID        *string    `gorm:"type:uuid;index" json:"visionaryId,omitempty"`
	Visionary          *Visionary `json:"visionary,omitempty"`
	LaunchDate         *time.Time `json:"launchDate,omitempty"`
	Stage              string     `gorm:"size:20;not null;default:IDEATION;index" json:"stage"`
	Status             string     `gorm:"size:20;not null;default:ON_TRACK;index" json:"status"`
	MonthlyRevenue     float64    `gorm:"type:decimal(15,2);not null;default:0" json:"monthlyRevenue"`
	MonthlyProfit      float64    `gorm:"type:decimal(15,2);not null;default:0" json:"monthlyProfit"`
	ContributionMargin float64    `gorm:"type:decimal(5,2);not null;default:0" json:"contributionMargin"`
	FrontEndRoas       float64    `gorm:"type:decimal(6,2);not null;default:0" json:"frontEndRoas"`
	BackEndLtv         float64    `gorm:"type:decimal(12,2);not null;default:0" json:"backEndLtv"`
	DaysToBreakeven    *int       `json:"daysToBreakeven,omitempty"`
	TargetRevenue      float64    `gorm:"type:decimal(15,2);not null;default:0" json:"targetRevenue"`
	TargetMargin       float64    `gorm:"type:decimal(5,2);not null;default:20" json:"targetMargin"`
	ThisWeekFocus      *string    `gorm:"type:text" json:"thisWeekFocus,omitempty"`
	Metrics            []Metric   `json:"metrics,omitempty"`
	Decisions          []Decision `json:"decisions,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for Brand
func (Brand) TableName() string {
	return "brands"
}

// BeforeCreate assigns a UUID when none is set
func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Metric is an immutable time-series fact for one brand. Rows are append-only;
// the seed produces one row per brand per type per day.
type Metric struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID    string    `gorm:"type:uuid;not null;index" json:"brandId"`
	MetricType string    `gorm:"size:20;not null;index" json:"metricType"`
	Value      float64   `gorm:"type:decimal(15,2);not null" json:"value"`
	Date       time.Time `gorm:"not null;index" json:"date"`
}

// TableName specifies the table name for Metric
func (Metric) TableName() string {
	return "metrics"
}

// BeforeCreate assigns a UUID when none is set
func (m *Metric) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Visionary is a partner candidate moving through the sign-on pipeline.
// A signed visionary can own zero or more brands.
type Visionary struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string     `gorm:"size:120;not null" json:"name"`
	Email          string     `gorm:"size:255" json:"email"`
	Phone          string     `gorm:"size:40" json:"phone,omitempty"`
	Company        string     `gorm:"size:120" json:"company,omitempty"`
	Industry       string     `gorm:"size:120" json:"industry,omitempty"`
	Stage          string     `gorm:"size:20;not null;default:INITIAL_CONTACT;index" json:"stage"`
	NextAction     string     `gorm:"type:text" json:"nextAction,omitempty"`
	NextActionDate *time.Time `gorm:"index" json:"nextActionDate,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes,omitempty"`
	Brands         []Brand    `json:"brands,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for Visionary
func (Visionary) TableName() string {
	return "visionaries"
}

// BeforeCreate assigns a UUID when none is set
func (v *Visionary) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Priority is a weekly task pinned to a day. WeekStartDate is always the ISO
// Monday of its week; Order sequences tasks manually within a day.
type Priority struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string    `gorm:"type:uuid;not null;index" json:"userId"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   *string   `gorm:"type:text" json:"description,omitempty"`
	DayOfWeek     string    `gorm:"size:10;not null" json:"dayOfWeek"`
	WeekStartDate time.Time `gorm:"not null;index" json:"weekStartDate"`
	Completed     bool      `gorm:"not null;default:false" json:"completed"`
	Order         int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Priority
func (Priority) TableName() string {
	return "priorities"
}

// BeforeCreate assigns a UUID when none is set
func (p *Priority) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Contact is an address-book entry surfaced on the dashboard.
type Contact struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string     `gorm:"size:120;not null" json:"name"`
	Role          string     `gorm:"size:120" json:"role,omitempty"`
	Category      string     `gorm:"size:20;not null;default:TEAM;index" json:"category"`
	Email         string     `gorm:"size:255" json:"email,omitempty"`
	Phone         string     `gorm:"size:40" json:"phone,omitempty"`
	AvatarURL     *string    `gorm:"size:500" json:"avatarUrl,omitempty"`
	IsFavorite    bool       `gorm:"not null;default:false" json:"isFavorite"`
	LastContacted *time.Time `json:"lastContacted,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}

// BeforeCreate assigns a UUID when none is set
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Decision is an immutable historical record of a keep/pass/transition
// judgment on a brand.
type Decision struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID      string    `gorm:"type:uuid;not null;index" json:"brandId"`
	DecisionType string    `gorm:"size:20;not null" json:"decisionType"`
	DecisionDate time.Time `gorm:"not null;index" json:"decisionDate"`
	Reasoning    *string   `gorm:"type:text" json:"reasoning,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName specifies the table name for Decision
func (Decision) TableName() string {
	return "decisions"
}

// BeforeCreate assigns a UUID when none is set
func (d *Decision) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// Alert is a notification row shown on the dashboard until marked read.
type Alert struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message,omitempty"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"isRead"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for Alert
func (Alert) TableName() string {
	return "alerts"
}

// BeforeCreate assigns a UUID when none is set
func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Milestone is a dated deliverable attached to a brand.
type Milestone struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID     string    `gorm:"type:uuid;not null;index" json:"brandId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	DueDate     time.Time `gorm:"not null;index" json:"dueDate"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Milestone
func (Milestone) TableName() string {
	return "milestones"
}

// BeforeCreate assigns a UUID when none is set
func (m *Milestone) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Budget is a per-brand monthly spend/revenue rollup. Month is normalized to
// the first day of its month.
type Budget struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	BrandID   string    `gorm:"type:uuid;not null;index" json:"brandId"`
	Month     time.Time `gorm:"not null;index" json:"month"`
	AdSpend   float64   `gorm:"type:decimal(15,2);not null;default:0" json:"adSpend"`
	Revenue   float64   `gorm:"type:decimal(15,2);not null;default:0" json:"revenue"`
	Profit    float64   `gorm:"type:decimal(15,2);not null;default:0" json:"profit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Budget
func (Budget) TableName() string {
	return "budgets"
}

// BeforeCreate assigns a UUID when none is set
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Note is free-form text attached to a brand, visionary, or contact.
type Note struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"userId"`
	User       *User     `json:"user,omitempty"`
	EntityType string    `gorm:"size:20;not null;index:idx_notes_entity" json:"entityType"`
	EntityID   string    `gorm:"type:uuid;not null;index:idx_notes_entity" json:"entityId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Note
func (Note) TableName() string {
	return "notes"
}

// BeforeCreate assigns a UUID when none is set
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// User is the acting account. The system currently runs with a single demo
// director user and no authentication.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:120" json:"name"`
	Role      string    `gorm:"size:40;not null;default:DIRECTOR" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
