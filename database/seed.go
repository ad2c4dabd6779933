package database

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	models "gtm-portfolio/database/models_pkg"
	"gtm-portfolio/helpers"
)

// Seed days of daily metric history per non-ideation brand.
const seedMetricDays = 30

// Seeder loads demo data on first run. Metric history (thousands of rows) goes
// through COPY on the raw connection; everything else goes through GORM so the
// usual hooks assign IDs.
type Seeder struct {
	db  *Database
	raw *sql.DB
}

// NewSeeder creates a seeder over the GORM connection and the raw COPY path
func NewSeeder(db *Database, raw *sql.DB) *Seeder {
	return &Seeder{db: db, raw: raw}
}

// Run seeds demo data unless brands already exist
func (s *Seeder) Run(user *User) error {
	var count int64
	if err := s.db.db.Model(&Brand{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing brands: %w", err)
	}
	if count > 0 {
		log.Println("📦 Database already seeded, skipping")
		return nil
	}

	log.Println("🌱 Seeding demo data...")
	now := time.Now()

	visionaries, err := s.seedVisionaries(now)
	if err != nil {
		return err
	}
	brands, err := s.seedBrands(visionaries, now)
	if err != nil {
		return err
	}
	if err := s.seedPriorities(user.ID, now); err != nil {
		return err
	}
	if err := s.seedContacts(now); err != nil {
		return err
	}
	if err := s.seedMetrics(brands, now); err != nil {
		return err
	}
	if err := s.seedAlerts(user.ID); err != nil {
		return err
	}
	if err := s.seedMilestonesAndBudgets(brands, now); err != nil {
		return err
	}

	log.Println("✅ Seeding complete")
	return nil
}

func (s *Seeder) seedVisionaries(now time.Time) ([]Visionary, error) {
	in3, in1, in2 := now.AddDate(0, 0, 3), now.AddDate(0, 0, 1), now.AddDate(0, 0, 2)
	visionaries := []Visionary{
		{
			Name: "John Smith", Email: "john@example.com", Phone: "+1 (555) 123-4567",
			Company: "Smith Education Co", Industry: "Online Courses",
			Stage:      models.VisionaryNegotiation,
			NextAction: "Follow up on contract terms", NextActionDate: &in3,
			Notes: "Very interested, discussing revenue share terms",
		},
		{
			Name: "Sarah Johnson", Email: "sarah@example.com",
			Company: "Digital Learning Hub", Industry: "E-Learning",
			Stage:      models.VisionaryDiscoveryCall,
			NextAction: "Schedule discovery call", NextActionDate: &in1,
		},
		{
			Name: "Mike Williams", Email: "mike@example.com",
			Company: "Williams Academy", Industry: "Professional Training",
			Stage:      models.VisionaryInitialContact,
			NextAction: "Send intro email", NextActionDate: &now,
		},
		{
			Name: "Emily Chen", Email: "emily@example.com",
			Company: "Chen Coaching", Industry: "Life Coaching",
			Stage:      models.VisionaryEvaluation,
			NextAction: "Review proposal feedback", NextActionDate: &in2,
		},
		{
			Name: "David Brown", Email: "david@example.com",
			Company: "Brown Business School", Industry: "Business Education",
			Stage: models.VisionarySigned,
		},
	}

	if err := s.db.db.Create(&visionaries).Error; err != nil {
		return nil, fmt.Errorf("failed to seed visionaries: %w", err)
	}
	log.Printf("   created %d visionaries", len(visionaries))
	return visionaries, nil
}

func (s *Seeder) seedBrands(visionaries []Visionary, now time.Time) ([]Brand, error) {
	launch120 := now.AddDate(0, 0, -120)
	launch90 := now.AddDate(0, 0, -90)
	launch60 := now.AddDate(0, 0, -60)
	launch200 := now.AddDate(0, 0, -200)
	breakeven45, breakeven62, breakeven90 := 45, 62, 90

	scaleFocus := "Scale Meta campaigns to $50k/day"
	portfolioFocus := "Launch new email nurture sequence"
	launchFocus := "Optimize landing page conversion"
	testingFocus := "Test 3 new ad creatives"
	ideationFocus := "Complete market research"

	brands := []Brand{
		{
			Name: "MasterClass Pro", VisionaryID: &visionaries[4].ID, LaunchDate: &launch120,
			Stage: models.StageScale, Status: models.StatusOnTrack,
			MonthlyRevenue: 125000, MonthlyProfit: 37500, ContributionMargin: 30,
			FrontEndRoas: 3.2, BackEndLtv: 580,
			TargetRevenue: 100000, TargetMargin: 25,
			ThisWeekFocus: &scaleFocus, DaysToBreakeven: &breakeven45,
		},
		{
			Name: "Leadership Academy", LaunchDate: &launch90,
			Stage: models.StagePortfolio, Status: models.StatusOnTrack,
			MonthlyRevenue: 85000, MonthlyProfit: 21250, ContributionMargin: 25,
			FrontEndRoas: 2.8, BackEndLtv: 420,
			TargetRevenue: 75000, TargetMargin: 20,
			ThisWeekFocus: &portfolioFocus, DaysToBreakeven: &breakeven62,
		},
		{
			Name: "Fitness Foundations", LaunchDate: &launch60,
			Stage: models.StageLaunch, Status: models.StatusNeedsAttention,
			MonthlyRevenue: 42000, MonthlyProfit: 8400, ContributionMargin: 20,
			FrontEndRoas: 2.1, BackEndLtv: 280,
			TargetRevenue: 50000, TargetMargin: 20,
			ThisWeekFocus: &launchFocus,
		},
		{
			Name:  "Finance Freedom",
			Stage: models.StageTesting, Status: models.StatusOnTrack,
			MonthlyRevenue: 12000, MonthlyProfit: 2400, ContributionMargin: 20,
			FrontEndRoas: 1.8, BackEndLtv: 350,
			TargetRevenue: 25000, TargetMargin: 18,
			ThisWeekFocus: &testingFocus,
		},
		{
			Name:  "Coding Bootcamp",
			Stage: models.StageIdeation, Status: models.StatusOnTrack,
			TargetRevenue: 50000, TargetMargin: 25,
			ThisWeekFocus: &ideationFocus,
		},
		{
			Name: "Art Mastery", LaunchDate: &launch200,
			Stage: models.StageHouse, Status: models.StatusOnTrack,
			MonthlyRevenue: 15000, MonthlyProfit: 2250, ContributionMargin: 15,
			FrontEndRoas: 1.5, BackEndLtv: 180,
			TargetRevenue: 20000, TargetMargin: 15,
			DaysToBreakeven: &breakeven90,
		},
	}

	if err := s.db.db.Create(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to seed brands: %w", err)
	}
	log.Printf("   created %d brands", len(brands))
	return brands, nil
}

func (s *Seeder) seedPriorities(userID string, now time.Time) error {
	weekStart := helpers.StartOfWeek(now)
	rows := []struct {
		title     string
		day       string
		completed bool
		order     int
	}{
		{"Review weekly metrics dashboard", models.DayMonday, true, 0},
		{"Team standup and planning", models.DayMonday, true, 1},
		{"Call with John Smith re: contract", models.DayMonday, false, 2},
		{"Review MasterClass Pro campaign performance", models.DayTuesday, false, 0},
		{"Fitness Foundations optimization meeting", models.DayTuesday, false, 1},
		{"Finance Freedom creative review", models.DayWednesday, false, 0},
		{"Discovery call with Sarah Johnson", models.DayWednesday, false, 1},
		{"Portfolio review meeting", models.DayThursday, false, 0},
		{"Weekly report and planning", models.DayFriday, false, 0},
	}

	priorities := make([]Priority, 0, len(rows))
	for _, row := range rows {
		priorities = append(priorities, Priority{
			UserID:        userID,
			Title:         row.title,
			DayOfWeek:     row.day,
			WeekStartDate: weekStart,
			Completed:     row.completed,
			Order:         row.order,
		})
	}
	if err := s.db.db.Create(&priorities).Error; err != nil {
		return fmt.Errorf("failed to seed priorities: %w", err)
	}
	log.Printf("   created %d priorities", len(priorities))
	return nil
}

func (s *Seeder) seedContacts(now time.Time) error {
	yesterday := now.AddDate(0, 0, -1)
	twoDaysAgo := now.AddDate(0, 0, -2)
	threeDaysAgo := now.AddDate(0, 0, -3)

	contacts := []Contact{
		{Name: "Sarah Chen", Role: "CEO", Category: models.ContactExecutive,
			Email: "sarah@company.com", Phone: "+1 (555) 123-4567",
			IsFavorite: true, LastContacted: &yesterday},
		{Name: "Mike Johnson", Role: "Head of Marketing", Category: models.ContactTeam,
			Email: "mike@company.com", Phone: "+1 (555) 234-5678",
			IsFavorite: true, LastContacted: &now},
		{Name: "Emily Davis", Role: "Copywriter Lead", Category: models.ContactTeam,
			Email: "emily@company.com", LastContacted: &twoDaysAgo},
		{Name: "David Wilson", Role: "Meta Ads Partner", Category: models.ContactPartner,
			Email: "david@agency.com", Phone: "+1 (555) 345-6789"},
		{Name: "Lisa Park", Role: "CFO", Category: models.ContactExecutive,
			Email: "lisa@company.com"},
		{Name: "Tom Roberts", Role: "Sales Lead", Category: models.ContactTeam,
			Email: "tom@company.com", Phone: "+1 (555) 456-7890",
			LastContacted: &threeDaysAgo},
	}

	if err := s.db.db.Create(&contacts).Error; err != nil {
		return fmt.Errorf("failed to seed contacts: %w", err)
	}
	log.Printf("   created %d contacts", len(contacts))
	return nil
}

// seedMetrics bulk-loads daily REVENUE/PROFIT/ROAS rows for every brand past
// ideation via COPY. Values wander around each brand's monthly snapshot.
func (s *Seeder) seedMetrics(brands []Brand, now time.Time) error {
	tx, err := s.raw.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin metric seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(pq.CopyIn("metrics", "id", "brand_id", "metric_type", "value", "date"))
	if err != nil {
		return fmt.Errorf("failed to prepare metric copy: %w", err)
	}

	total := 0
	for _, brand := range brands {
		if brand.Stage == models.StageIdeation {
			continue
		}
		baseRevenue := brand.MonthlyRevenue / seedMetricDays
		for i := 0; i < seedMetricDays; i++ {
			date := now.AddDate(0, 0, -i)
			variance := (rand.Float64() - 0.5) * 0.3 // +/- 15%
			revenue := baseRevenue * (1 + variance)

			rows := []struct {
				metricType string
				value      float64
			}{
				{models.MetricRevenue, revenue},
				{models.MetricProfit, revenue * brand.ContributionMargin / 100},
				{models.MetricRoas, brand.FrontEndRoas * (1 + (rand.Float64()-0.5)*0.2)},
			}
			for _, row := range rows {
				if _, err := stmt.Exec(uuid.NewString(), brand.ID, row.metricType, row.value, date); err != nil {
					stmt.Close()
					return fmt.Errorf("failed to copy metric row: %w", err)
				}
				total++
			}
		}
	}

	// Flush the COPY buffer
	if _, err := stmt.Exec(); err != nil {
		stmt.Close()
		return fmt.Errorf("failed to flush metric copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close metric copy: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit metric seed: %w", err)
	}

	log.Printf("   created %d metrics", total)
	return nil
}

func (s *Seeder) seedAlerts(userID string) error {
	alerts := []Alert{
		{UserID: userID, Type: models.AlertDecisionDue,
			Title:   "Keep/Pass Decision Due",
			Message: "Fitness Foundations requires a keep/pass decision within 7 days"},
		{UserID: userID, Type: models.AlertMilestone,
			Title:   "Revenue Milestone",
			Message: "MasterClass Pro hit $125K monthly revenue!", IsRead: true},
		{UserID: userID, Type: models.AlertPipeline,
			Title:   "Follow-up Overdue",
			Message: "Follow up with Emily Chen is overdue by 2 days"},
	}

	if err := s.db.db.Create(&alerts).Error; err != nil {
		return fmt.Errorf("failed to seed alerts: %w", err)
	}
	log.Printf("   created %d alerts", len(alerts))
	return nil
}

func (s *Seeder) seedMilestonesAndBudgets(brands []Brand, now time.Time) error {
	// Milestones for the flagship brand
	flagship := brands[0]
	goal90 := "Reach $100K MRR within 90 days"
	goal180 := "Reach $500K MRR by month 6"
	milestones := []Milestone{
		{BrandID: flagship.ID, Title: "90-Day Revenue Goal",
			Description: &goal90, DueDate: now.AddDate(0, 0, 45)},
		{BrandID: flagship.ID, Title: "6-Month Revenue Goal",
			Description: &goal180, DueDate: now.AddDate(0, 0, 120)},
	}
	if err := s.db.db.Create(&milestones).Error; err != nil {
		return fmt.Errorf("failed to seed milestones: %w", err)
	}

	// Current-month budgets for revenue-generating brands
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	budgets := make([]Budget, 0)
	for _, brand := range brands {
		if brand.MonthlyRevenue == 0 {
			continue
		}
		adSpend := 0.0
		if brand.FrontEndRoas > 0 {
			adSpend = brand.MonthlyRevenue / brand.FrontEndRoas
		}
		budgets = append(budgets, Budget{
			BrandID: brand.ID,
			Month:   month,
			AdSpend: adSpend,
			Revenue: brand.MonthlyRevenue,
			Profit:  brand.MonthlyProfit,
		})
	}
	if err := s.db.db.Create(&budgets).Error; err != nil {
		return fmt.Errorf("failed to seed budgets: %w", err)
	}

	log.Printf("   created %d milestones, %d budgets", len(milestones), len(budgets))
	return nil
}
