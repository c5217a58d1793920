package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
	helper "smartvisit_backend/internals/helpers"
)

/* =========================================================
   STATS SERVICE
   Read-only aggregates over the visitors table. Every method
   tolerates an empty table: zero counts, "0h 0m" averages,
   empty slices.
========================================================= */

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

var onPremisesStatuses = []string{
	visitorModel.StatusCheckedIn,
	visitorModel.StatusInMeeting,
}

type DashboardStats struct {
	CurrentVisitors  int64  `json:"currentVisitors"`
	TotalCheckedIn   int64  `json:"totalCheckedIn"`
	TotalCheckedOut  int64  `json:"totalCheckedOut"`
	WalkIns          int64  `json:"walkIns"`
	PreRegistered    int64  `json:"preRegistered"`
	PendingApprovals int64  `json:"pendingApprovals"`
	AvgVisitDuration string `json:"avgVisitDuration"`
	TodayCheckIns    int64  `json:"todayCheckIns"`
	MonthlyTotal     int64  `json:"monthlyTotal"`

	// filled only for host callers
	MyCurrentVisitors *int64 `json:"myCurrentVisitors,omitempty"`
	MyTodayVisitors   *int64 `json:"myTodayVisitors,omitempty"`
	MyPendingArrivals *int64 `json:"myPendingArrivals,omitempty"`
}

func (s *StatsService) visitors() *gorm.DB {
	return s.DB.Model(&visitorModel.VisitorModel{})
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
}

// AvgVisitDuration averages check-out minus check-in over completed
// visits. Zero completed visits yields "0h 0m".
func (s *StatsService) AvgVisitDuration(since time.Time) (string, error) {
	var seconds *float64
	err := s.visitors().
		Select("AVG(EXTRACT(EPOCH FROM (check_out_time - check_in_time)))").
		Where("check_in_time IS NOT NULL AND check_out_time IS NOT NULL").
		Where("check_in_time >= ?", since).
		Scan(&seconds).Error
	if err != nil {
		return "", err
	}
	if seconds == nil {
		return helper.FormatDurationHM(0), nil
	}
	return helper.FormatDurationHM(time.Duration(*seconds) * time.Second), nil
}

// GetDashboardStats builds the dashboard counter block. hostID is set
// only for host-role callers, who get their own counters on top.
func (s *StatsService) GetDashboardStats(hostID *uuid.UUID) (*DashboardStats, error) {
	now := time.Now().UTC()
	today := startOfDay(now)
	month := startOfMonth(now)

	stats := &DashboardStats{}

	counts := []struct {
		dst   *int64
		query func(q *gorm.DB) *gorm.DB
	}{
		{&stats.CurrentVisitors, func(q *gorm.DB) *gorm.DB {
			return q.Where("status IN ?", onPremisesStatuses)
		}},
		{&stats.TotalCheckedIn, func(q *gorm.DB) *gorm.DB {
			return q.Where("check_in_time IS NOT NULL")
		}},
		{&stats.TotalCheckedOut, func(q *gorm.DB) *gorm.DB {
			return q.Where("status = ?", visitorModel.StatusCheckedOut)
		}},
		{&stats.WalkIns, func(q *gorm.DB) *gorm.DB {
			return q.Where("visitor_type = ?", visitorModel.TypeWalkIn)
		}},
		{&stats.PreRegistered, func(q *gorm.DB) *gorm.DB {
			return q.Where("visitor_type = ?", visitorModel.TypePreRegistered)
		}},
		{&stats.PendingApprovals, func(q *gorm.DB) *gorm.DB {
			return q.Where("status = ?", visitorModel.StatusPreRegistered)
		}},
		{&stats.TodayCheckIns, func(q *gorm.DB) *gorm.DB {
			return q.Where("check_in_time >= ?", today)
		}},
		{&stats.MonthlyTotal, func(q *gorm.DB) *gorm.DB {
			return q.Where("created_at >= ?", month)
		}},
	}
	for _, cq := range counts {
		if err := cq.query(s.visitors()).Count(cq.dst).Error; err != nil {
			return nil, err
		}
	}

	avg, err := s.AvgVisitDuration(startOfYear(now))
	if err != nil {
		return nil, err
	}
	stats.AvgVisitDuration = avg

	if hostID != nil {
		var myCurrent, myToday, myPending int64
		if err := s.visitors().
			Where("host_id = ? AND status IN ?", *hostID, onPremisesStatuses).
			Count(&myCurrent).Error; err != nil {
			return nil, err
		}
		if err := s.visitors().
			Where("host_id = ? AND check_in_time >= ?", *hostID, today).
			Count(&myToday).Error; err != nil {
			return nil, err
		}
		if err := s.visitors().
			Where("host_id = ? AND status = ?", *hostID, visitorModel.StatusPreRegistered).
			Count(&myPending).Error; err != nil {
			return nil, err
		}
		stats.MyCurrentVisitors = &myCurrent
		stats.MyTodayVisitors = &myToday
		stats.MyPendingArrivals = &myPending
	}

	return stats, nil
}

/* =========================
   TIME-BUCKET AGGREGATES
========================= */

type HourBucket struct {
	Hour  string `json:"hour"`
	Count int64  `json:"count"`
}

type MonthBucket struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type DayBucket struct {
	Date  string `json:"date"`
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// GetPeakHours buckets this year's check-ins by hour of day, labelled
// on a 12-hour clock.
func (s *StatsService) GetPeakHours() ([]HourBucket, error) {
	rows := []struct {
		Hour  int
		Count int64
	}{}
	err := s.visitors().
		Select("EXTRACT(HOUR FROM check_in_time)::int AS hour, COUNT(*) AS count").
		Where("check_in_time IS NOT NULL AND check_in_time >= ?", startOfYear(time.Now().UTC())).
		Group("hour").Order("hour").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]HourBucket, 0, len(rows))
	for _, r := range rows {
		out = append(out, HourBucket{Hour: helper.FormatHourLabel(r.Hour), Count: r.Count})
	}
	return out, nil
}

// GetMonthlyTrends returns one bucket per month of the given year,
// zero-filled, Jan through Dec.
func (s *StatsService) GetMonthlyTrends(year int) ([]MonthBucket, error) {
	rows := []struct {
		Month int
		Count int64
	}{}
	err := s.visitors().
		Select("EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS count").
		Where("EXTRACT(YEAR FROM created_at) = ?", year).
		Group("month").Order("month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	byMonth := map[int]int64{}
	for _, r := range rows {
		byMonth[r.Month] = r.Count
	}
	out := make([]MonthBucket, 0, 12)
	for m := 1; m <= 12; m++ {
		out = append(out, MonthBucket{
			Month: time.Month(m).String()[:3],
			Count: byMonth[m],
		})
	}
	return out, nil
}

// GetDailyCounts returns check-in counts for the last n days, oldest
// first, zero-filled.
func (s *StatsService) GetDailyCounts(days int) ([]DayBucket, error) {
	now := time.Now().UTC()
	since := startOfDay(now.AddDate(0, 0, -(days - 1)))

	rows := []struct {
		Day   time.Time
		Count int64
	}{}
	err := s.visitors().
		Select("DATE_TRUNC('day', check_in_time) AS day, COUNT(*) AS count").
		Where("check_in_time IS NOT NULL AND check_in_time >= ?", since).
		Group("day").Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	byDay := map[string]int64{}
	for _, r := range rows {
		byDay[r.Day.Format("2006-01-02")] = r.Count
	}
	out := make([]DayBucket, 0, days)
	for i := 0; i < days; i++ {
		d := since.AddDate(0, 0, i)
		key := d.Format("2006-01-02")
		out = append(out, DayBucket{
			Date:  key,
			Day:   d.Weekday().String()[:3],
			Count: byDay[key],
		})
	}
	return out, nil
}

// GetBusinessHourCounts returns today's check-ins per business hour
// (8 AM through 5 PM), zero-filled.
func (s *StatsService) GetBusinessHourCounts() ([]HourBucket, error) {
	rows := []struct {
		Hour  int
		Count int64
	}{}
	err := s.visitors().
		Select("EXTRACT(HOUR FROM check_in_time)::int AS hour, COUNT(*) AS count").
		Where("check_in_time IS NOT NULL AND check_in_time >= ?", startOfDay(time.Now().UTC())).
		Group("hour").Order("hour").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	byHour := map[int]int64{}
	for _, r := range rows {
		byHour[r.Hour] = r.Count
	}
	out := make([]HourBucket, 0, 10)
	for h := 8; h <= 17; h++ {
		out = append(out, HourBucket{Hour: helper.FormatHourLabel(h), Count: byHour[h]})
	}
	return out, nil
}

/* =========================
   DISTRIBUTIONS & RANKINGS
========================= */

type TypeCount struct {
	VisitorType string `json:"visitor_type"`
	Count       int64  `json:"count"`
}

// GetTypeDistribution counts this year's visitors by type.
func (s *StatsService) GetTypeDistribution(year int) ([]TypeCount, error) {
	var rows []TypeCount
	err := s.visitors().
		Select("visitor_type, COUNT(*) AS count").
		Where("EXTRACT(YEAR FROM created_at) = ?", year).
		Group("visitor_type").Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []TypeCount{}
	}
	return rows, nil
}

type HostPerformance struct {
	HostID     uuid.UUID `json:"host_id"`
	HostName   string    `json:"host_name"`
	Department string    `json:"department"`
	Visitors   int64     `json:"visitors"`
}

// GetHostPerformance ranks hosts by year-to-date visitor count.
func (s *StatsService) GetHostPerformance() ([]HostPerformance, error) {
	rows := []struct {
		HostID     uuid.UUID
		FirstName  string
		LastName   string
		Department string
		Visitors   int64
	}{}
	err := s.visitors().
		Select("visitors.host_id, users.first_name, users.last_name, users.department, COUNT(*) AS visitors").
		Joins("JOIN users ON users.id = visitors.host_id").
		Where("visitors.host_id IS NOT NULL AND visitors.created_at >= ?", startOfYear(time.Now().UTC())).
		Group("visitors.host_id, users.first_name, users.last_name, users.department").
		Order("visitors DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]HostPerformance, 0, len(rows))
	for _, r := range rows {
		name := r.FirstName
		if r.LastName != "" {
			name += " " + r.LastName
		}
		out = append(out, HostPerformance{
			HostID:     r.HostID,
			HostName:   name,
			Department: r.Department,
			Visitors:   r.Visitors,
		})
	}
	return out, nil
}

type CompanyFrequency struct {
	Company   string    `json:"company"`
	Visits    int64     `json:"visits"`
	LastVisit time.Time `json:"last_visit"`
}

// GetCompanyFrequency returns the ten most frequent visiting
// companies with their latest visit timestamp.
func (s *StatsService) GetCompanyFrequency() ([]CompanyFrequency, error) {
	var rows []CompanyFrequency
	err := s.visitors().
		Select("company, COUNT(*) AS visits, MAX(created_at) AS last_visit").
		Where("company <> ''").
		Group("company").
		Order("visits DESC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []CompanyFrequency{}
	}
	return rows, nil
}

/* =========================
   YEARLY COMPARISON
========================= */

type YearlyComparison struct {
	CurrentYear   int     `json:"current_year"`
	CurrentTotal  int64   `json:"current_total"`
	PreviousYear  int     `json:"previous_year"`
	PreviousTotal int64   `json:"previous_total"`
	GrowthPercent float64 `json:"growth_percent"`
}

// GetYearlyComparison compares this year's total against last year's
// and derives growth. Previous-year zero yields 0 growth, not a
// division error.
func (s *StatsService) GetYearlyComparison() (*YearlyComparison, error) {
	now := time.Now().UTC()
	year := now.Year()

	var current, previous int64
	if err := s.visitors().
		Where("EXTRACT(YEAR FROM created_at) = ?", year).
		Count(&current).Error; err != nil {
		return nil, err
	}
	if err := s.visitors().
		Where("EXTRACT(YEAR FROM created_at) = ?", year-1).
		Count(&previous).Error; err != nil {
		return nil, err
	}

	growth := 0.0
	if previous > 0 {
		growth = (float64(current-previous) / float64(previous)) * 100
	}
	return &YearlyComparison{
		CurrentYear:   year,
		CurrentTotal:  current,
		PreviousYear:  year - 1,
		PreviousTotal: previous,
		GrowthPercent: growth,
	}, nil
}

/* =========================
   SUMMARY & LANDING
========================= */

type AnalyticsSummary struct {
	CurrentVisitors  int64  `json:"current_visitors"`
	TodayVisitors    int64  `json:"today_visitors"`
	MonthVisitors    int64  `json:"month_visitors"`
	AvgVisitDuration string `json:"avg_visit_duration"`
}

func (s *StatsService) GetSummary() (*AnalyticsSummary, error) {
	now := time.Now().UTC()
	out := &AnalyticsSummary{}

	if err := s.visitors().
		Where("status IN ?", onPremisesStatuses).
		Count(&out.CurrentVisitors).Error; err != nil {
		return nil, err
	}
	if err := s.visitors().
		Where("check_in_time >= ?", startOfDay(now)).
		Count(&out.TodayVisitors).Error; err != nil {
		return nil, err
	}
	if err := s.visitors().
		Where("created_at >= ?", startOfMonth(now)).
		Count(&out.MonthVisitors).Error; err != nil {
		return nil, err
	}
	avg, err := s.AvgVisitDuration(startOfYear(now))
	if err != nil {
		return nil, err
	}
	out.AvgVisitDuration = avg
	return out, nil
}

type LandingStats struct {
	TotalVisitors  int64  `json:"total_visitors"`
	MonthlyAverage int64  `json:"monthly_average"`
	CompaniesCount int64  `json:"companies_count"`
	AvgDuration    string `json:"avg_duration"`
}

// GetLandingStats serves the public landing counters.
func (s *StatsService) GetLandingStats() (*LandingStats, error) {
	now := time.Now().UTC()
	out := &LandingStats{}

	if err := s.visitors().Count(&out.TotalVisitors).Error; err != nil {
		return nil, err
	}
	if err := s.visitors().
		Distinct("company").
		Where("company <> ''").
		Count(&out.CompaniesCount).Error; err != nil {
		return nil, err
	}

	monthsElapsed := int64(now.Month())
	if monthsElapsed > 0 {
		var yearTotal int64
		if err := s.visitors().
			Where("created_at >= ?", startOfYear(now)).
			Count(&yearTotal).Error; err != nil {
			return nil, err
		}
		out.MonthlyAverage = yearTotal / monthsElapsed
	}

	avg, err := s.AvgVisitDuration(startOfYear(now))
	if err != nil {
		return nil, err
	}
	out.AvgDuration = avg
	return out, nil
}

/* =========================
   ROSTERS
========================= */

type RosterEntry struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Company     string     `json:"company,omitempty"`
	VisitorType string     `json:"visitor_type"`
	Status      string     `json:"status"`
	BadgeNumber *int       `json:"badge_number,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	CheckInTime *time.Time `json:"check_in_time,omitempty"`
	HostName    string     `json:"host_name,omitempty"`
	HostPhone   string     `json:"host_phone,omitempty"`
	HostEmail   string     `json:"host_email,omitempty"`
	Location    string     `json:"location,omitempty"`
}

// GetOnPremisesRoster lists everyone currently checked in or in a
// meeting, with host contact details, oldest check-in first.
func (s *StatsService) GetOnPremisesRoster() ([]RosterEntry, error) {
	rows := []struct {
		ID          uuid.UUID
		FirstName   string
		LastName    string
		Company     string
		VisitorType string
		Status      string
		BadgeNumber *int
		Phone       string
		CheckInTime *time.Time
		HostFirst   string
		HostLast    string
		HostPhone   string
		HostEmail   string
		Location    string
	}{}
	err := s.visitors().
		Select(`visitors.id, visitors.first_name, visitors.last_name, visitors.company,
			visitors.visitor_type, visitors.status, visitors.badge_number, visitors.phone,
			visitors.check_in_time,
			COALESCE(users.first_name, '') AS host_first,
			COALESCE(users.last_name, '') AS host_last,
			COALESCE(users.phone, '') AS host_phone,
			COALESCE(users.email, '') AS host_email,
			COALESCE(branches.name, '') AS location`).
		Joins("LEFT JOIN users ON users.id = visitors.host_id").
		Joins("LEFT JOIN branches ON branches.id = visitors.branch_id").
		Where("visitors.status IN ?", onPremisesStatuses).
		Order("visitors.check_in_time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]RosterEntry, 0, len(rows))
	for _, r := range rows {
		name := r.FirstName
		if r.LastName != "" {
			name += " " + r.LastName
		}
		hostName := r.HostFirst
		if r.HostLast != "" {
			hostName = fmt.Sprintf("%s %s", r.HostFirst, r.HostLast)
		}
		out = append(out, RosterEntry{
			ID:          r.ID,
			Name:        name,
			Company:     r.Company,
			VisitorType: r.VisitorType,
			Status:      r.Status,
			BadgeNumber: r.BadgeNumber,
			Phone:       r.Phone,
			CheckInTime: r.CheckInTime,
			HostName:    hostName,
			HostPhone:   r.HostPhone,
			HostEmail:   r.HostEmail,
			Location:    r.Location,
		})
	}
	return out, nil
}
