package services

import (
	"context"
	"time"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
)

type statsReader interface {
	Dashboard(ctx context.Context, schoolID int64, today models.Date) (*repositories.DashboardCounts, error)
}

// StatsService computes the dashboard figures of one school.
type StatsService struct {
	stats statsReader
}

// NewStatsService creates a new StatsService
func NewStatsService(stats statsReader) *StatsService {
	return &StatsService{stats: stats}
}

// Dashboard assembles the stats body. Attendance is the fraction of
// today's marks that are present or late; 0 when nothing was recorded.
func (s *StatsService) Dashboard(ctx context.Context, schoolID int64) (*dto.DashboardStats, error) {
	counts, err := s.stats.Dashboard(ctx, schoolID, models.DateOf(time.Now()))
	if err != nil {
		return nil, err
	}

	attendance := 0.0
	if counts.RecordedToday > 0 {
		attendance = float64(counts.PresentToday) / float64(counts.RecordedToday)
	}

	return &dto.DashboardStats{
		Students:          counts.Students,
		Teachers:          counts.Teachers,
		Courses:           counts.Courses,
		ActiveEnrollments: counts.ActiveEnrollments,
		OpenInvoices:      counts.OpenInvoices,
		OutstandingAmount: counts.OutstandingAmount.StringFixed(2),
		AttendanceToday:   attendance,
	}, nil
}
