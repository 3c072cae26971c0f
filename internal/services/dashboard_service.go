// Package services – DashboardService
//
// This file implements the DashboardService, which assembles the home screen
// payload: the rule-based risk assessment of the pet's latest state plus the
// weight / water / activity trend charts over the recent history window. All
// scoring lives in internal/health; this service fetches the window, handles
// the no-history empty state, and shapes the response.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
	"github.com/catlinkdev/go-catcare-backend/internal/health"
)

// HistoryReader reads the recent slice of a pet's history, newest first.
type HistoryReader interface {
	RecentHistory(ctx context.Context, petID string, limit int) ([]domain.DailyRecord, error)
}

// Summary is the dashboard payload for one pet. Coverage reads "records/window"
// (e.g. "3/7"); RiskStatus is present only when the assessment is not safe, it
// is what the home screen renders as the alert banner.
type Summary struct {
	PetID      string            `json:"petId"`
	PetName    string            `json:"petName"`
	Assessment health.Assessment `json:"assessment"`
	Metrics    []health.Metric   `json:"metrics"`
	HasData    bool              `json:"hasData"`
	Coverage   string            `json:"coverage"`
	RiskStatus string            `json:"riskStatus,omitempty"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// DashboardService builds dashboard summaries.
type DashboardService struct {
	Pets interface {
		Get(ctx context.Context, id, userID string) (*domain.Pet, error)
	}
	History HistoryReader

	// WindowDays is how many recent records feed the charts.
	WindowDays int
	// Now is the clock; tests override it.
	Now func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(pets *PetService, hist HistoryReader, windowDays int) *DashboardService {
	if windowDays < 1 {
		windowDays = 7
	}
	return &DashboardService{Pets: pets, History: hist, WindowDays: windowDays, Now: time.Now}
}

// Summary computes the dashboard for one pet. A pet with no history gets the
// empty-state assessment (score 0, safe, the onboarding insight) and empty
// charts rather than an error.
func (s *DashboardService) Summary(ctx context.Context, userID, petID string) (*Summary, error) {
	pet, err := s.Pets.Get(ctx, petID, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.History.RecentHistory(ctx, petID, s.WindowDays)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return &Summary{
			PetID:   pet.ID,
			PetName: pet.Name,
			Assessment: health.Assessment{
				Score:          0,
				Level:          health.LevelSafe,
				Insights:       []string{health.InsightNoData},
				PrimaryMessage: health.InsightNoData,
			},
			Metrics:   []health.Metric{},
			Coverage:  fmt.Sprintf("0/%d", s.WindowDays),
			UpdatedAt: s.Now().UTC(),
		}, nil
	}

	// The store returns newest first; charts read left to right in time.
	window := make([]domain.DailyRecord, len(history))
	for i, rec := range history {
		window[len(history)-1-i] = rec
	}
	latest := window[len(window)-1]

	metrics := []health.Metric{
		health.BuildMetric("weight", "체중", window, func(r domain.DailyRecord) float64 {
			return r.BasicProfile.WeightKg
		}),
		health.BuildMetric("water", "음수량", window, func(r domain.DailyRecord) float64 {
			return float64(health.LevelScore(r.Lifestyle.WaterIntake))
		}),
		health.BuildMetric("activity", "활동량", window, func(r domain.DailyRecord) float64 {
			return float64(health.LevelScore(r.Lifestyle.ActivityLevel))
		}),
	}

	assessment := health.AnalyzeRisk(latest)
	sum := &Summary{
		PetID:      pet.ID,
		PetName:    pet.Name,
		Assessment: assessment,
		Metrics:    metrics,
		HasData:    true,
		Coverage:   fmt.Sprintf("%d/%d", len(window), s.WindowDays),
		UpdatedAt:  s.Now().UTC(),
	}
	if assessment.Level != health.LevelSafe {
		sum.RiskStatus = assessment.Level
	}
	return sum, nil
}
