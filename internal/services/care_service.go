// Package services – CareService
//
// This file implements the CareService, which owns the daily check-in flow:
// stamping the pet-local calendar day, canonicalizing answers, upserting the
// one-row-per-day care log, accepting diagnostic questionnaire submissions,
// and aggregating a month of check-ins for the calendar and statistics
// screens. Each successful check-in is also mirrored to the history table as
// a DAILY_CHECKIN event so the dashboard timeline includes it.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
	"github.com/catlinkdev/go-catcare-backend/internal/health"
)

// CareRepo defines the repository contract required by CareService.
type CareRepo interface {
	UpsertCareLog(ctx context.Context, db *gorm.DB, petID, date, answers string) (*domain.CareLog, error)
	GetCareLogByDate(ctx context.Context, db *gorm.DB, petID, date string) (*domain.CareLog, error)
	SetDiagAnswers(ctx context.Context, db *gorm.DB, petID, date, diagAnswers string) (*domain.CareLog, error)
	ListCareLogsByMonth(ctx context.Context, db *gorm.DB, petID, month string) ([]domain.CareLog, error)
}

// CareService provides check-in and monthly aggregation operations.
type CareService struct {
	DB   *gorm.DB
	Repo CareRepo
	Pets interface {
		Get(ctx context.Context, id, userID string) (*domain.Pet, error)
	}
	History HistoryWriter // nil disables mirroring

	// Loc stamps the calendar day a check-in lands on. The app serves one
	// market, so this is a fixed zone (Asia/Seoul), not per-user.
	Loc *time.Location
	// Now is the clock; tests override it.
	Now func() time.Time

	Bank health.QuestionBank
}

// NewCareService constructs a CareService with the default question bank.
func NewCareService(db *gorm.DB, r CareRepo, pets *PetService, hist HistoryWriter, loc *time.Location) *CareService {
	if loc == nil {
		loc = time.UTC
	}
	return &CareService{
		DB:      db,
		Repo:    r,
		Pets:    pets,
		History: hist,
		Loc:     loc,
		Now:     time.Now,
		Bank:    health.DefaultQuestionBank(),
	}
}

// Questions returns the daily check-in questionnaire.
func (s *CareService) Questions() health.QuestionBank { return s.Bank }

// Today returns the current calendar day in the service zone as YYYY-MM-DD.
func (s *CareService) Today() string {
	return s.Now().In(s.Loc).Format("2006-01-02")
}

// CheckInAnswers is the daily check-in payload. Tendency fields accept both
// canonical tokens and display labels; Weight is the raw text entry.
type CheckInAnswers struct {
	Food   string `json:"food"`
	Water  string `json:"water"`
	Weight string `json:"weight"`
	Stool  string `json:"stool"`
	Urine  string `json:"urine"`
}

func (a *CheckInAnswers) empty() bool {
	return a.Food == "" && a.Water == "" && a.Weight == "" && a.Stool == "" && a.Urine == ""
}

// canonicalize rewrites tendency answers to their token form where
// recognized; unknown strings pass through untouched (the scorers treat them
// as no-record).
func (a *CheckInAnswers) canonicalize() {
	if tok, ok := health.CanonicalTendency(health.FieldFood, a.Food); ok {
		a.Food = tok
	}
	if tok, ok := health.CanonicalTendency(health.FieldWater, a.Water); ok {
		a.Water = tok
	}
	if tok, ok := health.CanonicalTendency(health.FieldStool, a.Stool); ok {
		a.Stool = tok
	}
	if tok, ok := health.CanonicalTendency(health.FieldUrine, a.Urine); ok {
		a.Urine = tok
	}
}

// CheckIn records today's answers for a pet. Submitting twice on the same
// day overwrites the earlier answers. The returned care log is the persisted
// day row.
func (s *CareService) CheckIn(ctx context.Context, userID, petID string, answers CheckInAnswers) (*domain.CareLog, error) {
	pet, err := s.Pets.Get(ctx, petID, userID)
	if err != nil {
		return nil, err
	}
	if answers.empty() {
		return nil, ErrInvalidCheckIn
	}
	answers.canonicalize()

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	c, err := s.Repo.UpsertCareLog(ctx, s.DB, petID, s.Today(), string(raw))
	if err != nil {
		return nil, err
	}
	s.mirrorCheckIn(ctx, pet, answers)
	return c, nil
}

// mirrorCheckIn appends a DAILY_CHECKIN record carrying the pet's profile
// with today's observed water intake and weight layered on top. Best effort.
func (s *CareService) mirrorCheckIn(ctx context.Context, pet *domain.Pet, answers CheckInAnswers) {
	if s.History == nil {
		return
	}
	rec := SnapshotRecord(pet, "DAILY_CHECKIN")
	if answers.Water != "" {
		rec.Lifestyle.WaterIntake = waterLevel(answers.Water)
	}
	if w, err := strconv.ParseFloat(strings.TrimSpace(answers.Weight), 64); err == nil && w > 0 {
		rec.BasicProfile.WeightKg = w
	}
	if err := s.History.PutRecord(ctx, rec); err != nil {
		log.Warn().Err(err).Str("pet_id", pet.ID).Msg("check-in history mirror failed")
	}
}

// waterLevel folds the five-way tendency into the low/normal/high ordinal
// the risk analyzer reads.
func waterLevel(tendency string) string {
	switch tendency {
	case health.TendencyNone, health.TendencyLess:
		return "low"
	case health.TendencyMore:
		return "high"
	case health.TendencyNormal:
		return "normal"
	}
	return tendency
}

// TodayLog returns today's check-in for a pet, or nil when the pet has not
// checked in yet.
func (s *CareService) TodayLog(ctx context.Context, userID, petID string) (*domain.CareLog, error) {
	if _, err := s.Pets.Get(ctx, petID, userID); err != nil {
		return nil, err
	}
	c, err := s.Repo.GetCareLogByDate(ctx, s.DB, petID, s.Today())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return c, err
}

// SubmitDiag stores a diagnostic questionnaire submission on today's row.
// The payload is opaque JSON owned by the questionnaire screens.
func (s *CareService) SubmitDiag(ctx context.Context, userID, petID, diagAnswers string) (*domain.CareLog, error) {
	if _, err := s.Pets.Get(ctx, petID, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(diagAnswers) == "" || !json.Valid([]byte(diagAnswers)) {
		return nil, ErrInvalidCheckIn
	}
	return s.Repo.SetDiagAnswers(ctx, s.DB, petID, s.Today(), diagAnswers)
}

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// CompletedDays returns the dates in a month ("YYYY-MM") that have a
// check-in, ascending. The calendar screen marks these.
func (s *CareService) CompletedDays(ctx context.Context, userID, petID, month string) ([]string, error) {
	if !monthRe.MatchString(month) {
		return nil, ErrInvalidMonth
	}
	if _, err := s.Pets.Get(ctx, petID, userID); err != nil {
		return nil, err
	}
	logs, err := s.Repo.ListCareLogsByMonth(ctx, s.DB, petID, month)
	if err != nil {
		return nil, err
	}
	days := make([]string, 0, len(logs))
	for _, l := range logs {
		if l.Answers != "" {
			days = append(days, l.Date)
		}
	}
	return days, nil
}

// MonthlyStats aggregates one month of check-ins into the statistics screen
// payload.
func (s *CareService) MonthlyStats(ctx context.Context, userID, petID, month string) (health.MonthlyStats, error) {
	if !monthRe.MatchString(month) {
		return health.MonthlyStats{}, ErrInvalidMonth
	}
	if _, err := s.Pets.Get(ctx, petID, userID); err != nil {
		return health.MonthlyStats{}, err
	}
	logs, err := s.Repo.ListCareLogsByMonth(ctx, s.DB, petID, month)
	if err != nil {
		return health.MonthlyStats{}, err
	}
	records := make([]health.CheckInRecord, 0, len(logs))
	for _, l := range logs {
		if l.Answers == "" {
			continue
		}
		var a CheckInAnswers
		if err := json.Unmarshal([]byte(l.Answers), &a); err != nil {
			log.Warn().Err(err).Str("care_log_id", l.ID).Msg("skipping undecodable check-in answers")
			continue
		}
		records = append(records, health.CheckInRecord{
			Date:   l.Date,
			Food:   a.Food,
			Water:  a.Water,
			Weight: a.Weight,
			Stool:  a.Stool,
			Urine:  a.Urine,
		})
	}
	return health.BuildMonthlyStats(records), nil
}
