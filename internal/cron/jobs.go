// Package cron runs the scheduled reminder jobs: nudging users whose pets
// checked in but skipped the diagnostic questionnaire, and announcing
// finished reports from the diagnostic pipeline. Jobs are per-pet best
// effort: one failing pet is logged and skipped, the sweep continues.
package cron

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
	"github.com/catlinkdev/go-catcare-backend/internal/services"
)

// UserLister enumerates the reminder delivery set.
type UserLister interface {
	ListUsersWithPushToken(ctx context.Context, db *gorm.DB) ([]domain.User, error)
}

// PetLister lists a user's pets.
type PetLister interface {
	ListPets(ctx context.Context, db *gorm.DB, userID string) ([]domain.Pet, error)
}

// CareReader reads a pet's check-in for one day.
type CareReader interface {
	GetCareLogByDate(ctx context.Context, db *gorm.DB, petID, date string) (*domain.CareLog, error)
}

// DiagReader reads the newest diagnostic artifact for a pet.
type DiagReader interface {
	LatestDiagnostic(ctx context.Context, petID string) (*domain.DiagRecord, error)
}

// Notifier persists and delivers notifications with per-day dedupe.
type Notifier interface {
	SentToday(ctx context.Context, userID, ntype, refKey string) (bool, error)
	Notify(ctx context.Context, user *domain.User, ntype, refKey, title, body string, data map[string]string) error
}

// Jobs bundles the dependencies shared by both sweeps.
type Jobs struct {
	DB     *gorm.DB
	Users  UserLister
	Pets   PetLister
	Care   CareReader
	Diag   DiagReader
	Notifs Notifier

	// Loc decides what "today" means; matches the check-in day stamping.
	Loc *time.Location
	// Now is the clock; tests override it.
	Now func() time.Time
}

func (j *Jobs) today() string {
	now := j.Now()
	if j.Loc != nil {
		now = now.In(j.Loc)
	}
	return now.Format("2006-01-02")
}

// RunDiagReminder nudges users whose pets checked in today but have not
// answered the diagnostic questionnaire, provided the pipeline has generated
// questions for the pet. At most one reminder per (user, pet) per day.
func (j *Jobs) RunDiagReminder(ctx context.Context) {
	users, err := j.Users.ListUsersWithPushToken(ctx, j.DB)
	if err != nil {
		log.Error().Err(err).Msg("diag reminder: listing users failed")
		return
	}
	today := j.today()
	var sent, skipped int
	for i := range users {
		user := &users[i]
		pets, err := j.Pets.ListPets(ctx, j.DB, user.ID)
		if err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("diag reminder: listing pets failed")
			continue
		}
		for i := range pets {
			ok, err := j.remindPetDiag(ctx, user, &pets[i], today)
			if err != nil {
				log.Warn().Err(err).Str("pet_id", pets[i].ID).Msg("diag reminder: pet skipped")
				continue
			}
			if ok {
				sent++
			} else {
				skipped++
			}
		}
	}
	log.Info().Int("sent", sent).Int("skipped", skipped).Msg("diag reminder sweep done")
}

func (j *Jobs) remindPetDiag(ctx context.Context, user *domain.User, pet *domain.Pet, today string) (bool, error) {
	c, err := j.Care.GetCareLogByDate(ctx, j.DB, pet.ID, today)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil // no check-in yet, nothing to follow up on
	}
	if err != nil {
		return false, err
	}
	if c.Answers == "" || c.DiagAnswers != "" {
		return false, nil
	}
	diag, err := j.Diag.LatestDiagnostic(ctx, pet.ID)
	if err != nil {
		return false, err
	}
	if diag == nil || diag.GeneratedQuestions == "" {
		return false, nil
	}
	if dup, err := j.Notifs.SentToday(ctx, user.ID, services.NotifDiagReminder, pet.ID); err != nil || dup {
		return false, err
	}
	err = j.Notifs.Notify(ctx, user, services.NotifDiagReminder, pet.ID,
		pet.Name+"의 건강 문답이 기다리고 있어요",
		"오늘의 체크인은 완료! 맞춤 문답에 답하고 리포트를 받아보세요.",
		map[string]string{"petId": pet.ID, "screen": "diagnosis"})
	return err == nil, err
}

// RunReportReady announces finished reports for pets that completed both the
// check-in and the questionnaire today. The notification body carries a
// short preview of the report.
func (j *Jobs) RunReportReady(ctx context.Context) {
	users, err := j.Users.ListUsersWithPushToken(ctx, j.DB)
	if err != nil {
		log.Error().Err(err).Msg("report ready: listing users failed")
		return
	}
	today := j.today()
	var sent int
	for i := range users {
		user := &users[i]
		pets, err := j.Pets.ListPets(ctx, j.DB, user.ID)
		if err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("report ready: listing pets failed")
			continue
		}
		for i := range pets {
			ok, err := j.announceReport(ctx, user, &pets[i], today)
			if err != nil {
				log.Warn().Err(err).Str("pet_id", pets[i].ID).Msg("report ready: pet skipped")
				continue
			}
			if ok {
				sent++
			}
		}
	}
	log.Info().Int("sent", sent).Msg("report ready sweep done")
}

func (j *Jobs) announceReport(ctx context.Context, user *domain.User, pet *domain.Pet, today string) (bool, error) {
	c, err := j.Care.GetCareLogByDate(ctx, j.DB, pet.ID, today)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.Answers == "" || c.DiagAnswers == "" {
		return false, nil
	}
	diag, err := j.Diag.LatestDiagnostic(ctx, pet.ID)
	if err != nil {
		return false, err
	}
	if diag == nil || diag.FinalReport == "" {
		return false, nil
	}
	if dup, err := j.Notifs.SentToday(ctx, user.ID, services.NotifReportReady, pet.ID); err != nil || dup {
		return false, err
	}
	err = j.Notifs.Notify(ctx, user, services.NotifReportReady, pet.ID,
		pet.Name+"의 건강 리포트가 도착했어요",
		preview(diag.FinalReport, 50),
		map[string]string{"petId": pet.ID, "screen": "report"})
	return err == nil, err
}

// preview clips s to max runes, appending an ellipsis when clipped.
func preview(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}

// Start registers both sweeps on a scheduler and starts it. The caller owns
// the returned cron and must Stop it on shutdown.
func Start(jobs *Jobs, diagSpec, reportSpec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(diagSpec, func() { jobs.RunDiagReminder(context.Background()) }); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(reportSpec, func() { jobs.RunReportReady(context.Background()) }); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
