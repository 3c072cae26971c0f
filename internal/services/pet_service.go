// Package services – PetService
//
// This file implements the PetService, which manages cat profiles. It
// validates payloads, enforces ownership through the repository, and mirrors
// every successful create/update into the append-only history table so the
// dashboard sees profile changes as part of the pet's timeline. The history
// write is best effort: a mirror failure is logged and never fails the
// request, the relational row is the source of truth for the current profile.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// PetRepo defines the repository contract required by PetService.
type PetRepo interface {
	CreatePet(ctx context.Context, db *gorm.DB, userID string, p *domain.Pet) (*domain.Pet, error)
	ListPets(ctx context.Context, db *gorm.DB, userID string) ([]domain.Pet, error)
	GetPet(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Pet, error)
	UpdatePet(ctx context.Context, db *gorm.DB, id, userID string, updates map[string]any) error
	DeletePet(ctx context.Context, db *gorm.DB, id, userID string) error
}

// HistoryWriter appends records to the pet history table.
type HistoryWriter interface {
	PutRecord(ctx context.Context, rec domain.DailyRecord) error
}

// PetService provides pet profile operations.
type PetService struct {
	DB      *gorm.DB
	Repo    PetRepo
	History HistoryWriter // nil disables mirroring (tests, local dev)
}

// NewPetService constructs a PetService.
func NewPetService(db *gorm.DB, r PetRepo, hist HistoryWriter) *PetService {
	return &PetService{DB: db, Repo: r, History: hist}
}

// ordinal values accepted for activity level and water intake.
func validLevel(v string) bool {
	switch strings.ToLower(v) {
	case "", "low", "normal", "high":
		return true
	}
	return false
}

func validatePet(p *domain.Pet) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidPet
	}
	if p.WeightKg < 0 || p.WeightKg > 30 {
		return ErrInvalidPet
	}
	if !validLevel(p.ActivityLevel) || !validLevel(p.WaterIntake) {
		return ErrInvalidPet
	}
	if p.MedicalHistory != "" && !json.Valid([]byte(p.MedicalHistory)) {
		return ErrInvalidPet
	}
	return nil
}

// Create registers a new pet for userID and mirrors a PROFILE_CREATED record.
func (s *PetService) Create(ctx context.Context, userID string, p *domain.Pet) (*domain.Pet, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validatePet(p); err != nil {
		return nil, err
	}
	created, err := s.Repo.CreatePet(ctx, s.DB, userID, p)
	if err != nil {
		return nil, err
	}
	s.mirror(ctx, created, "PROFILE_CREATED")
	return created, nil
}

// List returns all pets for a user in registration order.
func (s *PetService) List(ctx context.Context, userID string) ([]domain.Pet, error) {
	return s.Repo.ListPets(ctx, s.DB, userID)
}

// Get returns one pet owned by userID.
func (s *PetService) Get(ctx context.Context, id, userID string) (*domain.Pet, error) {
	p, err := s.Repo.GetPet(ctx, s.DB, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPetNotFound
	}
	return p, err
}

// Update applies a partial profile edit and mirrors a PROFILE_UPDATED record
// reflecting the post-edit state.
func (s *PetService) Update(ctx context.Context, id, userID string, updates map[string]any) (*domain.Pet, error) {
	if len(updates) == 0 {
		return s.Get(ctx, id, userID)
	}
	if name, ok := updates["name"].(string); ok && strings.TrimSpace(name) == "" {
		return nil, ErrInvalidPet
	}
	for _, col := range []string{"activity_level", "water_intake"} {
		if v, ok := updates[col].(string); ok && !validLevel(v) {
			return nil, ErrInvalidPet
		}
	}
	if w, ok := updates["weight_kg"].(float64); ok && (w < 0 || w > 30) {
		return nil, ErrInvalidPet
	}
	if err := s.Repo.UpdatePet(ctx, s.DB, id, userID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	p, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	s.mirror(ctx, p, "PROFILE_UPDATED")
	return p, nil
}

// Delete removes a pet (soft delete). History records are retained.
func (s *PetService) Delete(ctx context.Context, id, userID string) error {
	err := s.Repo.DeletePet(ctx, s.DB, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPetNotFound
	}
	return err
}

// mirror appends the pet's current state to the history table.
func (s *PetService) mirror(ctx context.Context, p *domain.Pet, eventType string) {
	if s.History == nil {
		return
	}
	rec := SnapshotRecord(p, eventType)
	if err := s.History.PutRecord(ctx, rec); err != nil {
		log.Warn().Err(err).Str("pet_id", p.ID).Str("event", eventType).Msg("history mirror failed")
	}
}

// SnapshotRecord converts the relational pet row into a history record.
// Exported for the check-in flow, which snapshots alongside the care log.
func SnapshotRecord(p *domain.Pet, eventType string) domain.DailyRecord {
	var medical []domain.MedicalEntry
	if p.MedicalHistory != "" {
		// Validated on write; a decode failure here just drops the section.
		_ = json.Unmarshal([]byte(p.MedicalHistory), &medical)
	}
	return domain.DailyRecord{
		PetID: p.ID,
		BasicProfile: domain.BasicProfile{
			Name:     p.Name,
			Breed:    p.Breed,
			Gender:   p.Gender,
			Neutered: p.Neutered,
			WeightKg: p.WeightKg,
			Birth:    p.BirthDate,
		},
		Lifestyle: domain.Lifestyle{
			FoodType:      p.FoodType,
			WaterSource:   p.WaterSource,
			ActivityLevel: p.ActivityLevel,
			WaterIntake:   p.WaterIntake,
		},
		MedicalHistory: medical,
		Notes:          p.Notes,
		EventType:      eventType,
	}
}
