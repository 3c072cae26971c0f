// Pet HTTP handlers.
//
// This file exposes REST endpoints for pet profile resources:
//   - POST   /pets        (register)
//   - GET    /pets        (list, ETag support)
//   - GET    /pets/{id}   (fetch)
//   - PUT    /pets/{id}   (partial update)
//   - DELETE /pets/{id}   (remove)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
	"github.com/catlinkdev/go-catcare-backend/internal/health"
	"github.com/catlinkdev/go-catcare-backend/internal/repo"
	"github.com/catlinkdev/go-catcare-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// PetService defines pet profile operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PetService interface {
	Create(ctx context.Context, userID string, p *domain.Pet) (*domain.Pet, error)
	List(ctx context.Context, userID string) ([]domain.Pet, error)
	Get(ctx context.Context, id, userID string) (*domain.Pet, error)
	Update(ctx context.Context, id, userID string, updates map[string]any) (*domain.Pet, error)
	Delete(ctx context.Context, id, userID string) error
}

// CareService defines daily check-in and monthly aggregation operations.
type CareService interface {
	Questions() health.QuestionBank
	CheckIn(ctx context.Context, userID, petID string, answers services.CheckInAnswers) (*domain.CareLog, error)
	TodayLog(ctx context.Context, userID, petID string) (*domain.CareLog, error)
	SubmitDiag(ctx context.Context, userID, petID, diagAnswers string) (*domain.CareLog, error)
	CompletedDays(ctx context.Context, userID, petID, month string) ([]string, error)
	MonthlyStats(ctx context.Context, userID, petID, month string) (health.MonthlyStats, error)
}

// DashboardService builds the home-screen summary.
type DashboardService interface {
	Summary(ctx context.Context, userID, petID string) (*services.Summary, error)
}

// UserService defines account operations consumed by HTTP handlers.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, upd services.ProfileUpdate) (*domain.User, error)
	RegisterPushToken(ctx context.Context, id, token, deviceInfo string) error
	SetAlarms(ctx context.Context, id string, enabled bool, config string) error
	Withdraw(ctx context.Context, id string) error
}

// NotificationService backs the notification center endpoints.
type NotificationService interface {
	ListRecent(ctx context.Context, userID string) ([]domain.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for pets, care logs, the dashboard, users,
// notifications, and uploads. It depends on abstract service interfaces to
// keep transport concerns separate from business logic.
type Handlers struct {
	petSvc   PetService
	careSvc  CareService
	dashSvc  DashboardService
	userSvc  UserService
	notifSvc NotificationService
	uploads  UploadStore
}

// New constructs and returns a Handlers instance bound to the given services.
func New(petSvc PetService, careSvc CareService, dashSvc DashboardService, userSvc UserService, notifSvc NotificationService, uploads UploadStore) *Handlers {
	return &Handlers{
		petSvc:   petSvc,
		careSvc:  careSvc,
		dashSvc:  dashSvc,
		userSvc:  userSvc,
		notifSvc: notifSvc,
		uploads:  uploads,
	}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// auth middleware). If absent, it falls back to "X-User-ID" header (tests use
// it), and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// PetRequest is the JSON payload for registering or editing a pet. On update,
// absent fields are left unchanged.
type PetRequest struct {
	Name            *string  `json:"name" example:"나비"`
	Breed           *string  `json:"breed" example:"Korean Shorthair"`
	Gender          *string  `json:"gender" example:"female"`
	Neutered        *bool    `json:"neutered"`
	BirthDate       *string  `json:"birthDate" example:"2021-03-14"`
	EstimatedAge    *string  `json:"estimatedAge" example:"3-5"`
	UnknownBirthday *bool    `json:"unknownBirthday"`
	Weight          *float64 `json:"weight" example:"4.2"`
	FoodType        *string  `json:"foodType" example:"dry"`
	WaterSource     *string  `json:"waterSource" example:"fountain"`
	ActivityLevel   *string  `json:"activityLevel" example:"normal"`
	WaterIntake     *string  `json:"waterIntake" example:"low"`
	LivingEnv       *string  `json:"livingEnvironment" example:"indoor"`
	MultiCat        *bool    `json:"multiCat"`
	CatCount        *int     `json:"catCount"`
	MealsPerDay     *int     `json:"mealsPerDay"`
	MedicalHistory  *string  `json:"medicalHistory" example:"[{\"category\":\"신장 질환\"}]"`
	Medications     *string  `json:"medications"`
	Notes           *string  `json:"notes"`
	VetInfo         *string  `json:"vetInfo"`
	ProfilePhoto    *string  `json:"profilePhoto"`
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// toPet materializes a full Pet from a create payload.
func (r *PetRequest) toPet() *domain.Pet {
	p := &domain.Pet{
		Name:           strOr(r.Name),
		Breed:          strOr(r.Breed),
		Gender:         strOr(r.Gender),
		Neutered:       r.Neutered,
		BirthDate:      strOr(r.BirthDate),
		EstimatedAge:   strOr(r.EstimatedAge),
		FoodType:       strOr(r.FoodType),
		WaterSource:    strOr(r.WaterSource),
		ActivityLevel:  strOr(r.ActivityLevel),
		WaterIntake:    strOr(r.WaterIntake),
		LivingEnv:      strOr(r.LivingEnv),
		MedicalHistory: strOr(r.MedicalHistory),
		Medications:    strOr(r.Medications),
		Notes:          strOr(r.Notes),
		VetInfo:        strOr(r.VetInfo),
		ProfilePhoto:   strOr(r.ProfilePhoto),
	}
	if r.Weight != nil {
		p.WeightKg = *r.Weight
	}
	if r.UnknownBirthday != nil {
		p.UnknownBirthday = *r.UnknownBirthday
	}
	if r.MultiCat != nil {
		p.MultiCat = *r.MultiCat
	}
	if r.CatCount != nil {
		p.CatCount = *r.CatCount
	}
	if r.MealsPerDay != nil {
		p.MealsPerDay = *r.MealsPerDay
	}
	return p
}

// toUpdates converts an update payload into the column map the service
// consumes; only present fields are included.
func (r *PetRequest) toUpdates() map[string]any {
	u := map[string]any{}
	set := func(col string, p *string) {
		if p != nil {
			u[col] = *p
		}
	}
	set("name", r.Name)
	set("breed", r.Breed)
	set("gender", r.Gender)
	set("birth_date", r.BirthDate)
	set("estimated_age", r.EstimatedAge)
	set("food_type", r.FoodType)
	set("water_source", r.WaterSource)
	set("activity_level", r.ActivityLevel)
	set("water_intake", r.WaterIntake)
	set("living_env", r.LivingEnv)
	set("medical_history", r.MedicalHistory)
	set("medications", r.Medications)
	set("notes", r.Notes)
	set("vet_info", r.VetInfo)
	set("profile_photo", r.ProfilePhoto)
	if r.Neutered != nil {
		u["neutered"] = *r.Neutered
	}
	if r.Weight != nil {
		u["weight_kg"] = *r.Weight
	}
	if r.UnknownBirthday != nil {
		u["unknown_birthday"] = *r.UnknownBirthday
	}
	if r.MultiCat != nil {
		u["multi_cat"] = *r.MultiCat
	}
	if r.CatCount != nil {
		u["cat_count"] = *r.CatCount
	}
	if r.MealsPerDay != nil {
		u["meals_per_day"] = *r.MealsPerDay
	}
	return u
}

//
// Handlers
//

// CreatePet godoc
// @ID          createPet
// @Summary     Register a new pet
// @Description Registers a cat profile for the current user and returns the created resource.
// @Tags        Pets
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.PetRequest  true  "Pet profile payload"
//
// @Success     201  {object}  domain.Pet
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pets [post]
func (h *Handlers) CreatePet(c *gin.Context) {
	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p, err := h.petSvc.Create(c.Request.Context(), userID(c), req.toPet())
	if err != nil {
		if errors.Is(err, services.ErrInvalidPet) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, p)
}

// ListPets godoc
// @ID          listPets
// @Summary     List the user's pets
// @Description Returns all pets in registration order. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Pets
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
//
// @Success     200  {array}  domain.Pet
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /pets [get]
func (h *Handlers) ListPets(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, okCast := h.petSvc.(*services.PetService); okCast {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.PetsStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"pets:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	pets, err := h.petSvc.List(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if pets == nil {
		pets = []domain.Pet{}
	}
	ok(c, http.StatusOK, pets)
}

// GetPet godoc
// @ID          getPet
// @Summary     Fetch one pet
// @Tags        Pets
// @Produce     json
//
// @Param       id  path  string  true  "Pet ID"
//
// @Success     200  {object}  domain.Pet
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /pets/{id} [get]
func (h *Handlers) GetPet(c *gin.Context) {
	p, err := h.petSvc.Get(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		if errors.Is(err, services.ErrPetNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "pet not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdatePet godoc
// @ID          updatePet
// @Summary     Update a pet profile
// @Description Applies a partial edit; absent fields are left unchanged.
// @Tags        Pets
// @Accept      json
// @Produce     json
//
// @Param       id    path  string               true  "Pet ID"
// @Param       body  body  handlers.PetRequest  true  "Fields to update"
//
// @Success     200  {object}  domain.Pet
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /pets/{id} [put]
func (h *Handlers) UpdatePet(c *gin.Context) {
	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p, err := h.petSvc.Update(c.Request.Context(), c.Param("id"), userID(c), req.toUpdates())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPet):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrPetNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "pet not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, p)
}

// DeletePet godoc
// @ID          deletePet
// @Summary     Remove a pet
// @Tags        Pets
//
// @Param       id  path  string  true  "Pet ID"
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /pets/{id} [delete]
func (h *Handlers) DeletePet(c *gin.Context) {
	err := h.petSvc.Delete(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		if errors.Is(err, services.ErrPetNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "pet not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
