// Package domain defines the persistence models for users, pets, daily care
// logs, and notifications. These types are mapped with GORM and form the core
// data layer of the cat health tracking application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// User represents an app account backed by the external identity provider.
// The provider subject ("sub") is the stable external key; rows are created
// lazily on first authenticated request.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Sub: identity-provider subject, unique per account.
//   - PushToken: Expo push token, empty until the device registers one.
//   - AlarmsEnabled / AlarmConfig: reminder preferences; AlarmConfig is an
//     opaque JSON document owned by the mobile client.
//   - DeletedAt: soft deletion marker (account withdrawal keeps the row).
type User struct {
	ID            string         `json:"id"             gorm:"type:char(36);primaryKey"`
	Sub           string         `json:"sub"            gorm:"type:varchar(64);not null;uniqueIndex:ux_users_sub"`
	Email         string         `json:"email"          gorm:"type:varchar(255)"`
	Name          string         `json:"name"           gorm:"type:varchar(128)"`
	Nickname      string         `json:"nickname"       gorm:"type:varchar(128)"`
	PhoneNumber   string         `json:"phone"          gorm:"type:varchar(32)"`
	Address       string         `json:"address"        gorm:"type:varchar(255)"`
	ProfilePhoto  string         `json:"profilePhoto"   gorm:"type:varchar(512)"`
	PushToken     string         `json:"-"              gorm:"type:varchar(255)"`
	DeviceInfo    string         `json:"-"              gorm:"type:text"`
	AlarmsEnabled bool           `json:"alarmsEnabled"  gorm:"not null;default:true"`
	AlarmConfig   string         `json:"alarmConfig"    gorm:"type:text"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-"              gorm:"index"`

	// Pets owned by this user; loaded on demand (e.g., GET /users/me).
	Pets []Pet `json:"pets,omitempty" gorm:"foreignKey:UserID"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Pet represents one tracked cat. The lifestyle columns (ActivityLevel,
// WaterIntake) hold the low/normal/high ordinals consumed by the risk
// analyzer; MedicalHistory is a JSON array of {category, ...} entries kept
// opaque at this layer.
//
// Every profile create/update is additionally snapshotted to the DynamoDB
// history table (see internal/dynamo); the relational row is the mutable
// "current profile" view.
type Pet struct {
	ID              string         `json:"id"              gorm:"type:char(36);primaryKey"`
	UserID          string         `json:"userId"          gorm:"type:char(36);not null;index:idx_user_pets"`
	Name            string         `json:"name"            gorm:"type:varchar(128);not null"`
	Breed           string         `json:"breed"           gorm:"type:varchar(128)"`
	Gender          string         `json:"gender"          gorm:"type:varchar(16)"`
	Neutered        *bool          `json:"neutered,omitempty"`
	BirthDate       string         `json:"birthDate"       gorm:"type:varchar(10)"` // YYYY-MM-DD, empty when unknown
	EstimatedAge    string         `json:"estimatedAge"    gorm:"type:varchar(32)"`
	UnknownBirthday bool           `json:"unknownBirthday"`
	WeightKg        float64        `json:"weight"`
	FoodType        string         `json:"foodType"        gorm:"type:varchar(64)"`
	WaterSource     string         `json:"waterSource"     gorm:"type:varchar(64)"`
	ActivityLevel   string         `json:"activityLevel"   gorm:"type:varchar(16)"` // low|normal|high
	WaterIntake     string         `json:"waterIntake"     gorm:"type:varchar(16)"` // low|normal|high
	LivingEnv       string         `json:"livingEnvironment" gorm:"type:varchar(64)"`
	MultiCat        bool           `json:"multiCat"`
	CatCount        int            `json:"catCount"`
	MealsPerDay     int            `json:"mealsPerDay"`
	MedicalHistory  string         `json:"medicalHistory"  gorm:"type:text"` // JSON array of history entries
	Medications     string         `json:"medications"     gorm:"type:text"`
	Notes           string         `json:"notes"           gorm:"type:text"`
	VetInfo         string         `json:"vetInfo"         gorm:"type:varchar(255)"`
	ProfilePhoto    string         `json:"profilePhoto"    gorm:"type:varchar(512)"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-"               gorm:"index"`

	// User is the owner; pets are cascade-deleted with their user.
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Pet.
func (Pet) TableName() string { return "pets" }

// CareLog is one day's check-in for a pet, keyed by (pet_id, date) with at
// most one row per calendar day. Re-submitting the same day overwrites the
// stored answers (upsert semantics), it never appends a second row.
//
// Answers and DiagAnswers carry the raw questionnaire payloads as JSON text;
// the monthly aggregator decodes Answers into health.CheckInRecord.
type CareLog struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	PetID       string         `json:"petId"       gorm:"type:char(36);not null;uniqueIndex:ux_carelog_pet_date,priority:1"`
	Date        string         `json:"date"        gorm:"type:varchar(10);not null;uniqueIndex:ux_carelog_pet_date,priority:2"` // YYYY-MM-DD (pet-local day)
	Answers     string         `json:"answers"     gorm:"type:text"`
	DiagAnswers string         `json:"diagAnswers" gorm:"type:text"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`

	// Pet is the subject of the check-in.
	Pet Pet `json:"-" gorm:"foreignKey:PetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for CareLog.
func (CareLog) TableName() string { return "care_logs" }

// Notification is a delivered (or pending) push message persisted for the
// in-app notification center. RefKey carries the dedupe handle the cron jobs
// use: for a given (Type, RefKey) at most one notification per day is sent.
type Notification struct {
	ID        string         `json:"id"        gorm:"type:char(36);primaryKey"`
	UserID    string         `json:"userId"    gorm:"type:char(36);not null;index:idx_user_notifs"`
	Type      string         `json:"type"      gorm:"type:varchar(32);not null"` // SYSTEM|DIAG_REMINDER|REPORT_READY|...
	RefKey    string         `json:"-"         gorm:"type:varchar(128);index"`
	Title     string         `json:"title"     gorm:"type:varchar(255);not null"`
	Body      string         `json:"body"      gorm:"type:text"`
	Data      string         `json:"data,omitempty" gorm:"type:text"` // JSON payload forwarded to the push gateway
	IsRead    bool           `json:"isRead"    gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-"         gorm:"index"`

	// User is the recipient.
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Notification.
func (Notification) TableName() string { return "notifications" }
