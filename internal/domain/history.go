// Package domain defines the core persistence models for the application.
// This file declares the read model for the DynamoDB pet history table.
// Attribute names are part of the stored data contract (snake_case, chosen by
// the mobile pipeline that also writes to this table) and must not change.
package domain

// BasicProfile is the identity slice of a daily history record.
type BasicProfile struct {
	Name     string  `json:"name"      dynamodbav:"name"`
	Breed    string  `json:"breed"     dynamodbav:"breed"`
	Gender   string  `json:"gender"    dynamodbav:"gender"`
	Neutered *bool   `json:"neutered"  dynamodbav:"neutered"`
	WeightKg float64 `json:"weight_kg" dynamodbav:"weight_kg"`
	Birth    string  `json:"birth"     dynamodbav:"birth"`
}

// Lifestyle captures the habit fields the risk analyzer inspects.
// ActivityLevel and WaterIntake are low/normal/high ordinals; values may be
// stored in any letter case by historical writers.
type Lifestyle struct {
	FoodType      string `json:"food_type"      dynamodbav:"food_type"`
	WaterSource   string `json:"water_source"   dynamodbav:"water_source"`
	ActivityLevel string `json:"activity_level" dynamodbav:"activity_level"`
	WaterIntake   string `json:"water_intake"   dynamodbav:"water_intake"`
}

// MedicalEntry is one free-text medical history item. Category matching in
// the risk analyzer is a case-insensitive substring test, so the value is
// stored verbatim.
type MedicalEntry struct {
	Category string `json:"category" dynamodbav:"category"`
	Note     string `json:"note,omitempty" dynamodbav:"note,omitempty"`
}

// DailyRecord is one pet's state snapshot on one day, as stored in the
// history table. PK is the pet id; SK is an ISO-8601 insertion timestamp that
// strictly orders the series — the max SK is the authoritative current state.
type DailyRecord struct {
	PetID          string         `json:"PK"              dynamodbav:"PK"`
	SK             string         `json:"SK"              dynamodbav:"SK"`
	BasicProfile   BasicProfile   `json:"basic_profile"   dynamodbav:"basic_profile"`
	Lifestyle      Lifestyle      `json:"lifestyle"       dynamodbav:"lifestyle"`
	MedicalHistory []MedicalEntry `json:"medical_history" dynamodbav:"medical_history"`
	Notes          string         `json:"notes"           dynamodbav:"notes"`
	EventType      string         `json:"eventType"       dynamodbav:"eventType"` // PROFILE_CREATED | PROFILE_UPDATED | DAILY_CHECKIN
	CreatedAt      string         `json:"createdAt"       dynamodbav:"createdAt"`
}
