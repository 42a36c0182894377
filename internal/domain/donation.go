package domain

import (
	"fmt"
	"strings"
	"time"
)

type SessionID string

// DonationRecord is one logged donation. Records are immutable once
// appended to a session.
type DonationRecord struct {
	DonorName     string    `json:"donor_name"`
	FoodType      string    `json:"food_type"`
	WeightKg      float64   `json:"weight_kg"`
	MealsEstimate int       `json:"meals_estimate"`
	Store         string    `json:"store"`
	Timestamp     time.Time `json:"timestamp"`
}

func (r DonationRecord) Validate() error {
	if strings.TrimSpace(r.DonorName) == "" {
		return &ValidationError{Field: "donor_name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(r.FoodType) == "" {
		return &ValidationError{Field: "food_type", Reason: "must not be empty"}
	}
	if r.WeightKg < 0 {
		return &ValidationError{Field: "weight_kg", Reason: fmt.Sprintf("must not be negative, got %v", r.WeightKg)}
	}
	if r.MealsEstimate < 0 {
		return &ValidationError{Field: "meals_estimate", Reason: fmt.Sprintf("must not be negative, got %d", r.MealsEstimate)}
	}
	if strings.TrimSpace(r.Store) == "" {
		return &ValidationError{Field: "store", Reason: "must not be empty"}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "timestamp", Reason: "must be set"}
	}

	return nil
}

// Equal reports exact field-for-field equality. Merge de-duplication
// relies on this and nothing weaker.
func (r DonationRecord) Equal(other DonationRecord) bool {
	return r.DonorName == other.DonorName &&
		r.FoodType == other.FoodType &&
		r.WeightKg == other.WeightKg &&
		r.MealsEstimate == other.MealsEstimate &&
		r.Store == other.Store &&
		r.Timestamp.Equal(other.Timestamp)
}
