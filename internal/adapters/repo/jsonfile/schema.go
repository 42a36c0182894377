package jsonfile

import (
	"fmt"
	"time"

	"github.com/foodrescue/rescue-cli/internal/domain"
)

const currentSchemaVersion = 1

// fileSchema is the on-disk shape of one session document. One file
// per session id, plain JSON, atomic replace on write.
type fileSchema struct {
	Version   int            `json:"version"`
	SessionID string         `json:"session_id"`
	Records   []recordSchema `json:"records"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// validate checks every record against the domain constraints; a file
// that fails here is treated the same as an unparseable one.
func (s fileSchema) validate() error {
	for i, record := range s.Records {
		decoded, err := fromRecordSchema(record)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if err := decoded.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	return nil
}

type recordSchema struct {
	DonorName     string  `json:"donor_name"`
	FoodType      string  `json:"food_type"`
	WeightKg      float64 `json:"weight_kg"`
	MealsEstimate int     `json:"meals_estimate"`
	Store         string  `json:"store"`
	Timestamp     string  `json:"timestamp"`
}

func toSchema(document domain.SessionDocument) fileSchema {
	records := make([]recordSchema, 0, len(document.Records))
	for _, record := range document.Records {
		records = append(records, recordSchema{
			DonorName:     record.DonorName,
			FoodType:      record.FoodType,
			WeightKg:      record.WeightKg,
			MealsEstimate: record.MealsEstimate,
			Store:         record.Store,
			Timestamp:     formatTime(record.Timestamp),
		})
	}

	return fileSchema{
		Version:   currentSchemaVersion,
		SessionID: string(document.SessionID),
		Records:   records,
		CreatedAt: formatTime(document.CreatedAt),
		UpdatedAt: formatTime(document.UpdatedAt),
	}
}

func fromSchema(file fileSchema) (domain.SessionDocument, error) {
	records := make([]domain.DonationRecord, 0, len(file.Records))
	for i, record := range file.Records {
		decoded, err := fromRecordSchema(record)
		if err != nil {
			return domain.SessionDocument{}, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, decoded)
	}

	return domain.SessionDocument{
		SessionID: domain.SessionID(file.SessionID),
		Records:   records,
		CreatedAt: parseTime(file.CreatedAt),
		UpdatedAt: parseTime(file.UpdatedAt),
	}, nil
}

func fromRecordSchema(record recordSchema) (domain.DonationRecord, error) {
	timestamp, err := time.Parse(time.RFC3339, record.Timestamp)
	if err != nil {
		return domain.DonationRecord{}, fmt.Errorf("parse timestamp %q: %w", record.Timestamp, err)
	}

	return domain.DonationRecord{
		DonorName:     record.DonorName,
		FoodType:      record.FoodType,
		WeightKg:      record.WeightKg,
		MealsEstimate: record.MealsEstimate,
		Store:         record.Store,
		Timestamp:     timestamp,
	}, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
