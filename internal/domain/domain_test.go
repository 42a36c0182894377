package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() DonationRecord {
	return DonationRecord{
		DonorName:     "Maria",
		FoodType:      "carrots",
		WeightKg:      20,
		MealsEstimate: 40,
		Store:         "GreenMart",
		Timestamp:     time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC),
	}
}

func TestDonationRecordValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*DonationRecord)
		wantField string
	}{
		{name: "valid record passes", mutate: func(*DonationRecord) {}},
		{name: "empty donor rejected", mutate: func(r *DonationRecord) { r.DonorName = "  " }, wantField: "donor_name"},
		{name: "empty food type rejected", mutate: func(r *DonationRecord) { r.FoodType = "" }, wantField: "food_type"},
		{name: "negative weight rejected", mutate: func(r *DonationRecord) { r.WeightKg = -1 }, wantField: "weight_kg"},
		{name: "zero weight allowed", mutate: func(r *DonationRecord) { r.WeightKg = 0 }},
		{name: "negative meals rejected", mutate: func(r *DonationRecord) { r.MealsEstimate = -5 }, wantField: "meals_estimate"},
		{name: "empty store rejected", mutate: func(r *DonationRecord) { r.Store = "" }, wantField: "store"},
		{name: "zero timestamp rejected", mutate: func(r *DonationRecord) { r.Timestamp = time.Time{} }, wantField: "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			record := validRecord()
			tt.mutate(&record)

			err := record.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.True(t, IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestDonationRecordEqualIsFieldForField(t *testing.T) {
	t.Parallel()

	first := validRecord()
	second := validRecord()
	require.True(t, first.Equal(second))

	second.WeightKg = 19.999
	assert.False(t, first.Equal(second))

	// Same instant in a different zone still counts as equal.
	third := validRecord()
	third.Timestamp = first.Timestamp.In(time.FixedZone("CET", 3600))
	assert.True(t, first.Equal(third))
}

func TestSessionDocumentCloneIsIndependent(t *testing.T) {
	t.Parallel()

	document := SessionDocument{
		SessionID: "daily_20260824",
		Records:   []DonationRecord{validRecord()},
	}

	clone := document.Clone()
	clone.Records[0].DonorName = "someone else"
	clone.Records = append(clone.Records, validRecord())

	assert.Equal(t, "Maria", document.Records[0].DonorName)
	assert.Len(t, document.Records, 1)
}

func TestSessionDocumentContains(t *testing.T) {
	t.Parallel()

	document := SessionDocument{Records: []DonationRecord{validRecord()}}
	require.True(t, document.Contains(validRecord()))

	other := validRecord()
	other.MealsEstimate++
	assert.False(t, document.Contains(other))
}
