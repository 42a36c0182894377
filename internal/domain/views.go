package domain

// SummaryView is derived from a SessionDocument, recomputed on demand
// and never persisted.
type SummaryView struct {
	TotalWeightKg   float64            `json:"total_weight_kg"`
	TotalMeals      int                `json:"total_meals"`
	DonorCount      int                `json:"donor_count"`
	StoreCount      int                `json:"store_count"`
	RecordCount     int                `json:"record_count"`
	AverageWeightKg float64            `json:"average_weight_kg"`
	StoreWeightsKg  map[string]float64 `json:"store_weights_kg,omitempty"`
}

// Partner is one recipient organization from the configured roster.
// Weight is a relative share, not kilograms.
type Partner struct {
	ID     string
	Name   string
	Weight float64
}

type PartnerAllocation struct {
	WeightKg float64 `json:"weight_kg"`
	Meals    int     `json:"meals"`
	Share    float64 `json:"share"`
}

// AllocationView maps partner ID to its allocation. Allocated weights
// sum to the session total within rounding tolerance; a zero-weight
// session allocates zero everywhere.
type AllocationView map[string]PartnerAllocation
