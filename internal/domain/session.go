package domain

import "time"

// SessionDocument is a named collection of donation records for one
// reporting period. Record order is append order.
type SessionDocument struct {
	SessionID SessionID        `json:"session_id"`
	Records   []DonationRecord `json:"records"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Clone returns an independent copy. Producers running concurrently
// each get their own snapshot so no locking is needed between them.
func (d SessionDocument) Clone() SessionDocument {
	records := make([]DonationRecord, len(d.Records))
	copy(records, d.Records)

	return SessionDocument{
		SessionID: d.SessionID,
		Records:   records,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Contains reports whether an exactly equal record is already present.
func (d SessionDocument) Contains(record DonationRecord) bool {
	for _, existing := range d.Records {
		if existing.Equal(record) {
			return true
		}
	}

	return false
}
