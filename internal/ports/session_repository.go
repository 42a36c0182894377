package ports

import (
	"context"

	"github.com/foodrescue/rescue-cli/internal/domain"
)

type SessionRepository interface {
	// Load returns the persisted document, domain.ErrSessionNotFound
	// when absent, or an empty document when the stored bytes are
	// unusable (corruption is tolerated, not propagated).
	Load(ctx context.Context, id domain.SessionID) (domain.SessionDocument, error)
	// Append validates the record, appends it and persists atomically.
	Append(ctx context.Context, id domain.SessionID, record domain.DonationRecord) (domain.SessionDocument, error)
	// Merge concatenates other's records into the stored document,
	// preserving relative order and dropping exact duplicates.
	Merge(ctx context.Context, id domain.SessionID, other domain.SessionDocument) (domain.SessionDocument, error)
	List(ctx context.Context) ([]domain.SessionID, error)
}
