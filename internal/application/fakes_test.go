package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/foodrescue/rescue-cli/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

// fakeRepository is an in-memory SessionRepository good enough for
// service and orchestrator tests.
type fakeRepository struct {
	mu        sync.Mutex
	documents map[domain.SessionID]domain.SessionDocument
	loadErr   error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{documents: map[domain.SessionID]domain.SessionDocument{}}
}

func (r *fakeRepository) Load(_ context.Context, id domain.SessionID) (domain.SessionDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loadErr != nil {
		return domain.SessionDocument{}, r.loadErr
	}

	document, ok := r.documents[id]
	if !ok {
		return domain.SessionDocument{}, domain.ErrSessionNotFound
	}

	return document.Clone(), nil
}

func (r *fakeRepository) Append(_ context.Context, id domain.SessionID, record domain.DonationRecord) (domain.SessionDocument, error) {
	if err := record.Validate(); err != nil {
		return domain.SessionDocument{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	document, ok := r.documents[id]
	if !ok {
		document = domain.SessionDocument{SessionID: id, CreatedAt: testNow}
	}
	document.Records = append(document.Records, record)
	document.UpdatedAt = testNow
	r.documents[id] = document

	return document.Clone(), nil
}

func (r *fakeRepository) Merge(_ context.Context, id domain.SessionID, other domain.SessionDocument) (domain.SessionDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	document, ok := r.documents[id]
	if !ok {
		document = domain.SessionDocument{SessionID: id, CreatedAt: testNow}
	}
	for _, record := range other.Records {
		if document.Contains(record) {
			continue
		}
		document.Records = append(document.Records, record)
	}
	document.UpdatedAt = testNow
	r.documents[id] = document

	return document.Clone(), nil
}

func (r *fakeRepository) List(_ context.Context) ([]domain.SessionID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]domain.SessionID, 0, len(r.documents))
	for id := range r.documents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	return ids, nil
}

// fakeModel scripts the external text-generation call: one entry per
// attempt, optionally blocking until the context is done first.
type fakeModel struct {
	mu        sync.Mutex
	responses []fakeResponse
	calls     int
}

type fakeResponse struct {
	text string
	err  error
	// block waits for the call context; hang never returns at all,
	// standing in for a producer that must be abandoned; boom panics.
	block bool
	hang  bool
	boom  bool
}

var errFakeTransport = errors.New("transport fault")

func (m *fakeModel) Generate(ctx context.Context, _ string) (string, error) {
	m.mu.Lock()
	call := m.calls
	m.calls++
	var response fakeResponse
	if call < len(m.responses) {
		response = m.responses[call]
	} else if len(m.responses) > 0 {
		response = m.responses[len(m.responses)-1]
	}
	m.mu.Unlock()

	if response.boom {
		panic("model exploded")
	}
	if response.hang {
		select {}
	}
	if response.block {
		<-ctx.Done()
		return "", ctx.Err()
	}

	return response.text, response.err
}

func (m *fakeModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type fakePartnerSource struct {
	partners []domain.Partner
	err      error
}

func (s fakePartnerSource) Partners(context.Context) ([]domain.Partner, error) {
	return s.partners, s.err
}

func testRecord(donor string, weight float64, meals int) domain.DonationRecord {
	return domain.DonationRecord{
		DonorName:     donor,
		FoodType:      "apples",
		WeightKg:      weight,
		MealsEstimate: meals,
		Store:         "GreenMart",
		Timestamp:     time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
	}
}

func testDocument(records ...domain.DonationRecord) domain.SessionDocument {
	return domain.SessionDocument{
		SessionID: "daily_20260824",
		Records:   records,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}
