package application

import (
	"time"

	"github.com/foodrescue/rescue-cli/internal/domain"
)

type Phase string

const (
	PhasePending    Phase = "pending"
	PhaseDispatched Phase = "dispatched"
	PhaseCollecting Phase = "collecting"
	PhaseAssembled  Phase = "assembled"
	PhaseTimedOut   Phase = "timed-out"
)

type SectionName string

const (
	SectionSummary    SectionName = "summary"
	SectionAllocation SectionName = "allocation"
	SectionReport     SectionName = "report"
)

type ReportStatus string

const (
	StatusComplete ReportStatus = "complete"
	StatusPartial  ReportStatus = "partial"
)

// SessionReport is the assembled payload for one session-processing
// request. Sections a producer never delivered are nil and named in
// Missing.
type SessionReport struct {
	SessionID  domain.SessionID      `json:"session_id"`
	Summary    *domain.SummaryView   `json:"summary,omitempty"`
	Allocation domain.AllocationView `json:"allocation,omitempty"`
	Report     *domain.ReportPayload `json:"report,omitempty"`
	Status     ReportStatus          `json:"status"`
	Missing    []SectionName         `json:"missing,omitempty"`
	Phase      Phase                 `json:"phase"`
	Elapsed    time.Duration         `json:"elapsed_ns"`
}
