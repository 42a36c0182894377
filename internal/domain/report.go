package domain

import "time"

type ReportSource string

const (
	ReportSourceTemplate ReportSource = "template"
	ReportSourceAI       ReportSource = "ai-generated"
)

// ReportPayload is donor-facing narrative text. It is regenerated per
// request and never treated as authoritative state.
type ReportPayload struct {
	Narrative   string       `json:"narrative_text"`
	Source      ReportSource `json:"source"`
	GeneratedAt time.Time    `json:"generated_at"`
}
