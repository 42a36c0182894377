package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foodrescue/rescue-cli/internal/domain"
	"github.com/foodrescue/rescue-cli/internal/observability"
	"github.com/foodrescue/rescue-cli/internal/ports"
	"go.uber.org/zap"
)

const defaultBudget = 5 * time.Second

type OrchestratorConfig struct {
	// Budget bounds the aggregate wait for all three producers.
	Budget time.Duration
	Mode   ReportMode
}

// Orchestrator runs the three producers (summary, allocation, report)
// concurrently against independent snapshots of one session and
// assembles a single payload. A producer's fault never cancels the
// others; a producer that outlives the budget is disregarded, not
// killed, and its section is marked unavailable.
type Orchestrator struct {
	repo     ports.SessionRepository
	partners ports.PartnerSource
	reporter *Reporter
	logger   *zap.Logger
	metrics  *observability.Registry
	budget   time.Duration
	mode     ReportMode
}

func NewOrchestrator(repo ports.SessionRepository, partners ports.PartnerSource, reporter *Reporter, logger *zap.Logger, metrics *observability.Registry, cfg OrchestratorConfig) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Budget <= 0 {
		cfg.Budget = defaultBudget
	}
	if cfg.Mode == "" {
		cfg.Mode = ReportModeTemplate
	}

	return &Orchestrator{
		repo:     repo,
		partners: partners,
		reporter: reporter,
		logger:   logger,
		metrics:  metrics,
		budget:   cfg.Budget,
		mode:     cfg.Mode,
	}
}

func (o *Orchestrator) Run(ctx context.Context, id domain.SessionID) (SessionReport, error) {
	started := time.Now()
	result := SessionReport{SessionID: id, Phase: PhasePending}
	o.metrics.Incr("orchestrator.runs")

	document, err := o.repo.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return result, fmt.Errorf("load session: %w", err)
		}
		// An absent session is a valid empty one for reporting.
		document = domain.SessionDocument{SessionID: id}
	}

	roster, err := o.partners.Partners(ctx)
	if err != nil {
		o.logger.Warn("partner roster unavailable, allocating against empty roster",
			zap.String("session_id", string(id)),
			zap.Error(err))
		roster = nil
	}

	result.Phase = PhaseDispatched

	summaryCh := make(chan domain.SummaryView, 1)
	allocationCh := make(chan domain.AllocationView, 1)
	reportCh := make(chan domain.ReportPayload, 1)

	dispatchProducer(o, "summary", summaryCh, document, func(snapshot domain.SessionDocument) domain.SummaryView {
		return Summarize(snapshot)
	})
	dispatchProducer(o, "allocation", allocationCh, document, func(snapshot domain.SessionDocument) domain.AllocationView {
		return Allocate(snapshot, roster)
	})
	dispatchProducer(o, "report", reportCh, document, func(snapshot domain.SessionDocument) domain.ReportPayload {
		return o.reporter.Generate(ctx, Summarize(snapshot), o.mode)
	})

	result.Phase = PhaseCollecting

	deadline := time.NewTimer(o.budget)
	defer deadline.Stop()

collecting:
	for summaryCh != nil || allocationCh != nil || reportCh != nil {
		select {
		case view, ok := <-summaryCh:
			if ok {
				result.Summary = &view
			}
			summaryCh = nil
		case view, ok := <-allocationCh:
			if ok {
				result.Allocation = view
			}
			allocationCh = nil
		case payload, ok := <-reportCh:
			if ok {
				result.Report = &payload
			}
			reportCh = nil
		case <-deadline.C:
			o.metrics.Incr("orchestrator.timeouts")
			result.Phase = PhaseTimedOut
			break collecting
		case <-ctx.Done():
			result.Phase = PhaseTimedOut
			break collecting
		}
	}

	// Missing is assembled in fixed section order regardless of how the
	// select loop interleaved, so the payload is stable across runs.
	// Stragglers are abandoned; their buffered sends are discarded along
	// with the channels.
	if result.Summary == nil {
		result.Missing = append(result.Missing, SectionSummary)
	}
	if result.Allocation == nil {
		result.Missing = append(result.Missing, SectionAllocation)
	}
	if result.Report == nil {
		result.Missing = append(result.Missing, SectionReport)
	}

	if result.Phase != PhaseTimedOut {
		result.Phase = PhaseAssembled
	}

	result.Status = StatusComplete
	if len(result.Missing) > 0 {
		result.Status = StatusPartial
	}
	result.Elapsed = time.Since(started)
	o.metrics.Timing("orchestrator.duration", result.Elapsed)

	return result, nil
}

// dispatchProducer runs one producer against its own snapshot. The
// channel is closed without a value when the producer panics, so the
// collector sees the section as unavailable immediately instead of
// waiting out the budget.
func dispatchProducer[T any](o *Orchestrator, name string, ch chan T, document domain.SessionDocument, produce func(domain.SessionDocument) T) {
	snapshot := document.Clone()
	go func() {
		started := time.Now()
		defer close(ch)
		defer func() {
			if p := recover(); p != nil {
				o.logger.Error("producer panicked",
					zap.String("producer", name),
					zap.Any("panic", p))
				o.metrics.Incr("producer." + name + ".panics")
			}
			o.metrics.Timing("producer."+name+".duration", time.Since(started))
		}()
		ch <- produce(snapshot)
	}()
}
