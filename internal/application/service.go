package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/foodrescue/rescue-cli/internal/domain"
	"github.com/foodrescue/rescue-cli/internal/ports"
	"go.uber.org/zap"
)

// Service covers the direct session operations: logging a donation,
// merging sessions, listing and exporting. The orchestrator handles
// the concurrent report path separately.
type Service struct {
	repo   ports.SessionRepository
	clock  ports.Clock
	logger *zap.Logger
}

func NewService(repo ports.SessionRepository, clock ports.Clock, logger *zap.Logger) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

type LogResult struct {
	SessionID domain.SessionID
	Message   string
	Summary   domain.SummaryView
	Report    domain.ReportPayload
}

func (s *Service) LogDonation(ctx context.Context, id domain.SessionID, record domain.DonationRecord) (LogResult, error) {
	document, err := s.repo.Append(ctx, id, record)
	if err != nil {
		return LogResult{}, fmt.Errorf("append donation: %w", err)
	}

	summary := Summarize(document)

	s.logger.Info("donation logged",
		zap.String("session_id", string(id)),
		zap.String("store", record.Store),
		zap.Float64("weight_kg", record.WeightKg))

	return LogResult{
		SessionID: id,
		Message:   fmt.Sprintf("Logged %.1f kg of %s from %s", record.WeightKg, record.FoodType, record.Store),
		Summary:   summary,
		Report: domain.ReportPayload{
			Narrative:   TemplateNarrative(summary),
			Source:      domain.ReportSourceTemplate,
			GeneratedAt: s.clock.Now(),
		},
	}, nil
}

// MergeSessions folds the source session's records into the
// destination. The source file is left untouched; deletion is a
// script-level concern, never the core's.
func (s *Service) MergeSessions(ctx context.Context, dst, src domain.SessionID) (domain.SessionDocument, error) {
	source, err := s.repo.Load(ctx, src)
	if err != nil {
		return domain.SessionDocument{}, fmt.Errorf("load source session: %w", err)
	}

	merged, err := s.repo.Merge(ctx, dst, source)
	if err != nil {
		return domain.SessionDocument{}, fmt.Errorf("merge sessions: %w", err)
	}

	return merged, nil
}

func (s *Service) ListSessions(ctx context.Context) ([]domain.SessionID, error) {
	ids, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids, nil
}

var csvHeader = []string{"donor_name", "food_type", "weight_kg", "meals_estimate", "store", "timestamp"}

// ExportCSV writes the session's records in append order.
func (s *Service) ExportCSV(ctx context.Context, id domain.SessionID, w io.Writer) error {
	document, err := s.repo.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, record := range document.Records {
		row := []string{
			record.DonorName,
			record.FoodType,
			strconv.FormatFloat(record.WeightKg, 'f', -1, 64),
			strconv.Itoa(record.MealsEstimate),
			record.Store,
			record.Timestamp.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
