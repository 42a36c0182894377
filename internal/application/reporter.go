package application

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/foodrescue/rescue-cli/internal/domain"
	"github.com/foodrescue/rescue-cli/internal/observability"
	"github.com/foodrescue/rescue-cli/internal/ports"
	"go.uber.org/zap"
)

type ReportMode string

const (
	ReportModeTemplate ReportMode = "template"
	ReportModeAI       ReportMode = "ai-assisted"
)

const (
	defaultCallTimeout = 8 * time.Second
	defaultMaxRetries  = 2
	defaultBackoffBase = 200 * time.Millisecond

	narrativeMinLen = 10
	narrativeMaxLen = 600
)

// Tokens that mark a half-rendered model response. A narrative
// containing any of them is rejected outright.
var disallowedNarrativeTokens = []string{"{{", "}}", "[INSERT", "TODO:", "<PLACEHOLDER>"}

type ReporterConfig struct {
	CallTimeout time.Duration
	MaxRetries  int
	BackoffBase time.Duration
}

func (c ReporterConfig) withDefaults() ReporterConfig {
	if c.CallTimeout <= 0 {
		c.CallTimeout = defaultCallTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = defaultBackoffBase
	}

	return c
}

// Reporter produces donor-facing narrative text, from a deterministic
// template or from the injected text model. The model path can time
// out, fail transport, or return junk; none of that ever surfaces to
// the caller, the template takes over instead.
type Reporter struct {
	model   ports.TextModel
	clock   ports.Clock
	logger  *zap.Logger
	metrics *observability.Registry
	cfg     ReporterConfig
}

func NewReporter(model ports.TextModel, clock ports.Clock, logger *zap.Logger, metrics *observability.Registry, cfg ReporterConfig) *Reporter {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reporter{
		model:   model,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		cfg:     cfg.withDefaults(),
	}
}

func (r *Reporter) Generate(ctx context.Context, summary domain.SummaryView, mode ReportMode) domain.ReportPayload {
	if mode != ReportModeAI || r.model == nil {
		return r.templatePayload(summary)
	}

	prompt := buildPrompt(summary)
	attempts := r.cfg.MaxRetries + 1
	backoff := r.cfg.BackoffBase

	for attempt := 1; attempt <= attempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, r.cfg.CallTimeout)
		text, err := r.model.Generate(callCtx, prompt)
		cancel()

		if err == nil {
			if narrative, ok := acceptNarrative(text); ok {
				r.metrics.Incr("reporter.ai.accepted")
				return domain.ReportPayload{
					Narrative:   narrative,
					Source:      domain.ReportSourceAI,
					GeneratedAt: r.clock.Now(),
				}
			}
			r.logger.Warn("generated narrative rejected",
				zap.Int("attempt", attempt),
				zap.Int("length", utf8.RuneCountInString(text)))
		} else {
			r.logger.Warn("text generation attempt failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
		}

		if attempt == attempts {
			break
		}

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			r.metrics.Incr("reporter.fallback")
			return r.templatePayload(summary)
		}
		backoff *= 2
	}

	r.metrics.Incr("reporter.fallback")
	return r.templatePayload(summary)
}

func (r *Reporter) templatePayload(summary domain.SummaryView) domain.ReportPayload {
	return domain.ReportPayload{
		Narrative:   TemplateNarrative(summary),
		Source:      domain.ReportSourceTemplate,
		GeneratedAt: r.clock.Now(),
	}
}

// TemplateNarrative is the deterministic fallback text. It always
// produces a non-empty narrative, including for empty sessions.
func TemplateNarrative(summary domain.SummaryView) string {
	if summary.RecordCount == 0 {
		return "🍎 No donations logged yet. Start making an impact today!"
	}

	return fmt.Sprintf("🍎 %.1f kg of food rescued, providing %d meals from %d stores!",
		summary.TotalWeightKg, summary.TotalMeals, summary.StoreCount)
}

func buildPrompt(summary domain.SummaryView) string {
	return fmt.Sprintf(`You are an impact reporter for a food rescue organization. Write a warm, inspiring 1-2 sentence impact statement for donors.

Today's numbers:
- Total food rescued: %.1f kg
- Estimated meals provided: %d
- Stores participating: %d
- Individual donors: %d

Guidelines:
- Keep it under 300 characters.
- Sound human, warm, and community-focused.
- Focus on real impact: meals provided, families fed.
- No technical terms and no mention of AI or systems.`,
		summary.TotalWeightKg, summary.TotalMeals, summary.StoreCount, summary.DonorCount)
}

// acceptNarrative applies the minimal acceptance criteria to an
// untrusted model response.
func acceptNarrative(text string) (string, bool) {
	narrative := strings.TrimSpace(text)
	length := utf8.RuneCountInString(narrative)
	if length < narrativeMinLen || length > narrativeMaxLen {
		return "", false
	}

	upper := strings.ToUpper(narrative)
	for _, token := range disallowedNarrativeTokens {
		if strings.Contains(upper, strings.ToUpper(token)) {
			return "", false
		}
	}

	return narrative, true
}
