package application

import (
	"context"
	"testing"
	"time"

	"github.com/foodrescue/rescue-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fastReporter(model *fakeModel) *Reporter {
	cfg := ReporterConfig{
		CallTimeout: 50 * time.Millisecond,
		MaxRetries:  2,
		BackoffBase: time.Millisecond,
	}

	// A typed nil must not end up inside the interface.
	if model == nil {
		return NewReporter(nil, fixedClock{now: testNow}, zap.NewNop(), nil, cfg)
	}
	return NewReporter(model, fixedClock{now: testNow}, zap.NewNop(), nil, cfg)
}

func TestGenerateTemplateMode(t *testing.T) {
	t.Parallel()

	document := testDocument(testRecord("Maria", 20, 40), testRecord("Ben", 5, 10))
	summary := Summarize(document)

	payload := fastReporter(nil).Generate(context.Background(), summary, ReportModeTemplate)

	assert.Equal(t, domain.ReportSourceTemplate, payload.Source)
	assert.NotEmpty(t, payload.Narrative)
	assert.Contains(t, payload.Narrative, "25.0 kg")
	assert.Contains(t, payload.Narrative, "50 meals")
	assert.Equal(t, testNow, payload.GeneratedAt)
}

func TestGenerateTemplateModeEmptySession(t *testing.T) {
	t.Parallel()

	document := testDocument()
	payload := fastReporter(nil).Generate(context.Background(), Summarize(document), ReportModeTemplate)

	assert.Equal(t, domain.ReportSourceTemplate, payload.Source)
	assert.NotEmpty(t, payload.Narrative)
}

func TestGenerateAIModeSuccess(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []fakeResponse{
		{text: "Together we rescued a mountain of food and fed fifty neighbors today."},
	}}

	document := testDocument(testRecord("Maria", 20, 40))
	payload := fastReporter(model).Generate(context.Background(), Summarize(document), ReportModeAI)

	assert.Equal(t, domain.ReportSourceAI, payload.Source)
	assert.Equal(t, "Together we rescued a mountain of food and fed fifty neighbors today.", payload.Narrative)
	assert.Equal(t, 1, model.callCount())
}

func TestGenerateAIModeEmptyResponseFallsBack(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []fakeResponse{{text: ""}}}

	document := testDocument(testRecord("Maria", 20, 40))
	payload := fastReporter(model).Generate(context.Background(), Summarize(document), ReportModeAI)

	assert.Equal(t, domain.ReportSourceTemplate, payload.Source)
	assert.NotEmpty(t, payload.Narrative)
	// One initial attempt plus two retries.
	assert.Equal(t, 3, model.callCount())
}

func TestGenerateAIModeTransportFaultRetriesThenFallsBack(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []fakeResponse{{err: errFakeTransport}}}

	document := testDocument(testRecord("Maria", 20, 40))
	payload := fastReporter(model).Generate(context.Background(), Summarize(document), ReportModeAI)

	assert.Equal(t, domain.ReportSourceTemplate, payload.Source)
	assert.NotEmpty(t, payload.Narrative)
	assert.Equal(t, 3, model.callCount())
}

func TestGenerateAIModeRecoversOnRetry(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []fakeResponse{
		{err: errFakeTransport},
		{text: "A second try that reads perfectly well and helps the community."},
	}}

	document := testDocument(testRecord("Maria", 20, 40))
	payload := fastReporter(model).Generate(context.Background(), Summarize(document), ReportModeAI)

	assert.Equal(t, domain.ReportSourceAI, payload.Source)
	assert.Equal(t, 2, model.callCount())
}

func TestGenerateAIModeTimeoutFallsBack(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []fakeResponse{{block: true}}}

	document := testDocument(testRecord("Maria", 20, 40))
	payload := fastReporter(model).Generate(context.Background(), Summarize(document), ReportModeAI)

	assert.Equal(t, domain.ReportSourceTemplate, payload.Source)
	assert.NotEmpty(t, payload.Narrative)
}

func TestGenerateAIModeRejectsPlaceholderNarratives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "too short", text: "short"},
		{name: "template braces", text: "We rescued {{total_weight}} kg of food for the community today."},
		{name: "insert marker", text: "Great news for everyone: [INSERT IMPACT STATEMENT HERE] thank you."},
		{name: "todo marker", text: "TODO: write something inspiring about the donations we received."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			model := &fakeModel{responses: []fakeResponse{{text: tt.text}}}
			document := testDocument(testRecord("Maria", 20, 40))

			payload := fastReporter(model).Generate(context.Background(), Summarize(document), ReportModeAI)
			assert.Equal(t, domain.ReportSourceTemplate, payload.Source)
		})
	}
}

func TestGenerateAIModeNilModelUsesTemplate(t *testing.T) {
	t.Parallel()

	document := testDocument(testRecord("Maria", 20, 40))
	payload := fastReporter(nil).Generate(context.Background(), Summarize(document), ReportModeAI)

	assert.Equal(t, domain.ReportSourceTemplate, payload.Source)
	require.NotEmpty(t, payload.Narrative)
}
