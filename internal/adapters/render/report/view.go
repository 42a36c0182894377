package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/foodrescue/rescue-cli/internal/application"
)

type RenderOptions struct {
	Now time.Time
}

const shareBarWidth = 20

func renderView(payload application.SessionReport, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Food Rescue Impact Report"),
		s.header.Render(fmt.Sprintf("session: %s  status: %s", payload.SessionID, payload.Status)),
	}

	if len(payload.Missing) > 0 {
		names := make([]string, 0, len(payload.Missing))
		for _, section := range payload.Missing {
			names = append(names, string(section))
		}
		lines = append(lines, s.warning.Render(fmt.Sprintf("unavailable sections: %s", strings.Join(names, ", "))))
	}

	lines = append(lines, s.section.Render(renderSummary(payload, s)))
	lines = append(lines, s.section.Render(renderAllocation(payload, s)))
	lines = append(lines, s.section.Render(renderNarrative(payload, s)))

	if !opts.Now.IsZero() {
		lines = append(lines, s.section.Render(s.header.Render(fmt.Sprintf("generated %s", opts.Now.Format("2006-01-02 15:04 MST")))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSummary(payload application.SessionReport, s styles) string {
	if payload.Summary == nil {
		return s.empty.Render("Summary unavailable.")
	}

	summary := payload.Summary
	parts := []string{
		s.label.Render("Summary"),
		s.value.Render(fmt.Sprintf("  %.1f kg rescued in %d donations", summary.TotalWeightKg, summary.RecordCount)),
		s.value.Render(fmt.Sprintf("  %d meals, %d donors, %d stores", summary.TotalMeals, summary.DonorCount, summary.StoreCount)),
	}

	if summary.RecordCount > 0 {
		parts = append(parts, s.value.Render(fmt.Sprintf("  %.1f kg average per donation", summary.AverageWeightKg)))
	}

	stores := make([]string, 0, len(summary.StoreWeightsKg))
	for store := range summary.StoreWeightsKg {
		stores = append(stores, store)
	}
	sort.Strings(stores)
	for _, store := range stores {
		parts = append(parts, s.value.Render(fmt.Sprintf("  %s: %.1f kg", store, summary.StoreWeightsKg[store])))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderAllocation(payload application.SessionReport, s styles) string {
	if payload.Allocation == nil {
		return s.empty.Render("Allocation unavailable.")
	}
	if len(payload.Allocation) == 0 {
		return s.empty.Render("No partners configured.")
	}

	ids := make([]string, 0, len(payload.Allocation))
	for id := range payload.Allocation {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := []string{s.label.Render("Allocation")}
	for _, id := range ids {
		allocation := payload.Allocation[id]
		parts = append(parts, s.value.Render(fmt.Sprintf("  %-16s %6.1f kg  %4d meals  %s",
			id, allocation.WeightKg, allocation.Meals, shareBar(allocation.Share, s))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderNarrative(payload application.SessionReport, s styles) string {
	if payload.Report == nil {
		return s.empty.Render("Report unavailable.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.label.Render(fmt.Sprintf("Report (%s)", payload.Report.Source)),
		s.narrative.Render("  "+payload.Report.Narrative),
	)
}

func shareBar(share float64, s styles) string {
	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}

	filled := int(share*shareBarWidth + 0.5)
	return s.barBracket.Render("[") +
		s.barFill.Render(strings.Repeat("█", filled)) +
		s.barEmpty.Render(strings.Repeat("░", shareBarWidth-filled)) +
		s.barBracket.Render("]") +
		s.barFill.Render(fmt.Sprintf(" %3.0f%%", share*100))
}
