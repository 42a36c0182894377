package application

import "github.com/foodrescue/rescue-cli/internal/domain"

// Summarize computes the aggregate view of one session. Pure and
// deterministic; the orchestrator and tests rely on that.
func Summarize(document domain.SessionDocument) domain.SummaryView {
	view := domain.SummaryView{RecordCount: len(document.Records)}

	donors := map[string]struct{}{}
	storeWeights := map[string]float64{}
	for _, record := range document.Records {
		view.TotalWeightKg += record.WeightKg
		view.TotalMeals += record.MealsEstimate
		donors[record.DonorName] = struct{}{}
		storeWeights[record.Store] += record.WeightKg
	}

	view.DonorCount = len(donors)
	view.StoreCount = len(storeWeights)
	if view.RecordCount > 0 {
		view.AverageWeightKg = view.TotalWeightKg / float64(view.RecordCount)
	}
	if len(storeWeights) > 0 {
		view.StoreWeightsKg = storeWeights
	}

	return view
}
