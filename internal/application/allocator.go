package application

import (
	"sort"

	"github.com/foodrescue/rescue-cli/internal/domain"
)

// Allocate splits the session totals across the partner roster in
// proportion to each partner's configured weight. Zero roster weights
// mean an equal split; a zero-weight session allocates zero everywhere
// rather than dividing by zero.
func Allocate(document domain.SessionDocument, partners []domain.Partner) domain.AllocationView {
	view := make(domain.AllocationView, len(partners))
	if len(partners) == 0 {
		return view
	}

	var totalWeight float64
	var totalMeals int
	for _, record := range document.Records {
		totalWeight += record.WeightKg
		totalMeals += record.MealsEstimate
	}

	shares := partnerShares(partners)

	if totalWeight == 0 {
		for _, partner := range partners {
			view[partner.ID] = domain.PartnerAllocation{}
		}
		return view
	}

	// Meals are integral, so each partner gets the floor of its quota
	// and the leftovers go to the largest fractional remainders. Ties
	// break on roster order to keep the result deterministic.
	type remainder struct {
		index    int
		fraction float64
	}

	allocatedMeals := 0
	baseMeals := make([]int, len(partners))
	remainders := make([]remainder, 0, len(partners))
	for i := range partners {
		quota := float64(totalMeals) * shares[i]
		baseMeals[i] = int(quota)
		allocatedMeals += baseMeals[i]
		remainders = append(remainders, remainder{index: i, fraction: quota - float64(baseMeals[i])})
	}

	sort.SliceStable(remainders, func(a, b int) bool {
		return remainders[a].fraction > remainders[b].fraction
	})
	for i := 0; i < totalMeals-allocatedMeals; i++ {
		baseMeals[remainders[i%len(remainders)].index]++
	}

	for i, partner := range partners {
		view[partner.ID] = domain.PartnerAllocation{
			WeightKg: totalWeight * shares[i],
			Meals:    baseMeals[i],
			Share:    shares[i],
		}
	}

	return view
}

func partnerShares(partners []domain.Partner) []float64 {
	var totalWeight float64
	for _, partner := range partners {
		totalWeight += partner.Weight
	}

	shares := make([]float64, len(partners))
	for i, partner := range partners {
		if totalWeight == 0 {
			shares[i] = 1 / float64(len(partners))
			continue
		}
		shares[i] = partner.Weight / totalWeight
	}

	return shares
}
