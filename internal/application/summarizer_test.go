package application

import (
	"testing"

	"github.com/foodrescue/rescue-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeTwoRecords(t *testing.T) {
	t.Parallel()

	document := testDocument(
		testRecord("Maria", 20, 40),
		testRecord("Ben", 5, 10),
	)

	view := Summarize(document)

	assert.Equal(t, 25.0, view.TotalWeightKg)
	assert.Equal(t, 50, view.TotalMeals)
	assert.Equal(t, 2, view.RecordCount)
	assert.Equal(t, 2, view.DonorCount)
	assert.Equal(t, 1, view.StoreCount)
	assert.Equal(t, 12.5, view.AverageWeightKg)
	assert.Equal(t, map[string]float64{"GreenMart": 25}, view.StoreWeightsKg)
}

func TestSummarizeCountsDistinctDonorsAndStores(t *testing.T) {
	t.Parallel()

	second := testRecord("Maria", 10, 20)
	second.Store = "CornerShop"

	view := Summarize(testDocument(testRecord("Maria", 20, 40), second))

	assert.Equal(t, 1, view.DonorCount)
	assert.Equal(t, 2, view.StoreCount)
}

func TestSummarizeEmptyDocument(t *testing.T) {
	t.Parallel()

	view := Summarize(testDocument())

	assert.Equal(t, domain.SummaryView{}, view)
}

func TestSummarizeIsDeterministic(t *testing.T) {
	t.Parallel()

	document := testDocument(
		testRecord("Maria", 20, 40),
		testRecord("Ben", 5, 10),
		testRecord("Ava", 7.25, 14),
	)

	first := Summarize(document)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Summarize(document))
	}
}
