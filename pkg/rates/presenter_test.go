package rates_test

import (
	"errors"
	"testing"

	"github.com/manavdhamecha77/fastrac-shipping/pkg/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureRegistrar collects registered rates.
type captureRegistrar struct {
	rates []rates.RateQuote
	err   error
}

func (c *captureRegistrar) AddRate(q rates.RateQuote) error {
	if c.err != nil {
		return c.err
	}
	c.rates = append(c.rates, q)
	return nil
}

var testFallback = rates.FallbackRate{Cost: 25000, Label: "Flat Rate (estimated)"}

func TestPresent_SortsAscendingByCost(t *testing.T) {
	result := rates.RateResult{
		Kind: rates.ResultQuotes,
		Quotes: []rates.RateQuote{
			{ID: "a", Cost: 32000},
			{ID: "b", Cost: 16500},
			{ID: "c", Cost: 18000},
		},
	}
	registrar := &captureRegistrar{}

	require.NoError(t, rates.Present(result, testFallback, registrar))

	require.Len(t, registrar.rates, 3)
	assert.Equal(t, "b", registrar.rates[0].ID)
	assert.Equal(t, "c", registrar.rates[1].ID)
	assert.Equal(t, "a", registrar.rates[2].ID)
}

func TestPresent_StableSortKeepsFirstSeenOrderOnTies(t *testing.T) {
	result := rates.RateResult{
		Kind: rates.ResultQuotes,
		Quotes: []rates.RateQuote{
			{ID: "first", Cost: 18000},
			{ID: "second", Cost: 18000},
			{ID: "cheap", Cost: 9000},
		},
	}
	registrar := &captureRegistrar{}

	require.NoError(t, rates.Present(result, testFallback, registrar))

	require.Len(t, registrar.rates, 3)
	assert.Equal(t, "cheap", registrar.rates[0].ID)
	assert.Equal(t, "first", registrar.rates[1].ID)
	assert.Equal(t, "second", registrar.rates[2].ID)
}

func TestPresent_DoesNotMutateInput(t *testing.T) {
	quotes := []rates.RateQuote{
		{ID: "a", Cost: 32000},
		{ID: "b", Cost: 16500},
	}
	result := rates.RateResult{Kind: rates.ResultQuotes, Quotes: quotes}

	require.NoError(t, rates.Present(result, testFallback, &captureRegistrar{}))

	assert.Equal(t, "a", quotes[0].ID)
	assert.Equal(t, "b", quotes[1].ID)
}

func TestPresent_FallbackResultRegistersExactlyOneRate(t *testing.T) {
	result := rates.RateResult{Kind: rates.ResultFallback}
	registrar := &captureRegistrar{}

	require.NoError(t, rates.Present(result, testFallback, registrar))

	require.Len(t, registrar.rates, 1)
	assert.Equal(t, rates.FallbackRateID, registrar.rates[0].ID)
	assert.Equal(t, 25000.0, registrar.rates[0].Cost)
	assert.Equal(t, "Flat Rate (estimated)", registrar.rates[0].Label)
}

func TestPresent_EmptyQuoteListAlsoFallsBack(t *testing.T) {
	result := rates.RateResult{Kind: rates.ResultQuotes, Quotes: nil}
	registrar := &captureRegistrar{}

	require.NoError(t, rates.Present(result, testFallback, registrar))

	require.Len(t, registrar.rates, 1)
	assert.Equal(t, rates.FallbackRateID, registrar.rates[0].ID)
}

func TestPresent_RegistrarErrorPropagates(t *testing.T) {
	result := rates.RateResult{
		Kind:   rates.ResultQuotes,
		Quotes: []rates.RateQuote{{ID: "a", Cost: 100}},
	}
	registrar := &captureRegistrar{err: errors.New("host rejected rate")}

	err := rates.Present(result, testFallback, registrar)
	assert.Error(t, err)
}

func TestSortQuotes_NonDecreasing(t *testing.T) {
	quotes := []rates.RateQuote{
		{Cost: 5}, {Cost: 1}, {Cost: 3}, {Cost: 1}, {Cost: 2},
	}

	rates.SortQuotes(quotes)

	for i := 1; i < len(quotes); i++ {
		assert.LessOrEqual(t, quotes[i-1].Cost, quotes[i].Cost)
	}
}
