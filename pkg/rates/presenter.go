package rates

import (
	"sort"
)

// FallbackRateID is the stable id of the fixed-cost fallback option.
const FallbackRateID = "fastrac-fallback"

// SortQuotes orders quotes ascending by cost. The sort is stable: ties
// keep their first-seen order.
func SortQuotes(quotes []RateQuote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Cost < quotes[j].Cost
	})
}

// Present registers the calculation result with the host. Real quotes
// are registered cost-ascending; a fallback result (or an empty quote
// list) registers exactly one fixed-cost rate so checkout is never left
// without a shipping option.
func Present(result RateResult, fallback FallbackRate, registrar RateRegistrar) error {
	if result.Kind == ResultFallback || len(result.Quotes) == 0 {
		return registrar.AddRate(RateQuote{
			ID:       FallbackRateID,
			Label:    fallback.Label,
			Cost:     fallback.Cost,
			Category: "fallback",
		})
	}

	sorted := make([]RateQuote, len(result.Quotes))
	copy(sorted, result.Quotes)
	SortQuotes(sorted)

	for _, quote := range sorted {
		if err := registrar.AddRate(quote); err != nil {
			return err
		}
	}
	return nil
}
