package rates_test

import (
	"testing"

	"github.com/manavdhamecha77/fastrac-shipping/pkg/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateItems_SumsWeightAndTakesMaxPerAxis(t *testing.T) {
	items := []rates.CartItem{
		{Weight: 2, Length: 10, Width: 10, Height: 10, Quantity: 1},
		{Weight: 3, Length: 20, Width: 5, Height: 5, Quantity: 1},
	}

	pkg, complete := rates.AggregateItems(items)

	assert.True(t, complete)
	assert.Equal(t, 5.0, pkg.Weight)
	assert.Equal(t, 20.0, pkg.Length)
	assert.Equal(t, 10.0, pkg.Width)
	assert.Equal(t, 10.0, pkg.Height)
}

func TestAggregateItems_QuantityMultipliesWeight(t *testing.T) {
	items := []rates.CartItem{
		{Weight: 1.5, Length: 10, Width: 10, Height: 10, Quantity: 4},
	}

	pkg, complete := rates.AggregateItems(items)

	assert.True(t, complete)
	assert.Equal(t, 6.0, pkg.Weight)
}

func TestAggregateItems_ZeroQuantityCountsAsOne(t *testing.T) {
	items := []rates.CartItem{
		{Weight: 2, Length: 10, Width: 10, Height: 10},
	}

	pkg, _ := rates.AggregateItems(items)
	assert.Equal(t, 2.0, pkg.Weight)
}

func TestAggregateItems_MissingDimensionIsIncompleteButUsable(t *testing.T) {
	items := []rates.CartItem{
		{Weight: 2, Length: 10, Width: 10, Height: 10, Quantity: 1},
		{Weight: 1, Length: 30, Quantity: 1}, // no width/height
	}

	pkg, complete := rates.AggregateItems(items)

	assert.False(t, complete)
	assert.Equal(t, 3.0, pkg.Weight)
	assert.Equal(t, 30.0, pkg.Length)
	assert.Equal(t, 10.0, pkg.Width)
	assert.Equal(t, 10.0, pkg.Height)
}

func TestAggregateItems_EmptyCartIsIncomplete(t *testing.T) {
	pkg, complete := rates.AggregateItems(nil)

	assert.False(t, complete)
	assert.Zero(t, pkg.Weight)
}

func TestNormalize_ClampsToMinimums(t *testing.T) {
	pkg, complete := rates.AggregateItems([]rates.CartItem{
		{Weight: 0.2, Length: 5, Width: 3, Height: 2, Quantity: 1},
	})
	require.True(t, complete)

	normalized, err := pkg.Normalize()
	require.NoError(t, err)

	assert.Equal(t, rates.MinWeightKG, normalized.Weight)
	assert.Equal(t, rates.MinSideCM, normalized.Length)
	assert.Equal(t, rates.MinSideCM, normalized.Width)
	assert.Equal(t, rates.MinSideCM, normalized.Height)
}

func TestNormalize_EmptyPackageGetsDefaults(t *testing.T) {
	normalized, err := rates.Package{}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, rates.MinWeightKG, normalized.Weight)
	assert.Equal(t, rates.MinSideCM, normalized.Length)
}

func TestNormalize_RejectsOverweight(t *testing.T) {
	_, err := rates.Package{Weight: 120, Length: 50, Width: 50, Height: 50}.Normalize()
	assert.ErrorIs(t, err, rates.ErrInvalidPackage)
}

func TestNormalize_RejectsOversizedSide(t *testing.T) {
	_, err := rates.Package{Weight: 5, Length: 301, Width: 50, Height: 50}.Normalize()
	assert.ErrorIs(t, err, rates.ErrInvalidPackage)
}

func TestNormalize_AcceptsMaximums(t *testing.T) {
	pkg := rates.Package{Weight: 100, Length: 300, Width: 300, Height: 300}
	normalized, err := pkg.Normalize()
	require.NoError(t, err)
	assert.Equal(t, pkg, normalized)
}
