package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchid-shop/storefront/internal/models"
)

func TestGeneratePrice_Deterministic(t *testing.T) {
	t.Parallel()

	o := models.Orchid{ID: 42, Name: "Phalaenopsis", IsNatural: true}

	first := GeneratePrice(o)
	second := GeneratePrice(o)

	require.Equal(t, first, second)
	assert.Equal(t, first, GeneratePrice(models.Orchid{ID: 42, IsNatural: true}))
}

func TestGeneratePrice_NaturalMultiplier(t *testing.T) {
	t.Parallel()

	natural := GeneratePrice(models.Orchid{ID: 7, IsNatural: true})
	cultivated := GeneratePrice(models.Orchid{ID: 7, IsNatural: false})

	// same variation for the same id, only the base differs
	assert.InDelta(t, basePrice*0.5, natural-cultivated, 1e-9)
}

func TestGeneratePrice_VariationRange(t *testing.T) {
	t.Parallel()

	for id := 1; id <= 200; id++ {
		price := GeneratePrice(models.Orchid{ID: id})
		variation := price - basePrice
		require.GreaterOrEqual(t, variation, 10.0, "id %d", id)
		require.Less(t, variation, 40.0, "id %d", id)
	}
}

func TestGeneratePrice_TwoDecimals(t *testing.T) {
	t.Parallel()

	for _, id := range []int{1, 13, 999, 123456} {
		price := GeneratePrice(models.Orchid{ID: id, IsNatural: true})
		assert.InDelta(t, price, math.Round(price*100)/100, 1e-9)
	}
}
