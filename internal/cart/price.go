package cart

import (
	"math"
	"strconv"

	"github.com/orchid-shop/storefront/internal/models"
)

const basePrice = 25.0

// GeneratePrice derives a stable price for an orchid, since the catalog feed
// carries none. Natural orchids cost 1.5x base, plus a variation in [10, 40)
// fixed by a 32-bit hash of the id: the same id always prices the same, within
// a session and across restarts.
func GeneratePrice(o models.Orchid) float64 {
	price := basePrice
	if o.IsNatural {
		price *= 1.5
	}
	price += float64(idVariation(strconv.Itoa(o.ID)))
	return math.Round(price*100) / 100
}

func idVariation(id string) int {
	var h int32
	for _, r := range id {
		h = (h << 5) - h + int32(r)
	}
	if h < 0 {
		h = -h
	}
	return int(h%30) + 10
}
