package trends

import (
	"sort"

	"ArgPulse/internal/domain/models"
)

var rateOrder = map[models.RateKind]int{
	models.RateOficial: 0,
	models.RateBlue:    1,
	models.RateMEP:     2,
	models.RateCCL:     3,
}

// Convert prices amount at every rate kind with a positive sell price. Known
// kinds come first, then the rest alphabetically.
func Convert(amount float64, direction models.ConvertDirection, rates map[models.RateKind]models.ExchangeRate) []models.Conversion {
	out := make([]models.Conversion, 0, len(rates))
	for kind, r := range rates {
		if r.Sell <= 0 {
			continue
		}
		c := models.Conversion{Kind: kind, Name: r.Name, Rate: r.Sell}
		if c.Name == "" {
			c.Name = string(kind)
		}
		switch direction {
		case models.ARSToUSD:
			c.Result = amount / r.Sell
		default:
			c.Result = amount * r.Sell
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		oi, iKnown := rateOrder[out[i].Kind]
		oj, jKnown := rateOrder[out[j].Kind]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return out[i].Kind < out[j].Kind
		}
	})
	return out
}
