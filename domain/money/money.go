// Package money holds the two-decimal arithmetic used for premiums, splits and VAT.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits of every stored amount.
const Places = 2

// VATRate is the invoice VAT rate.
var VATRate = decimal.RequireFromString("0.23")

// ErrInvalidParts indicates a split into zero or fewer parts, or with a
// non-positive weight.
var ErrInvalidParts = errors.New("split needs at least one positive part")

// Round rounds d half away from zero to Places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// FromFloat converts f to an amount rounded to Places.
func FromFloat(f float64) decimal.Decimal {
	return Round(decimal.NewFromFloat(f))
}

// Percent returns round(amount × rate / 100).
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return Round(amount.Mul(rate).Div(decimal.NewFromInt(100)))
}

// VAT returns the VAT due on net.
func VAT(net decimal.Decimal) decimal.Decimal {
	return Round(net.Mul(VATRate))
}

// Split divides total into n equal rounded parts. The last part absorbs the
// rounding remainder so the parts sum exactly to total.
func Split(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n <= 0 {
		return nil, ErrInvalidParts
	}
	part := total.DivRound(decimal.NewFromInt(int64(n)), Places)
	parts := make([]decimal.Decimal, n)
	for i := range n - 1 {
		parts[i] = part
	}
	parts[n-1] = total.Sub(part.Mul(decimal.NewFromInt(int64(n - 1))))
	return parts, nil
}

// Allocate divides total proportionally to weights. The last part absorbs
// the rounding remainder so the parts sum exactly to total.
func Allocate(total decimal.Decimal, weights []float64) ([]decimal.Decimal, error) {
	if len(weights) == 0 {
		return nil, ErrInvalidParts
	}
	sum := 0.0
	for _, w := range weights {
		if w <= 0 {
			return nil, ErrInvalidParts
		}
		sum += w
	}

	parts := make([]decimal.Decimal, len(weights))
	allocated := decimal.Zero
	for i, w := range weights[:len(weights)-1] {
		parts[i] = Round(total.Mul(decimal.NewFromFloat(w / sum)))
		allocated = allocated.Add(parts[i])
	}
	parts[len(parts)-1] = total.Sub(allocated)
	return parts, nil
}

// Sum adds amounts.
func Sum(amounts []decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, amounts...)
}
