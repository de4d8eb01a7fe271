package domain

import (
	"github.com/shopspring/decimal"
)

// Spanish VAT bands. Amounts outside these are rejected at validation time.
var validVATRates = map[string]struct{}{
	"0":  {},
	"4":  {},
	"10": {},
	"21": {},
}

var hundred = decimal.NewFromInt(100)

// IsValidVATRate reports whether rate is one of the accepted VAT bands.
func IsValidVATRate(rate decimal.Decimal) bool {
	_, ok := validVATRates[rate.String()]
	return ok
}

// ComputeTax derives the tax amount and gross total from a net amount and a
// VAT rate expressed as a percentage. Results are rounded to 2 decimal places.
// totalAmount is always amount + taxAmount; callers must never persist a total
// computed any other way.
func ComputeTax(amount, taxRate decimal.Decimal) (taxAmount, totalAmount decimal.Decimal) {
	taxAmount = amount.Mul(taxRate).Div(hundred).Round(2)
	totalAmount = amount.Add(taxAmount)
	return taxAmount, totalAmount
}
