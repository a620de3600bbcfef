package accounting

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// LineAmounts holds the computed monetary breakdown of a single document line.
type LineAmounts struct {
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Gross decimal.Decimal
}

// CalculateLine computes net, VAT and gross amounts for a document line from
// quantity, unit price and a VAT rate expressed as a percentage (e.g. 20 for
// 20%). It is pure and total: a zero rate stands in for an absent tax code,
// and a negative unit price yields a credit line. Invoice lines and bill
// lines go through this identically.
func CalculateLine(quantity, unitPrice, rate decimal.Decimal) LineAmounts {
	net := Round2(quantity.Mul(unitPrice))
	vat := Round2(net.Mul(rate).Div(oneHundred))
	return LineAmounts{
		Net:   net,
		VAT:   vat,
		Gross: net.Add(vat),
	}
}
