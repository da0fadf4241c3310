package webflow

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Currencies whose minor unit equals the major unit.
var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "ISK": {},
	"JPY": {}, "KMF": {}, "KRW": {}, "MGA": {}, "PYG": {},
	"RWF": {}, "UGX": {}, "VND": {}, "VUV": {}, "XAF": {},
	"XOF": {}, "XPF": {},
}

// NormalizePrice converts a vendor minor-unit price into major units.
// Missing or non-numeric values yield nil.
func NormalizePrice(p *Price) *decimal.Decimal {
	if p == nil {
		return nil
	}

	var minor float64
	switch v := p.Value.(type) {
	case float64:
		minor = v
	case int:
		minor = float64(v)
	case int64:
		minor = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		minor = parsed
	default:
		return nil
	}

	code := strings.ToUpper(p.CurrencyCode())
	d := decimal.NewFromFloat(minor)

	if _, ok := zeroDecimalCurrencies[code]; ok {
		result := d.Round(0)
		return &result
	}

	result := d.Div(decimal.NewFromInt(100)).Round(2)
	return &result
}
