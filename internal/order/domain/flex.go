package domain

import (
	"encoding/json"
	"regexp"

	"github.com/shopspring/decimal"
)

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// CoerceAmount strips everything but digits and dots from raw and parses the
// remainder. Anything unparseable comes back as zero.
func CoerceAmount(raw string) decimal.Decimal {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FlexQuantity accepts a JSON number or string and coerces it to a
// non-negative integer. Invalid input becomes zero, never an error.
type FlexQuantity int

func (q *FlexQuantity) UnmarshalJSON(b []byte) error {
	*q = 0

	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		if n > 0 {
			*q = FlexQuantity(int(n))
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*q = FlexQuantity(CoerceAmount(s).IntPart())
	}
	return nil
}

func (q FlexQuantity) Int() int { return int(q) }

// FlexDecimal is the money counterpart of FlexQuantity: "$12,000" parses as
// 12000, garbage parses as zero.
type FlexDecimal decimal.Decimal

func (d *FlexDecimal) UnmarshalJSON(b []byte) error {
	*d = FlexDecimal(decimal.Zero)

	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		if n > 0 {
			*d = FlexDecimal(decimal.NewFromFloat(n))
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = FlexDecimal(CoerceAmount(s))
	}
	return nil
}

func (d FlexDecimal) Decimal() decimal.Decimal { return decimal.Decimal(d) }

func (d FlexDecimal) MarshalJSON() ([]byte, error) {
	return decimal.Decimal(d).MarshalJSON()
}
