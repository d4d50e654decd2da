package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// Format renders m as "<ISO code> <amount>" with two decimals.
func Format(m Money) string {
	return fmt.Sprintf("%s %s", m.Currency, m.Amount.StringFixed(2))
}

func (m Money) String() string { return Format(m) }
