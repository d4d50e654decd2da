package pricing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var couponPattern = regexp.MustCompile(`^SAVE(\d+)$`)

var hundred = decimal.NewFromInt(100)

// NormalizeCoupon trims and upper-cases a code as typed by the visitor.
func NormalizeCoupon(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ParseCoupon extracts the percentage from a SAVE<digits> code. Codes that
// do not match, or whose percentage is above 100, are not valid.
func ParseCoupon(code string) (int, bool) {
	m := couponPattern.FindStringSubmatch(NormalizeCoupon(code))
	if m == nil {
		return 0, false
	}
	pct, err := strconv.Atoi(m[1])
	if err != nil || pct < 0 || pct > 100 {
		return 0, false
	}
	return pct, true
}

// CouponDiscount is the amount code takes off subtotal, rounded to cents,
// along with the percentage used. Nothing is discounted from a non-positive
// subtotal.
func CouponDiscount(code string, subtotal decimal.Decimal) (decimal.Decimal, int) {
	if !subtotal.IsPositive() {
		return decimal.Zero, 0
	}
	pct, ok := ParseCoupon(code)
	if !ok {
		return decimal.Zero, 0
	}
	return round2(subtotal.Mul(decimal.NewFromInt(int64(pct))).Div(hundred)), pct
}

// round2 rounds half away from zero to cents.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
