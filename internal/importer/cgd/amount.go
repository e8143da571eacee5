package cgd

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseEuropeanAmount reads amounts written with dot thousands and comma
// decimals: "1.234,56", "-588,74", "10,00".
func parseEuropeanAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return decimal.NewFromString(strings.TrimSpace(clean))
}
