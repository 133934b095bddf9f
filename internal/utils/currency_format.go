package utils

import (
	"github.com/shopspring/decimal"
)

// LedgerCurrency is the only currency the ledger books in.
const LedgerCurrency = "NPR"

// paisaPrecision is the number of minor-unit digits of the ledger currency.
const paisaPrecision = 2

// FormatPaisa renders minor units as a major-unit amount with two decimals.
// Example: 123456 returns "1234.56"
func FormatPaisa(paisa int64) string {
	return decimal.New(paisa, -paisaPrecision).StringFixed(paisaPrecision)
}

// FormatWithCurrency prefixes FormatPaisa with the ledger currency code.
// Example: 5000 returns "NPR 50.00"
func FormatWithCurrency(paisa int64) string {
	return LedgerCurrency + " " + FormatPaisa(paisa)
}
