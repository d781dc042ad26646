// Package format renders marketplace values for display. Prices are in
// CFA francs (XAF), which carry no decimals.
package format

import (
	"strconv"
	"strings"

	"mboaimmo/server/internal/i18n"
)

// Price renders an XAF amount as a grouped integer with the currency
// label, e.g. 15000000 -> "15 000 000 FCFA" (fr) or "15,000,000 XAF"
// (en). Output depends only on the amount and language.
func Price(amount int64, lang i18n.Language) string {
	sep := " "
	label := "FCFA"
	if lang == i18n.EN {
		sep = ","
		label = "XAF"
	}
	return group(amount, sep) + " " + label
}

func group(amount int64, sep string) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(d)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
