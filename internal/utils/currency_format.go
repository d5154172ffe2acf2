package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var frenchPrinter = message.NewPrinter(language.French)

// FormatAmount renders a whole-unit amount with French digit grouping and the currency label.
// Example: 1250000 with "FCFA" returns "1 250 000 FCFA" (grouping uses a narrow no-break space).
func FormatAmount(amount int64, label string) string {
	s := frenchPrinter.Sprintf("%d", amount)
	if label == "" {
		return s
	}
	return s + " " + label
}
